package sbp

import "context"

// HandlerArgs is a command's evaluated, default-filled argument list, in
// declared positional order.
type HandlerArgs []float64

// NonBreaking handlers append G-code to the chunk or mutate settings, and
// return without waiting on the driver (spec.md §4.5). JS's fire-and-forget
// velocity-maximum writes are the only driver call one of them makes.
type NonBreaking func(rt *Runtime, args HandlerArgs) error

// Breaking handlers perform one or more driver round trips. Spec.md §9
// notes that the source's callback-based driver calls become, in a
// cooperative language, "an awaitable"; in Go the idiomatic shape of an
// awaitable is simply a blocking call, so a Breaking handler blocks on ctx
// and the Driver's Get/Set/ExpectStateChange until it is done. The
// Execution Engine does not advance PC until it returns.
type Breaking func(ctx context.Context, rt *Runtime, args HandlerArgs) error

// ArgSpec is one positional parameter a command handler declares: a name
// (for error messages), whether it is required, and its default value when
// it is not. NaN is also used by some handlers as a distinct "omitted,
// leave the current setting unchanged" sentinel (e.g. MS/VS); that is a
// handler-local convention, not something resolveArgs interprets.
type ArgSpec struct {
	Name     string
	Required bool
	Default  float64
}

// Handler is the static mapping from mnemonic to behavior described in
// spec.md §9: "a static mapping from mnemonic to a tagged handler record".
// Exactly one of NonBreaking or Breaking is set.
type Handler struct {
	Mnemonic   string
	Args       []ArgSpec
	NonBreaking NonBreaking
	Breaking    Breaking
}

func (h Handler) isBreaking() bool {
	return h.Breaking != nil
}

// Registry is the full mnemonic→Handler table. NewRegistry builds the one
// this module ships; tests may build a smaller one.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns the registry populated with every handler in §4.5.
func NewRegistry() *Registry {
	r := &Registry{handlers: map[string]Handler{}}
	registerMoveHandlers(r)
	registerJogHandlers(r)
	registerCutHandlers(r)
	registerZeroHandlers(r)
	registerSettingsHandlers(r)
	registerMiscHandlers(r)
	return r
}

func (r *Registry) register(h Handler) {
	r.handlers[h.Mnemonic] = h
}

// Lookup returns the handler for mnemonic, if any.
func (r *Registry) Lookup(mnemonic string) (Handler, bool) {
	h, ok := r.handlers[mnemonic]
	return h, ok
}

// BreakingMnemonics returns the set of mnemonics registered as breaking,
// for use by Classify (spec.md §4.2: "implementation signals this at
// handler registration").
func (r *Registry) BreakingMnemonics() map[string]bool {
	out := map[string]bool{}
	for m, h := range r.handlers {
		if h.isBreaking() {
			out[m] = true
		}
	}
	return out
}

// resolveArgs fills in declared defaults for missing or empty expressions,
// then evaluates each one against ctx, per spec.md §4.5's argument
// evaluation rule.
func resolveArgs(h Handler, exprs []Expr, ctx EvalContext) (HandlerArgs, error) {
	args := make(HandlerArgs, len(h.Args))
	for i, spec := range h.Args {
		var e Expr
		if i < len(exprs) {
			e = exprs[i]
		}
		if e == nil {
			if spec.Required {
				return nil, &HandlerError{Line: ctx.Line, Mnemonic: h.Mnemonic,
					Msg: "missing required argument: " + spec.Name}
			}
			args[i] = spec.Default
			continue
		}
		v, _, err := Eval(e, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
