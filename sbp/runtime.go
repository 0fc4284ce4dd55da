package sbp

import (
	"context"
	"fmt"
	"log/slog"
)

// Runtime is the Execution Engine of spec.md §4.6 plus all the state §3
// describes: pc, gosub stack, user variables, commanded position, chunk
// buffer, settings. It is created once per run and is not safe for
// concurrent Run calls; nothing here is shared across runtime instances
// (spec.md §5, §9: "must become an instance field of the runtime").
type Runtime struct {
	driver   Driver
	machine  Machine
	logger   *slog.Logger
	registry *Registry
	mirror   *StatusMirror

	settings Settings

	labels   LabelTable
	pc       int
	nStmts   int
	stack    []int
	userVars map[string]float64

	cmdPos       Position
	chunk        ChunkBuffer
	startOfChunk int

	started bool
	stopped bool
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithSettings overrides the default settings record.
func WithSettings(s Settings) Option {
	return func(rt *Runtime) { rt.settings = s }
}

// WithMachine attaches the process-manager-facing Machine collaborator.
func WithMachine(m Machine) Option {
	return func(rt *Runtime) { rt.machine = m }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithRegistry overrides the default handler registry (mainly for tests
// that want a reduced mnemonic set).
func WithRegistry(r *Registry) Option {
	return func(rt *Runtime) { rt.registry = r }
}

// NewRuntime constructs a Runtime bound to driver, in the idle lifecycle
// state (spec.md §3 "Lifecycle": PC=0, empty stack/chunk).
func NewRuntime(driver Driver, opts ...Option) *Runtime {
	rt := &Runtime{
		driver:   driver,
		logger:   slog.Default(),
		registry: NewRegistry(),
		mirror:   &StatusMirror{},
		settings: DefaultSettings(),
		userVars: map[string]float64{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Driver exposes the bound driver to handlers.
func (rt *Runtime) Driver() Driver { return rt.driver }

// Settings exposes the mutable settings record to handlers.
func (rt *Runtime) Settings() *Settings { return &rt.settings }

// Mirror exposes the status mirror, mainly so handlers can read fresh
// driver-reported positions after a round trip.
func (rt *Runtime) Mirror() *StatusMirror { return rt.mirror }

// Logger exposes the runtime's logger to handlers.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// CmdPos returns the interpreter's own commanded position bookkeeping
// (spec.md §5: "the engine reads cmd_pos* ... for geometry, not the
// mirror").
func (rt *Runtime) CmdPos() Position { return rt.cmdPos }

// SetCmdPos updates the commanded position after a handler emits a move.
func (rt *Runtime) SetCmdPos(p Position) { rt.cmdPos = p }

// Emit appends a line to the pending chunk.
func (rt *Runtime) Emit(line string) { rt.chunk.Emit(line) }

// UserVar reads a user variable; ok is false if it is undefined.
func (rt *Runtime) UserVar(name string) (float64, bool) {
	v, ok := rt.userVars[name]
	return v, ok
}

// SetUserVar assigns a user variable.
func (rt *Runtime) SetUserVar(name string, v float64) { rt.userVars[name] = v }

// evalCtx builds the EvalContext a statement at the given source line
// should be evaluated against.
func (rt *Runtime) evalCtx(line int) EvalContext {
	return EvalContext{
		Vars:     rt.userVars,
		Status:   rt.mirror,
		Settings: &rt.settings,
		Line:     line,
	}
}

// reset returns the runtime to its initial idle state (spec.md §9:
// "_end calls init which resets state to idle"; modeled here as the one
// reset routine called from every terminal path of Run).
func (rt *Runtime) reset() {
	rt.pc = 0
	rt.stack = nil
	rt.chunk = ChunkBuffer{}
	rt.startOfChunk = 0
	rt.started = false
	rt.stopped = false
}

// Stop requests cancellation, per spec.md §5: checked at the top of every
// loop iteration and on resume from every suspension, never mid-statement.
func (rt *Runtime) Stop() { rt.stopped = true }

// Run loads prog (already Analyze'd, with its label table) and drives it to
// completion, error, or cancellation (spec.md §4.6).
func (rt *Runtime) Run(ctx context.Context, prog Program, labels LabelTable) error {
	rt.labels = labels
	rt.nStmts = len(prog)
	rt.reset()
	rt.started = true
	rt.logger.Debug("run start", "statements", rt.nStmts)
	if rt.machine != nil {
		rt.machine.SetState(MachineRunning)
	}

	listenCtx, stopListening := context.WithCancel(ctx)
	listenerDone := rt.listenStatus(listenCtx)

	err := rt.runLoop(ctx, prog)
	if err != nil {
		rt.logger.Warn("run ended with error", "pc", rt.pc, "err", err)
	} else {
		rt.logger.Debug("run end", "statements", rt.nStmts)
	}

	stopListening()
	<-listenerDone

	rt.reset()
	if rt.machine != nil {
		rt.machine.SetState(MachineIdle)
	}
	return err
}

// listenStatus is the one place genuine concurrency touches the runtime
// (spec.md §5): it subscribes to the driver's status stream and merges
// every update into the status mirror, so breaking handlers and
// system-variable reads (§4.7) observe freshly reported positions instead
// of whatever was last merged by hand. The returned channel closes once the
// listener has exited, so Run can wait for it before returning.
func (rt *Runtime) listenStatus(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if rt.driver == nil {
		close(done)
		return done
	}
	events := rt.driver.Events()
	if events == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-events:
				if !ok {
					return
				}
				rt.mirror.Merge(u)
				if rt.machine != nil {
					rt.machine.PublishStatus(u)
				}
			}
		}
	}()
	return done
}

func (rt *Runtime) cancelled(ctx context.Context) bool {
	return rt.stopped || ctx.Err() != nil
}

// runLoop is the PC loop from spec.md §4.6: fetch, classify, execute inline
// or flush-and-await, repeat.
func (rt *Runtime) runLoop(ctx context.Context, prog Program) error {
	for {
		if rt.cancelled(ctx) {
			rt.chunk = ChunkBuffer{}
			return ctx.Err()
		}

		if rt.pc >= rt.nStmts {
			if rt.chunk.Len() > 0 {
				if err := rt.flushAndAwait(ctx); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		if err := rt.dispatch(ctx, prog[rt.pc]); err != nil {
			return err
		}
	}
}

// dispatch classifies one statement and routes it to the breaking or
// non-breaking execution path. Used both for top-level statements and,
// recursively, for a Cond's then-branch (spec.md §9: "modeled as a
// straight call").
func (rt *Runtime) dispatch(ctx context.Context, stmt Statement) error {
	line := lineOf(stmt)
	breaks, err := Classify(stmt, rt.evalCtx(line), rt.registry.BreakingMnemonics())
	if err != nil {
		return err
	}
	if breaks {
		return rt.executeBreaking(ctx, stmt)
	}
	return rt.executeInline(ctx, stmt)
}

// flushAndAwait ships the pending chunk and waits for the driver's
// running→stop transition. If the chunk is empty there is nothing to wait
// for: the engine must not deadlock (spec.md §8, boundary case).
func (rt *Runtime) flushAndAwait(ctx context.Context) error {
	if rt.chunk.Len() == 0 {
		return nil
	}
	rt.mirror.SetChunkOffset(rt.startOfChunk)
	segment := rt.chunk.Flush()
	rt.startOfChunk = rt.pc
	rt.logger.Debug("flush", "pc", rt.pc, "segment", segment)
	if err := rt.driver.RunSegment(segment); err != nil {
		return &DriverError{Op: "RunSegment", Err: err}
	}
	if _, err := rt.driver.ExpectStateChange(ctx, StateStop); err != nil {
		if rt.cancelled(ctx) {
			return ctx.Err()
		}
		return &DriverError{Op: "ExpectStateChange", Err: err}
	}
	return nil
}

// executeInline runs a non-breaking statement and advances PC as §4.6
// prescribes for each variant.
func (rt *Runtime) executeInline(ctx context.Context, stmt Statement) error {
	switch v := stmt.(type) {
	case CmdStmt:
		h, ok := rt.registry.Lookup(v.Mnemonic)
		if !ok {
			rt.logger.Warn("unhandled command", "mnemonic", v.Mnemonic, "line", v.Line)
			rt.pc++
			return nil
		}
		args, err := resolveArgs(h, v.Args, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		if err := h.NonBreaking(rt, args); err != nil {
			return err
		}
		rt.pc++
		return nil

	case AssignStmt:
		if v.Raw != "" {
			rt.logger.Debug("raw text assignment", "name", v.Name, "text", v.Raw)
			rt.pc++
			return nil
		}
		val, _, err := Eval(v.Expr, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		rt.userVars[v.Name] = val
		rt.pc++
		return nil

	case CondStmt:
		val, _, err := Eval(v.Test, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		if val != 0 {
			return rt.dispatch(ctx, v.Then)
		}
		rt.pc++
		return nil

	case GotoStmt:
		idx, err := rt.labels.Resolve(v.Label, v.Line)
		if err != nil {
			return err
		}
		rt.logger.Debug("goto", "label", v.Label, "from", rt.pc, "to", idx)
		rt.pc = idx
		return nil

	case GosubStmt:
		idx, err := rt.labels.Resolve(v.Label, v.Line)
		if err != nil {
			return err
		}
		rt.stack = append(rt.stack, rt.pc+1)
		rt.logger.Debug("gosub", "label", v.Label, "from", rt.pc, "to", idx, "depth", len(rt.stack))
		rt.pc = idx
		return nil

	case ReturnStmt:
		if len(rt.stack) == 0 {
			rt.logger.Warn("return with empty stack", "line", v.Line)
			return &ReturnError{Line: v.Line}
		}
		rt.pc = rt.stack[len(rt.stack)-1]
		rt.stack = rt.stack[:len(rt.stack)-1]
		rt.logger.Debug("return", "to", rt.pc, "depth", len(rt.stack))
		return nil

	case EndStmt:
		rt.logger.Debug("program end", "line", v.Line)
		rt.pc = rt.nStmts
		return nil

	case LabelStmt:
		rt.pc++
		return nil

	case CommentStmt:
		rt.pc++
		return nil

	case PauseStmt:
		if v.Expr != nil {
			secs, _, err := Eval(v.Expr, rt.evalCtx(v.Line))
			if err != nil {
				return err
			}
			rt.chunk.Emit(fmt.Sprintf("G4 P%s", formatNumber(secs)))
		}
		rt.pc++
		return nil

	default:
		return &HandlerError{Line: lineOf(stmt), Msg: fmt.Sprintf("unrecognized statement: %T", stmt)}
	}
}

// executeBreaking flushes any pending chunk, awaits the driver, then runs
// the statement's breaking logic (spec.md §4.6 step 4). A CmdStmt whose
// handler is non-breaking (it broke only because an argument reads a system
// variable) runs its NonBreaking body once the flush is done. Only CmdStmt,
// AssignStmt, CondStmt, and PauseStmt can classify as breaking (spec.md
// §4.2); the rest never reach here.
func (rt *Runtime) executeBreaking(ctx context.Context, stmt Statement) error {
	if err := rt.flushAndAwait(ctx); err != nil {
		return err
	}
	if rt.cancelled(ctx) {
		return ctx.Err()
	}

	switch v := stmt.(type) {
	case CmdStmt:
		h, ok := rt.registry.Lookup(v.Mnemonic)
		if !ok {
			rt.logger.Warn("unhandled command", "mnemonic", v.Mnemonic, "line", v.Line)
			rt.pc++
			return nil
		}
		args, err := resolveArgs(h, v.Args, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		if h.Breaking != nil {
			err = h.Breaking(ctx, rt, args)
		} else {
			err = h.NonBreaking(rt, args)
		}
		if err != nil {
			return err
		}
		rt.pc++
		return nil

	case AssignStmt:
		val, _, err := Eval(v.Expr, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		rt.userVars[v.Name] = val
		rt.pc++
		return nil

	case CondStmt:
		val, _, err := Eval(v.Test, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		if val != 0 {
			return rt.dispatch(ctx, v.Then)
		}
		rt.pc++
		return nil

	case PauseStmt:
		secs, _, err := Eval(v.Expr, rt.evalCtx(v.Line))
		if err != nil {
			return err
		}
		rt.chunk.Emit(fmt.Sprintf("G4 P%s", formatNumber(secs)))
		rt.pc++
		return nil

	default:
		return &HandlerError{Line: lineOf(stmt), Msg: fmt.Sprintf("unexpected breaking statement: %T", stmt)}
	}
}
