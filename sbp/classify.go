package sbp

// Classify implements spec.md §4.2: a statement breaks the stack when its
// mnemonic is registered as a breaking handler, or when any sub-expression
// evaluated for it reads a system variable. It is pure in the sense the
// spec requires (no mutation of Runtime state) but, like the source it is
// grounded on, it does evaluate expressions against the current (possibly
// stale) status snapshot purely to observe whether a %(N) read occurs; the
// value produced by that evaluation is discarded, never used for G-code.
func Classify(s Statement, ctx EvalContext, breaking map[string]bool) (bool, error) {
	switch v := s.(type) {
	case CmdStmt:
		if breaking[v.Mnemonic] {
			return true, nil
		}
		for _, a := range v.Args {
			if a == nil {
				continue
			}
			_, st, err := Eval(a, ctx)
			if err != nil {
				return false, err
			}
			if st.SysVarEvaluated {
				return true, nil
			}
		}
		return false, nil
	case AssignStmt:
		if v.Expr == nil {
			return false, nil
		}
		_, st, err := Eval(v.Expr, ctx)
		if err != nil {
			return false, err
		}
		return st.SysVarEvaluated, nil
	case CondStmt:
		_, st, err := Eval(v.Test, ctx)
		if err != nil {
			return false, err
		}
		return st.SysVarEvaluated, nil
	case PauseStmt:
		if v.Expr == nil {
			return false, nil
		}
		_, st, err := Eval(v.Expr, ctx)
		if err != nil {
			return false, err
		}
		return st.SysVarEvaluated, nil
	default:
		// Goto, Gosub, Return, End, Label, Comment never break the stack.
		return false, nil
	}
}
