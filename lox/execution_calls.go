package lox

func (exec *Execution) evalCallExpr(e *CallExpr) (Value, error) {
	callee, err := exec.evalExpression(e.Callee)
	if err != nil {
		return NewNil(), err
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		val, err := exec.evalExpression(arg)
		if err != nil {
			return NewNil(), err
		}
		args = append(args, val)
	}

	fn, ok := callee.Callable()
	if !ok {
		return NewNil(), exec.errorAt(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return NewNil(), exec.errorAt(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	exec.callSite = e.Paren.Pos
	val, err := fn.Call(exec, args)
	if err != nil {
		return NewNil(), exec.wrapError(err)
	}
	return val, nil
}
