package lox

// Function is a user-defined function or method together with the
// environment it closes over.
type Function struct {
	Declaration   *FunctionStmt
	Closure       *Env
	IsInitializer bool
}

func newFunction(decl *FunctionStmt, closure *Env, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *Function) Name() string { return f.Declaration.Name.Lexeme }

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string { return "<fn " + f.Name() + ">" }

// Bind returns a copy of f whose closure has `this` bound to inst. The
// declaration is shared; f itself is not modified.
func (f *Function) Bind(inst *Instance) *Function {
	env := newEnv(f.Closure)
	env.Define("this", NewInstance(inst))
	return newFunction(f.Declaration, env, f.IsInitializer)
}

// Call runs the body in a fresh scope chained to the closure. An
// initializer always yields the bound instance.
func (f *Function) Call(exec *Execution, args []Value) (Value, error) {
	if err := exec.pushFrame(f.Name(), exec.callSite); err != nil {
		return NewNil(), err
	}
	defer exec.popFrame()

	env := newEnv(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	val, returned, err := exec.executeBlock(f.Declaration.Body, env)
	if err != nil {
		return NewNil(), err
	}
	if f.IsInitializer {
		this, _ := f.Closure.GetAt(0, "this")
		return this, nil
	}
	if returned {
		return val, nil
	}
	return NewNil(), nil
}
