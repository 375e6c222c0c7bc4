package lox

func (exec *Execution) evalGetExpr(e *GetExpr) (Value, error) {
	obj, err := exec.evalExpression(e.Object)
	if err != nil {
		return NewNil(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNil(), exec.errorAt(e.Name, "Only instances have properties.")
	}
	val, err := inst.Get(e.Name)
	if err != nil {
		return NewNil(), exec.wrapError(err)
	}
	return val, nil
}

func (exec *Execution) evalSetExpr(e *SetExpr) (Value, error) {
	obj, err := exec.evalExpression(e.Object)
	if err != nil {
		return NewNil(), err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNil(), exec.errorAt(e.Name, "Only instances have fields.")
	}
	val, err := exec.evalExpression(e.Value)
	if err != nil {
		return NewNil(), err
	}
	inst.Set(e.Name, val)
	return val, nil
}

// evalSuperExpr finds the superclass at the resolved distance and binds the
// method to the instance held one scope closer.
func (exec *Execution) evalSuperExpr(e *SuperExpr) (Value, error) {
	distance, ok := exec.interp.locals[e]
	if !ok {
		return NewNil(), exec.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
	}
	superVal, _ := exec.env.GetAt(distance, "super")
	superclass := superVal.Class()
	if superclass == nil {
		return NewNil(), exec.errorAt(e.Keyword, "Superclass must be a class.")
	}
	thisVal, _ := exec.env.GetAt(distance-1, "this")
	inst := thisVal.Instance()
	if inst == nil {
		return NewNil(), exec.errorAt(e.Keyword, "Can't use 'super' outside of a method.")
	}

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return NewNil(), exec.errorAt(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return NewFunction(method.Bind(inst)), nil
}

func (exec *Execution) executeClass(s *ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		val, err := exec.evalExpression(s.Superclass)
		if err != nil {
			return err
		}
		if superclass = val.Class(); superclass == nil {
			return exec.errorAt(s.Superclass.Name, "Superclass must be a class.")
		}
	}

	exec.env.Define(s.Name.Lexeme, NewNil())

	closure := exec.env
	if superclass != nil {
		closure = newEnv(exec.env)
		closure.Define("super", NewClass(superclass))
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = newFunction(method, closure, method.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	exec.env.Assign(s.Name.Lexeme, NewClass(class))
	return nil
}
