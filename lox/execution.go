package lox

import "fmt"

// executeStatements runs stmts in order. The returned flag is set when a
// return statement fired; val then holds the returned value.
func (exec *Execution) executeStatements(stmts []Statement) (Value, bool, error) {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		val, returned, err := exec.executeStatement(stmt)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNil(), false, nil
}

// executeBlock runs stmts with env as the current scope and restores the
// previous scope however the block exits.
func (exec *Execution) executeBlock(stmts []Statement, env *Env) (Value, bool, error) {
	previous := exec.env
	exec.env = env
	defer func() { exec.env = previous }()
	return exec.executeStatements(stmts)
}

func (exec *Execution) executeStatement(stmt Statement) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := exec.evalExpression(s.Expr)
		return NewNil(), false, err
	case *PrintStmt:
		val, err := exec.evalExpression(s.Expr)
		if err != nil {
			return NewNil(), false, err
		}
		if _, err := fmt.Fprintln(exec.interp.out, val.String()); err != nil {
			return NewNil(), false, fmt.Errorf("print: %w", err)
		}
		return NewNil(), false, nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			if val, err = exec.evalExpression(s.Initializer); err != nil {
				return NewNil(), false, err
			}
		}
		exec.env.Define(s.Name.Lexeme, val)
		return NewNil(), false, nil
	case *BlockStmt:
		return exec.executeBlock(s.Statements, newEnv(exec.env))
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return exec.executeStatement(s.Consequent)
		}
		if s.Alternate != nil {
			return exec.executeStatement(s.Alternate)
		}
		return NewNil(), false, nil
	case *WhileStmt:
		return exec.executeWhile(s)
	case *FunctionStmt:
		exec.env.Define(s.Name.Lexeme, NewFunction(newFunction(s, exec.env, false)))
		return NewNil(), false, nil
	case *ReturnStmt:
		val := NewNil()
		if s.Value != nil {
			var err error
			if val, err = exec.evalExpression(s.Value); err != nil {
				return NewNil(), false, err
			}
		}
		return val, true, nil
	case *ClassStmt:
		return NewNil(), false, exec.executeClass(s)
	default:
		return NewNil(), false, fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (exec *Execution) executeWhile(s *WhileStmt) (Value, bool, error) {
	for {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		cond, err := exec.evalExpression(s.Condition)
		if err != nil {
			return NewNil(), false, err
		}
		if !cond.Truthy() {
			return NewNil(), false, nil
		}
		val, returned, err := exec.executeStatement(s.Body)
		if err != nil || returned {
			return val, returned, err
		}
	}
}

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return exec.evalExpression(e.Inner)
	case *UnaryExpr:
		return exec.evalUnaryExpr(e)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e)
	case *LogicalExpr:
		return exec.evalLogicalExpr(e)
	case *VariableExpr:
		return exec.lookUpVariable(e.Name, e)
	case *AssignExpr:
		return exec.evalAssignExpr(e)
	case *CallExpr:
		return exec.evalCallExpr(e)
	case *GetExpr:
		return exec.evalGetExpr(e)
	case *SetExpr:
		return exec.evalSetExpr(e)
	case *ThisExpr:
		return exec.lookUpVariable(e.Keyword, e)
	case *SuperExpr:
		return exec.evalSuperExpr(e)
	default:
		return NewNil(), fmt.Errorf("unsupported expression %T", expr)
	}
}

// lookUpVariable reads a resolved local at its recorded distance and falls
// back to the globals for anything the resolver left unrecorded.
func (exec *Execution) lookUpVariable(name Token, expr Expression) (Value, error) {
	if distance, ok := exec.interp.locals[expr]; ok {
		if val, found := exec.env.GetAt(distance, name.Lexeme); found {
			return val, nil
		}
		return NewNil(), exec.errorAt(name, "Undefined variable '%s'.", name.Lexeme)
	}
	if val, ok := exec.interp.globals.Get(name.Lexeme); ok {
		return val, nil
	}
	return NewNil(), exec.errorAt(name, "Undefined variable '%s'.", name.Lexeme)
}

func (exec *Execution) evalAssignExpr(e *AssignExpr) (Value, error) {
	val, err := exec.evalExpression(e.Value)
	if err != nil {
		return NewNil(), err
	}
	if distance, ok := exec.interp.locals[e]; ok {
		if exec.env.AssignAt(distance, e.Name.Lexeme, val) {
			return val, nil
		}
	} else if exec.interp.globals.Assign(e.Name.Lexeme, val) {
		return val, nil
	}
	return NewNil(), exec.errorAt(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
}
