package lox

func (exec *Execution) evalUnaryExpr(e *UnaryExpr) (Value, error) {
	right, err := exec.evalExpression(e.Right)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator.Type {
	case tokenMinus:
		if right.Kind() != KindNumber {
			return NewNil(), exec.errorAt(e.Operator, "Operand must be a number.")
		}
		return NewNumber(-right.Number()), nil
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), exec.errorAt(e.Operator, "Unknown unary operator '%s'.", e.Operator.Lexeme)
	}
}

func (exec *Execution) evalBinaryExpr(e *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(e.Left)
	if err != nil {
		return NewNil(), err
	}
	right, err := exec.evalExpression(e.Right)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator.Type {
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenBangEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenPlus:
		switch {
		case left.Kind() == KindNumber && right.Kind() == KindNumber:
			return NewNumber(left.Number() + right.Number()), nil
		case left.Kind() == KindString && right.Kind() == KindString:
			return NewString(left.Str() + right.Str()), nil
		}
		return NewNil(), exec.errorAt(e.Operator, "Operands must be two numbers or two strings.")
	}

	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), exec.errorAt(e.Operator, "Operands must be numbers.")
	}
	l, r := left.Number(), right.Number()
	switch e.Operator.Type {
	case tokenMinus:
		return NewNumber(l - r), nil
	case tokenStar:
		return NewNumber(l * r), nil
	case tokenSlash:
		return NewNumber(l / r), nil
	case tokenGT:
		return NewBool(l > r), nil
	case tokenGTE:
		return NewBool(l >= r), nil
	case tokenLT:
		return NewBool(l < r), nil
	case tokenLTE:
		return NewBool(l <= r), nil
	default:
		return NewNil(), exec.errorAt(e.Operator, "Unknown binary operator '%s'.", e.Operator.Lexeme)
	}
}

// evalLogicalExpr returns the left operand itself when it decides the
// result, without evaluating the right one.
func (exec *Execution) evalLogicalExpr(e *LogicalExpr) (Value, error) {
	left, err := exec.evalExpression(e.Left)
	if err != nil {
		return NewNil(), err
	}
	if e.Operator.Type == tokenOr {
		if left.Truthy() {
			return left, nil
		}
	} else if !left.Truthy() {
		return left, nil
	}
	return exec.evalExpression(e.Right)
}
