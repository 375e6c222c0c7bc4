package lox

func (p *parser) expression() (Expression, error) {
	return p.assignment()
}

// assignment parses the left side as an ordinary expression and only then
// checks that it is something that can be assigned to.
func (p *parser) assignment() (Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(tokenAssign) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{Name: target.Name, Value: value}, nil
		case *GetExpr:
			return &SetExpr{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		p.diags.ErrorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *parser) or() (Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) and() (Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// binaryLevel parses one left-associative precedence level whose operands
// are produced by next.
func (p *parser) binaryLevel(next func() (Expression, error), operators ...TokenType) (Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) equality() (Expression, error) {
	return p.binaryLevel(p.comparison, tokenBangEQ, tokenEQ)
}

func (p *parser) comparison() (Expression, error) {
	return p.binaryLevel(p.term, tokenGT, tokenGTE, tokenLT, tokenLTE)
}

func (p *parser) term() (Expression, error) {
	return p.binaryLevel(p.factor, tokenMinus, tokenPlus)
}

func (p *parser) factor() (Expression, error) {
	return p.binaryLevel(p.unary, tokenSlash, tokenStar)
}

func (p *parser) unary() (Expression, error) {
	if p.match(tokenBang, tokenMinus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *parser) call() (Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(tokenLParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(tokenDot):
			name, err := p.consume(tokenIdent, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &GetExpr{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *parser) finishCall(callee Expression) (Expression, error) {
	var args []Expression
	if !p.check(tokenRParen) {
		for {
			if len(args) >= maxArgs {
				p.diags.ErrorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(tokenComma) {
				break
			}
		}
	}

	paren, err := p.consume(tokenRParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *parser) primary() (Expression, error) {
	switch {
	case p.match(tokenFalse, tokenTrue, tokenNil, tokenNumber, tokenString):
		tok := p.previous()
		return &LiteralExpr{Value: tok.Literal, position: tok.Pos}, nil
	case p.match(tokenSuper):
		keyword := p.previous()
		if _, err := p.consume(tokenDot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(tokenIdent, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &SuperExpr{Keyword: keyword, Method: method}, nil
	case p.match(tokenThis):
		return &ThisExpr{Keyword: p.previous()}, nil
	case p.match(tokenIdent):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(tokenLParen):
		pos := p.previous().Pos
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(tokenRParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: expr, position: pos}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
