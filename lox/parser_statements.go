package lox

func (p *parser) declaration() Statement {
	var (
		stmt Statement
		err  error
	)
	switch {
	case p.match(tokenClass):
		stmt, err = p.classDeclaration()
	case p.match(tokenFun):
		stmt, err = p.function("function")
	case p.match(tokenVar):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) classDeclaration() (Statement, error) {
	name, err := p.consume(tokenIdent, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *VariableExpr
	if p.match(tokenLT) {
		superName, err := p.consume(tokenIdent, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &VariableExpr{Name: superName}
	}

	if _, err := p.consume(tokenLBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*FunctionStmt
	for !p.check(tokenRBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(tokenRBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

func (p *parser) function(kind string) (*FunctionStmt, error) {
	name, err := p.consume(tokenIdent, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []Token
	if !p.check(tokenRParen) {
		for {
			if len(params) >= maxArgs {
				p.diags.ErrorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(tokenIdent, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(tokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(tokenRParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(tokenLBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *parser) varDeclaration() (Statement, error) {
	name, err := p.consume(tokenIdent, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expression
	if p.match(tokenAssign) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(tokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *parser) statement() (Statement, error) {
	switch {
	case p.match(tokenFor):
		return p.forStatement()
	case p.match(tokenIf):
		return p.ifStatement()
	case p.match(tokenPrint):
		return p.printStatement()
	case p.match(tokenReturn):
		return p.returnStatement()
	case p.match(tokenWhile):
		return p.whileStatement()
	case p.match(tokenLBrace):
		pos := p.previous().Pos
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts, position: pos}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *parser) forStatement() (Statement, error) {
	pos := p.previous().Pos
	if _, err := p.consume(tokenLParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer Statement
		err         error
	)
	switch {
	case p.match(tokenSemicolon):
	case p.match(tokenVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition Expression
	if !p.check(tokenSemicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(tokenSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expression
	if !p.check(tokenRParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(tokenRParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{
			Statements: []Statement{body, &ExprStmt{Expr: increment, position: increment.Pos()}},
			position:   body.Pos(),
		}
	}
	if condition == nil {
		condition = &LiteralExpr{Value: NewBool(true), position: pos}
	}
	body = &WhileStmt{Condition: condition, Body: body, position: pos}

	if initializer != nil {
		body = &BlockStmt{Statements: []Statement{initializer, body}, position: pos}
	}
	return body, nil
}

func (p *parser) ifStatement() (Statement, error) {
	pos := p.previous().Pos
	if _, err := p.consume(tokenLParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	consequent, err := p.statement()
	if err != nil {
		return nil, err
	}
	var alternate Statement
	if p.match(tokenElse) {
		if alternate, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate, position: pos}, nil
}

func (p *parser) printStatement() (Statement, error) {
	pos := p.previous().Pos
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: value, position: pos}, nil
}

func (p *parser) returnStatement() (Statement, error) {
	keyword := p.previous()
	var (
		value Expression
		err   error
	)
	if !p.check(tokenSemicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(tokenSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *parser) whileStatement() (Statement, error) {
	pos := p.previous().Pos
	if _, err := p.consume(tokenLParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}, nil
}

func (p *parser) block() ([]Statement, error) {
	statements := []Statement{}
	for !p.check(tokenRBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(tokenRBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *parser) expressionStatement() (Statement, error) {
	pos := p.peek().Pos
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, position: pos}, nil
}
