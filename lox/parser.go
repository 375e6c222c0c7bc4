package lox

const maxArgs = 255

type parser struct {
	tokens  []Token
	current int
	diags   *Diagnostics
}

// Parse builds the top-level statements of a program. Syntax errors are
// reported to diags; the parser then skips to the next statement boundary
// and keeps going, so a single pass can surface several errors.
func Parse(tokens []Token, diags *Diagnostics) []Statement {
	p := newParser(tokens, diags)
	return p.parseProgram()
}

func newParser(tokens []Token, diags *Diagnostics) *parser {
	if diags == nil {
		diags = &Diagnostics{}
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != tokenEOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, Token{Type: tokenEOF, Pos: pos})
	}
	return &parser{tokens: tokens, diags: diags}
}

func (p *parser) parseProgram() []Statement {
	statements := []Statement{}
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == tokenEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) consume(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

// synchronize discards tokens until the start of the next statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == tokenSemicolon {
			return
		}
		switch p.peek().Type {
		case tokenClass, tokenFun, tokenVar, tokenFor, tokenIf, tokenWhile, tokenPrint, tokenReturn:
			return
		}
		p.advance()
	}
}
