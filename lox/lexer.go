package lox

import (
	"strconv"
	"unicode/utf8"
)

type lexer struct {
	input string
	diags *Diagnostics

	offset int
	width  int

	line   int
	column int

	ch rune
}

// Scan converts source into a token stream terminated by a single EOF token.
// Lexical errors are reported to diags and scanning continues past them.
func Scan(source string, diags *Diagnostics) []Token {
	l := newLexer(source, diags)
	var tokens []Token
	for {
		tok, ok := l.nextToken()
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens
		}
	}
}

func newLexer(input string, diags *Diagnostics) *lexer {
	if diags == nil {
		diags = &Diagnostics{}
	}
	l := &lexer{input: input, diags: diags, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		if l.ch != 0 {
			l.column++
		}
		l.ch = 0
		return
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.column++
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	for i := 0; ; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w := utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
}

func (l *lexer) atEnd() bool {
	return l.ch == 0 && l.offset >= len(l.input)
}

// nextToken returns the next token; ok is false when the rune under the
// cursor produced a diagnostic instead of a token.
func (l *lexer) nextToken() (Token, bool) {
	l.skipWhitespaceAndComments()

	pos := Position{Line: l.line, Column: l.column}
	if l.atEnd() {
		return Token{Type: tokenEOF, Pos: pos}, true
	}

	switch l.ch {
	case '(':
		return l.single(tokenLParen, pos), true
	case ')':
		return l.single(tokenRParen, pos), true
	case '{':
		return l.single(tokenLBrace, pos), true
	case '}':
		return l.single(tokenRBrace, pos), true
	case ',':
		return l.single(tokenComma, pos), true
	case '.':
		return l.single(tokenDot, pos), true
	case '-':
		return l.single(tokenMinus, pos), true
	case '+':
		return l.single(tokenPlus, pos), true
	case ';':
		return l.single(tokenSemicolon, pos), true
	case '*':
		return l.single(tokenStar, pos), true
	case '/':
		return l.single(tokenSlash, pos), true
	case '!':
		return l.either('=', tokenBangEQ, tokenBang, pos), true
	case '=':
		return l.either('=', tokenEQ, tokenAssign, pos), true
	case '<':
		return l.either('=', tokenLTE, tokenLT, pos), true
	case '>':
		return l.either('=', tokenGTE, tokenGT, pos), true
	case '"':
		return l.readString(pos)
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber(pos), true
	case isIdentifierStart(l.ch):
		return l.readIdentifier(pos), true
	default:
		l.diags.Report(pos, "Unexpected character.")
		l.readRune()
		return Token{}, false
	}
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) single(tt TokenType, pos Position) Token {
	tok := Token{Type: tt, Lexeme: string(l.ch), Pos: pos}
	l.readRune()
	return tok
}

func (l *lexer) either(next rune, matched, fallback TokenType, pos Position) Token {
	if l.peekRune() == next {
		first := l.ch
		l.readRune()
		tok := Token{Type: matched, Lexeme: string(first) + string(l.ch), Pos: pos}
		l.readRune()
		return tok
	}
	return l.single(fallback, pos)
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
		case '/':
			if l.peekRune() != '/' {
				return
			}
			for l.ch != 0 && l.ch != '\n' {
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier(pos Position) Token {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()

	tt, ok := keywords[literal]
	if !ok {
		tt = tokenIdent
	}
	tok := Token{Type: tt, Lexeme: literal, Pos: pos}
	switch tt {
	case tokenTrue:
		tok.Literal = NewBool(true)
	case tokenFalse:
		tok.Literal = NewBool(false)
	}
	return tok
}

func (l *lexer) readNumber(pos Position) Token {
	start := l.currentOffset()
	for isDigit(l.peekRune()) {
		l.readRune()
	}
	// A fractional part needs at least one digit after the dot.
	if l.peekRune() == '.' && isDigit(l.peekRuneN(1)) {
		l.readRune()
		for isDigit(l.peekRune()) {
			l.readRune()
		}
	}
	literal := l.input[start:l.offset]
	l.readRune()

	n, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		l.diags.Report(pos, "Invalid number.")
	}
	return Token{Type: tokenNumber, Lexeme: literal, Literal: NewNumber(n), Pos: pos}
}

func (l *lexer) readString(pos Position) (Token, bool) {
	start := l.offset
	for {
		l.readRune()
		switch {
		case l.atEnd():
			l.diags.errs = append(l.diags.errs, &CompileError{
				Pos:     Position{Line: l.line, Column: l.column},
				Message: "Unterminated string.",
				AtEnd:   true,
			})
			return Token{}, false
		case l.ch == '"':
			body := l.input[start:l.currentOffset()]
			l.readRune()
			return Token{
				Type:    tokenString,
				Lexeme:  `"` + body + `"`,
				Literal: NewString(body),
				Pos:     pos,
			}, true
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
