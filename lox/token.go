package lox

import "sort"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	tokenIdent  TokenType = "IDENTIFIER"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenComma     TokenType = ","
	tokenDot       TokenType = "."
	tokenMinus     TokenType = "-"
	tokenPlus      TokenType = "+"
	tokenSemicolon TokenType = ";"
	tokenSlash     TokenType = "/"
	tokenStar      TokenType = "*"

	tokenBang   TokenType = "!"
	tokenBangEQ TokenType = "!="
	tokenAssign TokenType = "="
	tokenEQ     TokenType = "=="
	tokenGT     TokenType = ">"
	tokenGTE    TokenType = ">="
	tokenLT     TokenType = "<"
	tokenLTE    TokenType = "<="

	tokenAnd    TokenType = "AND"
	tokenClass  TokenType = "CLASS"
	tokenElse   TokenType = "ELSE"
	tokenFalse  TokenType = "FALSE"
	tokenFun    TokenType = "FUN"
	tokenFor    TokenType = "FOR"
	tokenIf     TokenType = "IF"
	tokenNil    TokenType = "NIL"
	tokenOr     TokenType = "OR"
	tokenPrint  TokenType = "PRINT"
	tokenReturn TokenType = "RETURN"
	tokenSuper  TokenType = "SUPER"
	tokenThis   TokenType = "THIS"
	tokenTrue   TokenType = "TRUE"
	tokenVar    TokenType = "VAR"
	tokenWhile  TokenType = "WHILE"
)

var keywords = map[string]TokenType{
	"and":    tokenAnd,
	"class":  tokenClass,
	"else":   tokenElse,
	"false":  tokenFalse,
	"for":    tokenFor,
	"fun":    tokenFun,
	"if":     tokenIf,
	"nil":    tokenNil,
	"or":     tokenOr,
	"print":  tokenPrint,
	"return": tokenReturn,
	"super":  tokenSuper,
	"this":   tokenThis,
	"true":   tokenTrue,
	"var":    tokenVar,
	"while":  tokenWhile,
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for word := range keywords {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Value
	Pos     Position
}

// Position identifies a line and rune column in the source.
type Position struct {
	Line   int
	Column int
}

func (t Token) Line() int { return t.Pos.Line }

// IsEOF reports whether t terminates the token stream.
func (t Token) IsEOF() bool { return t.Type == tokenEOF }

func (t Token) String() string {
	if t.Type == tokenEOF {
		return "EOF"
	}
	if t.Literal.IsNil() {
		return string(t.Type) + " " + t.Lexeme
	}
	return string(t.Type) + " " + t.Lexeme + " " + t.Literal.String()
}
