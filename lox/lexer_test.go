package lox

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func assertTokenTypes(t *testing.T, got []Token, want ...TokenType) {
	t.Helper()
	types := tokenTypes(got)
	if len(types) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(types), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s (all: %v)", i, want[i], types[i], types)
		}
	}
}

func TestScanDeclaration(t *testing.T) {
	diags := &Diagnostics{}
	tokens := Scan("var x = 1.5; // trailing comment\n\"hi\"", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	assertTokenTypes(t, tokens, tokenVar, tokenIdent, tokenAssign, tokenNumber, tokenSemicolon, tokenString, tokenEOF)

	if tokens[1].Lexeme != "x" {
		t.Fatalf("expected identifier x, got %q", tokens[1].Lexeme)
	}
	if tokens[3].Literal.Number() != 1.5 {
		t.Fatalf("expected literal 1.5, got %v", tokens[3].Literal)
	}
	if tokens[5].Literal.Str() != "hi" || tokens[5].Lexeme != `"hi"` {
		t.Fatalf("unexpected string token %#v", tokens[5])
	}
	if tokens[5].Line() != 2 {
		t.Fatalf("expected string on line 2, got %d", tokens[5].Line())
	}
}

func TestScanOperatorsAreGreedy(t *testing.T) {
	tokens := Scan("!= == <= >= ! = < > / * - + , . ( ) { }", nil)
	assertTokenTypes(t, tokens,
		tokenBangEQ, tokenEQ, tokenLTE, tokenGTE, tokenBang, tokenAssign, tokenLT, tokenGT,
		tokenSlash, tokenStar, tokenMinus, tokenPlus, tokenComma, tokenDot,
		tokenLParen, tokenRParen, tokenLBrace, tokenRBrace, tokenEOF)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens := Scan("and class else false for fun if nil or print return super this true var while orchid _x1", nil)
	assertTokenTypes(t, tokens,
		tokenAnd, tokenClass, tokenElse, tokenFalse, tokenFor, tokenFun, tokenIf, tokenNil, tokenOr,
		tokenPrint, tokenReturn, tokenSuper, tokenThis, tokenTrue, tokenVar, tokenWhile,
		tokenIdent, tokenIdent, tokenEOF)
	if !tokens[13].Literal.Bool() {
		t.Fatalf("expected true literal on true keyword")
	}
	if len(Keywords()) != 16 || Keywords()[0] != "and" {
		t.Fatalf("unexpected keyword table %v", Keywords())
	}
}

func TestScanTrailingDotIsSeparateToken(t *testing.T) {
	tokens := Scan("123.", nil)
	assertTokenTypes(t, tokens, tokenNumber, tokenDot, tokenEOF)
	if tokens[0].Lexeme != "123" || tokens[0].Literal.Number() != 123 {
		t.Fatalf("unexpected number token %#v", tokens[0])
	}

	tokens = Scan("123.45.x", nil)
	assertTokenTypes(t, tokens, tokenNumber, tokenDot, tokenIdent, tokenEOF)
	if tokens[0].Literal.Number() != 123.45 {
		t.Fatalf("expected 123.45, got %v", tokens[0].Literal)
	}
}

func TestScanMultiLineString(t *testing.T) {
	tokens := Scan("\"a\nb\" x", nil)
	assertTokenTypes(t, tokens, tokenString, tokenIdent, tokenEOF)
	if tokens[0].Literal.Str() != "a\nb" {
		t.Fatalf("unexpected string literal %q", tokens[0].Literal.Str())
	}
	if tokens[0].Line() != 1 || tokens[1].Line() != 2 {
		t.Fatalf("unexpected lines %d and %d", tokens[0].Line(), tokens[1].Line())
	}
}

func TestScanUnterminatedString(t *testing.T) {
	diags := &Diagnostics{}
	tokens := Scan(`print "abc`, diags)
	assertTokenTypes(t, tokens, tokenPrint, tokenEOF)

	errs := diags.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one diagnostic, got %v", errs)
	}
	if errs[0].Error() != "[line 1] Error: Unterminated string." {
		t.Fatalf("unexpected diagnostic %q", errs[0].Error())
	}
	if !errs[0].AtEnd {
		t.Fatalf("expected unterminated string to be flagged at end")
	}
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	diags := &Diagnostics{}
	tokens := Scan("@ 1 #", diags)
	assertTokenTypes(t, tokens, tokenNumber, tokenEOF)

	errs := diags.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected two diagnostics, got %v", errs)
	}
	if errs[0].Error() != "[line 1] Error: Unexpected character." {
		t.Fatalf("unexpected diagnostic %q", errs[0].Error())
	}
	if errs[1].Pos.Column != 5 {
		t.Fatalf("expected second error at column 5, got %d", errs[1].Pos.Column)
	}
}

func TestScanEmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens := Scan("  // nothing here", nil)
	assertTokenTypes(t, tokens, tokenEOF)
	if !tokens[0].IsEOF() {
		t.Fatalf("expected EOF token")
	}
}
