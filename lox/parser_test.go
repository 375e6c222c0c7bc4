package lox

import (
	"strconv"
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) ([]Statement, *Diagnostics) {
	t.Helper()
	diags := &Diagnostics{}
	stmts := Parse(Scan(source, diags), diags)
	return stmts, diags
}

func mustParse(t *testing.T, source string) []Statement {
	t.Helper()
	stmts, diags := parseSource(t, source)
	if diags.HasErrors() {
		t.Fatalf("parse failed: %v", diags.Err())
	}
	return stmts
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"-123 * (45.67);", "(* (- 123) (group 45.67))"},
		{"1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"a = b = 1;", "(= a (= b 1))"},
		{"!true == false;", "(== (! true) false)"},
		{"1 < 2 == 3 >= 4;", "(== (< 1 2) (>= 3 4))"},
		{"a or b and c;", "(or a (and b c))"},
		{"f(1)(2).x.y = 3;", "(= (. (call (call f 1) 2) x) y 3)"},
		{`"s" + nil;`, `(+ "s" nil)`},
	}

	for _, tc := range cases {
		stmts := mustParse(t, tc.source)
		if len(stmts) != 1 {
			t.Fatalf("%s: expected one statement, got %d", tc.source, len(stmts))
		}
		stmt, ok := stmts[0].(*ExprStmt)
		if !ok {
			t.Fatalf("%s: expected expression statement, got %T", tc.source, stmts[0])
		}
		if got := PrintExpression(stmt.Expr); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.source, tc.want, got)
		}
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	want := "(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))\n"
	if got := PrintProgram(stmts); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	stmts = mustParse(t, "for (;;) print 1;")
	if got := PrintProgram(stmts); got != "(while true (print 1))\n" {
		t.Fatalf("unexpected desugaring %s", got)
	}
}

func TestParseClassDeclaration(t *testing.T) {
	stmts := mustParse(t, "class B < A { init(x) { this.x = x; } get() { return super.get(); } }")
	class, ok := stmts[0].(*ClassStmt)
	if !ok {
		t.Fatalf("expected class statement, got %T", stmts[0])
	}
	if class.Name.Lexeme != "B" || class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("unexpected class header %#v", class)
	}
	if len(class.Methods) != 2 || class.Methods[0].Name.Lexeme != "init" || len(class.Methods[0].Params) != 1 {
		t.Fatalf("unexpected methods %#v", class.Methods)
	}
	want := "(class B < A (method init (x) (; (= this x x))) (method get () (return (call (super get)))))\n"
	if got := PrintProgram(stmts); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"print 1", "[line 1] Error at end: Expect ';' after value."},
		{"1 = 2;", "[line 1] Error at '=': Invalid assignment target."},
		{"print ;", "[line 1] Error at ';': Expect expression."},
		{"var 1 = 2;", "[line 1] Error at '1': Expect variable name."},
		{"fun f( {}", "[line 1] Error at '{': Expect parameter name."},
		{"class { }", "[line 1] Error at '{': Expect class name."},
		{"x.1;", "[line 1] Error at '1': Expect property name after '.'."},
		{"super;", "[line 1] Error at ';': Expect '.' after 'super'."},
		{"{ print 1;", "[line 1] Error at end: Expect '}' after block."},
	}

	for _, tc := range cases {
		_, diags := parseSource(t, tc.source)
		errs := diags.Errors()
		if len(errs) == 0 {
			t.Fatalf("%s: expected a parse error", tc.source)
		}
		if errs[0].Error() != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.source, tc.want, errs[0].Error())
		}
	}
}

func TestParseSynchronizesAfterError(t *testing.T) {
	stmts, diags := parseSource(t, "var = 1;\nprint 2;\nprint ;\nprint 3;")
	if len(diags.Errors()) != 2 {
		t.Fatalf("expected two errors, got %v", diags.Err())
	}
	if diags.Errors()[1].Pos.Line != 3 {
		t.Fatalf("expected second error on line 3, got %d", diags.Errors()[1].Pos.Line)
	}
	if got := PrintProgram(stmts); got != "(print 2)\n(print 3)\n" {
		t.Fatalf("unexpected recovered program %q", got)
	}
}

func TestParseInvalidAssignmentDoesNotSynchronize(t *testing.T) {
	stmts, diags := parseSource(t, "a + b = c; print 1;")
	if len(diags.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", diags.Err())
	}
	if len(stmts) != 2 {
		t.Fatalf("expected both statements to be kept, got %d", len(stmts))
	}
}

func TestParseArgumentLimit(t *testing.T) {
	args := strings.TrimSuffix(strings.Repeat("0, ", 256), ", ")
	_, diags := parseSource(t, "f("+args+");")
	errs := diags.Errors()
	if len(errs) != 1 || errs[0].Message != "Can't have more than 255 arguments." {
		t.Fatalf("expected argument limit error, got %v", diags.Err())
	}

	params := make([]string, 256)
	for i := range params {
		params[i] = "p" + strconv.Itoa(i)
	}
	_, diags = parseSource(t, "fun f("+strings.Join(params, ", ")+") {}")
	errs = diags.Errors()
	if len(errs) != 1 || errs[0].Message != "Can't have more than 255 parameters." {
		t.Fatalf("expected parameter limit error, got %v", diags.Err())
	}
}

func TestParseAppendsMissingEOF(t *testing.T) {
	stmts := Parse([]Token{
		{Type: tokenPrint, Lexeme: "print", Pos: Position{Line: 1, Column: 1}},
		{Type: tokenNumber, Lexeme: "1", Literal: NewNumber(1), Pos: Position{Line: 1, Column: 7}},
		{Type: tokenSemicolon, Lexeme: ";", Pos: Position{Line: 1, Column: 8}},
	}, nil)
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
}
