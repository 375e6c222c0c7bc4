package lox

import "testing"

func TestPrintExpressionHandBuilt(t *testing.T) {
	expr := &BinaryExpr{
		Left: &UnaryExpr{
			Operator: Token{Type: tokenMinus, Lexeme: "-", Pos: Position{Line: 1}},
			Right:    &LiteralExpr{Value: NewNumber(123)},
		},
		Operator: Token{Type: tokenStar, Lexeme: "*", Pos: Position{Line: 1}},
		Right:    &GroupingExpr{Inner: &LiteralExpr{Value: NewNumber(45.67)}},
	}
	if got := PrintExpression(expr); got != "(* (- 123) (group 45.67))" {
		t.Fatalf("unexpected rendering %s", got)
	}
}

func TestPrintProgramStatements(t *testing.T) {
	stmts := mustParse(t, `var a;
var b = "x";
fun add(x, y) { return x + y; }
if (a) print 1; else { print 2; }
while (false) return;
`)
	want := `(var a)
(var b "x")
(fun add (x y) (return (+ x y)))
(if-else a (print 1) (block (print 2)))
(while false (return))
`
	if got := PrintProgram(stmts); got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestCodeFrame(t *testing.T) {
	frame := CodeFrame("var a = ;\nprint a;", Position{Line: 1, Column: 9})
	want := "  --> line 1, column 9\n 1 | var a = ;\n   |         ^"
	if frame != want {
		t.Fatalf("expected %q, got %q", want, frame)
	}
	if CodeFrame("print 1;", Position{Line: 3, Column: 1}) != "" {
		t.Fatalf("expected empty frame past the last line")
	}
	if CodeFrame("", Position{Line: 1, Column: 1}) != "" {
		t.Fatalf("expected empty frame without source")
	}
}

func TestFormatErrorIncludesFrames(t *testing.T) {
	source := "print 1;\nprint nil + 1;"
	in := NewInterpreter(Config{Stdout: &discardWriter{}})
	err := in.Run(t.Context(), source)
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	want := "Operands must be two numbers or two strings.\n[line 2]\n" +
		"  --> line 2, column 11\n 2 | print nil + 1;\n   |           ^\n" +
		"  at <script> (line 2)"
	if got := FormatError(source, err); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	_, err = in.Compile("print ;")
	if got := FormatError("print ;", err); got != "[line 1] Error at ';': Expect expression.\n  --> line 1, column 7\n 1 | print ;\n   |       ^" {
		t.Fatalf("unexpected compile rendering %q", got)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
