package lox

import (
	"strconv"
	"strings"
)

// PrintExpression renders expr in a fully parenthesized prefix form, for
// example `(* (- 123) (group 45.67))`.
func PrintExpression(expr Expression) string {
	var b strings.Builder
	writeExpression(&b, expr)
	return b.String()
}

// PrintProgram renders each statement on its own line in the same prefix
// form PrintExpression uses.
func PrintProgram(statements []Statement) string {
	var b strings.Builder
	for _, stmt := range statements {
		writeStatement(&b, stmt)
		b.WriteByte('\n')
	}
	return b.String()
}

func parenthesize(b *strings.Builder, name string, parts ...func()) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		part()
	}
	b.WriteByte(')')
}

func exprPart(b *strings.Builder, expr Expression) func() {
	return func() { writeExpression(b, expr) }
}

func stmtPart(b *strings.Builder, stmt Statement) func() {
	return func() { writeStatement(b, stmt) }
}

func textPart(b *strings.Builder, text string) func() {
	return func() { b.WriteString(text) }
}

func writeExpression(b *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case *LiteralExpr:
		if e.Value.Kind() == KindString {
			b.WriteString(strconv.Quote(e.Value.Str()))
			return
		}
		b.WriteString(e.Value.String())
	case *GroupingExpr:
		parenthesize(b, "group", exprPart(b, e.Inner))
	case *UnaryExpr:
		parenthesize(b, e.Operator.Lexeme, exprPart(b, e.Right))
	case *BinaryExpr:
		parenthesize(b, e.Operator.Lexeme, exprPart(b, e.Left), exprPart(b, e.Right))
	case *LogicalExpr:
		parenthesize(b, e.Operator.Lexeme, exprPart(b, e.Left), exprPart(b, e.Right))
	case *VariableExpr:
		b.WriteString(e.Name.Lexeme)
	case *AssignExpr:
		parenthesize(b, "=", textPart(b, e.Name.Lexeme), exprPart(b, e.Value))
	case *CallExpr:
		parts := []func(){exprPart(b, e.Callee)}
		for _, arg := range e.Args {
			parts = append(parts, exprPart(b, arg))
		}
		parenthesize(b, "call", parts...)
	case *GetExpr:
		parenthesize(b, ".", exprPart(b, e.Object), textPart(b, e.Name.Lexeme))
	case *SetExpr:
		parenthesize(b, "=", exprPart(b, e.Object), textPart(b, e.Name.Lexeme), exprPart(b, e.Value))
	case *ThisExpr:
		b.WriteString("this")
	case *SuperExpr:
		parenthesize(b, "super", textPart(b, e.Method.Lexeme))
	default:
		b.WriteString("<?>")
	}
}

func writeStatement(b *strings.Builder, stmt Statement) {
	switch s := stmt.(type) {
	case *ExprStmt:
		parenthesize(b, ";", exprPart(b, s.Expr))
	case *PrintStmt:
		parenthesize(b, "print", exprPart(b, s.Expr))
	case *VarStmt:
		if s.Initializer == nil {
			parenthesize(b, "var", textPart(b, s.Name.Lexeme))
			return
		}
		parenthesize(b, "var", textPart(b, s.Name.Lexeme), exprPart(b, s.Initializer))
	case *BlockStmt:
		parts := make([]func(), 0, len(s.Statements))
		for _, inner := range s.Statements {
			parts = append(parts, stmtPart(b, inner))
		}
		parenthesize(b, "block", parts...)
	case *IfStmt:
		if s.Alternate == nil {
			parenthesize(b, "if", exprPart(b, s.Condition), stmtPart(b, s.Consequent))
			return
		}
		parenthesize(b, "if-else", exprPart(b, s.Condition), stmtPart(b, s.Consequent), stmtPart(b, s.Alternate))
	case *WhileStmt:
		parenthesize(b, "while", exprPart(b, s.Condition), stmtPart(b, s.Body))
	case *FunctionStmt:
		writeFunction(b, "fun", s)
	case *ReturnStmt:
		if s.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", exprPart(b, s.Value))
	case *ClassStmt:
		parts := []func(){textPart(b, s.Name.Lexeme)}
		if s.Superclass != nil {
			parts = append(parts, textPart(b, "< "+s.Superclass.Name.Lexeme))
		}
		for _, method := range s.Methods {
			parts = append(parts, func() { writeFunction(b, "method", method) })
		}
		parenthesize(b, "class", parts...)
	default:
		b.WriteString("<?>")
	}
}

func writeFunction(b *strings.Builder, kind string, fn *FunctionStmt) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Lexeme
	}
	parts := []func(){
		textPart(b, fn.Name.Lexeme),
		textPart(b, "("+strings.Join(params, " ")+")"),
	}
	for _, stmt := range fn.Body {
		parts = append(parts, stmtPart(b, stmt))
	}
	parenthesize(b, kind, parts...)
}
