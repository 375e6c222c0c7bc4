package lox

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the compiled form of one unit of source: its top-level
// statements plus the scope distances computed by the resolver.
type Program struct {
	Statements []Statement
	Locals     Locals
	source     string
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.source }

type LiteralExpr struct {
	Value    Value
	position Position
}

func (e *LiteralExpr) exprNode()     {}
func (e *LiteralExpr) Pos() Position { return e.position }

type GroupingExpr struct {
	Inner    Expression
	position Position
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator Token
	Right    Expression
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.Operator.Pos }

type BinaryExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.Operator.Pos }

// LogicalExpr is an `and`/`or` expression; the right operand is evaluated
// only when the left one does not decide the result.
type LogicalExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *LogicalExpr) exprNode()     {}
func (e *LogicalExpr) Pos() Position { return e.Operator.Pos }

type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.Name.Pos }

type AssignExpr struct {
	Name  Token
	Value Expression
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.Name.Pos }

type CallExpr struct {
	Callee Expression
	Paren  Token
	Args   []Expression
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.Paren.Pos }

type GetExpr struct {
	Object Expression
	Name   Token
}

func (e *GetExpr) exprNode()     {}
func (e *GetExpr) Pos() Position { return e.Name.Pos }

type SetExpr struct {
	Object Expression
	Name   Token
	Value  Expression
}

func (e *SetExpr) exprNode()     {}
func (e *SetExpr) Pos() Position { return e.Name.Pos }

type ThisExpr struct {
	Keyword Token
}

func (e *ThisExpr) exprNode()     {}
func (e *ThisExpr) Pos() Position { return e.Keyword.Pos }

type SuperExpr struct {
	Keyword Token
	Method  Token
}

func (e *SuperExpr) exprNode()     {}
func (e *SuperExpr) Pos() Position { return e.Keyword.Pos }
