package lox

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

type PrintStmt struct {
	Expr     Expression
	position Position
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.position }

// VarStmt declares Name in the current scope. Initializer may be nil.
type VarStmt struct {
	Name        Token
	Initializer Expression
}

func (s *VarStmt) stmtNode()     {}
func (s *VarStmt) Pos() Position { return s.Name.Pos }

type BlockStmt struct {
	Statements []Statement
	position   Position
}

func (s *BlockStmt) stmtNode()     {}
func (s *BlockStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent Statement
	Alternate  Statement
	position   Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      Statement
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Statement
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.Name.Pos }

// ReturnStmt carries a nil Value for a bare `return;`.
type ReturnStmt struct {
	Keyword Token
	Value   Expression
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.Keyword.Pos }

type ClassStmt struct {
	Name       Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func (s *ClassStmt) stmtNode()     {}
func (s *ClassStmt) Pos() Position { return s.Name.Pos }
