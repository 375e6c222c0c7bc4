package lox

// Locals maps a variable-like expression to the number of scopes between
// its use and its declaration. Expressions missing from the table are
// globals.
type Locals map[Expression]int

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionInitializer
	functionMethod
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

type resolver struct {
	diags  *Diagnostics
	locals Locals
	// scopes holds one map per enclosing block; a name maps to false while
	// its initializer is being resolved and to true once it is defined.
	scopes          []map[string]bool
	currentFunction functionKind
	currentClass    classKind
}

// Resolve computes the scope distance of every local variable reference in
// statements and reports misplaced return/this/super and similar errors to
// diags. It never evaluates anything.
func Resolve(statements []Statement, diags *Diagnostics) Locals {
	if diags == nil {
		diags = &Diagnostics{}
	}
	r := &resolver{diags: diags, locals: make(Locals)}
	r.resolveStatements(statements)
	return r.locals
}

func (r *resolver) resolveStatements(statements []Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) resolveStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionPlain)
	case *ClassStmt:
		r.resolveClass(s)
	case *ExprStmt:
		r.resolveExpression(s.Expr)
	case *PrintStmt:
		r.resolveExpression(s.Expr)
	case *IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Consequent)
		if s.Alternate != nil {
			r.resolveStatement(s.Alternate)
		}
	case *WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ReturnStmt:
		if r.currentFunction == functionNone {
			r.diags.ErrorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.diags.ErrorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	}
}

func (r *resolver) resolveClass(s *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.diags.ErrorAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

func (r *resolver) resolveFunction(fn *FunctionStmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *resolver) resolveExpression(expr Expression) {
	switch e := expr.(type) {
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.peekScope()[e.Name.Lexeme]; declared && !defined {
				r.diags.ErrorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *UnaryExpr:
		r.resolveExpression(e.Right)
	case *GroupingExpr:
		r.resolveExpression(e.Inner)
	case *CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpression(arg)
		}
	case *GetExpr:
		r.resolveExpression(e.Object)
	case *SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ThisExpr:
		if r.currentClass == classNone {
			r.diags.ErrorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *SuperExpr:
		switch r.currentClass {
		case classNone:
			r.diags.ErrorAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classPlain:
			r.diags.ErrorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")
	case *LiteralExpr:
	}
}

// resolveLocal records the distance to the innermost scope declaring name.
// Names found in no scope are left for the global environment.
func (r *resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, exists := scope[name.Lexeme]; exists {
		r.diags.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}
