package lox

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindClass
	KindInstance
)

// Value is the dynamic value manipulated by programs. The zero Value is nil.
type Value struct {
	kind ValueKind
	data any
}

// Callable is implemented by every value that can appear before a call's
// argument list.
type Callable interface {
	Arity() int
	Call(exec *Execution, args []Value) (Value, error)
	String() string
}
