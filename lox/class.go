package lox

import "fmt"

// Class is a runtime class: its methods and an optional superclass. Both are
// fixed once the class statement has run.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// Instance is an object created by calling a Class. Fields are created on
// first assignment.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func newInstance(cl *Class) *Instance {
	return &Instance{Class: cl, Fields: make(map[string]Value)}
}

// FindMethod looks name up on the class and then along the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for cl := c; cl != nil; cl = cl.Superclass {
		if fn, ok := cl.Methods[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

func (c *Class) String() string { return c.Name }

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call allocates a new instance and runs init on it when the class or one
// of its ancestors defines one.
func (c *Class) Call(exec *Execution, args []Value) (Value, error) {
	inst := newInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(inst).Call(exec, args); err != nil {
			return NewNil(), err
		}
	}
	return NewInstance(inst), nil
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get returns a field, or a method bound to i when no field has that name.
func (i *Instance) Get(name Token) (Value, error) {
	if val, ok := i.Fields[name.Lexeme]; ok {
		return val, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return NewFunction(method.Bind(i)), nil
	}
	return NewNil(), newRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

func (i *Instance) Set(name Token, val Value) {
	i.Fields[name.Lexeme] = val
}
