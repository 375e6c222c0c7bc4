package lox

import "sort"

// Env is one scope in the chain that runs from the innermost block or call
// out to the globals. Closures hold on to the Env active where they were
// defined, so an Env may be shared by many frames.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Define binds name in this scope, replacing any existing binding.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get looks name up in this scope and then outward through the parents.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Assign updates the nearest existing binding of name. It reports false
// when no scope in the chain declares it.
func (e *Env) Assign(name string, val Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return true
		}
	}
	return false
}

// GetAt reads name from the scope exactly distance parents up.
func (e *Env) GetAt(distance int, name string) (Value, bool) {
	env := e.ancestor(distance)
	if env == nil {
		return Value{}, false
	}
	val, ok := env.values[name]
	return val, ok
}

// AssignAt writes name into the scope exactly distance parents up.
func (e *Env) AssignAt(distance int, name string, val Value) bool {
	env := e.ancestor(distance)
	if env == nil {
		return false
	}
	env.values[name] = val
	return true
}

func (e *Env) ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// Names returns the names bound directly in this scope, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
