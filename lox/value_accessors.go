package lox

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

// Str returns the payload of a string value. String renders any value.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Function() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*Function)
}

func (v Value) Class() *Class {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*Class)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

// Callable returns the value as a Callable when it is a function or a class.
func (v Value) Callable() (Callable, bool) {
	switch v.kind {
	case KindFunction:
		return v.data.(*Function), true
	case KindClass:
		return v.data.(*Class), true
	default:
		return nil, false
	}
}
