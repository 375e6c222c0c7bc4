package lox

func NewNil() Value                    { return Value{kind: KindNil} }
func NewBool(b bool) Value             { return Value{kind: KindBool, data: b} }
func NewNumber(n float64) Value        { return Value{kind: KindNumber, data: n} }
func NewString(s string) Value         { return Value{kind: KindString, data: s} }
func NewFunction(fn *Function) Value   { return Value{kind: KindFunction, data: fn} }
func NewClass(cl *Class) Value         { return Value{kind: KindClass, data: cl} }
func NewInstance(inst *Instance) Value { return Value{kind: KindInstance, data: inst} }
