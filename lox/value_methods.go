package lox

import (
	"fmt"
	"math"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders v the way print writes it.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindFunction:
		return v.data.(*Function).String()
	case KindClass:
		return v.data.(*Class).String()
	case KindInstance:
		return v.data.(*Instance).String()
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// formatNumber drops the fractional part of integral numbers so that 3.0
// prints as 3.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "nan"
	case n == math.Trunc(n) && math.Abs(n) < 1e21:
		return strconv.FormatFloat(n, 'f', 0, 64)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// Truthy reports whether v counts as true in a condition: only nil and
// false are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal compares kind first, then payload. Functions, classes and instances
// compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.Number() == other.Number()
	case KindString:
		return v.Str() == other.Str()
	case KindFunction:
		return v.Function() == other.Function()
	case KindClass:
		return v.Class() == other.Class()
	case KindInstance:
		return v.Instance() == other.Instance()
	default:
		return false
	}
}
