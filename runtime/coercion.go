package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ObjectToNumberHook lets builtins install ToPrimitive-based object-to-number
// coercion (valueOf/toString, per SPEC_FULL's ToPrimitive abstract operation)
// into ToNumber, the same package-level-hook pattern HostGet/HostSet use to
// reach Context-owned behavior without runtime importing builtins (see
// hostbridge/registry.go and ActiveJobQueue in jobqueue.go). Left nil, a bare
// interpreter.New() without builtins.RegisterAll falls back to NaN.
var ObjectToNumberHook func(*Value) float64

// ToNumber implements the ECMAScript ToNumber abstract operation.
func (v *Value) ToNumber() float64 {
	switch v.Type {
	case TypeUndefined:
		return math.NaN()
	case TypeNull:
		return 0
	case TypeBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case TypeNumber:
		return v.Number
	case TypeString:
		return StringToNumber(v.Str)
	case TypeObject:
		if ObjectToNumberHook != nil {
			return ObjectToNumberHook(v)
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// StringToNumber parses a StringToNumber input per ECMA-262, recognizing the
// Infinity literals and the 0x/0o/0b radix prefixes ParseFloat alone doesn't.
// Exported so builtins' ToNumber (which needs the object/valueOf path
// StringToNumber doesn't cover) can share the string leg instead of
// duplicating it.
func StringToNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if s == "Infinity" || s == "+Infinity" {
		return math.Inf(1)
	}
	if s == "-Infinity" {
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X' || s[1] == 'o' || s[1] == 'O' || s[1] == 'b' || s[1] == 'B') {
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// StrictEquals implements === comparison.
func StrictEquals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		if math.IsNaN(a.Number) || math.IsNaN(b.Number) {
			return false
		}
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeObject:
		return a.Object == b.Object
	default:
		return false
	}
}

// AbstractEquals implements == comparison.
func AbstractEquals(a, b *Value) bool {
	if a.Type == b.Type {
		return StrictEquals(a, b)
	}
	if (a.Type == TypeNull && b.Type == TypeUndefined) ||
		(a.Type == TypeUndefined && b.Type == TypeNull) {
		return true
	}
	if a.Type == TypeNumber && b.Type == TypeString {
		return AbstractEquals(a, NewNumber(b.ToNumber()))
	}
	if a.Type == TypeString && b.Type == TypeNumber {
		return AbstractEquals(NewNumber(a.ToNumber()), b)
	}
	if a.Type == TypeBoolean {
		return AbstractEquals(NewNumber(a.ToNumber()), b)
	}
	if b.Type == TypeBoolean {
		return AbstractEquals(a, NewNumber(b.ToNumber()))
	}
	return false
}

// NewArrayObject creates an array object from values.
func NewArrayObject(proto *Object, elements []*Value) *Object {
	obj := &Object{
		OType:      ObjTypeArray,
		Properties: make(map[string]*Property),
		Prototype:  proto,
		ArrayData:  elements,
	}
	obj.Set("length", NewNumber(float64(len(elements))))
	return obj
}

// NewFunctionObject creates a function object.
func NewFunctionObject(proto *Object, callable CallableFunc) *Object {
	return &Object{
		OType:      ObjTypeFunction,
		Properties: make(map[string]*Property),
		Prototype:  proto,
		Callable:   callable,
	}
}

// NewErrorObject creates an error object with a message.
func NewErrorObject(proto *Object, message string) *Object {
	obj := &Object{
		OType:      ObjTypeError,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
	obj.Set("message", NewString(message))
	obj.Set("name", NewString("Error"))
	return obj
}
