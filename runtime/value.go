package runtime

import (
	"fmt"
	"math"
)

// ValueType represents the type of a JavaScript value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	TypeSymbol
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "object" // typeof null === "object" in JS
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Value represents a JavaScript value.
type Value struct {
	Type     ValueType
	Bool     bool
	Number   float64
	Str      string
	Object   *Object
	Symbol   *Symbol
}

var (
	Undefined = &Value{Type: TypeUndefined}
	Null      = &Value{Type: TypeNull}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
	NaN       = &Value{Type: TypeNumber, Number: math_NaN()}
	PosInf    = &Value{Type: TypeNumber, Number: math_Inf(1)}
	NegInf    = &Value{Type: TypeNumber, Number: math_Inf(-1)}
	Zero      = &Value{Type: TypeNumber, Number: 0}
)

func NewNumber(n float64) *Value {
	return &Value{Type: TypeNumber, Number: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewObject(obj *Object) *Value {
	return &Value{Type: TypeObject, Object: obj}
}

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func (v *Value) ToBoolean() bool {
	switch v.Type {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !isNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	case TypeObject:
		return true
	default:
		return false
	}
}

// ToString implements the ECMAScript ToString abstract operation.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		if isNaN(v.Number) {
			return "NaN"
		}
		if isInf(v.Number, 1) {
			return "Infinity"
		}
		if isInf(v.Number, -1) {
			return "-Infinity"
		}
		if v.Number == 0 {
			return "0"
		}
		return fmt.Sprintf("%g", v.Number)
	case TypeString:
		return v.Str
	case TypeObject:
		if v.Object != nil && v.Object.OType == ObjTypeError {
			name := v.Object.Get("name")
			msg := v.Object.Get("message")
			nameStr := "Error"
			if name != nil && name.Type == TypeString && name.Str != "" {
				nameStr = name.Str
			}
			msgStr := ""
			if msg != nil && msg.Type == TypeString {
				msgStr = msg.Str
			}
			if msgStr == "" {
				return nameStr
			}
			return nameStr + ": " + msgStr
		}
		return "[object Object]"
	default:
		return "undefined"
	}
}

// ObjectType describes the kind of object.
type ObjectType int

const (
	ObjTypeOrdinary ObjectType = iota
	ObjTypeArray
	ObjTypeFunction
	ObjTypeRegExp
	ObjTypeDate
	ObjTypeError
	ObjTypeMap
	ObjTypeSet
	ObjTypeWeakMap
	ObjTypeWeakSet
	ObjTypePromise
	ObjTypeIterator
	ObjTypeGenerator
	ObjTypeProxy
	ObjTypeHost
)

// Object represents a JavaScript object.
type Object struct {
	OType      ObjectType
	Properties map[string]*Property
	// PropOrder records own-property insertion order, independent of
	// Properties' hash order, so for…in / Object.keys / JSON.stringify walk
	// keys in the order they were first defined.
	PropOrder   []string
	Prototype   *Object
	Callable    CallableFunc
	Constructor CallableFunc
	Internal    map[string]interface{} // internal slots

	// SymbolProperties holds symbol-keyed own properties (Symbol.iterator,
	// Symbol.toPrimitive, Symbol.isConcatSpreadable, and any user-created
	// symbol used as a property key). Kept separate from Properties so a
	// symbol key can never collide with a same-named string key.
	SymbolProperties map[*Symbol]*Property

	// Array-specific
	ArrayData []*Value

	// For iterables
	IteratorNext func() (*Value, bool)
}

// Property represents a property descriptor.
type Property struct {
	Value        *Value
	Getter       *Value // for accessor properties
	Setter       *Value // for accessor properties
	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool

	// HasValue, HasWritable, HasEnumerable, HasConfigurable, HasGet, and
	// HasSet track which attributes were explicitly specified on a property
	// descriptor (as opposed to defaulted), per ES5 8.10.5 / 8.12.9.
	HasValue        bool
	HasWritable     bool
	HasEnumerable   bool
	HasConfigurable bool
	HasGet          bool
	HasSet          bool
}

// CallableFunc is the Go function signature for JS callable objects.
type CallableFunc func(this *Value, args []*Value) (*Value, error)

// Symbol represents an ES6 Symbol.
type Symbol struct {
	Description string
	id          uint64
}

// DefaultFunctionPrototype, DefaultObjectPrototype, DefaultArrayPrototype,
// DefaultStringPrototype, DefaultNumberPrototype, and DefaultBooleanPrototype
// are set by the builtins package during initialization so that code
// outside builtins (e.g. the interpreter) can construct ordinary objects
// and functions that inherit from the standard prototypes.
var (
	DefaultFunctionPrototype *Object
	DefaultObjectPrototype   *Object
	DefaultArrayPrototype    *Object
	DefaultStringPrototype   *Object
	DefaultNumberPrototype   *Object
	DefaultBooleanPrototype  *Object
)

// NewOrdinaryObject creates a plain object.
func NewOrdinaryObject(proto *Object) *Object {
	return &Object{
		OType:      ObjTypeOrdinary,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
}

// HostGet, when non-nil, is consulted by Object.Get for ObjTypeHost objects
// before falling back to own/prototype properties. It is installed by the
// hostbridge package so runtime need not import it directly. The bool result
// reports whether the host type claims the member at all.
var HostGet func(o *Object, name string) (*Value, bool)

// HostSet mirrors HostGet for assignment through a host member (bean setter
// or exported field). Returns whether the host type claims the member.
var HostSet func(o *Object, name string, val *Value) bool

// Get retrieves a property, walking the prototype chain.
func (o *Object) Get(name string) *Value {
	if o.OType == ObjTypeHost && HostGet != nil {
		if val, ok := HostGet(o, name); ok {
			return val
		}
	}
	if prop, ok := o.Properties[name]; ok {
		if prop.IsAccessor && prop.Getter != nil {
			val, _ := prop.Getter.Object.Callable(NewObject(o), nil)
			return val
		}
		return prop.Value
	}
	if o.Prototype != nil {
		return o.Prototype.Get(name)
	}
	return Undefined
}

// Set sets a property value.
func (o *Object) Set(name string, val *Value) {
	if o.OType == ObjTypeHost && HostSet != nil {
		if HostSet(o, name, val) {
			return
		}
	}
	if prop, ok := o.Properties[name]; ok {
		if prop.IsAccessor && prop.Setter != nil {
			prop.Setter.Object.Callable(NewObject(o), []*Value{val})
			return
		}
		if prop.Writable {
			prop.Value = val
		}
		return
	}
	o.Properties[name] = &Property{
		Value:        val,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	}
	o.PropOrder = append(o.PropOrder, name)
}

// GetSymbol retrieves a symbol-keyed property, walking the prototype chain.
// Unlike Get, a missing symbol property returns a bare nil rather than
// Undefined, so callers (e.g. jsToString probing Symbol.toPrimitive) can tell
// "no such method" apart from "method explicitly set to undefined".
func (o *Object) GetSymbol(sym *Symbol) *Value {
	if prop, ok := o.SymbolProperties[sym]; ok {
		if prop.IsAccessor && prop.Getter != nil {
			val, _ := prop.Getter.Object.Callable(NewObject(o), nil)
			return val
		}
		return prop.Value
	}
	if o.Prototype != nil {
		return o.Prototype.GetSymbol(sym)
	}
	return nil
}

// SetSymbol sets a symbol-keyed own property, creating SymbolProperties on
// first use.
func (o *Object) SetSymbol(sym *Symbol, val *Value) {
	if o.SymbolProperties == nil {
		o.SymbolProperties = make(map[*Symbol]*Property)
	}
	if prop, ok := o.SymbolProperties[sym]; ok {
		if prop.IsAccessor && prop.Setter != nil {
			prop.Setter.Object.Callable(NewObject(o), []*Value{val})
			return
		}
		if prop.Writable {
			prop.Value = val
		}
		return
	}
	o.SymbolProperties[sym] = &Property{
		Value:        val,
		Writable:     true,
		Enumerable:   false,
		Configurable: true,
	}
}

// DefineProperty defines a property with full descriptor control.
func (o *Object) DefineProperty(name string, prop *Property) {
	if _, exists := o.Properties[name]; !exists {
		o.PropOrder = append(o.PropOrder, name)
	}
	o.Properties[name] = prop
}

// DeleteProperty removes an own property, respecting Configurable, and keeps
// PropOrder in sync. Returns whether the property was removed.
func (o *Object) DeleteProperty(name string) bool {
	prop, ok := o.Properties[name]
	if !ok {
		return true
	}
	if !prop.Configurable {
		return false
	}
	delete(o.Properties, name)
	for i, k := range o.PropOrder {
		if k == name {
			o.PropOrder = append(o.PropOrder[:i], o.PropOrder[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns own enumerable-or-not string property keys in insertion
// order. Callers that only want enumerable keys must filter via Properties.
func (o *Object) OwnKeys() []string {
	keys := make([]string, len(o.PropOrder))
	copy(keys, o.PropOrder)
	return keys
}

// HasProperty checks own and prototype chain.
func (o *Object) HasProperty(name string) bool {
	if _, ok := o.Properties[name]; ok {
		return true
	}
	if o.Prototype != nil {
		return o.Prototype.HasProperty(name)
	}
	return false
}

// HasOwnProperty checks only own properties.
func (o *Object) HasOwnProperty(name string) bool {
	_, ok := o.Properties[name]
	return ok
}

func math_NaN() float64              { return math.NaN() }
func math_Inf(sign int) float64      { return math.Inf(sign) }
func isNaN(f float64) bool           { return math.IsNaN(f) }
func isInf(f float64, sign int) bool { return math.IsInf(f, sign) }
