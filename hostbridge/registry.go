package hostbridge

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/example/jsgo/builtins"
	"github.com/example/jsgo/runtime"
)

// arrayMethodNames lists the Array.prototype members a host-wrapped
// slice/array exposes by forwarding to builtins.ArrayPrototype rather than
// reimplementing them against reflect.Value. resizingArrayMethods marks the
// subset whose result needs writing back onto the underlying Go slice.
var arrayMethodNames = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"concat": true, "join": true, "reverse": true, "slice": true,
	"splice": true, "every": true, "some": true, "filter": true,
	"map": true, "reduce": true, "reduceRight": true,
	"find": true, "findIndex": true, "findLast": true, "findLastIndex": true,
}

// resizingArrayMethods mutate their receiver's length and so can only write
// back through an addressable reflect.Value (v.CanSet()). reverse mutates in
// place too but never changes length, so it writes back element-by-element
// instead — slice elements are addressable through the slice header even
// when the slice value itself is not, so it never needs v.CanSet().
var resizingArrayMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true, "splice": true,
}

// TypeWrapper lets an embedder register a weight-0 "nontrivial" coercion for
// a Go type that isn't naturally representable as a script value — for
// example a domain enum that should stringify a particular way. It is tried
// before the default reflective wrap.
type TypeWrapper func(v reflect.Value) (*runtime.Value, bool)

// Registry owns one Context's worth of host identity memoization: wrapping
// the same Go value twice through the same Registry returns the same
// *runtime.Object, so scripts can compare host references with ===.
type Registry struct {
	remap    MemberRemapper
	proto    *runtime.Object
	wrappers []TypeWrapper

	mu    sync.Mutex
	cache map[interface{}]*runtime.Object
}

// NewRegistry creates a Registry whose wrapped host objects chain to proto
// (for shared Reflect-visible members like a stack trace or toString).
func NewRegistry(proto *runtime.Object) *Registry {
	r := &Registry{
		remap: DefaultRemapper,
		proto: proto,
		cache: map[interface{}]*runtime.Object{},
	}
	installHooks(r)
	return r
}

// SetRemapper overrides the default bean-property naming convention.
func (r *Registry) SetRemapper(m MemberRemapper) {
	if m != nil {
		r.remap = m
	}
}

// RegisterTypeWrapper adds a nontrivial coercion consulted before the
// default reflective wrap.
func (r *Registry) RegisterTypeWrapper(w TypeWrapper) {
	r.wrappers = append(r.wrappers, w)
}

// installHooks wires this registry's Get/Set into runtime.Object's
// package-level hooks. Only one Registry's hooks are ever active per
// process at a time in this build (the embedder API is single-Context in
// practice); a multi-Context embedder would key these hooks per Object
// instead, using the Internal["registry"] slot already stored on wrap.
func installHooks(r *Registry) {
	runtime.HostGet = func(o *runtime.Object, name string) (*runtime.Value, bool) {
		reg, _ := o.Internal["registry"].(*Registry)
		if reg == nil {
			reg = r
		}
		return reg.getMember(o, name)
	}
	runtime.HostSet = func(o *runtime.Object, name string, val *runtime.Value) bool {
		reg, _ := o.Internal["registry"].(*Registry)
		if reg == nil {
			reg = r
		}
		return reg.setMember(o, name, val)
	}
}

// Wrap converts an arbitrary Go value into a script value. Primitive kinds
// (numbers, strings, bools) convert directly with no wrapper object;
// everything else becomes an ObjTypeHost object memoized by identity.
func (r *Registry) Wrap(goVal interface{}) *runtime.Value {
	if goVal == nil {
		return runtime.Null
	}
	v := reflect.ValueOf(goVal)
	return r.wrapReflect(v)
}

func (r *Registry) wrapReflect(v reflect.Value) *runtime.Value {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return runtime.Null
	}

	for _, w := range r.wrappers {
		if val, ok := w(v); ok {
			return val
		}
	}

	switch v.Kind() {
	case reflect.String:
		return runtime.NewString(v.String())
	case reflect.Bool:
		return runtime.NewBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return runtime.NewNumber(float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return runtime.NewNumber(float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return runtime.NewNumber(v.Float())
	}

	key := identityKey(v)
	r.mu.Lock()
	if obj, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return runtime.NewObject(obj)
	}
	r.mu.Unlock()

	obj := &runtime.Object{
		OType:      runtime.ObjTypeHost,
		Properties: make(map[string]*runtime.Property),
		Prototype:  r.proto,
		Internal: map[string]interface{}{
			"host":     v,
			"registry": r,
		},
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		obj.IteratorNext = r.sliceIterator(v)
	}

	r.mu.Lock()
	r.cache[key] = obj
	r.mu.Unlock()
	return runtime.NewObject(obj)
}

// identityKey returns a value comparable with == that identifies v for the
// wrapper cache: the pointer for reference kinds, the value itself for
// structs/arrays passed by value (which do not have a stable address).
func identityKey(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.Pointer()
	case reflect.Slice:
		if v.Len() == 0 {
			return v.Pointer()
		}
		return v.Pointer()
	default:
		if v.CanAddr() {
			return v.Addr().Pointer()
		}
		return v.Interface()
	}
}

func (r *Registry) sliceIterator(v reflect.Value) func() (*runtime.Value, bool) {
	i := 0
	return func() (*runtime.Value, bool) {
		if i >= v.Len() {
			return nil, false
		}
		val := r.wrapReflect(v.Index(i))
		i++
		return val, true
	}
}

// Unwrap returns the reflect.Value a host object was constructed from, or
// the zero Value if o isn't one of ours.
func Unwrap(o *runtime.Object) (reflect.Value, bool) {
	if o == nil || o.OType != runtime.ObjTypeHost {
		return reflect.Value{}, false
	}
	v, ok := o.Internal["host"].(reflect.Value)
	return v, ok
}

func (r *Registry) getMember(o *runtime.Object, name string) (*runtime.Value, bool) {
	v, ok := Unwrap(o)
	if !ok {
		return nil, false
	}
	base := v
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	if name == "length" && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) {
		return runtime.NewNumber(float64(v.Len())), true
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if idx, isIdx := parseIndex(name); isIdx {
			if idx < 0 || idx >= v.Len() {
				return runtime.Undefined, true
			}
			return r.wrapReflect(v.Index(idx)), true
		}
		if arrayMethodNames[name] {
			return runtime.NewObject(runtime.NewFunctionObject(nil, r.arrayMethodCaller(v, name))), true
		}
	}
	if v.Kind() == reflect.Map {
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if mv.IsValid() {
			return r.wrapReflect(mv), true
		}
	}

	d := describe(v.Type(), r.remap)

	if f, ok := d.Fields[name]; ok && base.Kind() == reflect.Struct {
		return r.wrapReflect(base.FieldByIndex(f.Index)), true
	}
	if m, ok := d.beanGetters[name]; ok {
		out := m.Func.Call([]reflect.Value{v})
		return r.wrapReflect(out[0]), true
	}
	if candidates, ok := d.Methods[name]; ok {
		return runtime.NewObject(runtime.NewFunctionObject(nil, r.methodCaller(v, name, candidates))), true
	}
	return nil, false
}

// arrayMethodCaller forwards an Array.prototype method call on a
// host-wrapped slice/array to the same builtins.ArrayPrototype
// implementation the native Array type uses: it copies v's elements into a
// throwaway native array object (each wrapped through wrapReflect, so a
// slice of structs behaves like a slice of host objects to the callback),
// invokes the real method against it, and for the methods that mutate their
// receiver in place, writes the resulting elements back onto v.
//
// Writing back only ever touches existing elements (always addressable
// through a slice header, regardless of whether v itself is addressable);
// growing or shrinking v — push, unshift, splice inserting/removing, pop,
// shift — additionally needs to replace v's contents wholesale, which
// requires v.CanSet(). A host slice reached through an unaddressable
// reflect.Value (the common case: Wrap took it by interface{} value, not by
// pointer) can still be read and scanned by every method here, it just can't
// grow or shrink through this reference.
func (r *Registry) arrayMethodCaller(v reflect.Value, name string) runtime.CallableFunc {
	return func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		elemType := v.Type().Elem()
		elems := make([]*runtime.Value, v.Len())
		for i := range elems {
			elems[i] = r.wrapReflect(v.Index(i))
		}
		arrObj := runtime.NewArrayObject(builtins.ArrayPrototype, elems)
		arrVal := runtime.NewObject(arrObj)

		method := builtins.ArrayPrototype.Get(name)
		if method == nil || method.Object == nil || method.Object.Callable == nil {
			return nil, fmt.Errorf("TypeError: Array.prototype.%s is not a function", name)
		}
		result, err := method.Object.Callable(arrVal, args)
		if err != nil {
			return nil, err
		}

		if name == "reverse" && v.Kind() == reflect.Slice {
			for i, sv := range arrObj.ArrayData {
				v.Index(i).Set(toGo(sv, elemType))
			}
		} else if resizingArrayMethods[name] {
			if v.Kind() != reflect.Slice || !v.CanSet() {
				return nil, fmt.Errorf("TypeError: cannot resize host slice through this reference (%s changes length)", name)
			}
			newSlice := reflect.MakeSlice(v.Type(), len(arrObj.ArrayData), len(arrObj.ArrayData))
			for i, sv := range arrObj.ArrayData {
				newSlice.Index(i).Set(toGo(sv, elemType))
			}
			v.Set(newSlice)
		}
		return result, nil
	}
}

func (r *Registry) setMember(o *runtime.Object, name string, val *runtime.Value) bool {
	v, ok := Unwrap(o)
	if !ok {
		return false
	}
	base := v
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if v.Kind() == reflect.Slice {
		if idx, isIdx := parseIndex(name); isIdx && idx >= 0 && idx < v.Len() {
			v.Index(idx).Set(toGo(val, v.Type().Elem()))
			return true
		}
	}

	d := describe(v.Type(), r.remap)
	if f, ok := d.Fields[name]; ok && base.Kind() == reflect.Struct && base.CanSet() {
		base.FieldByIndex(f.Index).Set(toGo(val, f.Type))
		return true
	}
	if m, ok := d.beanSetters[name]; ok {
		m.Func.Call([]reflect.Value{v, toGo(val, m.Type.In(2))})
		return true
	}
	return false
}

// methodCaller binds one host method name (possibly overloaded) to a
// runtime.CallableFunc, resolving the overload set and coercing arguments
// and a panicking host call into a script-catchable Wrapped error each
// invocation, since script arguments vary call to call.
func (r *Registry) methodCaller(receiver reflect.Value, name string, candidates []overload) runtime.CallableFunc {
	return func(this *runtime.Value, args []*runtime.Value) (result *runtime.Value, err error) {
		m, selErr := selectOverload(name, candidates, args)
		if selErr != nil {
			return nil, selErr
		}
		in := m.Type
		callArgs := make([]reflect.Value, 0, len(args)+1)
		callArgs = append(callArgs, receiver)
		nParams := in.NumIn() - 1
		for i, a := range args {
			pt := in.In(i + 1)
			if in.IsVariadic() && i >= nParams-1 {
				pt = in.In(nParams).Elem()
			}
			callArgs = append(callArgs, toGo(a, pt))
		}

		defer func() {
			if p := recover(); p != nil {
				cause, ok := p.(error)
				if !ok {
					cause = fmt.Errorf("%v", p)
				}
				err = &runtime.CausedError{
					Msg:   fmt.Sprintf("host method %q failed: %v", name, p),
					Cause: cause,
				}
			}
		}()

		out := m.Func.Call(callArgs)
		return r.wrapResults(out), nil
	}
}

// wrapResults folds a Go method's return values into one script value: no
// results become undefined, a single result wraps directly, a trailing
// error result that is non-nil is surfaced by panicking so the deferred
// recover in methodCaller turns it into a Go error return (methods
// returning (T, error) are the common Go idiom the bridge must honor).
func (r *Registry) wrapResults(out []reflect.Value) *runtime.Value {
	if len(out) == 0 {
		return runtime.Undefined
	}
	last := out[len(out)-1]
	if last.Type().Implements(errType) && !last.IsNil() {
		panic(last.Interface().(error))
	}
	if last.Type().Implements(errType) {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return runtime.Undefined
	}
	return r.wrapReflect(out[0])
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func parseIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// toGo coerces a script value to the Go type a host member expects,
// following the same weight ordering used for overload selection.
func toGo(v *runtime.Value, t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Interface {
		return reflect.ValueOf(scriptToInterface(v))
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(v.ToString()).Convert(t)
	case reflect.Bool:
		return reflect.ValueOf(truthy(v)).Convert(t)
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(v.ToNumber()).Convert(t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(int64(v.ToNumber())).Convert(t)
	case reflect.Slice, reflect.Ptr, reflect.Map, reflect.Struct:
		if v.Type == runtime.TypeObject && v.Object != nil {
			if hv, ok := Unwrap(v.Object); ok && hv.Type().AssignableTo(t) {
				return hv
			}
		}
	}
	return reflect.Zero(t)
}

func scriptToInterface(v *runtime.Value) interface{} {
	switch v.Type {
	case runtime.TypeUndefined, runtime.TypeNull:
		return nil
	case runtime.TypeBoolean:
		return v.Bool
	case runtime.TypeNumber:
		return v.Number
	case runtime.TypeString:
		return v.Str
	case runtime.TypeObject:
		if v.Object != nil {
			if hv, ok := Unwrap(v.Object); ok {
				return hv.Interface()
			}
		}
		return v.Object
	}
	return nil
}

func truthy(v *runtime.Value) bool {
	switch v.Type {
	case runtime.TypeUndefined, runtime.TypeNull:
		return false
	case runtime.TypeBoolean:
		return v.Bool
	case runtime.TypeNumber:
		return v.Number != 0 && v.Number == v.Number
	case runtime.TypeString:
		return v.Str != ""
	default:
		return true
	}
}
