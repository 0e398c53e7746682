// Package hostbridge wraps arbitrary Go values so scripts can read fields,
// call methods, and iterate host collections the way LiveConnect3 exposes
// Java objects to Rhino scripts: reflective member discovery, JavaBean
// property synthesis (GetFoo/IsFoo/SetFoo become a "foo" property), and
// weighted overload resolution when a method name has more than one
// exported signature. It is grounded on the member-table and
// preferred-signature logic of NativeJavaObject in the original Rhino
// fork this interpreter descends from, reworked around reflect.Type/Value
// instead of java.lang.Class/Object.
package hostbridge

import (
	"reflect"
	"sync"
)

// MemberKind distinguishes the three shapes a host member can take.
type MemberKind int

const (
	KindField MemberKind = iota
	KindMethod
	KindBeanProperty
)

// MemberRemapper lets an embedder rename members as they're exposed to
// script, e.g. to translate Go's exported CamelCase into camelCase or to
// hide members entirely by returning "".
type MemberRemapper func(kind MemberKind, goName string) string

// DefaultRemapper lowercases the first letter of exported Go identifiers,
// the closest Go analogue to LiveConnect's bean-property convention.
func DefaultRemapper(_ MemberKind, goName string) string {
	if goName == "" {
		return goName
	}
	r := []rune(goName)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] + ('a' - 'A')
	}
	return string(r)
}

type overload struct {
	method reflect.Method
}

// TypeDescriptor is the cached member table for one host reflect.Type.
type TypeDescriptor struct {
	Type     reflect.Type
	Fields   map[string]reflect.StructField
	Methods  map[string][]overload // script name -> overload set
	IsSlice  bool
	IsMap    bool
	ElemType reflect.Type

	beanGetters map[string]reflect.Method
	beanSetters map[string]reflect.Method
}

var (
	cacheMu sync.RWMutex
	cache   = map[reflect.Type]*TypeDescriptor{}
)

// describe builds (or returns the cached) member table for t, using remap
// to compute script-visible names. Cache entries are process-global and
// keyed only by reflect.Type: the first call for a type fixes its
// script-visible names, and every later call for that type, from any
// Registry, gets the same table whatever remapper it passes.
func describe(t reflect.Type, remap MemberRemapper) *TypeDescriptor {
	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	cacheMu.RLock()
	if d, ok := cache[base]; ok {
		cacheMu.RUnlock()
		return d
	}
	cacheMu.RUnlock()

	d := &TypeDescriptor{
		Type:    base,
		Fields:  map[string]reflect.StructField{},
		Methods: map[string][]overload{},
	}

	if base.Kind() == reflect.Slice || base.Kind() == reflect.Array {
		d.IsSlice = true
		d.ElemType = base.Elem()
	}
	if base.Kind() == reflect.Map {
		d.IsMap = true
		d.ElemType = base.Elem()
	}

	if base.Kind() == reflect.Struct {
		for i := 0; i < base.NumField(); i++ {
			f := base.Field(i)
			if f.PkgPath != "" { // unexported
				continue
			}
			name := remap(KindField, f.Name)
			if name != "" {
				d.Fields[name] = f
			}
		}
	}

	// Methods are gathered from both the value type and its pointer type so
	// value receivers and pointer receivers both surface.
	for _, mt := range []reflect.Type{base, reflect.PtrTo(base)} {
		for i := 0; i < mt.NumMethod(); i++ {
			m := mt.Method(i)
			if m.PkgPath != "" {
				continue
			}
			name := remap(KindMethod, m.Name)
			if name == "" {
				continue
			}
			d.Methods[name] = append(d.Methods[name], overload{method: m})
		}
	}

	synthesizeBeanProperties(d, remap)

	cacheMu.Lock()
	cache[base] = d
	cacheMu.Unlock()
	return d
}

// synthesizeBeanProperties turns GetX()/IsX() -> "x" getters and SetX(v) ->
// "x" setters into pseudo-fields recorded on the descriptor's bean map,
// consulted by Registry.getMember before falling back to raw methods.
func synthesizeBeanProperties(d *TypeDescriptor, remap MemberRemapper) {
	d.beanGetters = map[string]reflect.Method{}
	d.beanSetters = map[string]reflect.Method{}
	for name, ov := range d.Methods {
		_ = name
		for _, o := range ov {
			m := o.method
			switch {
			case len(m.Name) > 3 && m.Name[:3] == "Get" && m.Type.NumIn() == 1 && m.Type.NumOut() == 1:
				prop := remap(KindBeanProperty, m.Name[3:])
				if prop != "" {
					d.beanGetters[prop] = m
				}
			case len(m.Name) > 2 && m.Name[:2] == "Is" && m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0).Kind() == reflect.Bool:
				prop := remap(KindBeanProperty, m.Name[2:])
				if prop != "" {
					d.beanGetters[prop] = m
				}
			case len(m.Name) > 3 && m.Name[:3] == "Set" && m.Type.NumIn() == 2:
				prop := remap(KindBeanProperty, m.Name[3:])
				if prop != "" {
					d.beanSetters[prop] = m
				}
			}
		}
	}
}
