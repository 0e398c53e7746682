package hostbridge

import (
	"fmt"
	"reflect"

	"github.com/example/jsgo/runtime"
)

// Conversion weights, lower is better, mirroring LiveConnect3's
// preferred-conversion table (NativeJavaObject's coercion-cost ranking):
// an identity/exact match always wins; among the rest, narrowing to a
// primitive of the value's own JS type beats widening across JS types,
// which beats the untyped interface{} catch-all.
const (
	weightExact         = 0  // value's own JS type matches the parameter kind exactly
	weightStringToChar  = 3  // single-character string -> a Go rune/byte parameter
	weightNumericWiden  = 5  // float64 -> a narrower/wider Go numeric kind
	weightNumberToStr   = 9  // number -> string
	weightBoolToStr     = 9  // boolean -> string
	weightNumberToBox   = 10 // number/string/bool -> struct/slice/map/ptr (invalid, kept for symmetry)
	weightInterfaceKind = 15 // last resort: an untyped interface{} parameter
	weightImpossible    = 1 << 30
)

// numericRank orders Go numeric kinds by width, used to weight a widening
// or narrowing conversion by how far apart the kinds are (a wider gap
// costs more, matching LC3's size-based tie-breaking for numeric
// overloads).
var numericRank = map[reflect.Kind]int{
	reflect.Int8: 1, reflect.Uint8: 1,
	reflect.Int16: 2, reflect.Uint16: 2,
	reflect.Int32: 3, reflect.Uint32: 3, reflect.Float32: 3,
	reflect.Int: 4, reflect.Uint: 4,
	reflect.Int64: 5, reflect.Uint64: 5, reflect.Float64: 5,
}

func isNumericKind(k reflect.Kind) bool {
	_, ok := numericRank[k]
	return ok
}

// weighArg ranks how well script value v fits Go parameter type t. It
// never lets a boolean stand in for a string parameter (or vice versa):
// those are separate JS primitive types with no implicit conversion
// between them, so a candidate requiring that conversion is impossible,
// not merely expensive. This is what keeps host.f(true) from resolving
// to an f(string) overload when an f(int) overload also exists but can't
// accept a boolean either — both become impossible and selectOverload
// reports "no overload matches" instead of silently picking the string
// one.
func weighArg(v *runtime.Value, t reflect.Type) int {
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return weightInterfaceKind
		}
		return weightImpossible

	case reflect.String:
		if v.Type == runtime.TypeString {
			return weightExact
		}
		if v.Type == runtime.TypeNumber {
			return weightNumberToStr
		}
		return weightImpossible

	case reflect.Bool:
		if v.Type == runtime.TypeBoolean {
			return weightExact
		}
		return weightImpossible

	case reflect.Uint8, reflect.Int32:
		// byte/rune parameters double as single-character string targets.
		if v.Type == runtime.TypeString && len([]rune(v.Str)) == 1 {
			return weightStringToChar
		}
		fallthrough

	default:
		if isNumericKind(t.Kind()) {
			if v.Type != runtime.TypeNumber {
				return weightImpossible
			}
			if t.Kind() == reflect.Float64 {
				return weightExact
			}
			return weightNumericWiden + numericRank[reflect.Float64] - numericRank[t.Kind()]
		}
		switch t.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr:
			if v.Type == runtime.TypeObject {
				return weightExact
			}
			return weightImpossible
		}
		return weightImpossible
	}
}

// moreSpecific reports whether method a's parameter list is a more
// specific match than b's for the same weight total — LC3's tie-break of
// preferring the overload declared on the more specific (narrower) type
// when two candidates cost the same. Since our candidates share a
// receiver type, "more specific" here means a's parameters are
// individually assignable to b's (a accepts a narrower set of Go types),
// e.g. a concrete struct parameter beats an interface{} parameter at
// equal weight.
func moreSpecific(a, b reflect.Method) bool {
	an, bn := a.Type.NumIn(), b.Type.NumIn()
	if an != bn {
		return false
	}
	specific := false
	for i := 1; i < an; i++ {
		pa, pb := a.Type.In(i), b.Type.In(i)
		if pa == pb {
			continue
		}
		if pa.AssignableTo(pb) && !pb.AssignableTo(pa) {
			specific = true
		} else if pb.AssignableTo(pa) && !pa.AssignableTo(pb) {
			return false
		}
	}
	return specific
}

// selectOverload picks the lowest-total-weight candidate for the given
// arguments. A weight tie is broken by declaring-type specificity
// (moreSpecific); only a tie that specificity cannot break raises the
// ambiguous-call TypeError required of overload resolution.
func selectOverload(name string, candidates []overload, args []*runtime.Value) (reflect.Method, error) {
	if len(candidates) == 0 {
		return reflect.Method{}, fmt.Errorf("TypeError: no such method %q", name)
	}
	if len(candidates) == 1 {
		return candidates[0].method, nil
	}

	type scored struct {
		method reflect.Method
		weight int
	}
	var reachable []scored

	for _, c := range candidates {
		in := c.method.Type
		nParams := in.NumIn() - 1 // drop receiver
		if nParams != len(args) && !(in.IsVariadic() && len(args) >= nParams-1) {
			continue
		}
		total := 0
		for j, a := range args {
			pt := in.In(j + 1)
			if in.IsVariadic() && j >= nParams-1 {
				pt = in.In(nParams).Elem()
			}
			w := weighArg(a, pt)
			if w == weightImpossible {
				total = weightImpossible
				break
			}
			total += w
		}
		if total != weightImpossible {
			reachable = append(reachable, scored{c.method, total})
		}
	}

	if len(reachable) == 0 {
		return reflect.Method{}, fmt.Errorf("TypeError: no overload of %q matches the given arguments", name)
	}

	best := reachable[0]
	var tied []scored
	for _, s := range reachable[1:] {
		if s.weight < best.weight {
			best = s
			tied = nil
		} else if s.weight == best.weight {
			tied = append(tied, s)
		}
	}
	for _, t := range tied {
		if moreSpecific(best.method, t.method) {
			continue
		}
		if moreSpecific(t.method, best.method) {
			best = t
			continue
		}
		return reflect.Method{}, fmt.Errorf("TypeError: ambiguous call to overloaded method %q", name)
	}
	return best.method, nil
}
