package builtins

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/example/jsgo/runtime"
)

var RegExpPrototype *runtime.Object

func createRegExpConstructor(objProto *runtime.Object) (*runtime.Object, *runtime.Object) {
	proto := runtime.NewOrdinaryObject(objProto)
	proto.OType = runtime.ObjTypeRegExp
	RegExpPrototype = proto

	setMethod(proto, "test", 1, regexpTest)
	setMethod(proto, "exec", 1, regexpExec)
	setMethod(proto, "toString", 0, regexpToString)
	setMethod(proto, "compile", 2, regexpCompile)

	ctor := newFuncObject("RegExp", 2, regexpConstructorCall)
	ctor.Constructor = regexpConstructorCall
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor, proto
}

func regexpConstructorCall(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	pattern := ""
	flags := ""
	if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
		pattern = args[0].ToString()
	}
	if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
		flags = args[1].ToString()
	}
	return createRegExpObject(pattern, flags)
}

// regexp2Options translates ECMA regex flags into dlclark/regexp2 options.
// regexp2 speaks ECMAScript syntax natively (backreferences, lookaround,
// named groups) so unlike Go's RE2-based stdlib regexp, no pattern rewriting
// is needed here.
func regexp2Options(flags string) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.Contains(flags, "i") {
		opts |= regexp2.IgnoreCase
	}
	if strings.Contains(flags, "s") {
		opts |= regexp2.Singleline
	}
	if strings.Contains(flags, "m") {
		opts |= regexp2.Multiline
	}
	return opts
}

func createRegExpObject(pattern, flags string) (*runtime.Value, error) {
	re, err := regexp2.Compile(pattern, regexp2Options(flags))
	if err != nil {
		return nil, fmt.Errorf("SyntaxError: Invalid regular expression: %s", err)
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeRegExp,
		Properties: make(map[string]*runtime.Property),
		Prototype:  RegExpPrototype,
		Internal:   map[string]interface{}{"regexp": re, "pattern": pattern, "flags": flags},
	}
	setDataProp(obj, "source", runtime.NewString(pattern), false, false, true)
	setDataProp(obj, "flags", runtime.NewString(flags), false, false, true)
	setDataProp(obj, "global", runtime.NewBool(strings.Contains(flags, "g")), false, false, true)
	setDataProp(obj, "ignoreCase", runtime.NewBool(strings.Contains(flags, "i")), false, false, true)
	setDataProp(obj, "multiline", runtime.NewBool(strings.Contains(flags, "m")), false, false, true)
	setDataProp(obj, "sticky", runtime.NewBool(strings.Contains(flags, "y")), false, false, true)
	setDataProp(obj, "unicode", runtime.NewBool(strings.Contains(flags, "u")), false, false, true)
	obj.Set("lastIndex", runtime.NewNumber(0))
	return runtime.NewObject(obj), nil
}

func getRegExp(this *runtime.Value) *regexp2.Regexp {
	obj := toObject(this)
	if obj == nil || obj.Internal == nil {
		return nil
	}
	re, ok := obj.Internal["regexp"].(*regexp2.Regexp)
	if !ok {
		return nil
	}
	return re
}

func regexpTest(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	re := getRegExp(this)
	if re == nil {
		return runtime.False, nil
	}
	s := argAt(args, 0).ToString()
	m, err := re.MatchString(s)
	if err != nil {
		return nil, fmt.Errorf("SyntaxError: %s", err)
	}
	return runtime.NewBool(m), nil
}

func regexpExec(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	re := getRegExp(this)
	if re == nil {
		return runtime.Null, nil
	}
	s := argAt(args, 0).ToString()

	obj := toObject(this)
	global := obj != nil && obj.Get("global").ToBoolean()
	sticky := obj != nil && obj.Get("sticky").ToBoolean()
	start := 0
	if global || sticky {
		start = int(obj.Get("lastIndex").Number)
		if start < 0 || start > len(s) {
			obj.Set("lastIndex", runtime.NewNumber(0))
			return runtime.Null, nil
		}
	}

	match, err := re.FindStringMatchStartingAt(s, start)
	if err != nil {
		return nil, fmt.Errorf("SyntaxError: %s", err)
	}
	if match == nil {
		if global || sticky {
			obj.Set("lastIndex", runtime.NewNumber(0))
		}
		return runtime.Null, nil
	}
	if sticky && match.Index != start {
		obj.Set("lastIndex", runtime.NewNumber(0))
		return runtime.Null, nil
	}

	groups := make([]*runtime.Value, 0, match.GroupCount())
	for i := 0; i < match.GroupCount(); i++ {
		g := match.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			groups = append(groups, runtime.Undefined)
		} else {
			groups = append(groups, runtime.NewString(g.String()))
		}
	}
	result := newArray(groups)
	result.Set("index", runtime.NewNumber(float64(match.Index)))
	result.Set("input", runtime.NewString(s))

	if global || sticky {
		obj.Set("lastIndex", runtime.NewNumber(float64(match.Index+match.Length)))
	}
	return runtime.NewObject(result), nil
}

func regexpCompile(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	if obj == nil {
		return nil, fmt.Errorf("TypeError: RegExp.prototype.compile called on incompatible receiver")
	}

	pattern := ""
	flags := ""
	if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
		pattern = args[0].ToString()
	}
	if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
		flags = args[1].ToString()
	}

	re, err := regexp2.Compile(pattern, regexp2Options(flags))
	if err != nil {
		return nil, fmt.Errorf("SyntaxError: Invalid regular expression: %s", err)
	}

	if obj.Internal == nil {
		obj.Internal = make(map[string]interface{})
	}
	obj.Internal["regexp"] = re
	obj.Internal["pattern"] = pattern
	obj.Internal["flags"] = flags

	obj.Set("source", runtime.NewString(pattern))
	obj.Set("flags", runtime.NewString(flags))
	obj.Set("global", runtime.NewBool(strings.Contains(flags, "g")))
	obj.Set("ignoreCase", runtime.NewBool(strings.Contains(flags, "i")))
	obj.Set("multiline", runtime.NewBool(strings.Contains(flags, "m")))
	obj.Set("sticky", runtime.NewBool(strings.Contains(flags, "y")))
	obj.Set("unicode", runtime.NewBool(strings.Contains(flags, "u")))
	obj.Set("lastIndex", runtime.NewNumber(0))

	return this, nil
}

func regexpToString(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	obj := toObject(this)
	if obj == nil {
		return runtime.NewString("/(?:)/"), nil
	}
	source := obj.Get("source").ToString()
	flags := obj.Get("flags").ToString()
	return runtime.NewString("/" + source + "/" + flags), nil
}
