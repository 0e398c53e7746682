package builtins

import (
	"testing"

	"github.com/example/jsgo/runtime"
)

func TestRegisterAll(t *testing.T) {
	env := runtime.NewEnvironment(nil, false)
	globalObj := runtime.NewOrdinaryObject(nil)

	RegisterAll(env, globalObj)

	// Check that core built-ins are registered. eval is not among them:
	// the interpreter declares it in each execution's own environment.
	names := []string{
		"Object", "Function", "Array", "String", "Number", "Boolean",
		"Symbol", "Error", "TypeError", "ReferenceError", "SyntaxError",
		"RangeError", "URIError", "EvalError",
		"RegExp", "Map", "Set", "WeakMap", "WeakSet",
		"Promise", "Proxy", "Reflect",
		"Math", "JSON", "console",
		"parseInt", "parseFloat", "isNaN", "isFinite",
		"encodeURI", "decodeURI", "encodeURIComponent", "decodeURIComponent",
		"undefined", "NaN", "Infinity",
	}
	for _, name := range names {
		val, err := env.Get(name)
		if err != nil {
			t.Errorf("missing built-in: %s (error: %v)", name, err)
			continue
		}
		if val == nil {
			t.Errorf("built-in %s is nil", name)
		}
	}
}

func TestRegisterAllInstallsObjectToNumberHook(t *testing.T) {
	old := runtime.ObjectToNumberHook
	defer func() { runtime.ObjectToNumberHook = old }()

	env := runtime.NewEnvironment(nil, false)
	globalObj := runtime.NewOrdinaryObject(nil)
	RegisterAll(env, globalObj)

	if runtime.ObjectToNumberHook == nil {
		t.Fatal("RegisterAll should install runtime.ObjectToNumberHook")
	}

	obj := runtime.NewOrdinaryObject(nil)
	valueOf := newFuncObject("valueOf", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(7), nil
	})
	obj.Set("valueOf", runtime.NewObject(valueOf))

	n := runtime.NewObject(obj).ToNumber()
	if n != 7 {
		t.Errorf("ToNumber() on object with valueOf: expected 7, got %v", n)
	}
}
