package builtins

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/example/jsgo/runtime"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func createConsoleObject(proto *runtime.Object) *runtime.Object {
	console := runtime.NewOrdinaryObject(proto)

	setMethod(console, "log", 0, consoleLog)
	setMethod(console, "error", 0, consoleError)
	setMethod(console, "warn", 0, consoleWarn)
	setMethod(console, "info", 0, consoleLog)
	setMethod(console, "debug", 0, consoleLog)

	return console
}

func formatArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return strings.Join(parts, " ")
}

func formatValue(v *runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	switch v.Type {
	case runtime.TypeNull:
		return "null"
	case runtime.TypeObject:
		return formatObjectValue(v.Object)
	default:
		return v.ToString()
	}
}

// formatObjectValue renders an object the way Node's console.log does for the
// shapes this engine can produce: arrays get bracket notation, callables get
// "[Function: name]", everything else gets a shallow "{ key: value, ... }"
// rather than the uninformative "[object Object]" every plain object used to
// print as.
func formatObjectValue(obj *runtime.Object) string {
	if obj == nil {
		return "null"
	}
	if obj.OType == runtime.ObjTypeArray {
		return formatArray(obj)
	}
	if obj.Callable != nil {
		name := ""
		if n := obj.Get("name"); n != nil && n.Type == runtime.TypeString {
			name = n.Str
		}
		if name == "" {
			return "[Function (anonymous)]"
		}
		return "[Function: " + name + "]"
	}
	if obj.OType == runtime.ObjTypeError {
		if msg := obj.Get("message"); msg != nil {
			nameVal := "Error"
			if n := obj.Get("name"); n != nil && n.Type == runtime.TypeString {
				nameVal = n.Str
			}
			return nameVal + ": " + msg.ToString()
		}
	}
	var parts []string
	for k, p := range obj.Properties {
		if !p.Enumerable || p.Value == nil {
			continue
		}
		parts = append(parts, k+": "+formatValue(p.Value))
	}
	sort.Strings(parts)
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func formatArray(obj *runtime.Object) string {
	parts := make([]string, len(obj.ArrayData))
	for i, v := range obj.ArrayData {
		if v == nil || v.Type == runtime.TypeUndefined {
			parts[i] = ""
		} else {
			parts[i] = formatValue(v)
		}
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

func consoleLog(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	fmt.Fprintln(stdout, formatArgs(args))
	return runtime.Undefined, nil
}

func consoleError(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	fmt.Fprintln(stderr, formatArgs(args))
	return runtime.Undefined, nil
}

func consoleWarn(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	fmt.Fprintln(stderr, formatArgs(args))
	return runtime.Undefined, nil
}
