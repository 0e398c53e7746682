package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/example/jsgo/runtime"
)

func TestConsoleLog(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	consoleLog(runtime.Undefined, []*runtime.Value{runtime.NewString("hello"), runtime.NewNumber(42)})
	got := strings.TrimSpace(buf.String())
	if got != "hello 42" {
		t.Errorf("console.log: got %q, want %q", got, "hello 42")
	}
}

func TestConsoleError(t *testing.T) {
	var buf bytes.Buffer
	oldStderr := stderr
	stderr = &buf
	defer func() { stderr = oldStderr }()

	consoleError(runtime.Undefined, []*runtime.Value{runtime.NewString("error!")})
	got := strings.TrimSpace(buf.String())
	if got != "error!" {
		t.Errorf("console.error: got %q, want %q", got, "error!")
	}
}

func TestConsoleLogArray(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	arr := newArray([]*runtime.Value{runtime.NewNumber(1), runtime.NewNumber(2), runtime.NewNumber(3)})
	consoleLog(runtime.Undefined, []*runtime.Value{runtime.NewObject(arr)})
	got := strings.TrimSpace(buf.String())
	if got != "[ 1, 2, 3 ]" {
		t.Errorf("console.log array: got %q, want %q", got, "[ 1, 2, 3 ]")
	}
}

func TestConsoleLogPlainObject(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	obj := runtime.NewOrdinaryObject(nil)
	obj.Set("a", runtime.NewNumber(1))
	obj.Set("b", runtime.NewString("two"))
	consoleLog(runtime.Undefined, []*runtime.Value{runtime.NewObject(obj)})
	got := strings.TrimSpace(buf.String())
	if got != "{ a: 1, b: two }" {
		t.Errorf("console.log object: got %q, want %q", got, "{ a: 1, b: two }")
	}
}

func TestConsoleLogFunction(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	fn := newFuncObject("greet", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.Undefined, nil
	})
	consoleLog(runtime.Undefined, []*runtime.Value{runtime.NewObject(fn)})
	got := strings.TrimSpace(buf.String())
	if got != "[Function: greet]" {
		t.Errorf("console.log function: got %q, want %q", got, "[Function: greet]")
	}
}

func TestConsoleLogEmptyObject(t *testing.T) {
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	defer func() { stdout = oldStdout }()

	obj := runtime.NewOrdinaryObject(nil)
	consoleLog(runtime.Undefined, []*runtime.Value{runtime.NewObject(obj)})
	got := strings.TrimSpace(buf.String())
	if got != "{}" {
		t.Errorf("console.log empty object: got %q, want %q", got, "{}")
	}
}
