package interpreter

import (
	"math"
	"strings"
	"testing"

	"github.com/example/jsgo/runtime"
)

func evalExpect(t *testing.T, source string) *runtime.Value {
	t.Helper()
	interp := New()
	val, err := interp.Eval(source)
	if err != nil {
		t.Fatalf("Eval error for %q: %v", source, err)
	}
	return val
}

func evalExpectError(t *testing.T, source string) error {
	t.Helper()
	interp := New()
	_, err := interp.Eval(source)
	if err == nil {
		t.Fatalf("expected error for %q but got none", source)
	}
	return err
}

func expectNumber(t *testing.T, source string, expected float64) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeNumber {
		t.Fatalf("expected number for %q, got %v (type=%v)", source, val, val.Type)
	}
	if math.IsNaN(expected) {
		if !math.IsNaN(val.Number) {
			t.Fatalf("expected NaN for %q, got %v", source, val.Number)
		}
		return
	}
	if val.Number != expected {
		t.Fatalf("expected %v for %q, got %v", expected, source, val.Number)
	}
}

func expectString(t *testing.T, source string, expected string) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeString {
		t.Fatalf("expected string for %q, got type=%v val=%v", source, val.Type, val)
	}
	if val.Str != expected {
		t.Fatalf("expected %q for %q, got %q", expected, source, val.Str)
	}
}

func expectBool(t *testing.T, source string, expected bool) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeBoolean {
		t.Fatalf("expected boolean for %q, got type=%v", source, val.Type)
	}
	if val.Bool != expected {
		t.Fatalf("expected %v for %q, got %v", expected, source, val.Bool)
	}
}

func expectUndefined(t *testing.T, source string) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeUndefined {
		t.Fatalf("expected undefined for %q, got type=%v", source, val.Type)
	}
}

func TestLiterals(t *testing.T) {
	expectNumber(t, "42", 42)
	expectNumber(t, "3.14", 3.14)
	expectString(t, `"hello"`, "hello")
	expectBool(t, "true", true)
	expectUndefined(t, "undefined")
}

func TestArithmeticAndConcat(t *testing.T) {
	expectNumber(t, "2 + 3 * 4", 14)
	expectNumber(t, "10 % 3", 1)
	expectNumber(t, "2 ** 10", 1024)
	expectString(t, `"num: " + 42`, "num: 42")
	expectString(t, `1 + "2"`, "12")
}

func TestComparisonsAndCoercion(t *testing.T) {
	expectBool(t, "1 < 2", true)
	expectBool(t, "1 == '1'", true)
	expectBool(t, "1 === '1'", false)
	expectBool(t, "null == undefined", true)
	expectBool(t, "null === undefined", false)
}

func TestLogicalAndNullish(t *testing.T) {
	expectNumber(t, "0 || 2", 2)
	expectNumber(t, "1 && 2", 2)
	expectNumber(t, "null ?? 42", 42)
	expectNumber(t, "0 ?? 42", 0)
}

func TestVariableDeclarationsAndScoping(t *testing.T) {
	expectNumber(t, "var x = 10; x = x + 1; x", 11)
	expectNumber(t, `
		let x = 1;
		{ let x = 2; }
		x;
	`, 1)
}

func TestConstAssignmentIsRejected(t *testing.T) {
	err := evalExpectError(t, "const x = 1; x = 2")
	if !strings.Contains(err.Error(), "constant") {
		t.Fatalf("expected constant assignment error, got: %v", err)
	}
}

func TestVarHoisting(t *testing.T) {
	expectUndefined(t, "var x; x;")
	expectNumber(t, "x = 5; var x; x;", 5)
}

func TestControlFlow(t *testing.T) {
	expectNumber(t, "var x; if (false) { x = 1 } else { x = 2 } x", 2)
	expectNumber(t, `
		var sum = 0;
		for (var i = 0; i < 5; i++) { sum = sum + i; }
		sum;
	`, 10)
	expectNumber(t, `
		var i = 0;
		do { i = i + 1; } while (i < 5);
		i;
	`, 5)
}

func TestFunctionsAndClosures(t *testing.T) {
	expectNumber(t, `
		function makeCounter() {
			var count = 0;
			return function() { count = count + 1; return count; };
		}
		var c = makeCounter();
		c(); c(); c();
	`, 3)
	expectNumber(t, "const add = (a, b) => a + b; add(2, 3);", 5)
}

func TestArraysAndObjects(t *testing.T) {
	expectNumber(t, "[1, 2, 3].length", 3)
	expectNumber(t, "var o = { a: 1, b: 2 }; o.a + o.b;", 3)
	expectNumber(t, "const [a, , b] = [1, 2, 3]; a + b;", 4)
}

func TestTryCatchThrow(t *testing.T) {
	expectString(t, `
		var msg;
		try {
			throw "boom";
		} catch (e) {
			msg = e;
		}
		msg;
	`, "boom")
}

func TestTryFinallyOverridesReturn(t *testing.T) {
	expectNumber(t, `
		function f() {
			try { return 1; } finally { return 2; }
		}
		f();
	`, 2)
}

// Strict mode: a "use strict" directive at the top of a function body
// must reject assignment to an identifier that was never declared, rather
// than silently creating an implicit global the way sloppy-mode code does.
func TestStrictModeRejectsUndeclaredAssignment(t *testing.T) {
	err := evalExpectError(t, `
		function f() {
			"use strict";
			undeclaredName = 1;
		}
		f();
	`)
	if !strings.Contains(err.Error(), "ReferenceError") {
		t.Fatalf("expected ReferenceError in strict mode, got: %v", err)
	}
}

func TestSloppyModeAllowsImplicitGlobal(t *testing.T) {
	expectNumber(t, `
		function f() {
			undeclaredName = 7;
		}
		f();
		undeclaredName;
	`, 7)
}

// Indirect eval runs against the calling execution's own environment (set
// up fresh by ExecProgram), not whatever stub might be reachable from the
// shared global scope.
func TestEvalRunsInCallingScope(t *testing.T) {
	expectNumber(t, `eval("1 + 2")`, 3)
}

// A TypeError raised by the evaluator itself (calling a non-function) is
// script-catchable and reports its kind in the message, the way any
// runtime-raised error should.
func TestCallingNonFunctionIsCatchableTypeError(t *testing.T) {
	expectString(t, `
		var name;
		try {
			var x = 5;
			x();
		} catch (e) {
			name = e.name;
		}
		name;
	`, "TypeError")
}
