package builtins

import (
	"testing"

	"github.com/example/jsgo/runtime"
)

func setupRegExp() {
	createObjectConstructor()
	createArrayConstructor(ObjectPrototype)
	createRegExpConstructor(ObjectPrototype)
}

func TestRegExpTest(t *testing.T) {
	setupRegExp()
	re, err := createRegExpObject("[0-9]+", "")
	if err != nil {
		t.Fatal(err)
	}

	result, _ := regexpTest(re, []*runtime.Value{runtime.NewString("hello123")})
	if !result.Bool {
		t.Error("test('hello123') should match")
	}

	result, _ = regexpTest(re, []*runtime.Value{runtime.NewString("hello")})
	if result.Bool {
		t.Error("test('hello') should not match")
	}
}

func TestRegExpExec(t *testing.T) {
	setupRegExp()
	re, err := createRegExpObject("(\\w+)@(\\w+)", "")
	if err != nil {
		t.Fatal(err)
	}

	result, _ := regexpExec(re, []*runtime.Value{runtime.NewString("user@host")})
	if result.Type == runtime.TypeNull {
		t.Fatal("exec should return match")
	}
	obj := toObject(result)
	if obj == nil || len(obj.ArrayData) != 3 {
		t.Fatalf("expected 3 groups, got %v", obj)
	}
	if obj.ArrayData[0].Str != "user@host" {
		t.Errorf("full match: expected 'user@host', got %q", obj.ArrayData[0].Str)
	}
	if obj.ArrayData[1].Str != "user" {
		t.Errorf("group 1: expected 'user', got %q", obj.ArrayData[1].Str)
	}
}

func TestRegExpExecNoMatch(t *testing.T) {
	setupRegExp()
	re, _ := createRegExpObject("xyz", "")
	result, _ := regexpExec(re, []*runtime.Value{runtime.NewString("abc")})
	if result.Type != runtime.TypeNull {
		t.Error("exec should return null for no match")
	}
}

func TestRegExpToString(t *testing.T) {
	setupRegExp()
	re, _ := createRegExpObject("abc", "gi")
	result, _ := regexpToString(re, nil)
	if result.Str != "/abc/gi" {
		t.Errorf("toString: expected '/abc/gi', got %q", result.Str)
	}
}

func TestRegExpGlobalExecAdvancesLastIndex(t *testing.T) {
	setupRegExp()
	re, _ := createRegExpObject("\\d+", "g")
	obj := toObject(re)

	first, _ := regexpExec(re, []*runtime.Value{runtime.NewString("a1 b22 c333")})
	if toObject(first).ArrayData[0].Str != "1" {
		t.Fatalf("first exec: expected '1', got %v", first)
	}
	if obj.Get("lastIndex").Number != 2 {
		t.Errorf("lastIndex after first exec: expected 2, got %v", obj.Get("lastIndex").Number)
	}

	second, _ := regexpExec(re, []*runtime.Value{runtime.NewString("a1 b22 c333")})
	if toObject(second).ArrayData[0].Str != "22" {
		t.Fatalf("second exec: expected '22', got %v", second)
	}

	third, _ := regexpExec(re, []*runtime.Value{runtime.NewString("a1 b22 c333")})
	if toObject(third).ArrayData[0].Str != "333" {
		t.Fatalf("third exec: expected '333', got %v", third)
	}

	fourth, _ := regexpExec(re, []*runtime.Value{runtime.NewString("a1 b22 c333")})
	if fourth.Type != runtime.TypeNull {
		t.Error("exec after exhausting all matches should return null")
	}
	if obj.Get("lastIndex").Number != 0 {
		t.Error("lastIndex should reset to 0 once a global exec runs out of matches")
	}
}

func TestRegExpCaseInsensitive(t *testing.T) {
	setupRegExp()
	re, _ := createRegExpObject("hello", "i")
	result, _ := regexpTest(re, []*runtime.Value{runtime.NewString("HELLO")})
	if !result.Bool {
		t.Error("case insensitive test should match")
	}
}
