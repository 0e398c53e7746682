package builtins

import (
	"testing"

	"github.com/example/jsgo/runtime"
)

func TestSymbolConstructor(t *testing.T) {
	result, err := symbolConstructorCall(runtime.Undefined, []*runtime.Value{runtime.NewString("test")})
	if err != nil {
		t.Fatal(err)
	}
	if result.Type != runtime.TypeSymbol {
		t.Error("expected symbol type")
	}
	if result.Symbol.Description != "test" {
		t.Errorf("description: expected 'test', got %q", result.Symbol.Description)
	}
}

func TestSymbolFor(t *testing.T) {
	// Reset registry
	symbolRegistry = make(map[string]*runtime.Symbol)

	s1, _ := symbolFor(runtime.Undefined, []*runtime.Value{runtime.NewString("shared")})
	s2, _ := symbolFor(runtime.Undefined, []*runtime.Value{runtime.NewString("shared")})
	if s1.Symbol != s2.Symbol {
		t.Error("Symbol.for should return same symbol for same key")
	}

	s3, _ := symbolFor(runtime.Undefined, []*runtime.Value{runtime.NewString("other")})
	if s1.Symbol == s3.Symbol {
		t.Error("Symbol.for should return different symbols for different keys")
	}
}

func TestSymbolKeyFor(t *testing.T) {
	symbolRegistry = make(map[string]*runtime.Symbol)

	s1, _ := symbolFor(runtime.Undefined, []*runtime.Value{runtime.NewString("test")})
	key, _ := symbolKeyFor(runtime.Undefined, []*runtime.Value{s1})
	if key.Str != "test" {
		t.Errorf("Symbol.keyFor: expected 'test', got %q", key.Str)
	}

	// Non-registered symbol
	s2, _ := symbolConstructorCall(runtime.Undefined, []*runtime.Value{runtime.NewString("local")})
	key, _ = symbolKeyFor(runtime.Undefined, []*runtime.Value{s2})
	if key.Type != runtime.TypeUndefined {
		t.Error("Symbol.keyFor for non-registered symbol should return undefined")
	}
}

func TestWellKnownSymbols(t *testing.T) {
	createSymbolConstructor(nil)

	if SymIterator == nil {
		t.Error("Symbol.iterator should be defined")
	}
	if SymToPrimitive == nil {
		t.Error("Symbol.toPrimitive should be defined")
	}
	if SymHasInstance == nil {
		t.Error("Symbol.hasInstance should be defined")
	}
	if SymToStringTag == nil {
		t.Error("Symbol.toStringTag should be defined")
	}
	if SymIsConcatSpreadable == nil {
		t.Error("Symbol.isConcatSpreadable should be defined")
	}
}

func TestObjectSymbolProperties(t *testing.T) {
	createSymbolConstructor(nil)

	obj := runtime.NewOrdinaryObject(nil)
	if v := obj.GetSymbol(SymIterator); v != nil {
		t.Errorf("GetSymbol on an object with no symbol properties: expected nil, got %v", v)
	}

	obj.SetSymbol(SymIterator, runtime.NewString("custom"))
	v := obj.GetSymbol(SymIterator)
	if v == nil || v.Str != "custom" {
		t.Errorf("GetSymbol after SetSymbol: expected 'custom', got %v", v)
	}

	// A string key of the same spelling never collides with the symbol key.
	obj.Set("Symbol(Symbol.iterator)", runtime.NewString("unrelated"))
	if v := obj.GetSymbol(SymIterator); v == nil || v.Str != "custom" {
		t.Error("symbol-keyed property must not collide with a same-named string key")
	}

	child := runtime.NewOrdinaryObject(obj)
	if v := child.GetSymbol(SymIterator); v == nil || v.Str != "custom" {
		t.Error("GetSymbol should walk the prototype chain")
	}
}
