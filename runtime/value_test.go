package runtime

import "testing"

func TestObjectGetSetSymbol(t *testing.T) {
	sym := &Symbol{Description: "test"}
	obj := NewOrdinaryObject(nil)

	if v := obj.GetSymbol(sym); v != nil {
		t.Errorf("GetSymbol for an unset symbol: expected nil, got %v", v)
	}

	obj.SetSymbol(sym, NewString("value"))
	if v := obj.GetSymbol(sym); v == nil || v.Str != "value" {
		t.Errorf("GetSymbol after SetSymbol: expected 'value', got %v", v)
	}
}

func TestObjectSymbolPropertiesDoNotCollideWithStringKeys(t *testing.T) {
	sym := &Symbol{Description: "Symbol(x)"}
	obj := NewOrdinaryObject(nil)
	obj.Set("Symbol(x)", NewString("string-keyed"))
	obj.SetSymbol(sym, NewString("symbol-keyed"))

	if v := obj.Get("Symbol(x)"); v.Str != "string-keyed" {
		t.Errorf("string key: expected 'string-keyed', got %v", v)
	}
	if v := obj.GetSymbol(sym); v.Str != "symbol-keyed" {
		t.Errorf("symbol key: expected 'symbol-keyed', got %v", v)
	}
}

func TestObjectGetSymbolWalksPrototypeChain(t *testing.T) {
	sym := &Symbol{Description: "test"}
	proto := NewOrdinaryObject(nil)
	proto.SetSymbol(sym, NewString("inherited"))
	obj := NewOrdinaryObject(proto)

	if v := obj.GetSymbol(sym); v == nil || v.Str != "inherited" {
		t.Errorf("GetSymbol should walk the prototype chain: got %v", v)
	}
}

func TestOwnKeysPreservesInsertionOrder(t *testing.T) {
	obj := NewOrdinaryObject(nil)
	obj.Set("z", NewNumber(1))
	obj.Set("a", NewNumber(2))
	obj.DeleteProperty("z")
	obj.Set("z", NewNumber(3))

	keys := obj.OwnKeys()
	want := []string{"a", "z"}
	if len(keys) != len(want) {
		t.Fatalf("OwnKeys: expected %v, got %v", want, keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("OwnKeys[%d]: expected %q, got %q", i, k, keys[i])
		}
	}
}

func TestCausedErrorUnwraps(t *testing.T) {
	inner := &CausedError{Msg: "outer failure", Cause: errString("disk full")}
	if inner.Error() != "outer failure" {
		t.Errorf("Error(): expected 'outer failure', got %q", inner.Error())
	}
	if inner.Unwrap().Error() != "disk full" {
		t.Errorf("Unwrap(): expected 'disk full', got %q", inner.Unwrap().Error())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
