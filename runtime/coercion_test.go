package runtime

import (
	"math"
	"testing"
)

func TestStringToNumberRadixPrefixes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0xFF", 255},
		{"0o17", 15},
		{"0b101", 5},
		{"  0x10  ", 16},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"", 0},
		{"not a number", math.NaN()},
	}
	for _, tt := range tests {
		got := StringToNumber(tt.in)
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("StringToNumber(%q): expected NaN, got %v", tt.in, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("StringToNumber(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestValueToNumberUsesObjectToNumberHook(t *testing.T) {
	old := ObjectToNumberHook
	defer func() { ObjectToNumberHook = old }()

	obj := NewOrdinaryObject(nil)
	ObjectToNumberHook = func(v *Value) float64 { return 42 }

	if n := NewObject(obj).ToNumber(); n != 42 {
		t.Errorf("ToNumber() with hook installed: expected 42, got %v", n)
	}

	ObjectToNumberHook = nil
	if n := NewObject(obj).ToNumber(); !math.IsNaN(n) {
		t.Errorf("ToNumber() with no hook installed: expected NaN, got %v", n)
	}
}

func TestValueToNumberString(t *testing.T) {
	if n := NewString("0x1A").ToNumber(); n != 26 {
		t.Errorf("ToNumber('0x1A'): expected 26, got %v", n)
	}
}
