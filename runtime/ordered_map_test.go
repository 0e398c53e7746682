package runtime

import "testing"

func TestOrderedMapSetGetHas(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))

	if v, ok := m.Get(NewString("a")); !ok || v.Number != 1 {
		t.Errorf("Get('a'): expected 1, got %v ok=%v", v, ok)
	}
	if !m.Has(NewString("b")) {
		t.Error("Has('b') should be true")
	}
	if m.Has(NewString("c")) {
		t.Error("Has('c') should be false")
	}
	if m.Size() != 2 {
		t.Errorf("Size: expected 2, got %d", m.Size())
	}
}

func TestOrderedMapSetOverwritesWithoutReordering(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))
	m.Set(NewString("a"), NewNumber(99))

	var keys []string
	m.ForEach(func(k, v *Value) { keys = append(keys, k.Str) })
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("re-setting an existing key should not move it: got %v", keys)
	}
	if v, _ := m.Get(NewString("a")); v.Number != 99 {
		t.Errorf("Get('a') after overwrite: expected 99, got %v", v.Number)
	}
}

func TestOrderedMapSameValueZeroKeys(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NaN, NewString("nan-value"))
	if !m.Has(NaN) {
		t.Error("NaN should equal itself as a map key (SameValueZero)")
	}

	m.Set(NewNumber(0), NewString("zero"))
	if v, ok := m.Get(NewNumber(-0.0)); !ok || v.Str != "zero" {
		t.Error("+0 and -0 should collide as the same map key (SameValueZero)")
	}
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("a"), NewNumber(1))
	if !m.Delete(NewString("a")) {
		t.Error("Delete('a') should return true")
	}
	if m.Delete(NewString("a")) {
		t.Error("Delete('a') twice should return false the second time")
	}
	if m.Has(NewString("a")) {
		t.Error("deleted key should no longer be present")
	}
	if m.Size() != 0 {
		t.Errorf("Size after delete: expected 0, got %d", m.Size())
	}
}

func TestOrderedMapForEachOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("z"), NewNumber(1))
	m.Set(NewString("a"), NewNumber(2))
	m.Set(NewString("m"), NewNumber(3))

	var keys []string
	m.ForEach(func(k, v *Value) { keys = append(keys, k.Str) })
	want := []string{"z", "a", "m"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("ForEach order[%d]: expected %q, got %q", i, k, keys[i])
		}
	}
}

// TestOrderedMapIteratorSurvivesDeletion pins the documented invariant that an
// iterator created before a deletion keeps advancing and simply skips the
// deleted entry, rather than panicking or silently truncating the walk.
func TestOrderedMapIteratorSurvivesDeletion(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))
	m.Set(NewString("c"), NewNumber(3))

	it := m.NewIterator()
	k, _, done := it.Next()
	if done || k.Str != "a" {
		t.Fatalf("first entry: expected 'a', got %v done=%v", k, done)
	}

	m.Delete(NewString("b"))

	var rest []string
	for {
		k, _, done := it.Next()
		if done {
			break
		}
		rest = append(rest, k.Str)
	}
	if len(rest) != 1 || rest[0] != "c" {
		t.Errorf("iterator should skip the deleted entry and continue: got %v", rest)
	}
}

// TestOrderedMapClearDoesNotDisturbInFlightIterator pins Clear's documented
// behavior of tagging the old entries deleted and swapping in a fresh
// sentinel pair, so an existing iterator ends instead of yielding cleared
// entries.
func TestOrderedMapClearDoesNotDisturbInFlightIterator(t *testing.T) {
	m := NewOrderedMap()
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))

	it := m.NewIterator()
	it.Next() // parked on "a"

	m.Clear()
	if m.Size() != 0 {
		t.Errorf("Size after Clear: expected 0, got %d", m.Size())
	}
	if m.Has(NewString("a")) {
		t.Error("Has after Clear should be false")
	}

	_, _, done := it.Next()
	if !done {
		t.Error("an iterator started before Clear should terminate rather than yield entries removed by Clear")
	}
}
