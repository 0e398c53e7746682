package runtime

import "math"

// OrderedMap is the insertion-ordered hash table backing script Map and Set.
// It combines a hash index (for O(1) lookup) with a doubly-linked list
// threading entries in insertion order. Two invariants distinguish it from a
// fail-fast collection:
//
//   - An iterator created before a deletion keeps advancing through the
//     list and silently skips any entry tagged deleted; Delete unlinks the
//     entry from its neighbors' pointers but never rewrites the deleted
//     entry's own next pointer, so a cursor already parked there can still
//     reach whatever came after it.
//   - Clear tags every live entry deleted but leaves the links between
//     them intact. It detaches the index and swaps in a fresh sentinel
//     pair; the old chain is left dangling so any iterator walking it skips
//     the cleared entries and runs off the end via the old tail sentinel
//     instead of panicking or looping forever.
type OrderedMap struct {
	head, tail *mapNode
	index      map[mapKey]*mapNode
	size       int
}

type mapNode struct {
	key, value *Value
	hash       mapKey
	deleted    bool
	sentinel   bool
	prev, next *mapNode
}

// mapKey is a comparable projection of a Value under SameValueZero equality
// (+0 and -0 collapse together, NaN equals itself), suitable as a Go map key.
type mapKey struct {
	kind ValueType
	num  float64
	str  string
	obj  *Object
	sym  *Symbol
	b    bool
}

func hashOf(v *Value) mapKey {
	if v == nil {
		return mapKey{kind: TypeUndefined}
	}
	switch v.Type {
	case TypeBoolean:
		return mapKey{kind: TypeBoolean, b: v.Bool}
	case TypeNumber:
		n := v.Number
		if math.IsNaN(n) {
			// NaN never compares equal as a float64 Go map key, so it is
			// tagged through str instead, giving every NaN the same key.
			return mapKey{kind: TypeNumber, str: "NaN"}
		}
		if n == 0 {
			n = 0 // normalize -0 to +0
		}
		return mapKey{kind: TypeNumber, num: n}
	case TypeString:
		return mapKey{kind: TypeString, str: v.Str}
	case TypeObject:
		return mapKey{kind: TypeObject, obj: v.Object}
	case TypeSymbol:
		return mapKey{kind: TypeSymbol, sym: v.Symbol}
	default:
		return mapKey{kind: v.Type}
	}
}

// NewOrderedMap creates an empty ordered map with live head/tail sentinels.
func NewOrderedMap() *OrderedMap {
	head := &mapNode{sentinel: true}
	tail := &mapNode{sentinel: true}
	head.next = tail
	tail.prev = head
	return &OrderedMap{head: head, tail: tail, index: make(map[mapKey]*mapNode)}
}

// Set inserts or updates key -> value, preserving original insertion order
// on update.
func (m *OrderedMap) Set(key, value *Value) {
	h := hashOf(key)
	if e, ok := m.index[h]; ok {
		e.value = value
		return
	}
	e := &mapNode{key: key, value: value, hash: h}
	last := m.tail.prev
	last.next = e
	e.prev = last
	e.next = m.tail
	m.tail.prev = e
	m.index[h] = e
	m.size++
}

// Get returns the value stored for key, if present and live.
func (m *OrderedMap) Get(key *Value) (*Value, bool) {
	if e, ok := m.index[hashOf(key)]; ok {
		return e.value, true
	}
	return nil, false
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key *Value) bool {
	_, ok := m.index[hashOf(key)]
	return ok
}

// Delete removes key. It unlinks the entry from its neighbors but leaves
// the entry's own next pointer intact for any iterator paused on it.
func (m *OrderedMap) Delete(key *Value) bool {
	h := hashOf(key)
	e, ok := m.index[h]
	if !ok {
		return false
	}
	delete(m.index, h)
	e.deleted = true
	e.prev.next = e.next
	e.next.prev = e.prev
	m.size--
	return true
}

// Clear empties the map. Each old entry is tagged deleted, as Delete does,
// but no link is rewritten: it swaps in a fresh sentinel pair and lets the
// old chain dangle, so an iterator already in flight skips the cleared
// entries and ends at the old tail sentinel.
func (m *OrderedMap) Clear() {
	for e := m.head.next; e != nil && !e.sentinel; e = e.next {
		e.deleted = true
	}
	m.index = make(map[mapKey]*mapNode)
	head := &mapNode{sentinel: true}
	tail := &mapNode{sentinel: true}
	head.next = tail
	tail.prev = head
	m.head = head
	m.tail = tail
	m.size = 0
}

// Size returns the number of live entries.
func (m *OrderedMap) Size() int { return m.size }

// Iterator yields live entries in insertion order, tolerating concurrent
// deletion and Clear on the map it was created from.
type MapIterator struct {
	cur *mapNode
}

// NewIterator returns an iterator positioned before the first entry.
func (m *OrderedMap) NewIterator() *MapIterator {
	return &MapIterator{cur: m.head}
}

// Next advances the iterator, skipping deleted entries and stopping at the
// first sentinel it reaches (its own map's tail, or a dangling former tail
// left behind by Clear).
func (it *MapIterator) Next() (key, value *Value, done bool) {
	for {
		it.cur = it.cur.next
		if it.cur == nil || it.cur.sentinel {
			return nil, nil, true
		}
		if it.cur.deleted {
			continue
		}
		return it.cur.key, it.cur.value, false
	}
}

// ForEach walks live entries in insertion order. The callback may not
// delete arbitrary entries safely across calls other than the current one;
// ForEach itself tolerates deletion of the current entry mid-iteration.
func (m *OrderedMap) ForEach(fn func(key, value *Value)) {
	it := m.NewIterator()
	for {
		k, v, done := it.Next()
		if done {
			return
		}
		fn(k, v)
	}
}
