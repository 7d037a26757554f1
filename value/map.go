package value

import "slices"

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is a string-keyed mapping that remembers insertion order.
// Setting an existing key replaces its value in place.
type Map struct {
	keys []string
	vals map[string]Value
}

func NewMap() *Map {
	return &Map{vals: map[string]Value{}}
}

// Set stores v under key and returns the map for chaining.
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = v

	return m
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	v, ok := m.vals[key]

	return v, ok
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Entries returns the pairs in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}

	out := make([]Entry, len(m.keys))
	for i, k := range m.keys {
		out[i] = Entry{Key: k, Value: m.vals[k]}
	}

	return out
}

// Clone returns a shallow copy: the key order and the top-level values are copied,
// nested containers are shared.
func (m *Map) Clone() *Map {
	out := NewMap()
	for _, e := range m.Entries() {
		out.Set(e.Key, e.Value)
	}

	return out
}
