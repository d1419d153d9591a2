package counter

import (
	"fmt"
	"iter"
	"maps"
)

// Map is a map whose Get returns a stored default instead of the zero
// value when the key is missing.
type Map[K comparable, V any] struct {
	entries      map[K]V
	defaultValue V
}

// NewMap creates an empty map that reports defaultValue for missing keys
func NewMap[K comparable, V any](defaultValue V) *Map[K, V] {
	return &Map[K, V]{
		entries:      make(map[K]V),
		defaultValue: defaultValue,
	}
}

// Get returns the value stored for key, or the default if there is none.
// It never inserts the key.
func (m *Map[K, V]) Get(key K) V {
	if v, ok := m.entries[key]; ok {
		return v
	}
	return m.defaultValue
}

// Set stores value for key
func (m *Map[K, V]) Set(key K, value V) {
	m.entries[key] = value
}

// Has reports whether key has a stored value
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of stored keys
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// All iterates over the stored entries in no particular order
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return maps.All(m.entries)
}

// Counter counts occurrences of keys. Counts only ever grow: Inc and Add
// are the only ways to change them.
type Counter[K comparable] struct {
	counts *Map[K, int]
}

// New creates an empty counter
func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: NewMap[K](0)}
}

// Get returns the count of key, 0 if it was never seen
func (c *Counter[K]) Get(key K) int {
	return c.counts.Get(key)
}

// Has reports whether key has been counted
func (c *Counter[K]) Has(key K) bool {
	return c.counts.Has(key)
}

// Len returns the number of distinct keys
func (c *Counter[K]) Len() int {
	return c.counts.Len()
}

// All iterates over keys and counts in no particular order
func (c *Counter[K]) All() iter.Seq2[K, int] {
	return c.counts.All()
}

// Inc adds one to the count of key
func (c *Counter[K]) Inc(key K) {
	c.Add(key, 1)
}

// Add adds n to the count of key.
func (c *Counter[K]) Add(key K, n int) {
	if n < 0 {
		panic(fmt.Sprintf("count (%d) is negative", n))
	}
	c.counts.Set(key, c.counts.Get(key)+n)
}
