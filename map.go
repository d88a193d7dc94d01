package clusters

import (
	"cmp"
	"fmt"
	"sync"

	"github.com/npillmayer/clusters/btree"
	"github.com/npillmayer/clusters/compare"
)

// MapCursor walks a Map in key order, see btree.OrderedCursor.
type MapCursor[K, V any] = btree.OrderedCursor[K, V]

// Map is a sorted map from unique keys to values.
type Map[K, V any] struct {
	mu   sync.Mutex
	tree *btree.Ordered[K, V]
}

// NewMap creates an empty map ordered by compare.Ordered.
func NewMap[K cmp.Ordered, V any]() *Map[K, V] {
	m, err := NewMapWithConfig[K, V](OrderedConfig[K]{Comparator: compare.Ordered[K]{}})
	if err != nil {
		panic(err) // the default configuration is valid
	}
	return m
}

// NewMapWithConfig creates an empty map.
func NewMapWithConfig[K, V any](cfg OrderedConfig[K]) (*Map[K, V], error) {
	tcfg, err := cfg.tree()
	if err != nil {
		return nil, err
	}
	tree, err := btree.NewOrdered[K, V](tcfg, cfg.Comparator)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{tree: tree}, nil
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Len()
}

// Height returns the number of tree levels.
func (m *Map[K, V]) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Height()
}

// IsEmpty reports whether the map holds no keys.
func (m *Map[K, V]) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.IsEmpty()
}

// Add inserts key with value. It returns false and leaves the map
// unchanged if key is present.
func (m *Map[K, V]) Add(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Add(key, value)
}

// Set stores value for key, inserting key if absent. It reports whether an
// existing value was replaced.
func (m *Map[K, V]) Set(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Set(key, value)
}

// Get returns the value for key, or ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.tree.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return v, nil
}

// TryGet returns the value for key and whether key is present.
func (m *Map[K, V]) TryGet(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Get(key)
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Contains(key)
}

// Remove deletes key.
func (m *Map[K, V]) Remove(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tree.Remove(key)
	return ok
}

// Find looks up key with the given mode and returns the entry it lands on.
// exists reports whether key itself is present.
func (m *Map[K, V]) Find(key K, mode FindMode) (k K, v V, ok, exists bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Find(key, mode)
}

// At returns the entry at sort position pos.
func (m *Map[K, V]) At(pos int) (K, V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.At(pos)
}

// RemoveAt removes the entry at sort position pos.
func (m *Map[K, V]) RemoveAt(pos int) (K, V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.RemoveAt(pos)
}

// First returns the entry with the smallest key.
func (m *Map[K, V]) First() (K, V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.First()
}

// Last returns the entry with the largest key.
func (m *Map[K, V]) Last() (K, V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Last()
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.Clear()
}

// Clone returns a deep copy of the map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Map[K, V]{tree: m.tree.Clone()}
}

// CopyFrom replaces the entries and the comparator of m with those of src.
func (m *Map[K, V]) CopyFrom(src *Map[K, V]) {
	if m == src {
		return
	}
	snapshot := src.Clone()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.CopyFrom(snapshot.tree)
}

// Each calls fn for every entry in key order until fn returns false.
func (m *Map[K, V]) Each(fn func(key K, value V) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.Each(fn)
}

// Keys returns the keys in order.
func (m *Map[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]K, 0, m.tree.Len())
	m.tree.Each(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Check validates the internal tree structure and key order.
func (m *Map[K, V]) Check() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Check()
}

// WalkGroups visits the groups of the tree in pre-order.
func (m *Map[K, V]) WalkGroups(fn func(info btree.GroupInfo, keys []K) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.WalkGroups(fn)
}

// Cursor calls fn with an unpositioned cursor while holding the lock.
func (m *Map[K, V]) Cursor(fn func(c *MapCursor[K, V]) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.tree.NewCursor()
	defer c.Close()
	return fn(c)
}

// Begin calls fn with a cursor on the smallest key.
func (m *Map[K, V]) Begin(fn func(c *MapCursor[K, V]) error) error {
	return m.Cursor(func(c *MapCursor[K, V]) error {
		c.First()
		return fn(c)
	})
}

// End calls fn with a cursor on the largest key.
func (m *Map[K, V]) End(fn func(c *MapCursor[K, V]) error) error {
	return m.Cursor(func(c *MapCursor[K, V]) error {
		c.Last()
		return fn(c)
	})
}

// CursorAt calls fn with a cursor on sort position pos. fn is not called if
// pos is out of range.
func (m *Map[K, V]) CursorAt(pos int, fn func(c *MapCursor[K, V]) error) error {
	return m.Cursor(func(c *MapCursor[K, V]) error {
		if err := c.Seek(pos); err != nil {
			return err
		}
		return fn(c)
	})
}

// FindCursor calls fn with a cursor positioned by Find(key, mode).
func (m *Map[K, V]) FindCursor(key K, mode FindMode, fn func(c *MapCursor[K, V], ok, exists bool) error) error {
	return m.Cursor(func(c *MapCursor[K, V]) error {
		ok, exists := c.Find(key, mode)
		return fn(c, ok, exists)
	})
}
