package clusters

import (
	"cmp"
	"sync"

	"github.com/npillmayer/clusters/btree"
	"github.com/npillmayer/clusters/compare"
)

// Index is a sorted set of unique items.
type Index[T any] struct {
	mu   sync.Mutex
	tree *btree.Ordered[T, struct{}]
}

// NewIndex creates an empty index ordered by compare.Ordered.
func NewIndex[T cmp.Ordered]() *Index[T] {
	x, err := NewIndexWithConfig(OrderedConfig[T]{Comparator: compare.Ordered[T]{}})
	if err != nil {
		panic(err) // the default configuration is valid
	}
	return x
}

// NewIndexFrom creates an index holding items. Duplicates are dropped.
func NewIndexFrom[T cmp.Ordered](items ...T) *Index[T] {
	x := NewIndex[T]()
	x.AddAll(items...)
	return x
}

// NewIndexWithConfig creates an empty index.
func NewIndexWithConfig[T any](cfg OrderedConfig[T]) (*Index[T], error) {
	tcfg, err := cfg.tree()
	if err != nil {
		return nil, err
	}
	tree, err := btree.NewOrdered[T, struct{}](tcfg, cfg.Comparator)
	if err != nil {
		return nil, err
	}
	return &Index[T]{tree: tree}, nil
}

// Len returns the number of items.
func (x *Index[T]) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Len()
}

// Height returns the number of tree levels.
func (x *Index[T]) Height() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Height()
}

// IsEmpty reports whether the index holds no items.
func (x *Index[T]) IsEmpty() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.IsEmpty()
}

// Add inserts item. It returns false and leaves the index unchanged if an
// equal item is present.
func (x *Index[T]) Add(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Add(item, struct{}{})
}

// AddAll inserts items and returns how many of them were new.
func (x *Index[T]) AddAll(items ...T) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	added := 0
	for _, item := range items {
		if x.tree.Add(item, struct{}{}) {
			added++
		}
	}
	return added
}

// Set inserts item, replacing an equal item if present. It reports whether
// an item was replaced.
func (x *Index[T]) Set(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Set(item, struct{}{})
}

// Remove deletes the item equal to item.
func (x *Index[T]) Remove(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.tree.Remove(item)
	return ok
}

// Contains reports whether an item equal to item is present.
func (x *Index[T]) Contains(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Contains(item)
}

// Get returns the stored item equal to item.
func (x *Index[T]) Get(item T) (T, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.GetKey(item)
}

// Find looks up item with the given mode and returns the item it lands on.
// exists reports whether item itself is present, even when the mode moves
// past it or fails.
func (x *Index[T]) Find(item T, mode FindMode) (found T, ok, exists bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	found, _, ok, exists = x.tree.Find(item, mode)
	return found, ok, exists
}

// At returns the item at sort position pos.
func (x *Index[T]) At(pos int) (T, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	item, _, err := x.tree.At(pos)
	return item, err
}

// RemoveAt removes the item at sort position pos.
func (x *Index[T]) RemoveAt(pos int) (T, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	item, _, err := x.tree.RemoveAt(pos)
	return item, err
}

// First returns the smallest item.
func (x *Index[T]) First() (T, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	item, _, err := x.tree.First()
	return item, err
}

// Last returns the largest item.
func (x *Index[T]) Last() (T, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	item, _, err := x.tree.Last()
	return item, err
}

// Clear removes all items.
func (x *Index[T]) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree.Clear()
}

// Clone returns a deep copy of the index.
func (x *Index[T]) Clone() *Index[T] {
	x.mu.Lock()
	defer x.mu.Unlock()
	return &Index[T]{tree: x.tree.Clone()}
}

// CopyFrom replaces the items and the comparator of x with those of src.
func (x *Index[T]) CopyFrom(src *Index[T]) {
	if x == src {
		return
	}
	snapshot := src.Clone()
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree.CopyFrom(snapshot.tree)
}

// Each calls fn for every item in order until fn returns false.
func (x *Index[T]) Each(fn func(item T) bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree.Each(func(item T, _ struct{}) bool {
		return fn(item)
	})
}

// Items returns the items in order.
func (x *Index[T]) Items() []T {
	x.mu.Lock()
	defer x.mu.Unlock()
	items := make([]T, 0, x.tree.Len())
	x.tree.Each(func(item T, _ struct{}) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Check validates the internal tree structure and item order.
func (x *Index[T]) Check() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Check()
}

// WalkGroups visits the groups of the tree in pre-order.
func (x *Index[T]) WalkGroups(fn func(info btree.GroupInfo, items []T) bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree.WalkGroups(fn)
}

// --- Cursors ---------------------------------------------------------------

// IndexCursor walks an Index in order.
type IndexCursor[T any] struct {
	c *btree.OrderedCursor[T, struct{}]
}

// MoveNext advances to the next item. An unpositioned cursor moves to the
// smallest item.
func (c IndexCursor[T]) MoveNext() bool { return c.c.MoveNext() }

// MovePrevious steps back to the previous item.
func (c IndexCursor[T]) MovePrevious() bool { return c.c.MovePrevious() }

// First positions the cursor on the smallest item.
func (c IndexCursor[T]) First() bool { return c.c.First() }

// Last positions the cursor on the largest item.
func (c IndexCursor[T]) Last() bool { return c.c.Last() }

// Seek positions the cursor at sort position pos. LastPosition addresses
// the largest item.
func (c IndexCursor[T]) Seek(pos int) error { return c.c.Seek(pos) }

// Position returns the sort position of the cursor, -1 if unpositioned.
func (c IndexCursor[T]) Position() int { return c.c.Position() }

// HasCurrent reports whether the cursor is positioned on an item.
func (c IndexCursor[T]) HasCurrent() bool { return c.c.HasCurrent() }

// Closed reports whether the callback owning the cursor has returned.
func (c IndexCursor[T]) Closed() bool { return c.c.Closed() }

// Reset leaves the cursor unpositioned.
func (c IndexCursor[T]) Reset() { c.c.Reset() }

// Find positions the cursor by item, see FindMode.
func (c IndexCursor[T]) Find(item T, mode FindMode) (ok, exists bool) {
	return c.c.Find(item, mode)
}

// Current returns the current item.
func (c IndexCursor[T]) Current() (T, error) {
	return c.c.Key()
}

// RemoveCurrent removes the current item and moves on to the next one.
func (c IndexCursor[T]) RemoveCurrent() (T, error) {
	item, _, err := c.c.RemoveCurrent()
	return item, err
}

// Cursor calls fn with an unpositioned cursor while holding the lock.
func (x *Index[T]) Cursor(fn func(c IndexCursor[T]) error) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	c := x.tree.NewCursor()
	defer c.Close()
	return fn(IndexCursor[T]{c: c})
}

// Begin calls fn with a cursor on the smallest item.
func (x *Index[T]) Begin(fn func(c IndexCursor[T]) error) error {
	return x.Cursor(func(c IndexCursor[T]) error {
		c.First()
		return fn(c)
	})
}

// End calls fn with a cursor on the largest item.
func (x *Index[T]) End(fn func(c IndexCursor[T]) error) error {
	return x.Cursor(func(c IndexCursor[T]) error {
		c.Last()
		return fn(c)
	})
}

// CursorAt calls fn with a cursor on sort position pos. fn is not called if
// pos is out of range.
func (x *Index[T]) CursorAt(pos int, fn func(c IndexCursor[T]) error) error {
	return x.Cursor(func(c IndexCursor[T]) error {
		if err := c.Seek(pos); err != nil {
			return err
		}
		return fn(c)
	})
}

// FindCursor calls fn with a cursor positioned by Find(item, mode). If the
// find fails, the cursor is unpositioned; ok and exists are passed on.
func (x *Index[T]) FindCursor(item T, mode FindMode, fn func(c IndexCursor[T], ok, exists bool) error) error {
	return x.Cursor(func(c IndexCursor[T]) error {
		ok, exists := c.Find(item, mode)
		return fn(c, ok, exists)
	})
}
