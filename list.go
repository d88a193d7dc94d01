package clusters

import (
	"sync"

	"github.com/npillmayer/clusters/btree"
)

// ListCursor walks a List, see btree.ListCursor.
type ListCursor[T any] = btree.ListCursor[T]

// List is a sequence of items addressed by 0-based position.
//
// The zero value is not usable; create lists with NewList.
type List[T any] struct {
	mu   sync.Mutex
	tree *btree.List[T]
}

// NewList creates an empty list with the default group size.
func NewList[T any]() *List[T] {
	l, err := NewListWithConfig[T](Config{})
	if err != nil {
		panic(err) // the default configuration is valid
	}
	return l
}

// NewListWithConfig creates an empty list.
func NewListWithConfig[T any](cfg Config) (*List[T], error) {
	tree, err := btree.NewList[T](btree.Config{GroupSize: cfg.GroupSize})
	if err != nil {
		return nil, err
	}
	return &List[T]{tree: tree}, nil
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Len()
}

// Height returns the number of tree levels.
func (l *List[T]) Height() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Height()
}

// IsEmpty reports whether the list holds no items.
func (l *List[T]) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.IsEmpty()
}

// Append adds items after the last item.
func (l *List[T]) Append(items ...T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range items {
		l.tree.Append(item)
	}
}

// InsertAt inserts item at pos, which may equal Len.
func (l *List[T]) InsertAt(pos int, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.InsertAt(pos, item)
}

// At returns the item at pos.
func (l *List[T]) At(pos int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.At(pos)
}

// SetAt replaces the item at pos.
func (l *List[T]) SetAt(pos int, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.SetAt(pos, item)
}

// RemoveAt removes and returns the item at pos.
func (l *List[T]) RemoveAt(pos int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.RemoveAt(pos)
}

// Pop removes and returns the last item.
func (l *List[T]) Pop() (T, error) {
	return l.RemoveAt(LastPosition)
}

// First returns the first item.
func (l *List[T]) First() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.First()
}

// Last returns the last item.
func (l *List[T]) Last() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Last()
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.Clear()
}

// Clone returns a deep copy of the list.
func (l *List[T]) Clone() *List[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &List[T]{tree: l.tree.Clone()}
}

// CopyFrom replaces the items of l with copies of the items of src. src is
// copied under its own lock first, then installed under the lock of l.
func (l *List[T]) CopyFrom(src *List[T]) {
	if l == src {
		return
	}
	snapshot := src.Clone()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.CopyFrom(snapshot.tree)
}

// Each calls fn for every item in order until fn returns false. The list
// is locked during the walk.
func (l *List[T]) Each(fn func(item T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.Each(fn)
}

// Items returns the items as a slice.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]T, 0, l.tree.Len())
	l.tree.Each(func(item T) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Check validates the internal tree structure.
func (l *List[T]) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tree.Check()
}

// WalkGroups visits the groups of the tree in pre-order.
func (l *List[T]) WalkGroups(fn func(info btree.GroupInfo, items []T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.WalkGroups(fn)
}

// Cursor calls fn with an unpositioned cursor while holding the lock.
func (l *List[T]) Cursor(fn func(c *ListCursor[T]) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := l.tree.NewCursor()
	defer c.Close()
	return fn(c)
}

// Begin calls fn with a cursor on the first item. On an empty list the
// cursor is unpositioned.
func (l *List[T]) Begin(fn func(c *ListCursor[T]) error) error {
	return l.Cursor(func(c *ListCursor[T]) error {
		c.First()
		return fn(c)
	})
}

// End calls fn with a cursor on the last item. On an empty list the cursor
// is unpositioned.
func (l *List[T]) End(fn func(c *ListCursor[T]) error) error {
	return l.Cursor(func(c *ListCursor[T]) error {
		c.Last()
		return fn(c)
	})
}

// CursorAt calls fn with a cursor on the item at pos. fn is not called if
// pos is out of range.
func (l *List[T]) CursorAt(pos int, fn func(c *ListCursor[T]) error) error {
	return l.Cursor(func(c *ListCursor[T]) error {
		if err := c.Seek(pos); err != nil {
			return err
		}
		return fn(c)
	})
}
