package btree

import "fmt"

// pointer addresses a slot of a group: a child of a parent group or an item
// of a leaf group.
type pointer[E any] struct {
	g   group[E]
	pos int
}

// cursor keeps one pointer per level, from the root down to a leaf. The
// stack is resized to the tree height on every seek.
type cursor[E any] struct {
	tree  *core[E] // nil after Close
	stack []pointer[E]
	valid bool // positioned on an item
}

func (c *cursor[E]) fit() {
	h := max(c.tree.height(), 1)
	if cap(c.stack) < h {
		c.stack = make([]pointer[E], h)
	}
	c.stack = c.stack[:h]
}

func (c *cursor[E]) top() *pointer[E] {
	return &c.stack[len(c.stack)-1]
}

// seek positions the cursor at item position pos. It leaves the cursor
// unpositioned and returns false if pos is out of range.
func (c *cursor[E]) seek(pos int) bool {
	c.valid = false
	c.fit()
	g := c.tree.root
	if g == nil {
		return false
	}
	if pos == LastPosition {
		pos = g.itemCount() - 1
	}
	if pos < 0 || pos >= g.itemCount() {
		return false
	}
	for i := 0; i < len(c.stack)-1; i++ {
		p := g.(*parentGroup[E])
		idx, local := p.locate(pos)
		c.stack[i] = pointer[E]{g: g, pos: idx}
		g, pos = p.children[idx], local
	}
	c.stack[len(c.stack)-1] = pointer[E]{g: g, pos: pos}
	c.valid = true
	return true
}

// position computes the item position of the cursor from the item counts
// of the groups left of the pointer path.
func (c *cursor[E]) position() int {
	if !c.valid {
		return -1
	}
	pos := 0
	for _, ptr := range c.stack[:len(c.stack)-1] {
		pos += ptr.g.(*parentGroup[E]).offsetOf(ptr.pos)
	}
	return pos + c.top().pos
}

func (c *cursor[E]) current() E {
	top := c.top()
	return top.g.getAt(top.pos)
}

// descend resets the pointers below level i to the first (or last) slot of
// the groups selected by the pointers above.
func (c *cursor[E]) descend(i int, toLast bool) {
	for ; i < len(c.stack); i++ {
		parent := c.stack[i-1].g.(*parentGroup[E])
		child := parent.children[c.stack[i-1].pos]
		pos := 0
		if toLast {
			pos = child.childCount() - 1
		}
		c.stack[i] = pointer[E]{g: child, pos: pos}
	}
}

func (c *cursor[E]) moveNext() bool {
	if !c.valid {
		return c.seek(0)
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		ptr := &c.stack[i]
		if ptr.pos+1 < ptr.g.childCount() {
			ptr.pos++
			c.descend(i+1, false)
			return true
		}
	}
	c.valid = false
	return false
}

func (c *cursor[E]) movePrevious() bool {
	if !c.valid {
		return false
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		ptr := &c.stack[i]
		if ptr.pos > 0 {
			ptr.pos--
			c.descend(i+1, true)
			return true
		}
	}
	c.valid = false
	return false
}

func (c *cursor[E]) check() error {
	if c.tree == nil {
		return ErrCursorClosed
	}
	if !c.valid {
		return ErrNoCurrent
	}
	return nil
}

// removeCurrent removes the current item and positions the cursor on the
// item following it, if any.
func (c *cursor[E]) removeCurrent() (E, error) {
	var zero E
	if err := c.check(); err != nil {
		return zero, err
	}
	pos := c.position()
	item, err := c.tree.removeAt(pos)
	if err != nil {
		return zero, err
	}
	c.seek(pos)
	tracer().Debugf("cluster: cursor re-seeked to %d after removal", pos)
	return item, nil
}

func (c *cursor[E]) close() {
	c.tree = nil
	c.stack = nil
	c.valid = false
}

// --- List cursors ----------------------------------------------------------

// ListCursor iterates a List and edits it at the current position.
//
// A cursor starts unpositioned: MoveNext lands on the first item,
// MovePrevious fails. Moving past either end leaves the cursor
// unpositioned again. Structural changes to the tree not made through the
// cursor invalidate it; Reset or a seek recovers.
type ListCursor[T any] struct {
	cur cursor[T]
}

// NewCursor returns an unpositioned cursor on t.
func (t *List[T]) NewCursor() *ListCursor[T] {
	return &ListCursor[T]{cur: cursor[T]{tree: &t.core}}
}

// Close detaches the cursor from its tree. Later calls fail.
func (c *ListCursor[T]) Close() { c.cur.close() }

// Closed reports whether the cursor has been closed.
func (c *ListCursor[T]) Closed() bool { return c.cur.tree == nil }

// Reset leaves the cursor unpositioned.
func (c *ListCursor[T]) Reset() { c.cur.valid = false }

// HasCurrent reports whether the cursor is positioned on an item.
func (c *ListCursor[T]) HasCurrent() bool { return c.cur.tree != nil && c.cur.valid }

// MoveNext advances to the next item.
func (c *ListCursor[T]) MoveNext() bool {
	return c.cur.tree != nil && c.cur.moveNext()
}

// MovePrevious steps back to the previous item.
func (c *ListCursor[T]) MovePrevious() bool {
	return c.cur.tree != nil && c.cur.movePrevious()
}

// Seek positions the cursor at pos. LastPosition addresses the last item.
func (c *ListCursor[T]) Seek(pos int) error {
	if c.cur.tree == nil {
		return ErrCursorClosed
	}
	if !c.cur.seek(pos) {
		return fmt.Errorf("%w: seek position %d, length %d", ErrIndexOutOfBounds, pos, c.cur.tree.len())
	}
	return nil
}

// First positions the cursor on the first item.
func (c *ListCursor[T]) First() bool { return c.cur.tree != nil && c.cur.seek(0) }

// Last positions the cursor on the last item.
func (c *ListCursor[T]) Last() bool { return c.cur.tree != nil && c.cur.seek(LastPosition) }

// Position returns the item position of the cursor, -1 if unpositioned.
func (c *ListCursor[T]) Position() int {
	if c.cur.tree == nil {
		return -1
	}
	return c.cur.position()
}

// Current returns the current item.
func (c *ListCursor[T]) Current() (T, error) {
	var zero T
	if err := c.cur.check(); err != nil {
		return zero, err
	}
	return c.cur.current(), nil
}

// SetCurrent replaces the current item.
func (c *ListCursor[T]) SetCurrent(item T) error {
	if err := c.cur.check(); err != nil {
		return err
	}
	return c.cur.tree.setAt(c.cur.position(), item)
}

// RemoveCurrent removes the current item. The cursor moves to the item
// which followed it, or becomes unpositioned if it was the last one.
func (c *ListCursor[T]) RemoveCurrent() (T, error) {
	return c.cur.removeCurrent()
}

// --- Ordered cursors -------------------------------------------------------

// OrderedCursor iterates an Ordered tree in key order. It behaves like a
// ListCursor and can additionally be positioned by key.
type OrderedCursor[K, V any] struct {
	cur   cursor[slot[K, V]]
	owner *Ordered[K, V]
}

// NewCursor returns an unpositioned cursor on t.
func (t *Ordered[K, V]) NewCursor() *OrderedCursor[K, V] {
	return &OrderedCursor[K, V]{
		cur:   cursor[slot[K, V]]{tree: &t.core},
		owner: t,
	}
}

// Close detaches the cursor from its tree. Later calls fail.
func (c *OrderedCursor[K, V]) Close() {
	c.cur.close()
	c.owner = nil
}

// Closed reports whether the cursor has been closed.
func (c *OrderedCursor[K, V]) Closed() bool { return c.cur.tree == nil }

// Reset leaves the cursor unpositioned.
func (c *OrderedCursor[K, V]) Reset() { c.cur.valid = false }

// HasCurrent reports whether the cursor is positioned on a slot.
func (c *OrderedCursor[K, V]) HasCurrent() bool { return c.cur.tree != nil && c.cur.valid }

// MoveNext advances to the next larger key.
func (c *OrderedCursor[K, V]) MoveNext() bool {
	return c.cur.tree != nil && c.cur.moveNext()
}

// MovePrevious steps back to the next smaller key.
func (c *OrderedCursor[K, V]) MovePrevious() bool {
	return c.cur.tree != nil && c.cur.movePrevious()
}

// Seek positions the cursor at pos. LastPosition addresses the last slot.
func (c *OrderedCursor[K, V]) Seek(pos int) error {
	if c.cur.tree == nil {
		return ErrCursorClosed
	}
	if !c.cur.seek(pos) {
		return fmt.Errorf("%w: seek position %d, length %d", ErrIndexOutOfBounds, pos, c.cur.tree.len())
	}
	return nil
}

// First positions the cursor on the smallest key.
func (c *OrderedCursor[K, V]) First() bool { return c.cur.tree != nil && c.cur.seek(0) }

// Last positions the cursor on the largest key.
func (c *OrderedCursor[K, V]) Last() bool { return c.cur.tree != nil && c.cur.seek(LastPosition) }

// Position returns the item position of the cursor, -1 if unpositioned.
func (c *OrderedCursor[K, V]) Position() int {
	if c.cur.tree == nil {
		return -1
	}
	return c.cur.position()
}

// Current returns key and value of the current slot.
func (c *OrderedCursor[K, V]) Current() (K, V, error) {
	if err := c.cur.check(); err != nil {
		var k K
		var v V
		return k, v, err
	}
	s := c.cur.current()
	return s.key, s.value, nil
}

// Key returns the key of the current slot.
func (c *OrderedCursor[K, V]) Key() (K, error) {
	k, _, err := c.Current()
	return k, err
}

// Value returns the value of the current slot.
func (c *OrderedCursor[K, V]) Value() (V, error) {
	_, v, err := c.Current()
	return v, err
}

// SetValue replaces the value of the current slot.
func (c *OrderedCursor[K, V]) SetValue(value V) error {
	if err := c.cur.check(); err != nil {
		return err
	}
	s := c.cur.current()
	s.value = value
	return c.cur.tree.setAt(c.cur.position(), s)
}

// RemoveCurrent removes the current slot. The cursor moves to the next
// larger key, or becomes unpositioned if there is none.
func (c *OrderedCursor[K, V]) RemoveCurrent() (K, V, error) {
	s, err := c.cur.removeCurrent()
	return s.key, s.value, err
}

// Find positions the cursor by key, see FindMode. ok reports whether the
// cursor is positioned, exists whether key itself is present. On failure
// the cursor is unpositioned.
func (c *OrderedCursor[K, V]) Find(key K, mode FindMode) (ok, exists bool) {
	cur := &c.cur
	if cur.tree == nil {
		return false, false
	}
	cur.valid = false
	cur.fit()
	g := cur.tree.root
	if g == nil {
		return false, false
	}
	p := c.owner.probe(key)
	for i := range cur.stack {
		pos, found, seen := c.owner.findIn(g, p, mode)
		exists = exists || seen
		if !found {
			return false, exists
		}
		cur.stack[i] = pointer[slot[K, V]]{g: g, pos: pos}
		if parent, isParent := g.(*parentGroup[slot[K, V]]); isParent {
			g = parent.children[pos]
		}
	}
	cur.valid = true
	return true, exists
}
