package btree

import "fmt"

// List is a positional cluster tree. Items keep their insertion order and
// are addressed by 0-based position.
type List[T any] struct {
	core[T]
}

// NewList creates an empty positional tree.
func NewList[T any](cfg Config) (*List[T], error) {
	c, err := newCore[T](cfg)
	if err != nil {
		return nil, err
	}
	return &List[T]{core: c}, nil
}

// Config returns the normalized tree configuration.
func (t *List[T]) Config() Config { return t.cfg }

// Len returns the number of items.
func (t *List[T]) Len() int { return t.len() }

// Height returns the number of group levels, 0 for an empty tree.
func (t *List[T]) Height() int { return t.height() }

// IsEmpty reports whether the tree holds no items.
func (t *List[T]) IsEmpty() bool { return t.root == nil }

// At returns the item at pos. LastPosition addresses the last item.
func (t *List[T]) At(pos int) (T, error) { return t.at(pos) }

// SetAt replaces the item at pos.
func (t *List[T]) SetAt(pos int, item T) error { return t.setAt(pos, item) }

// First returns the first item.
func (t *List[T]) First() (T, error) { return t.firstItem() }

// Last returns the last item.
func (t *List[T]) Last() (T, error) { return t.lastItem() }

// RemoveAt removes and returns the item at pos. LastPosition addresses the
// last item.
func (t *List[T]) RemoveAt(pos int) (T, error) { return t.removeAt(pos) }

// Clear removes all items.
func (t *List[T]) Clear() { t.clear() }

// Clone returns a deep copy of the tree structure. Items are copied by
// assignment.
func (t *List[T]) Clone() *List[T] {
	return &List[T]{core: t.clone()}
}

// CopyFrom replaces the content of t with a copy of src.
func (t *List[T]) CopyFrom(src *List[T]) {
	t.copyFrom(&src.core)
}

// Each calls fn for every item in order until fn returns false.
func (t *List[T]) Each(fn func(item T) bool) { t.each(fn) }

// WalkGroups visits all groups in pre-order, see GroupInfo.
func (t *List[T]) WalkGroups(fn func(info GroupInfo, items []T) bool) { t.walk(fn) }

// Check validates the structural invariants of the tree.
func (t *List[T]) Check() error { return t.check(nil) }

// Append adds item after the last item.
func (t *List[T]) Append(item T) {
	err := t.InsertAt(t.len(), item)
	assert(err == nil, "append cannot fail")
}

// InsertAt inserts item so that it ends up at pos. pos may equal Len, which
// appends.
func (t *List[T]) InsertAt(pos int, item T) error {
	if pos < 0 || pos > t.len() {
		return fmt.Errorf("%w: insert position %d, length %d", ErrIndexOutOfBounds, pos, t.len())
	}
	if t.root == nil {
		leaf := t.seed()
		leaf.items = append(leaf.items, item)
		return nil
	}
	if t.insert(t.root, pos, item) {
		return nil
	}
	t.insertAfterGrow(pos, item)
	return nil
}

// insertAfterGrow puts a new root over the full old root and splits the
// old root before inserting, so the new root always has two children.
func (t *List[T]) insertAfterGrow(pos int, item T) {
	t.grow()
	root := t.root.(*parentGroup[T])
	ok := root.splitChild(0)
	assert(ok, "split below a new root must succeed")
	idx, local, n := locateInsert(root, pos)
	ok = t.insertCandidates(root, idx, local, n, item)
	assert(ok, "insert after root growth must succeed")
	root.count++
	root.updateBounds()
}

func (t *List[T]) insert(g group[T], pos int, item T) bool {
	switch g := g.(type) {
	case *leafGroup[T]:
		return g.insertItem(pos, item)
	case *parentGroup[T]:
		if !t.insertBelow(g, pos, item) {
			return false
		}
		g.count++
		g.updateBounds()
		return true
	}
	panic("unknown group type")
}

// insertBelow tries the insertion candidates of p, escalating from a direct
// insert to shifting a free slot and finally to splitting a candidate. It
// fails only if p itself is full.
func (t *List[T]) insertBelow(p *parentGroup[T], pos int, item T) bool {
	idx, local, n := locateInsert(p, pos)
	if t.insertCandidates(p, idx, local, n, item) {
		return true
	}
	if p.shiftChildren(idx, n) {
		idx, local, n = locateInsert(p, pos)
		if t.insertCandidates(p, idx, local, n, item) {
			return true
		}
	}
	split := idx
	if n == 2 {
		split = idx + 1
	}
	if !p.splitChild(split) {
		return false
	}
	idx, local, n = locateInsert(p, pos)
	ok := t.insertCandidates(p, idx, local, n, item)
	assert(ok, "insert after split must succeed")
	return true
}

// insertCandidates inserts into child idx at local, or, with two
// candidates, into the front of child idx+1 first.
func (t *List[T]) insertCandidates(p *parentGroup[T], idx, local, n int, item T) bool {
	if n == 2 && t.insert(p.children[idx+1], 0, item) {
		return true
	}
	return t.insert(p.children[idx], local, item)
}

// locateInsert finds the child to insert into for item position pos. If pos
// falls on the boundary between child idx and idx+1, n is 2 and both
// children are candidates.
func locateInsert[E any](p *parentGroup[E], pos int) (idx, local, n int) {
	for i, child := range p.children {
		c := child.itemCount()
		if pos <= c {
			if pos == c && i+1 < len(p.children) {
				return i, pos, 2
			}
			return i, pos, 1
		}
		pos -= c
	}
	panic("insert position exceeds parent item count")
}
