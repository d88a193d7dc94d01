package btree

import (
	"fmt"

	"github.com/npillmayer/clusters/compare"
)

// slot is an entry of an ordered tree. The key fingerprint is computed once
// on insertion.
type slot[K, V any] struct {
	fp    uint64
	key   K
	value V
}

// probe is a key prepared for comparison against slots.
type probe[K any] struct {
	fp  uint64
	key K
}

// Ordered is a cluster tree of (key, value) slots, sorted by key. Keys are
// unique. Besides key lookups, an ordered tree supports every positional
// read and removal of a List.
type Ordered[K, V any] struct {
	core[slot[K, V]]
	cmp compare.Comparator[K]
}

// NewOrdered creates an empty ordered tree using comparator cmp.
func NewOrdered[K, V any](cfg Config, cmp compare.Comparator[K]) (*Ordered[K, V], error) {
	if cmp == nil {
		return nil, fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	c, err := newCore[slot[K, V]](cfg)
	if err != nil {
		return nil, err
	}
	return &Ordered[K, V]{core: c, cmp: cmp}, nil
}

// Config returns the normalized tree configuration.
func (t *Ordered[K, V]) Config() Config { return t.cfg }

// Comparator returns the comparator ordering the keys.
func (t *Ordered[K, V]) Comparator() compare.Comparator[K] { return t.cmp }

// Len returns the number of keys.
func (t *Ordered[K, V]) Len() int { return t.len() }

// Height returns the number of group levels, 0 for an empty tree.
func (t *Ordered[K, V]) Height() int { return t.height() }

// IsEmpty reports whether the tree holds no keys.
func (t *Ordered[K, V]) IsEmpty() bool { return t.root == nil }

// Clear removes all keys.
func (t *Ordered[K, V]) Clear() { t.clear() }

// Clone returns a deep copy of the tree structure.
func (t *Ordered[K, V]) Clone() *Ordered[K, V] {
	return &Ordered[K, V]{core: t.clone(), cmp: t.cmp}
}

// CopyFrom replaces the content and the comparator of t with those of src.
func (t *Ordered[K, V]) CopyFrom(src *Ordered[K, V]) {
	t.copyFrom(&src.core)
	t.cmp = src.cmp
}

// At returns the slot at position pos.
func (t *Ordered[K, V]) At(pos int) (K, V, error) {
	s, err := t.at(pos)
	return s.key, s.value, err
}

// SetValueAt replaces the value at position pos. Keys cannot be replaced
// positionally.
func (t *Ordered[K, V]) SetValueAt(pos int, value V) error {
	s, err := t.at(pos)
	if err != nil {
		return err
	}
	s.value = value
	return t.setAt(pos, s)
}

// RemoveAt removes the slot at position pos.
func (t *Ordered[K, V]) RemoveAt(pos int) (K, V, error) {
	s, err := t.removeAt(pos)
	return s.key, s.value, err
}

// First returns the smallest key and its value.
func (t *Ordered[K, V]) First() (K, V, error) {
	s, err := t.firstItem()
	return s.key, s.value, err
}

// Last returns the largest key and its value.
func (t *Ordered[K, V]) Last() (K, V, error) {
	s, err := t.lastItem()
	return s.key, s.value, err
}

// Each calls fn for every slot in key order until fn returns false.
func (t *Ordered[K, V]) Each(fn func(key K, value V) bool) {
	t.each(func(s slot[K, V]) bool {
		return fn(s.key, s.value)
	})
}

// WalkGroups visits all groups in pre-order. For leaf groups, fn receives
// the keys of the group.
func (t *Ordered[K, V]) WalkGroups(fn func(info GroupInfo, keys []K) bool) {
	var keys []K
	t.walk(func(info GroupInfo, leaf []slot[K, V]) bool {
		if leaf == nil {
			return fn(info, nil)
		}
		keys = keys[:0]
		for _, s := range leaf {
			keys = append(keys, s.key)
		}
		return fn(info, keys)
	})
}

// Check validates the structural invariants of the tree, including strict
// key order and the cached bounds of parent groups.
func (t *Ordered[K, V]) Check() error {
	return t.check(func(a, b slot[K, V]) int {
		return t.compare(probe[K]{fp: a.fp, key: a.key}, b)
	})
}

// --- Comparison ------------------------------------------------------------

func (t *Ordered[K, V]) probe(key K) probe[K] {
	return probe[K]{fp: t.cmp.Fingerprint(key), key: key}
}

func (t *Ordered[K, V]) compare(p probe[K], s slot[K, V]) int {
	if p.fp < s.fp {
		return -1
	}
	if p.fp > s.fp {
		return 1
	}
	return t.cmp.Compare(p.key, s.key)
}

// search bisects a leaf for p. It returns the position of p if it exists,
// otherwise the position p would be inserted at.
func (t *Ordered[K, V]) search(l *leafGroup[slot[K, V]], p probe[K]) (pos int, exists bool) {
	lo, hi := 0, len(l.items)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := t.compare(p, l.items[mid])
		if c == 0 {
			return mid, true
		}
		if c < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, false
}

// locate bisects the children of a parent for p, comparing against the
// cached child bounds. If p lies within the bounds of a child, or before
// the first or after the last child, locate returns that child and n=1. If
// p falls into the gap between child idx and idx+1, n is 2. With
// mustExist set, a gap yields n=0.
func (t *Ordered[K, V]) locate(g *parentGroup[slot[K, V]], p probe[K], mustExist bool) (idx, n int) {
	lo, hi := 0, len(g.children)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		child := g.children[mid]
		if t.compare(p, child.first()) < 0 {
			hi = mid
		} else if t.compare(p, child.last()) > 0 {
			lo = mid + 1
		} else {
			return mid, 1
		}
	}
	switch {
	case mustExist:
		return lo, 0
	case lo == 0:
		return 0, 1
	case lo == len(g.children):
		return lo - 1, 1
	}
	return lo - 1, 2
}

// --- Lookup ----------------------------------------------------------------

// lookup finds the leaf and position holding key.
func (t *Ordered[K, V]) lookup(p probe[K]) (*leafGroup[slot[K, V]], int, bool) {
	g := t.root
	for g != nil {
		switch grp := g.(type) {
		case *leafGroup[slot[K, V]]:
			pos, exists := t.search(grp, p)
			return grp, pos, exists
		case *parentGroup[slot[K, V]]:
			idx, n := t.locate(grp, p, true)
			if n == 0 {
				return nil, 0, false
			}
			g = grp.children[idx]
		default:
			panic("unknown group type")
		}
	}
	return nil, 0, false
}

// Get returns the value stored for key.
func (t *Ordered[K, V]) Get(key K) (V, bool) {
	leaf, pos, ok := t.lookup(t.probe(key))
	if !ok {
		var zero V
		return zero, false
	}
	return leaf.items[pos].value, true
}

// GetKey returns the stored key comparing equal to key.
func (t *Ordered[K, V]) GetKey(key K) (K, bool) {
	leaf, pos, ok := t.lookup(t.probe(key))
	if !ok {
		var zero K
		return zero, false
	}
	return leaf.items[pos].key, true
}

// Contains reports whether key is present.
func (t *Ordered[K, V]) Contains(key K) bool {
	_, _, ok := t.lookup(t.probe(key))
	return ok
}

// --- Insertion -------------------------------------------------------------

// Add inserts key with value. It returns false, leaving the tree unchanged,
// if key is already present.
func (t *Ordered[K, V]) Add(key K, value V) bool {
	s := slot[K, V]{fp: t.cmp.Fingerprint(key), key: key, value: value}
	if t.root == nil {
		leaf := t.seed()
		leaf.items = append(leaf.items, s)
		return true
	}
	ok, exists := t.add(t.root, s)
	if exists {
		return false
	}
	if ok {
		return true
	}
	t.addAfterGrow(s)
	return true
}

// addAfterGrow grows the tree and splits the old root before adding s, see
// List.insertAfterGrow.
func (t *Ordered[K, V]) addAfterGrow(s slot[K, V]) {
	t.grow()
	root := t.root.(*parentGroup[slot[K, V]])
	ok := root.splitChild(0)
	assert(ok, "split below a new root must succeed")
	idx, n := t.locate(root, probe[K]{fp: s.fp, key: s.key}, false)
	ok, _ = t.addCandidates(root, idx, n, s)
	assert(ok, "add after root growth must succeed")
	root.count++
	root.updateBounds()
}

// Set inserts key with value, or replaces key and value of an existing
// slot comparing equal to key. It reports whether a slot was replaced.
func (t *Ordered[K, V]) Set(key K, value V) bool {
	s := slot[K, V]{fp: t.cmp.Fingerprint(key), key: key, value: value}
	if t.root != nil && t.replace(t.root, s) {
		return true
	}
	t.Add(key, value)
	return false
}

func (t *Ordered[K, V]) replace(g group[slot[K, V]], s slot[K, V]) bool {
	p := probe[K]{fp: s.fp, key: s.key}
	switch g := g.(type) {
	case *leafGroup[slot[K, V]]:
		pos, exists := t.search(g, p)
		if exists {
			g.items[pos] = s
		}
		return exists
	case *parentGroup[slot[K, V]]:
		idx, n := t.locate(g, p, true)
		if n == 0 || !t.replace(g.children[idx], s) {
			return false
		}
		g.updateBounds()
		return true
	}
	panic("unknown group type")
}

// add inserts s below g. exists reports a duplicate key, in which case
// nothing has changed.
func (t *Ordered[K, V]) add(g group[slot[K, V]], s slot[K, V]) (ok, exists bool) {
	switch g := g.(type) {
	case *leafGroup[slot[K, V]]:
		pos, exists := t.search(g, probe[K]{fp: s.fp, key: s.key})
		if exists {
			return false, true
		}
		return g.insertItem(pos, s), false
	case *parentGroup[slot[K, V]]:
		ok, exists = t.addBelow(g, s)
		if ok {
			g.count++
			g.updateBounds()
		}
		return ok, exists
	}
	panic("unknown group type")
}

// addBelow escalates like List.insertBelow, with candidates determined by
// key instead of position.
func (t *Ordered[K, V]) addBelow(g *parentGroup[slot[K, V]], s slot[K, V]) (ok, exists bool) {
	p := probe[K]{fp: s.fp, key: s.key}
	idx, n := t.locate(g, p, false)
	if ok, exists = t.addCandidates(g, idx, n, s); ok || exists {
		return ok, exists
	}
	if g.shiftChildren(idx, n) {
		idx, n = t.locate(g, p, false)
		if ok, exists = t.addCandidates(g, idx, n, s); ok || exists {
			return ok, exists
		}
	}
	split := idx
	if n == 2 {
		split = idx + 1
	}
	if !g.splitChild(split) {
		return false, false
	}
	idx, n = t.locate(g, p, false)
	ok, _ = t.addCandidates(g, idx, n, s)
	assert(ok, "add after split must succeed")
	return true, false
}

func (t *Ordered[K, V]) addCandidates(g *parentGroup[slot[K, V]], idx, n int, s slot[K, V]) (ok, exists bool) {
	if n == 2 {
		if ok, _ = t.add(g.children[idx+1], s); ok {
			return true, false
		}
	}
	return t.add(g.children[idx], s)
}

// --- Removal ---------------------------------------------------------------

// Remove deletes key and returns its value.
func (t *Ordered[K, V]) Remove(key K) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	s, ok := t.remove(t.root, t.probe(key))
	if ok {
		t.collapse()
	}
	return s.value, ok
}

func (t *Ordered[K, V]) remove(g group[slot[K, V]], p probe[K]) (slot[K, V], bool) {
	switch g := g.(type) {
	case *leafGroup[slot[K, V]]:
		pos, exists := t.search(g, p)
		if !exists {
			return slot[K, V]{}, false
		}
		return g.removeAt(pos), true
	case *parentGroup[slot[K, V]]:
		idx, n := t.locate(g, p, true)
		if n == 0 {
			return slot[K, V]{}, false
		}
		s, ok := t.remove(g.children[idx], p)
		if !ok {
			return s, false
		}
		g.count--
		g.combineChildren(idx)
		g.updateBounds()
		return s, true
	}
	panic("unknown group type")
}
