package btree

// group is a node of a cluster tree. Leaf groups (level 0) hold items,
// parent groups hold child groups of the next lower level.
type group[E any] interface {
	level() int
	childCount() int // items for a leaf, child groups for a parent
	itemCount() int  // items in the subtree
	full() bool
	first() E
	last() E
	getAt(pos int) E
	setAt(pos int, item E)
	removeAt(pos int) E
	deepCopy() group[E]
}

type leafGroup[E any] struct {
	// items holds the occupied slots; cap(items) is the group size.
	items []E
}

func newLeaf[E any](size int) *leafGroup[E] {
	return &leafGroup[E]{items: make([]E, 0, size)}
}

func (l *leafGroup[E]) level() int      { return 0 }
func (l *leafGroup[E]) childCount() int { return len(l.items) }
func (l *leafGroup[E]) itemCount() int  { return len(l.items) }
func (l *leafGroup[E]) full() bool      { return len(l.items) == cap(l.items) }
func (l *leafGroup[E]) first() E        { return l.items[0] }
func (l *leafGroup[E]) last() E         { return l.items[len(l.items)-1] }

func (l *leafGroup[E]) getAt(pos int) E {
	assert(pos >= 0 && pos < len(l.items), "leaf position out of range")
	return l.items[pos]
}

func (l *leafGroup[E]) setAt(pos int, item E) {
	assert(pos >= 0 && pos < len(l.items), "leaf position out of range")
	l.items[pos] = item
}

func (l *leafGroup[E]) removeAt(pos int) E {
	assert(pos >= 0 && pos < len(l.items), "leaf position out of range")
	item := l.items[pos]
	l.removeItems(pos, 1)
	return item
}

func (l *leafGroup[E]) deepCopy() group[E] {
	c := newLeaf[E](cap(l.items))
	c.items = append(c.items, l.items...)
	return c
}

type parentGroup[E any] struct {
	lvl   int
	count int // items in the subtree
	// children holds the occupied child slots; cap(children) is the group size.
	children []group[E]
	lo, hi   E // first and last item of the subtree
}

func newParent[E any](lvl, size int) *parentGroup[E] {
	return &parentGroup[E]{lvl: lvl, children: make([]group[E], 0, size)}
}

// newParentOver creates a parent with child as its only child. It is
// used to grow a new root.
func newParentOver[E any](child group[E], size int) *parentGroup[E] {
	p := newParent[E](child.level()+1, size)
	p.appendGroups([]group[E]{child})
	return p
}

func (p *parentGroup[E]) level() int      { return p.lvl }
func (p *parentGroup[E]) childCount() int { return len(p.children) }
func (p *parentGroup[E]) itemCount() int  { return p.count }
func (p *parentGroup[E]) full() bool      { return len(p.children) == cap(p.children) }
func (p *parentGroup[E]) first() E        { return p.lo }
func (p *parentGroup[E]) last() E         { return p.hi }

// updateBounds refreshes the cached first and last item from the outer
// children.
func (p *parentGroup[E]) updateBounds() {
	if len(p.children) == 0 {
		var zero E
		p.lo, p.hi = zero, zero
		return
	}
	p.lo = p.children[0].first()
	p.hi = p.children[len(p.children)-1].last()
}

// locate maps an item position of the subtree to the index of the child
// holding it and the position relative to that child.
func (p *parentGroup[E]) locate(pos int) (idx, local int) {
	assert(pos >= 0 && pos < p.count, "parent position out of range")
	for i, child := range p.children {
		c := child.itemCount()
		if pos < c {
			return i, pos
		}
		pos -= c
	}
	panic("item counts of parent and children differ")
}

// offsetOf returns the position of the first item of child idx relative
// to the subtree of p.
func (p *parentGroup[E]) offsetOf(idx int) int {
	offset := 0
	for _, child := range p.children[:idx] {
		offset += child.itemCount()
	}
	return offset
}

func (p *parentGroup[E]) getAt(pos int) E {
	idx, local := p.locate(pos)
	return p.children[idx].getAt(local)
}

func (p *parentGroup[E]) setAt(pos int, item E) {
	idx, local := p.locate(pos)
	p.children[idx].setAt(local, item)
	p.updateBounds()
}

func (p *parentGroup[E]) removeAt(pos int) E {
	idx, local := p.locate(pos)
	item := p.children[idx].removeAt(local)
	p.count--
	p.combineChildren(idx)
	p.updateBounds()
	return item
}

func (p *parentGroup[E]) deepCopy() group[E] {
	c := newParent[E](p.lvl, cap(p.children))
	for _, child := range p.children {
		c.children = append(c.children, child.deepCopy())
	}
	c.count = p.count
	c.lo, c.hi = p.lo, p.hi
	return c
}
