package btree

// insertInPlace inserts values into src at idx without growing its backing
// array. The caller guarantees len(src)+len(values) <= cap(src).
func insertInPlace[T any](src []T, idx int, values ...T) []T {
	n, k := len(src), len(values)
	assert(idx >= 0 && idx <= n, "insertInPlace index out of range")
	assert(n+k <= cap(src), "insertInPlace exceeds group capacity")
	src = src[:n+k]
	copy(src[idx+k:], src[idx:n])
	copy(src[idx:], values)
	return src
}

// removeInPlace removes the half-open interval [from,to) from src and
// zeroes the vacated tail slots.
func removeInPlace[T any](src []T, from, to int) []T {
	n := len(src)
	assert(from >= 0 && from <= to && to <= n, "removeInPlace bounds invalid")
	copy(src[from:], src[to:])
	clear(src[n-(to-from) : n])
	return src[:n-(to-from)]
}

// --- Leaf groups -----------------------------------------------------------

func (l *leafGroup[E]) insertItem(at int, item E) bool {
	if l.full() {
		return false
	}
	l.items = insertInPlace(l.items, at, item)
	return true
}

func (l *leafGroup[E]) appendItems(items []E) {
	l.items = insertInPlace(l.items, len(l.items), items...)
}

func (l *leafGroup[E]) prependItems(items []E) {
	l.items = insertInPlace(l.items, 0, items...)
}

func (l *leafGroup[E]) removeItems(at, count int) {
	l.items = removeInPlace(l.items, at, at+count)
}

// --- Parent groups ---------------------------------------------------------

func (p *parentGroup[E]) insertGroup(at int, g group[E]) {
	p.children = insertInPlace(p.children, at, g)
	p.count += g.itemCount()
	p.updateBounds()
}

func (p *parentGroup[E]) appendGroups(gs []group[E]) {
	p.children = insertInPlace(p.children, len(p.children), gs...)
	for _, g := range gs {
		p.count += g.itemCount()
	}
	p.updateBounds()
}

func (p *parentGroup[E]) prependGroups(gs []group[E]) {
	p.children = insertInPlace(p.children, 0, gs...)
	for _, g := range gs {
		p.count += g.itemCount()
	}
	p.updateBounds()
}

func (p *parentGroup[E]) removeGroups(at, count int) {
	for _, g := range p.children[at : at+count] {
		p.count -= g.itemCount()
	}
	p.children = removeInPlace(p.children, at, at+count)
	p.updateBounds()
}
