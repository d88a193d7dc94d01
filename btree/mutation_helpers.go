package btree

// This file holds the structural operations of parent groups: moving items
// between sibling children, shifting free slots, splitting and combining
// children. None of them changes the aggregate item count of the parent.

func (p *parentGroup[E]) groupSize() int {
	return cap(p.children)
}

// moveChildren moves count entries (items or child groups) between the
// adjacent children from and to. Moving towards a lower index appends the
// leading entries of from to the end of to, moving towards a higher index
// prepends the trailing entries of from to the front of to.
func (p *parentGroup[E]) moveChildren(from, to, count int) {
	assert(from != to && (from-to == 1 || to-from == 1), "moveChildren needs adjacent children")
	if count == 0 {
		return
	}
	switch src := p.children[from].(type) {
	case *leafGroup[E]:
		dst := p.children[to].(*leafGroup[E])
		if from > to {
			dst.appendItems(src.items[:count])
			src.removeItems(0, count)
		} else {
			n := len(src.items)
			dst.prependItems(src.items[n-count:])
			src.removeItems(n-count, count)
		}
	case *parentGroup[E]:
		dst := p.children[to].(*parentGroup[E])
		if from > to {
			dst.appendGroups(src.children[:count])
			src.removeGroups(0, count)
		} else {
			n := len(src.children)
			dst.prependGroups(src.children[n-count:])
			src.removeGroups(n-count, count)
		}
	default:
		panic("unknown group type")
	}
}

// nearestSpace finds the child closest to pos which has a free slot,
// searching alternately to the left and to the right of pos.
func (p *parentGroup[E]) nearestSpace(pos int) (int, bool) {
	before, after := pos-1, pos+1
	for before >= 0 || after < len(p.children) {
		if before >= 0 {
			if !p.children[before].full() {
				return before, true
			}
			before--
		}
		if after < len(p.children) {
			if !p.children[after].full() {
				return after, true
			}
			after++
		}
	}
	return -1, false
}

// moveEmptySlot carries a free slot from child from to child to, one entry
// per intermediate child.
func (p *parentGroup[E]) moveEmptySlot(from, to int) {
	if from < to {
		for i := from; i < to; i++ {
			p.moveChildren(i+1, i, 1)
		}
		return
	}
	for i := from; i > to; i-- {
		p.moveChildren(i-1, i, 1)
	}
}

// shiftChildren frees a slot in the insertion candidates starting at pos.
// count is the number of candidates (1 or 2). With two candidates and the
// free slot found to the right, the slot is moved into the later candidate.
func (p *parentGroup[E]) shiftChildren(pos, count int) bool {
	space, ok := p.nearestSpace(pos)
	if !ok {
		return false
	}
	if count > 1 && space > pos {
		pos++
	}
	tracer().Debugf("cluster: shift free slot at level %d from child %d to %d", p.lvl, space, pos)
	p.moveEmptySlot(space, pos)
	return true
}

// splitChild moves the back half of child pos into a new sibling inserted
// right after it. It fails if p has no free slot for the sibling.
func (p *parentGroup[E]) splitChild(pos int) bool {
	if p.full() {
		return false
	}
	var sibling group[E]
	switch child := p.children[pos].(type) {
	case *leafGroup[E]:
		n := len(child.items)
		move := max(n/2, 1)
		sib := newLeaf[E](cap(child.items))
		sib.appendItems(child.items[n-move:])
		child.removeItems(n-move, move)
		sibling = sib
	case *parentGroup[E]:
		n := len(child.children)
		move := max(n/2, 1)
		sib := newParent[E](child.lvl, cap(child.children))
		sib.appendGroups(child.children[n-move:])
		child.removeGroups(n-move, move)
		sibling = sib
	default:
		panic("unknown group type")
	}
	assert(p.children[pos].childCount() > 0, "split emptied a child")
	p.children = insertInPlace(p.children, pos+1, sibling)
	p.updateBounds()
	tracer().Debugf("cluster: split child %d at level %d into %d+%d", pos, p.lvl,
		p.children[pos].childCount(), sibling.childCount())
	return true
}

// combineChildren restores occupancy after a removal from child pos: an
// empty child is dropped, otherwise the child is merged into its previous
// sibling, or its next sibling into it, whenever the two fit into one group.
func (p *parentGroup[E]) combineChildren(pos int) bool {
	n := p.children[pos].childCount()
	if n == 0 {
		p.removeGroups(pos, 1)
		tracer().Debugf("cluster: dropped empty child %d at level %d", pos, p.lvl)
		return true
	}
	if pos > 0 && p.children[pos-1].childCount()+n <= p.groupSize() {
		p.moveChildren(pos, pos-1, n)
		p.removeGroups(pos, 1)
		tracer().Debugf("cluster: merged child %d into %d at level %d", pos, pos-1, p.lvl)
		return true
	}
	if pos+1 < len(p.children) {
		next := p.children[pos+1].childCount()
		if next+n <= p.groupSize() {
			p.moveChildren(pos+1, pos, next)
			p.removeGroups(pos+1, 1)
			tracer().Debugf("cluster: merged child %d into %d at level %d", pos+1, pos, p.lvl)
			return true
		}
	}
	return false
}
