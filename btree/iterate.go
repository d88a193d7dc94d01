package btree

// each walks items in order.
//
// Iteration stops early if fn returns false.
func (c *core[E]) each(fn func(item E) bool) {
	if c.root == nil || fn == nil {
		return
	}
	eachInGroup(c.root, fn)
}

func eachInGroup[E any](g group[E], fn func(item E) bool) bool {
	switch g := g.(type) {
	case *leafGroup[E]:
		for _, item := range g.items {
			if !fn(item) {
				return false
			}
		}
	case *parentGroup[E]:
		for _, child := range g.children {
			if !eachInGroup(child, fn) {
				return false
			}
		}
	default:
		panic("unknown group type")
	}
	return true
}

// GroupInfo describes a group visited by a group walk.
type GroupInfo struct {
	ID       int // pre-order sequence number, the root is 0
	Parent   int // ID of the parent group, -1 for the root
	Level    int // 0 for leaves
	Slot     int // index within the parent group
	Children int // occupied slots
	Capacity int // group size
	Items    int // items in the subtree
}

// walk visits all groups in pre-order. For leaf groups, leaf receives the
// items of the group; it is nil for parent groups. Returning false from fn
// skips the subtree below the group.
func (c *core[E]) walk(fn func(info GroupInfo, leaf []E) bool) {
	if c.root == nil || fn == nil {
		return
	}
	id := 0
	var visit func(g group[E], parent, slot int)
	visit = func(g group[E], parent, slot int) {
		info := GroupInfo{
			ID:       id,
			Parent:   parent,
			Level:    g.level(),
			Slot:     slot,
			Children: g.childCount(),
			Capacity: c.cfg.GroupSize,
			Items:    g.itemCount(),
		}
		id++
		switch g := g.(type) {
		case *leafGroup[E]:
			fn(info, g.items)
		case *parentGroup[E]:
			if !fn(info, nil) {
				return
			}
			for i, child := range g.children {
				visit(child, info.ID, i)
			}
		}
	}
	visit(c.root, -1, 0)
}
