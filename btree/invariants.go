package btree

import "fmt"

// check validates structural tree invariants. If cmp is given, items must
// be strictly ascending and the cached bounds of parent groups must match
// the outer items of their subtrees.
//
// This checker is strict and meant for tests.
func (c *core[E]) check(cmp func(a, b E) int) error {
	if c.root == nil {
		return nil
	}
	if c.root.childCount() == 0 {
		return fmt.Errorf("%w: empty root group", ErrCorrupted)
	}
	if p, ok := c.root.(*parentGroup[E]); ok && len(p.children) < 2 {
		return fmt.Errorf("%w: parent root has %d child(ren)", ErrCorrupted, len(p.children))
	}
	_, err := c.checkGroup(c.root, cmp)
	return err
}

func (c *core[E]) checkGroup(g group[E], cmp func(a, b E) int) (items int, err error) {
	if g == nil {
		return 0, fmt.Errorf("%w: nil group", ErrCorrupted)
	}
	if g.childCount() == 0 {
		return 0, fmt.Errorf("%w: empty group at level %d", ErrCorrupted, g.level())
	}
	switch g := g.(type) {
	case *leafGroup[E]:
		if cap(g.items) != c.cfg.GroupSize {
			return 0, fmt.Errorf("%w: leaf capacity %d != group size %d", ErrCorrupted,
				cap(g.items), c.cfg.GroupSize)
		}
		if cmp != nil {
			for i := 1; i < len(g.items); i++ {
				if cmp(g.items[i-1], g.items[i]) >= 0 {
					return 0, fmt.Errorf("%w: leaf items out of order at %d", ErrCorrupted, i)
				}
			}
		}
		return len(g.items), nil
	case *parentGroup[E]:
		if cap(g.children) != c.cfg.GroupSize {
			return 0, fmt.Errorf("%w: parent capacity %d != group size %d", ErrCorrupted,
				cap(g.children), c.cfg.GroupSize)
		}
		total := 0
		for i, child := range g.children {
			if child == nil {
				return 0, fmt.Errorf("%w: nil child at index %d", ErrCorrupted, i)
			}
			if child.level() != g.lvl-1 {
				return 0, fmt.Errorf("%w: child %d at level %d below parent at level %d",
					ErrCorrupted, i, child.level(), g.lvl)
			}
			n, err := c.checkGroup(child, cmp)
			if err != nil {
				return 0, err
			}
			if n != child.itemCount() {
				return 0, fmt.Errorf("%w: child %d reports %d items, holds %d", ErrCorrupted,
					i, child.itemCount(), n)
			}
			total += n
			if cmp != nil && i > 0 && cmp(g.children[i-1].last(), child.first()) >= 0 {
				return 0, fmt.Errorf("%w: children %d and %d overlap at level %d", ErrCorrupted,
					i-1, i, g.lvl)
			}
		}
		if total != g.count {
			return 0, fmt.Errorf("%w: parent at level %d counts %d items, holds %d", ErrCorrupted,
				g.lvl, g.count, total)
		}
		if cmp != nil {
			if cmp(g.lo, g.children[0].first()) != 0 || cmp(g.hi, g.children[len(g.children)-1].last()) != 0 {
				return 0, fmt.Errorf("%w: stale bounds at level %d", ErrCorrupted, g.lvl)
			}
		}
		return total, nil
	}
	return 0, fmt.Errorf("%w: unknown group type %T", ErrCorrupted, g)
}
