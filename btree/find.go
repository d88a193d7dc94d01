package btree

import "fmt"

// FindMode selects which key a find on an ordered tree lands on.
type FindMode int

const (
	// Any lands on key if present, else on the nearest key below, else on
	// the first key above.
	Any FindMode = iota
	// Equal lands on key only.
	Equal
	// Above lands on the smallest key greater than key.
	Above
	// AboveOrEqual lands on key or the smallest key greater than it.
	AboveOrEqual
	// Below lands on the largest key less than key.
	Below
	// BelowOrEqual lands on key or the largest key less than it.
	BelowOrEqual
)

func (m FindMode) String() string {
	switch m {
	case Any:
		return "any"
	case Equal:
		return "equal"
	case Above:
		return "above"
	case AboveOrEqual:
		return "above-or-equal"
	case Below:
		return "below"
	case BelowOrEqual:
		return "below-or-equal"
	}
	return fmt.Sprintf("FindMode(%d)", int(m))
}

// findIn selects the slot of g (a child for parents, an item for leaves)
// to continue a find with. exists reports whether the key has been seen on
// the way, even if the mode rejects it.
func (t *Ordered[K, V]) findIn(g group[slot[K, V]], p probe[K], mode FindMode) (pos int, ok, exists bool) {
	switch g := g.(type) {
	case *leafGroup[slot[K, V]]:
		return t.findInLeaf(g, p, mode)
	case *parentGroup[slot[K, V]]:
		return t.findInParent(g, p, mode)
	}
	panic("unknown group type")
}

func (t *Ordered[K, V]) findInParent(g *parentGroup[slot[K, V]], p probe[K], mode FindMode) (int, bool, bool) {
	idx, n := t.locate(g, p, false)
	if n == 1 {
		switch mode {
		case Above:
			if t.compare(p, g.children[idx].last()) == 0 {
				if idx+1 >= len(g.children) {
					return 0, false, true
				}
				return idx + 1, true, true
			}
		case Below:
			if t.compare(p, g.children[idx].first()) == 0 {
				if idx == 0 {
					return 0, false, true
				}
				return idx - 1, true, true
			}
		}
		return idx, true, false
	}
	// key falls between child idx and idx+1
	switch mode {
	case Above, AboveOrEqual:
		return idx + 1, true, false
	case Equal:
		return 0, false, false
	}
	return idx, true, false
}

func (t *Ordered[K, V]) findInLeaf(g *leafGroup[slot[K, V]], p probe[K], mode FindMode) (int, bool, bool) {
	pos, exists := t.search(g, p)
	count := len(g.items)
	if exists {
		switch mode {
		case Above:
			if pos+1 >= count {
				return 0, false, true
			}
			return pos + 1, true, true
		case Below:
			if pos == 0 {
				return 0, false, true
			}
			return pos - 1, true, true
		}
		return pos, true, true
	}
	// pos is where key would be inserted
	switch mode {
	case Above, AboveOrEqual:
		if pos == count {
			return 0, false, false
		}
		return pos, true, false
	case Any:
		if pos > 0 {
			return pos - 1, true, false
		}
		return 0, true, false
	case Below, BelowOrEqual:
		if pos == 0 {
			return 0, false, false
		}
		return pos - 1, true, false
	}
	return 0, false, false
}

// Find looks up key with the given mode and returns the slot it lands on.
// exists reports whether key itself is present.
func (t *Ordered[K, V]) Find(key K, mode FindMode) (k K, v V, ok, exists bool) {
	c := t.NewCursor()
	defer c.Close()
	ok, exists = c.Find(key, mode)
	if ok {
		k, v, _ = c.Current()
	}
	return k, v, ok, exists
}
