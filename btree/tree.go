package btree

// core is the group structure shared by the List and Ordered engines.
type core[E any] struct {
	cfg  Config
	root group[E] // nil for an empty tree
}

func newCore[E any](cfg Config) (core[E], error) {
	if err := cfg.validate(); err != nil {
		return core[E]{}, err
	}
	return core[E]{cfg: cfg.normalized()}, nil
}

func (c *core[E]) len() int {
	if c.root == nil {
		return 0
	}
	return c.root.itemCount()
}

// height is the number of group levels; 0 for an empty tree.
func (c *core[E]) height() int {
	if c.root == nil {
		return 0
	}
	return c.root.level() + 1
}

// grow puts a new root with the old root as its only child on top of the
// tree.
func (c *core[E]) grow() {
	assert(c.root != nil, "grow called on empty tree")
	c.root = newParentOver(c.root, c.cfg.GroupSize)
	tracer().Debugf("cluster: grew root to level %d", c.root.level())
}

// collapse normalizes the root after a removal: an empty root is dropped
// and a parent root with a single child is replaced by that child.
func (c *core[E]) collapse() {
	for c.root != nil {
		switch r := c.root.(type) {
		case *leafGroup[E]:
			if len(r.items) == 0 {
				c.root = nil
			}
			return
		case *parentGroup[E]:
			switch len(r.children) {
			case 0:
				c.root = nil
			case 1:
				c.root = r.children[0]
				tracer().Debugf("cluster: collapsed root to level %d", c.root.level())
			default:
				return
			}
		default:
			panic("unknown group type")
		}
	}
}

// seed creates the root leaf of an empty tree.
func (c *core[E]) seed() *leafGroup[E] {
	leaf := newLeaf[E](c.cfg.GroupSize)
	c.root = leaf
	return leaf
}

func (c *core[E]) clear() {
	c.root = nil
}

func (c *core[E]) clone() core[E] {
	d := core[E]{cfg: c.cfg}
	if c.root != nil {
		d.root = c.root.deepCopy()
	}
	return d
}

// copyFrom replaces the content of c by a deep copy of src. The group size
// of src is adopted.
func (c *core[E]) copyFrom(src *core[E]) {
	if c == src {
		return
	}
	*c = src.clone()
}
