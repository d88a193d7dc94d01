package btree

import "fmt"

// resolve maps LastPosition to the last item and checks bounds.
func (c *core[E]) resolve(pos int) (int, error) {
	if pos == LastPosition {
		pos = c.len() - 1
	}
	if pos < 0 || pos >= c.len() {
		return 0, fmt.Errorf("%w: position %d, length %d", ErrIndexOutOfBounds, pos, c.len())
	}
	return pos, nil
}

func (c *core[E]) at(pos int) (E, error) {
	var zero E
	pos, err := c.resolve(pos)
	if err != nil {
		return zero, err
	}
	return c.root.getAt(pos), nil
}

func (c *core[E]) setAt(pos int, item E) error {
	pos, err := c.resolve(pos)
	if err != nil {
		return err
	}
	c.root.setAt(pos, item)
	return nil
}

func (c *core[E]) removeAt(pos int) (E, error) {
	var zero E
	pos, err := c.resolve(pos)
	if err != nil {
		return zero, err
	}
	item := c.root.removeAt(pos)
	c.collapse()
	return item, nil
}

func (c *core[E]) firstItem() (E, error) {
	var zero E
	if c.root == nil {
		return zero, fmt.Errorf("%w: tree is empty", ErrIndexOutOfBounds)
	}
	return c.root.first(), nil
}

func (c *core[E]) lastItem() (E, error) {
	var zero E
	if c.root == nil {
		return zero, fmt.Errorf("%w: tree is empty", ErrIndexOutOfBounds)
	}
	return c.root.last(), nil
}
