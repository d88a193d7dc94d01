package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync/atomic"

	"github.com/npillmayer/clusters"
	"github.com/npillmayer/clusters/compare"
	"golang.org/x/sync/errgroup"
)

var (
	intComparator     compare.Comparator[int]    = compare.Ordered[int]{}
	stringComparator  compare.Comparator[string] = compare.Hashed{}
	naturalComparator compare.Comparator[string] = compare.Natural{}
)

func orderedConfig[K any](group int, cmp compare.Comparator[K]) clusters.OrderedConfig[K] {
	return clusters.OrderedConfig[K]{GroupSize: group, Comparator: cmp}
}

// workload drives one container and mirrors every change in a plain Go
// model.
type workload interface {
	step() error
	read() (int, error)
	verify() error
	len() int
	height() int
	shape(con *console)
	dot(w io.Writer) error
}

// runWithReaders runs n workload steps while readers goroutines walk the
// container with cursors. It returns the number of items the readers
// visited.
func runWithReaders(ctx context.Context, w workload, n, readers int) (int64, error) {
	var visited atomic.Int64
	done := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := w.step(); err != nil {
				return err
			}
		}
		return nil
	})
	for r := 0; r < readers; r++ {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				cnt, err := w.read()
				if err != nil {
					return err
				}
				visited.Add(int64(cnt))
			}
		})
	}
	err := g.Wait()
	return visited.Load(), err
}

// --- List ------------------------------------------------------------------

type listWorkload struct {
	list  *clusters.List[int]
	rnd   *rand.Rand
	model []int
	next  int
}

func (lw *listWorkload) step() error {
	switch r := lw.rnd.Intn(100); {
	case r < 60 || len(lw.model) == 0:
		pos := lw.rnd.Intn(len(lw.model) + 1)
		if err := lw.list.InsertAt(pos, lw.next); err != nil {
			return fmt.Errorf("insert at %d: %w", pos, err)
		}
		lw.model = slices.Insert(lw.model, pos, lw.next)
		lw.next++
	case r < 85:
		pos := lw.rnd.Intn(len(lw.model))
		item, err := lw.list.RemoveAt(pos)
		if err != nil {
			return fmt.Errorf("remove at %d: %w", pos, err)
		}
		if item != lw.model[pos] {
			return fmt.Errorf("removed %d at %d, model has %d", item, pos, lw.model[pos])
		}
		lw.model = slices.Delete(lw.model, pos, pos+1)
	default:
		pos := lw.rnd.Intn(len(lw.model))
		if err := lw.list.SetAt(pos, -lw.model[pos]); err != nil {
			return fmt.Errorf("set at %d: %w", pos, err)
		}
		lw.model[pos] = -lw.model[pos]
	}
	return nil
}

func (lw *listWorkload) read() (int, error) {
	n := 0
	err := lw.list.Begin(func(c *clusters.ListCursor[int]) error {
		for ; c.HasCurrent(); c.MoveNext() {
			if _, err := c.Current(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

func (lw *listWorkload) verify() error {
	if err := lw.list.Check(); err != nil {
		return err
	}
	if items := lw.list.Items(); !slices.Equal(items, lw.model) {
		return fmt.Errorf("list holds %d items, differs from its model of %d items", len(items), len(lw.model))
	}
	return nil
}

func (lw *listWorkload) len() int    { return lw.list.Len() }
func (lw *listWorkload) height() int { return lw.list.Height() }

func (lw *listWorkload) shape(con *console) {
	printShape(con, lw.list.Height(), lw.list.WalkGroups)
}

func (lw *listWorkload) dot(w io.Writer) error {
	return clusters.ToDot(lw.list.WalkGroups, w)
}

// --- Index -----------------------------------------------------------------

type indexWorkload struct {
	index *clusters.Index[int]
	rnd   *rand.Rand
	model map[int]bool
}

func (xw *indexWorkload) step() error {
	key := xw.rnd.Intn(1000)
	if xw.rnd.Intn(3) == 0 {
		if xw.index.Remove(key) != xw.model[key] {
			return fmt.Errorf("remove %d disagrees with model", key)
		}
		delete(xw.model, key)
		return nil
	}
	if xw.index.Add(key) == xw.model[key] {
		return fmt.Errorf("add %d disagrees with model", key)
	}
	xw.model[key] = true
	return nil
}

func (xw *indexWorkload) read() (int, error) {
	n := 0
	err := xw.index.Begin(func(c clusters.IndexCursor[int]) error {
		prev, ok := 0, false
		for ; c.HasCurrent(); c.MoveNext() {
			item, err := c.Current()
			if err != nil {
				return err
			}
			if ok && item <= prev {
				return errors.New("index cursor out of order")
			}
			prev, ok = item, true
			n++
		}
		return nil
	})
	return n, err
}

func (xw *indexWorkload) verify() error {
	if err := xw.index.Check(); err != nil {
		return err
	}
	if xw.index.Len() != len(xw.model) {
		return fmt.Errorf("index holds %d items, model %d", xw.index.Len(), len(xw.model))
	}
	for key := range xw.model {
		if !xw.index.Contains(key) {
			return fmt.Errorf("index lost item %d", key)
		}
	}
	return nil
}

func (xw *indexWorkload) len() int    { return xw.index.Len() }
func (xw *indexWorkload) height() int { return xw.index.Height() }

func (xw *indexWorkload) shape(con *console) {
	printShape(con, xw.index.Height(), xw.index.WalkGroups)
}

func (xw *indexWorkload) dot(w io.Writer) error {
	return clusters.ToDot(xw.index.WalkGroups, w)
}

// --- Map -------------------------------------------------------------------

type mapWorkload struct {
	m     *clusters.Map[string, int]
	rnd   *rand.Rand
	model map[string]int
}

func (mw *mapWorkload) step() error {
	key := fmt.Sprintf("item%d", mw.rnd.Intn(1000))
	_, present := mw.model[key]
	switch mw.rnd.Intn(4) {
	case 0:
		if mw.m.Remove(key) != present {
			return fmt.Errorf("remove %q disagrees with model", key)
		}
		delete(mw.model, key)
	default:
		value := mw.rnd.Int()
		if mw.m.Set(key, value) != present {
			return fmt.Errorf("set %q disagrees with model", key)
		}
		mw.model[key] = value
	}
	return nil
}

func (mw *mapWorkload) read() (int, error) {
	n := 0
	err := mw.m.Begin(func(c *clusters.MapCursor[string, int]) error {
		for ; c.HasCurrent(); c.MoveNext() {
			if _, _, err := c.Current(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

func (mw *mapWorkload) verify() error {
	if err := mw.m.Check(); err != nil {
		return err
	}
	if mw.m.Len() != len(mw.model) {
		return fmt.Errorf("map holds %d keys, model %d", mw.m.Len(), len(mw.model))
	}
	for key, value := range mw.model {
		v, err := mw.m.Get(key)
		if err != nil {
			return err
		}
		if v != value {
			return fmt.Errorf("map value for %q is %d, model %d", key, v, value)
		}
	}
	return nil
}

func (mw *mapWorkload) len() int    { return mw.m.Len() }
func (mw *mapWorkload) height() int { return mw.m.Height() }

func (mw *mapWorkload) shape(con *console) {
	printShape(con, mw.m.Height(), mw.m.WalkGroups)
}

func (mw *mapWorkload) dot(w io.Writer) error {
	return clusters.ToDot(mw.m.WalkGroups, w)
}
