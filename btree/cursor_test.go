package btree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCursorForwardAndBackward(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 50; i++ {
		l.Append(i)
	}
	c := l.NewCursor()
	defer c.Close()
	if c.HasCurrent() || c.MovePrevious() {
		t.Fatalf("fresh cursor must be unpositioned and unable to move back")
	}
	n := 0
	for c.MoveNext() {
		v, err := c.Current()
		if err != nil || v != n {
			t.Fatalf("forward step %d: got %d, %v", n, v, err)
		}
		if c.Position() != n {
			t.Fatalf("forward step %d: position %d", n, c.Position())
		}
		n++
	}
	if n != 50 || c.HasCurrent() {
		t.Fatalf("expected 50 forward steps ending unpositioned, got %d", n)
	}
	if _, err := c.Current(); !errors.Is(err, ErrNoCurrent) {
		t.Fatalf("expected ErrNoCurrent past the end, got %v", err)
	}
	if !c.Last() {
		t.Fatalf("Last failed")
	}
	n = 49
	for {
		v, _ := c.Current()
		if v != n {
			t.Fatalf("backward step: got %d, want %d", v, n)
		}
		if !c.MovePrevious() {
			break
		}
		n--
	}
	if n != 0 || c.HasCurrent() {
		t.Fatalf("backward iteration stopped at %d", n)
	}
}

func TestCursorSeek(t *testing.T) {
	l := newIntList(t, 4)
	for i := 0; i < 100; i++ {
		l.Append(i * 2)
	}
	c := l.NewCursor()
	defer c.Close()
	for _, pos := range []int{0, 1, 3, 4, 17, 63, 99} {
		if err := c.Seek(pos); err != nil {
			t.Fatalf("Seek(%d) failed: %v", pos, err)
		}
		v, _ := c.Current()
		if v != pos*2 || c.Position() != pos {
			t.Fatalf("Seek(%d): current %d, position %d", pos, v, c.Position())
		}
	}
	if err := c.Seek(LastPosition); err != nil || c.Position() != 99 {
		t.Fatalf("Seek(LastPosition) failed: %v", err)
	}
	if err := c.Seek(100); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if c.HasCurrent() {
		t.Fatalf("failed seek must leave the cursor unpositioned")
	}
}

func TestCursorRemoveCurrent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clusters")
	defer teardown()

	l := newIntList(t, 3)
	for i := 0; i < 60; i++ {
		l.Append(i)
	}
	c := l.NewCursor()
	defer c.Close()
	c.First()
	for c.HasCurrent() {
		v, _ := c.Current()
		if v%2 == 0 {
			removed, err := c.RemoveCurrent()
			if err != nil || removed != v {
				t.Fatalf("RemoveCurrent = %d, %v; want %d", removed, err, v)
			}
			mustCheck(t, l)
			continue
		}
		c.MoveNext()
	}
	got := listItems(l)
	if len(got) != 30 {
		t.Fatalf("expected 30 odd items, got %d", len(got))
	}
	for i, v := range got {
		if v != 2*i+1 {
			t.Fatalf("item %d: got %d", i, v)
		}
	}
	c.Last()
	if _, err := c.RemoveCurrent(); err != nil {
		t.Fatalf("removing the last item failed: %v", err)
	}
	if c.HasCurrent() {
		t.Fatalf("cursor must be unpositioned after removing the last item")
	}
}

func TestCursorSetCurrent(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 10; i++ {
		l.Append(i)
	}
	c := l.NewCursor()
	defer c.Close()
	for c.MoveNext() {
		v, _ := c.Current()
		if err := c.SetCurrent(v * 10); err != nil {
			t.Fatalf("SetCurrent failed: %v", err)
		}
	}
	if v, _ := l.At(9); v != 90 {
		t.Fatalf("SetCurrent did not write through, item 9 = %d", v)
	}
	if err := c.SetCurrent(0); !errors.Is(err, ErrNoCurrent) {
		t.Fatalf("expected ErrNoCurrent, got %v", err)
	}
}

func TestClosedCursor(t *testing.T) {
	l := newIntList(t, 3)
	l.Append(1)
	c := l.NewCursor()
	c.Close()
	if c.MoveNext() || c.First() || c.HasCurrent() || c.Position() != -1 {
		t.Fatalf("closed cursor must not move")
	}
	if _, err := c.Current(); !errors.Is(err, ErrCursorClosed) {
		t.Fatalf("expected ErrCursorClosed, got %v", err)
	}
	if err := c.Seek(0); !errors.Is(err, ErrCursorClosed) {
		t.Fatalf("expected ErrCursorClosed from Seek, got %v", err)
	}
}

func TestCursorOnEmptyTree(t *testing.T) {
	l := newIntList(t, 3)
	c := l.NewCursor()
	defer c.Close()
	if c.MoveNext() || c.First() || c.Last() {
		t.Fatalf("cursor on empty tree must not position")
	}
}

func TestOrderedCursorFindModes(t *testing.T) {
	o := newIntOrdered(t, 3)
	for k := 10; k <= 300; k += 10 {
		o.Add(k, "")
	}
	type tc struct {
		key    int
		mode   FindMode
		ok     bool
		exists bool
		want   int
	}
	cases := []tc{
		{50, Equal, true, true, 50},
		{55, Equal, false, false, 0},
		{50, Above, true, true, 60},
		{55, Above, true, false, 60},
		{5, Above, true, false, 10},
		{300, Above, false, true, 0},
		{50, AboveOrEqual, true, true, 50},
		{55, AboveOrEqual, true, false, 60},
		{305, AboveOrEqual, false, false, 0},
		{50, Below, true, true, 40},
		{55, Below, true, false, 50},
		{10, Below, false, true, 0},
		{5, Below, false, false, 0},
		{50, BelowOrEqual, true, true, 50},
		{55, BelowOrEqual, true, false, 50},
		{5, BelowOrEqual, false, false, 0},
		{305, BelowOrEqual, true, false, 300},
		{50, Any, true, true, 50},
		{55, Any, true, false, 50},
		{5, Any, true, false, 10},
		{305, Any, true, false, 300},
	}
	c := o.NewCursor()
	defer c.Close()
	for _, x := range cases {
		ok, exists := c.Find(x.key, x.mode)
		if ok != x.ok || exists != x.exists {
			t.Fatalf("Find(%d, %s) = ok %v, exists %v; want %v, %v", x.key, x.mode, ok, exists, x.ok, x.exists)
		}
		if !ok {
			if c.HasCurrent() {
				t.Fatalf("failed Find(%d, %s) left the cursor positioned", x.key, x.mode)
			}
			continue
		}
		k, _, _ := c.Current()
		if k != x.want {
			t.Fatalf("Find(%d, %s) landed on %d, want %d", x.key, x.mode, k, x.want)
		}
	}
}

func TestOrderedCursorFindNeighbours(t *testing.T) {
	o := newIntOrdered(t, 2)
	for k := 0; k < 200; k += 2 {
		o.Add(k, "")
	}
	c := o.NewCursor()
	defer c.Close()
	for k := 0; k < 200; k += 2 {
		if ok, _ := c.Find(k, Above); ok != (k < 198) {
			t.Fatalf("Find(%d, Above) ok=%v", k, ok)
		} else if ok {
			if got, _, _ := c.Current(); got != k+2 {
				t.Fatalf("Find(%d, Above) landed on %d", k, got)
			}
		}
		if ok, _ := c.Find(k, Below); ok != (k > 0) {
			t.Fatalf("Find(%d, Below) ok=%v", k, ok)
		} else if ok {
			if got, _, _ := c.Current(); got != k-2 {
				t.Fatalf("Find(%d, Below) landed on %d", k, got)
			}
		}
		if ok, exists := c.Find(k+1, Equal); ok || exists {
			t.Fatalf("Find(%d, Equal) found a missing key", k+1)
		}
	}
}

func TestOrderedCursorIterateAfterFind(t *testing.T) {
	o := newIntOrdered(t, 3)
	for k := 0; k < 50; k++ {
		o.Add(k, "")
	}
	c := o.NewCursor()
	defer c.Close()
	ok, _ := c.Find(20, AboveOrEqual)
	if !ok || c.Position() != 20 {
		t.Fatalf("Find(20) positioned at %d", c.Position())
	}
	for want := 21; want < 50; want++ {
		if !c.MoveNext() {
			t.Fatalf("MoveNext failed before %d", want)
		}
		if k, _, _ := c.Current(); k != want {
			t.Fatalf("got %d, want %d", k, want)
		}
	}
	if c.MoveNext() {
		t.Fatalf("MoveNext past the end succeeded")
	}
	c.Find(25, Equal)
	if err := c.SetValue("quarter"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if v, _ := o.Get(25); v != "quarter" {
		t.Fatalf("SetValue did not write through, got %q", v)
	}
	k, _, err := c.RemoveCurrent()
	if err != nil || k != 25 {
		t.Fatalf("RemoveCurrent = %d, %v", k, err)
	}
	if k, _, _ := c.Current(); k != 26 {
		t.Fatalf("cursor after removal at %d, want 26", k)
	}
	mustCheck(t, o)
}

func TestOrderedFind(t *testing.T) {
	o := newIntOrdered(t, 4)
	for k := 1; k <= 9; k += 2 {
		o.Add(k, "v")
	}
	k, v, ok, exists := o.Find(4, Any)
	if !ok || exists || k != 3 || v != "v" {
		t.Fatalf("Find(4, Any) = %d,%q,%v,%v", k, v, ok, exists)
	}
}
