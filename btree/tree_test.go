package btree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newIntList(t *testing.T, size int) *List[int] {
	t.Helper()
	l, err := NewList[int](Config{GroupSize: size})
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}
	return l
}

func listItems[T any](l *List[T]) []T {
	out := make([]T, 0, l.Len())
	l.Each(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}

func mustCheck(t *testing.T, checker interface{ Check() error }) {
	t.Helper()
	if err := checker.Check(); err != nil {
		t.Fatalf("invariant check failed: %v", err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	for _, size := range []int{-1, 1, MaxGroupSize + 1} {
		_, err := NewList[int](Config{GroupSize: size})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("group size %d: expected ErrInvalidConfig, got %v", size, err)
		}
	}
}

func TestNewNormalizesConfig(t *testing.T) {
	l, err := NewList[int](Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Config().GroupSize != DefaultGroupSize {
		t.Fatalf("expected default group size %d, got %d", DefaultGroupSize, l.Config().GroupSize)
	}
}

func TestCheckEmptyTree(t *testing.T) {
	l := newIntList(t, 4)
	mustCheck(t, l)
	if l.Len() != 0 || l.Height() != 0 || !l.IsEmpty() {
		t.Fatalf("unexpected empty tree state len=%d height=%d", l.Len(), l.Height())
	}
	if _, err := l.At(0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds on empty tree, got %v", err)
	}
	if _, err := l.First(); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds for First on empty tree, got %v", err)
	}
}

func TestAppendIntoFullRootLeafGrowsRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clusters")
	defer teardown()

	l := newIntList(t, 10)
	for i := 1; i <= 10; i++ {
		l.Append(i)
	}
	if l.Height() != 1 {
		t.Fatalf("expected a single full leaf, height=%d", l.Height())
	}
	l.Append(11)
	mustCheck(t, l)
	if l.Height() != 2 {
		t.Fatalf("expected height 2 after overflow, got %d", l.Height())
	}
	root := l.root.(*parentGroup[int])
	if len(root.children) != 2 || root.count != 11 {
		t.Fatalf("expected root with 2 children and 11 items, got %d children, %d items",
			len(root.children), root.count)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if got := listItems(l); !equalInts(got, want) {
		t.Fatalf("unexpected items %v", got)
	}
}

func TestInsertAtFrontReversesOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "clusters")
	defer teardown()

	l := newIntList(t, 3)
	for i := 0; i < 100; i++ {
		if err := l.InsertAt(0, i); err != nil {
			t.Fatalf("InsertAt(0) failed: %v", err)
		}
		mustCheck(t, l)
	}
	got := listItems(l)
	for i, v := range got {
		if v != 99-i {
			t.Fatalf("item %d: got %d, want %d", i, v, 99-i)
		}
	}
}

func TestInsertInMiddle(t *testing.T) {
	l := newIntList(t, 4)
	model := []int{}
	for i := 0; i < 60; i++ {
		pos := len(model) / 2
		if err := l.InsertAt(pos, i); err != nil {
			t.Fatalf("InsertAt(%d) failed: %v", pos, err)
		}
		model = append(model, 0)
		copy(model[pos+1:], model[pos:])
		model[pos] = i
		mustCheck(t, l)
	}
	if got := listItems(l); !equalInts(got, model) {
		t.Fatalf("list differs from model:\n got %v\nwant %v", got, model)
	}
}

func TestInsertAtOutOfBounds(t *testing.T) {
	l := newIntList(t, 4)
	l.Append(1)
	for _, pos := range []int{-1, 2, LastPosition - 1} {
		if err := l.InsertAt(pos, 0); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("InsertAt(%d): expected ErrIndexOutOfBounds, got %v", pos, err)
		}
	}
	if l.Len() != 1 {
		t.Fatalf("failed inserts changed the tree, len=%d", l.Len())
	}
}

func TestRemoveAtMergesAndCollapses(t *testing.T) {
	l := newIntList(t, 10)
	for i := 1; i <= 11; i++ {
		l.Append(i)
	}
	item, err := l.RemoveAt(10)
	if err != nil || item != 11 {
		t.Fatalf("RemoveAt(10) = %d, %v", item, err)
	}
	mustCheck(t, l)
	if l.Height() != 1 || l.Len() != 10 {
		t.Fatalf("expected collapse to a single leaf, height=%d len=%d", l.Height(), l.Len())
	}
	for l.Len() > 0 {
		if _, err := l.RemoveAt(0); err != nil {
			t.Fatalf("RemoveAt(0) failed: %v", err)
		}
		mustCheck(t, l)
	}
	if l.root != nil || l.Height() != 0 {
		t.Fatalf("expected empty tree after removing all items")
	}
}

func TestLastPosition(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 20; i++ {
		l.Append(i)
	}
	last, err := l.At(LastPosition)
	if err != nil || last != 19 {
		t.Fatalf("At(LastPosition) = %d, %v", last, err)
	}
	removed, err := l.RemoveAt(LastPosition)
	if err != nil || removed != 19 {
		t.Fatalf("RemoveAt(LastPosition) = %d, %v", removed, err)
	}
	if l.Len() != 19 {
		t.Fatalf("expected 19 items, got %d", l.Len())
	}
	mustCheck(t, l)
}

func TestSetAtKeepsBounds(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 30; i++ {
		l.Append(i)
	}
	if err := l.SetAt(0, -1); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := l.SetAt(LastPosition, 100); err != nil {
		t.Fatalf("SetAt(LastPosition) failed: %v", err)
	}
	first, _ := l.First()
	last, _ := l.Last()
	if first != -1 || last != 100 {
		t.Fatalf("cached bounds not updated: first=%d last=%d", first, last)
	}
	if err := l.SetAt(30, 0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 25; i++ {
		l.Append(i)
	}
	c := l.Clone()
	mustCheck(t, c)
	if _, err := c.RemoveAt(5); err != nil {
		t.Fatalf("RemoveAt on clone failed: %v", err)
	}
	if err := c.SetAt(0, 42); err != nil {
		t.Fatalf("SetAt on clone failed: %v", err)
	}
	if l.Len() != 25 || c.Len() != 24 {
		t.Fatalf("clone not independent: len=%d clone len=%d", l.Len(), c.Len())
	}
	if v, _ := l.At(0); v != 0 {
		t.Fatalf("original changed through clone, item 0 = %d", v)
	}
	mustCheck(t, l)
}

func TestCopyFromReplacesContent(t *testing.T) {
	src := newIntList(t, 4)
	for i := 0; i < 17; i++ {
		src.Append(i)
	}
	dst := newIntList(t, 3)
	dst.Append(99)
	dst.CopyFrom(src)
	mustCheck(t, dst)
	if !equalInts(listItems(dst), listItems(src)) {
		t.Fatalf("CopyFrom produced different items")
	}
	dst.CopyFrom(dst)
	if dst.Len() != 17 {
		t.Fatalf("self copy changed the tree")
	}
}

func TestWalkGroupsCountsItems(t *testing.T) {
	l := newIntList(t, 3)
	for i := 0; i < 40; i++ {
		l.Append(i)
	}
	leafItems, groups := 0, 0
	l.WalkGroups(func(info GroupInfo, items []int) bool {
		groups++
		if info.Level == 0 {
			leafItems += len(items)
			if info.Children != len(items) {
				t.Fatalf("leaf %d reports %d children, holds %d", info.ID, info.Children, len(items))
			}
		}
		if info.ID == 0 && info.Parent != -1 {
			t.Fatalf("root must have no parent")
		}
		return true
	})
	if leafItems != 40 {
		t.Fatalf("walk saw %d items, want 40", leafItems)
	}
	if groups < 14 {
		t.Fatalf("expected at least 14 groups for 40 items in groups of 3, got %d", groups)
	}
}
