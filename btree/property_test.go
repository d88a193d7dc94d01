package btree

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/npillmayer/clusters/compare"
)

// How to run:
//   - Deterministic randomized property tests:
//     go test ./btree -run 'Randomized' -count=1
//   - Fuzz tests for this file:
//     go test ./btree -run '^$' -fuzz FuzzListRandomized -fuzztime=10s
//     go test ./btree -run '^$' -fuzz FuzzOrderedRandomized -fuzztime=10s

func assertListMatchesModel(t *testing.T, l *List[int], model []int) {
	t.Helper()
	mustCheck(t, l)
	if l.Len() != len(model) {
		t.Fatalf("length mismatch: tree %d, model %d", l.Len(), len(model))
	}
	if got := listItems(l); !equalInts(got, model) {
		t.Fatalf("items differ from model:\n got %v\nwant %v", got, model)
	}
}

func runRandomListSequence(t *testing.T, seed uint64, size, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	l := newIntList(t, size)
	model := make([]int, 0, 64)

	for i := 0; i < steps; i++ {
		switch r.Intn(6) {
		case 0, 1, 2:
			pos := r.Intn(len(model) + 1)
			if err := l.InsertAt(pos, i); err != nil {
				t.Fatalf("InsertAt(%d) failed: %v", pos, err)
			}
			model = slices.Insert(model, pos, i)
		case 3:
			if len(model) == 0 {
				continue
			}
			pos := r.Intn(len(model))
			item, err := l.RemoveAt(pos)
			if err != nil || item != model[pos] {
				t.Fatalf("RemoveAt(%d) = %d, %v; want %d", pos, item, err, model[pos])
			}
			model = slices.Delete(model, pos, pos+1)
		case 4:
			if len(model) == 0 {
				continue
			}
			pos := r.Intn(len(model))
			c := l.NewCursor()
			if err := c.Seek(pos); err != nil {
				t.Fatalf("Seek(%d) failed: %v", pos, err)
			}
			if _, err := c.RemoveCurrent(); err != nil {
				t.Fatalf("RemoveCurrent at %d failed: %v", pos, err)
			}
			model = slices.Delete(model, pos, pos+1)
			if pos < len(model) {
				if v, _ := c.Current(); v != model[pos] {
					t.Fatalf("cursor after removal at %d, want %d", v, model[pos])
				}
			} else if c.HasCurrent() {
				t.Fatalf("cursor positioned after removing the last item")
			}
			c.Close()
		case 5:
			if len(model) == 0 {
				continue
			}
			pos := r.Intn(len(model))
			if err := l.SetAt(pos, -i); err != nil {
				t.Fatalf("SetAt(%d) failed: %v", pos, err)
			}
			model[pos] = -i
		}
		assertListMatchesModel(t, l, model)
	}
}

func TestListRandomizedProperty(t *testing.T) {
	seeds := []uint64{1, 2, 3, 7, 42, 99, 31337, 123456789}
	for _, size := range []int{2, 3, 4, 10} {
		for _, seed := range seeds {
			t.Run("n"+strconv.Itoa(size)+"_seed_"+strconv.FormatUint(seed, 10), func(t *testing.T) {
				runRandomListSequence(t, seed, size, 200)
			})
		}
	}
}

func FuzzListRandomized(f *testing.F) {
	f.Add(uint64(1), uint8(2), uint8(64))
	f.Add(uint64(7), uint8(3), uint8(128))
	f.Add(uint64(42), uint8(10), uint8(255))
	f.Fuzz(func(t *testing.T, seed uint64, size, steps uint8) {
		runRandomListSequence(t, seed, int(size%12)+MinGroupSize, int(steps)+1)
	})
}

func runRandomOrderedSequence(t *testing.T, seed uint64, size, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	o, err := NewOrdered[int, int](Config{GroupSize: size}, compare.Ordered[int]{})
	if err != nil {
		t.Fatalf("NewOrdered failed: %v", err)
	}
	model := map[int]int{}

	for i := 0; i < steps; i++ {
		key := r.Intn(steps)
		switch r.Intn(4) {
		case 0, 1:
			_, present := model[key]
			if added := o.Add(key, i); added == present {
				t.Fatalf("Add(%d) = %v with key present=%v", key, added, present)
			}
			if !present {
				model[key] = i
			}
		case 2:
			want, present := model[key]
			got, ok := o.Remove(key)
			if ok != present || (ok && got != want) {
				t.Fatalf("Remove(%d) = %d,%v; want %d,%v", key, got, ok, want, present)
			}
			delete(model, key)
		case 3:
			_, present := model[key]
			if replaced := o.Set(key, i); replaced != present {
				t.Fatalf("Set(%d) replaced=%v with key present=%v", key, replaced, present)
			}
			model[key] = i
		}
		mustCheck(t, o)
		if o.Len() != len(model) {
			t.Fatalf("length mismatch: tree %d, model %d", o.Len(), len(model))
		}
	}
	keys := make([]int, 0, len(model))
	for k := range model {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	i := 0
	o.Each(func(k, v int) bool {
		if k != keys[i] || v != model[k] {
			t.Fatalf("slot %d: got (%d,%d), want (%d,%d)", i, k, v, keys[i], model[keys[i]])
		}
		i++
		return true
	})
}

func TestOrderedRandomizedProperty(t *testing.T) {
	seeds := []uint64{1, 2, 3, 7, 42, 99, 31337, 123456789}
	for _, size := range []int{2, 3, 5, 10} {
		for _, seed := range seeds {
			t.Run("n"+strconv.Itoa(size)+"_seed_"+strconv.FormatUint(seed, 10), func(t *testing.T) {
				runRandomOrderedSequence(t, seed, size, 300)
			})
		}
	}
}

func FuzzOrderedRandomized(f *testing.F) {
	f.Add(uint64(1), uint8(2), uint8(64))
	f.Add(uint64(42), uint8(5), uint8(200))
	f.Fuzz(func(t *testing.T, seed uint64, size, steps uint8) {
		runRandomOrderedSequence(t, seed, int(size%12)+MinGroupSize, int(steps)+1)
	})
}

func TestGrowthKeepsRootWithTwoChildren(t *testing.T) {
	for _, size := range []int{2, 3} {
		for seed := int64(1); seed <= 400; seed++ {
			r := rand.New(rand.NewSource(seed))
			l := newIntList(t, size)
			o := newIntOrdered(t, size)
			for i := 0; i < 120; i++ {
				height := l.Height()
				if r.Intn(4) == 0 && l.Len() > 0 {
					if _, err := l.RemoveAt(r.Intn(l.Len())); err != nil {
						t.Fatal(err)
					}
				} else if err := l.InsertAt(r.Intn(l.Len()+1), i); err != nil {
					t.Fatal(err)
				}
				if err := l.Check(); err != nil {
					t.Fatalf("n=%d seed=%d step %d, list height %d->%d: %v",
						size, seed, i, height, l.Height(), err)
				}
				key := r.Intn(200)
				height = o.Height()
				if r.Intn(3) == 0 {
					o.Remove(key)
				} else {
					o.Add(key, "")
				}
				if err := o.Check(); err != nil {
					t.Fatalf("n=%d seed=%d step %d key %d, ordered height %d->%d: %v",
						size, seed, i, key, height, o.Height(), err)
				}
			}
		}
	}
}

func TestGrowthAfterShiftedAttempt(t *testing.T) {
	// sequences where a failed insert shifts slots below the root before it grows
	runRandomOrderedSequence(t, 123456789, 3, 300)
	runRandomListSequence(t, 163, 3, 300)
}
