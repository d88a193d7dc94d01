/*
Package clusters offers ordered in-memory containers built on a B-tree of
fixed-capacity groups.

Clusters

A cluster tree keeps its items in groups of at most N entries. Leaf groups
hold the items, parent groups hold child groups and remember how many items
live below them. Positional access, insertion and removal thus cost
O(log n), while iteration stays within contiguous leaf arrays most of the
time.

Four containers share the tree:

  - List[T] is a sequence addressed by position.
  - Index[T] is a sorted set of unique items.
  - Map[K,V] is a sorted map from unique keys to values.
  - Catalog[V] is a Map keyed by random UUIDs.

Ordering is supplied by a comparator from package compare. Plain
constructors use compare.Ordered for the built-in ordered types; the
WithConfig constructors accept any comparator, for example compare.Natural
for listings of file names.

Every container guards its tree with one mutex. All methods are safe for
concurrent use. Cursors are handed out only inside a callback which holds
the lock:

	err := list.Begin(func(c *clusters.ListCursor[string]) error {
	    for ; c.HasCurrent(); c.MoveNext() {
	        item, _ := c.Current()
	        fmt.Println(item)
	    }
	    return nil
	})

The lock is released when the callback returns or panics, and the cursor is
closed. The callback must not call other methods of the same container;
they would wait for the lock it holds.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package clusters

import (
	"fmt"

	"github.com/npillmayer/clusters/btree"
	"github.com/npillmayer/clusters/compare"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

var (
	// ErrInvalidConfig is flagged for an unusable container configuration.
	ErrInvalidConfig = btree.ErrInvalidConfig
	// ErrIndexOutOfBounds is flagged whenever a position is outside the
	// container.
	ErrIndexOutOfBounds = btree.ErrIndexOutOfBounds
	// ErrKeyNotFound is flagged by Get for an absent key.
	ErrKeyNotFound = btree.ErrKeyNotFound
	// ErrNoCurrent is flagged by cursor operations on an unpositioned cursor.
	ErrNoCurrent = btree.ErrNoCurrent
	// ErrCursorClosed is flagged by cursors used after their callback returned.
	ErrCursorClosed = btree.ErrCursorClosed
)

// LastPosition addresses the last item of a container.
const LastPosition = btree.LastPosition

// FindMode selects which entry a find lands on.
type FindMode = btree.FindMode

// Find modes, see btree.FindMode.
const (
	Any          = btree.Any
	Equal        = btree.Equal
	Above        = btree.Above
	AboveOrEqual = btree.AboveOrEqual
	Below        = btree.Below
	BelowOrEqual = btree.BelowOrEqual
)

// Config configures a List.
type Config struct {
	// GroupSize is the capacity of a tree group. Zero selects the default.
	GroupSize int
}

// OrderedConfig configures an Index or a Map.
type OrderedConfig[K any] struct {
	// GroupSize is the capacity of a tree group. Zero selects the default.
	GroupSize int
	// Comparator orders the keys. It is required.
	Comparator compare.Comparator[K]
}

func (cfg OrderedConfig[K]) tree() (btree.Config, error) {
	if cfg.Comparator == nil {
		return btree.Config{}, fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	return btree.Config{GroupSize: cfg.GroupSize}, nil
}
