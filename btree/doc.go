/*
Package btree provides the in-memory B-tree engine behind the clusters
containers.

The tree is built from fixed-capacity groups. A leaf group holds up to N items,
a parent group holds up to N child groups of the next lower level, caches the
aggregate item count of its subtree and the first and last item below it.
All groups of a tree share the same capacity N (the group size).

Two engines share the group structure:

  - List is positional: items live in insertion order and are addressed by
    their 0-based position.
  - Ordered keeps slots of (key, value) sorted by a Comparator. Keys are
    unique. An ordered tree answers positional queries as well.

Insertion never fails for lack of space. The engine escalates from a direct
insert into the target child, to shifting a free slot over from the nearest
sibling with room, to splitting the target child, and finally to growing a new
root above the old one. Removal merges a child into a neighbour whenever the
two fit into one group, and collapses a root with a single child.

Cursors hold one (group, slot) pointer per level. They are not safe for
concurrent use and are invalidated by any structural change not made through
the cursor itself. Nothing in this package is synchronized; package clusters
adds the locking.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'clusters'.
func tracer() tracing.Trace {
	return tracing.Select("clusters")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
