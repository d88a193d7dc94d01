package clusters

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/clusters/btree"
)

// maxDotItems limits the number of items printed into a leaf label.
const maxDotItems = 6

// ToDot outputs the group structure of a container in Graphviz DOT format
// (for debugging purposes). walk is the WalkGroups method of a container:
//
//	clusters.ToDot(list.WalkGroups, os.Stdout)
func ToDot[E any](walk func(fn func(info btree.GroupInfo, items []E) bool), w io.Writer) error {
	var nodelist, edgelist strings.Builder
	walk(func(info btree.GroupInfo, items []E) bool {
		leaf := info.Level == 0
		styles := nodeDotStyles(leaf, info.Children == info.Capacity)
		if leaf {
			label := fmt.Sprintf("%d/%d\\n%s", info.Children, info.Capacity, leafLabel(items))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", info.ID, label, styles)
		} else {
			label := fmt.Sprintf("L%d #%d", info.Level, info.Items)
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", info.ID, label, styles)
		}
		if info.Parent >= 0 {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [label=%d];\n", info.Parent, info.ID, info.Slot)
		}
		return true
	})
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	b.WriteString(nodelist.String())
	b.WriteString(edgelist.String())
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		T().Errorf("cluster DOT: %s", err.Error())
		return err
	}
	return nil
}

func leafLabel[E any](items []E) string {
	parts := make([]string, 0, maxDotItems+1)
	for i, item := range items {
		if i == maxDotItems {
			parts = append(parts, "…")
			break
		}
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	s := strings.Join(parts, " ")
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func nodeDotStyles(isleaf bool, full bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if full {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[2])
	} else {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[0])
	}
	return s
}

var hexcolors = [...]string{"#a3d7e4", "#CCDDFF", "#FFCCAA"}
