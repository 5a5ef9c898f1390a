//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"io"
	"strconv"
)

// Dot creates graphviz dot output of the module.
func (m *Module) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph %s\n{\n", strconv.Quote(m.Name))
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")
	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for _, w := range m.wires {
		fmt.Fprintf(out, "    w%d\t[label=%s];\n", w.ID, strconv.Quote(w.Name))
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for idx, c := range m.cells {
		fmt.Fprintf(out, "    c%d\t[label=%s];\n", idx,
			strconv.Quote(c.TypeName()))
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, w := range m.wires {
		if w.Input {
			fmt.Fprintf(out, "; w%d", w.ID)
		}
	}
	fmt.Fprintf(out, ";}\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, w := range m.wires {
		if w.Output {
			fmt.Fprintf(out, "; w%d", w.ID)
		}
	}
	fmt.Fprintf(out, ";}\n")

	for idx, c := range m.cells {
		for _, name := range c.PortNames() {
			for _, w := range sigWires(c.Ports[name]) {
				if c.IsOutput(name) {
					fmt.Fprintf(out, "  c%d -> w%d;\n", idx, w.ID)
				} else {
					fmt.Fprintf(out, "  w%d -> c%d;\n", w.ID, idx)
				}
			}
		}
	}
	type edge struct {
		from, to *Wire
	}
	seen := make(map[edge]bool)
	for _, conn := range m.Conns {
		for i, dst := range conn.Dst {
			e := edge{
				from: conn.Src[i].Wire,
				to:   dst.Wire,
			}
			if e.from == nil || e.to == nil || seen[e] {
				continue
			}
			seen[e] = true
			fmt.Fprintf(out, "  w%d -> w%d [style=dashed];\n",
				e.from.ID, e.to.ID)
		}
	}
	fmt.Fprintf(out, "}\n")
}

func sigWires(sig Signal) []*Wire {
	var result []*Wire
	seen := make(map[*Wire]bool)
	for _, b := range sig {
		if b.Wire != nil && !seen[b.Wire] {
			seen[b.Wire] = true
			result = append(result, b.Wire)
		}
	}
	return result
}
