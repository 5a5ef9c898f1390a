//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"io"
)

// Marshal writes the design in the netlist text format.
func (d *Design) Marshal(out io.Writer) error {
	for idx, m := range d.Modules {
		if idx > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if err := m.Marshal(out); err != nil {
			return err
		}
	}
	return nil
}

// Marshal writes the module in the netlist text format.
func (m *Module) Marshal(out io.Writer) error {
	w := &errWriter{
		out: out,
	}
	w.printf("module %s\n", m.Name)
	for _, wire := range m.wires {
		w.printf("  wire")
		if wire.Width != 1 {
			w.printf(" width %d", wire.Width)
		}
		switch {
		case wire.Input && wire.Output:
			w.printf(" inout %d", wire.PortID)
		case wire.Input:
			w.printf(" input %d", wire.PortID)
		case wire.Output:
			w.printf(" output %d", wire.PortID)
		}
		w.printf(" %s\n", wire.Name)
	}
	for _, c := range m.cells {
		w.printf("  cell %s %s\n", c.TypeName(), c.Name)
		for _, name := range c.ParamNames() {
			w.printf("    parameter \\%s %s\n", name, c.Params[name])
		}
		for _, name := range c.PortNames() {
			w.printf("    connect \\%s %s\n", name, c.Ports[name])
		}
		w.printf("  end\n")
	}
	for _, conn := range m.Conns {
		w.printf("  connect %s %s\n", conn.Dst, conn.Src)
	}
	w.printf("end\n")
	return w.err
}

type errWriter struct {
	out io.Writer
	err error
}

func (w *errWriter) printf(format string, a ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, a...)
}
