//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
)

// Check verifies the module's structural consistency: all signal bits
// refer to the module's wires, connections have equal widths, and
// the ports of known cell types agree with their width parameters.
func (m *Module) Check() error {
	for idx, conn := range m.Conns {
		if len(conn.Dst) != len(conn.Src) {
			return fmt.Errorf("module %s: connection %d: width mismatch %d != %d",
				m.Name, idx, len(conn.Dst), len(conn.Src))
		}
		if err := m.checkSignal(conn.Dst); err != nil {
			return fmt.Errorf("module %s: connection %d: %w", m.Name, idx, err)
		}
		if err := m.checkSignal(conn.Src); err != nil {
			return fmt.Errorf("module %s: connection %d: %w", m.Name, idx, err)
		}
	}
	for _, c := range m.cells {
		for _, name := range c.PortNames() {
			if err := m.checkSignal(c.Ports[name]); err != nil {
				return fmt.Errorf("module %s: cell %s: port %s: %w",
					m.Name, c.Name, name, err)
			}
		}
		if err := checkCell(c); err != nil {
			return fmt.Errorf("module %s: cell %s: %w", m.Name, c.Name, err)
		}
	}
	return nil
}

func (m *Module) checkSignal(sig Signal) error {
	for _, b := range sig {
		if b.Wire == nil {
			continue
		}
		if m.wireByName[b.Wire.Name] != b.Wire {
			return fmt.Errorf("wire %s not in module", b.Wire.Name)
		}
		if b.Offset < 0 || b.Offset >= b.Wire.Width {
			return fmt.Errorf("bit %d out of range for wire %s",
				b.Offset, b.Wire.Name)
		}
	}
	return nil
}

type portWidth struct {
	port  string
	param string
	mul   string
	fixed int
}

var cellShapes = map[CellType][]portWidth{
	ReduceAnd: {
		{port: "A", param: "A_WIDTH"},
		{port: "Y", param: "Y_WIDTH"},
	},
	ReduceOr: {
		{port: "A", param: "A_WIDTH"},
		{port: "Y", param: "Y_WIDTH"},
	},
	Mux: {
		{port: "A", param: "WIDTH"},
		{port: "B", param: "WIDTH"},
		{port: "S", fixed: 1},
		{port: "Y", param: "WIDTH"},
	},
	Pmux: {
		{port: "A", param: "WIDTH"},
		{port: "B", param: "WIDTH", mul: "S_WIDTH"},
		{port: "S", param: "S_WIDTH"},
		{port: "Y", param: "WIDTH"},
	},
	DFF: {
		{port: "CLK", fixed: 1},
		{port: "D", param: "WIDTH"},
		{port: "Q", param: "WIDTH"},
	},
	MemWr: {
		{port: "DATA", param: "WIDTH"},
		{port: "EN", param: "WIDTH"},
		{port: "ADDR", param: "ABITS"},
	},
}

func checkCell(c *Cell) error {
	for _, shape := range cellShapes[c.Type] {
		if !c.HasPort(shape.port) {
			return fmt.Errorf("%s: missing port %s", c.TypeName(), shape.port)
		}
		sig := c.Port(shape.port)
		expected := shape.fixed
		if len(shape.param) > 0 {
			v, ok := c.Param(shape.param)
			if !ok {
				return fmt.Errorf("%s: missing parameter %s",
					c.TypeName(), shape.param)
			}
			expected = int(v)
			if len(shape.mul) > 0 {
				v, ok := c.Param(shape.mul)
				if !ok {
					return fmt.Errorf("%s: missing parameter %s",
						c.TypeName(), shape.mul)
				}
				expected *= int(v)
			}
		}
		if len(sig) != expected {
			return fmt.Errorf("%s: port %s width %d, expected %d",
				c.TypeName(), shape.port, len(sig), expected)
		}
	}
	return nil
}
