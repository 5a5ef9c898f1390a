//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
)

// Wire is a named multi-bit wire. The ID orders wires by creation
// within their module.
type Wire struct {
	Name   string
	Width  int
	ID     int
	Input  bool
	Output bool
	PortID int
}

// IsPort tests if the wire is a module port.
func (w *Wire) IsPort() bool {
	return w.Input || w.Output
}

func (w *Wire) String() string {
	return w.Name
}

// Connection wires the destination signal directly to the source
// signal.
type Connection struct {
	Dst Signal
	Src Signal
}

func (c Connection) String() string {
	return fmt.Sprintf("%s = %s", c.Dst, c.Src)
}

// Module owns wires, cells, and connections. It is the unit of
// optimization.
type Module struct {
	Name       string
	Conns      []Connection
	wires      []*Wire
	wireByName map[string]*Wire
	cells      []*Cell
	cellByName map[string]*Cell
	autoIdx    int
}

// NewModule creates a new empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		wireByName: make(map[string]*Wire),
		cellByName: make(map[string]*Cell),
	}
}

// NewID returns a fresh name that is not used by any wire or cell of
// the module.
func (m *Module) NewID() string {
	for {
		m.autoIdx++
		name := fmt.Sprintf("$auto$optreduce$%d", m.autoIdx)
		_, w := m.wireByName[name]
		_, c := m.cellByName[name]
		if !w && !c {
			return name
		}
	}
}

// AddWire adds a new wire to the module.
func (m *Module) AddWire(name string, width int) (*Wire, error) {
	if _, ok := m.wireByName[name]; ok {
		return nil, fmt.Errorf("module %s: wire %s already defined",
			m.Name, name)
	}
	if width < 0 {
		return nil, fmt.Errorf("module %s: wire %s: invalid width %d",
			m.Name, name, width)
	}
	w := &Wire{
		Name:  name,
		Width: width,
		ID:    len(m.wires),
	}
	m.wires = append(m.wires, w)
	m.wireByName[name] = w
	return w, nil
}

// NewWire adds a new wire with a fresh name to the module.
func (m *Module) NewWire(width int) *Wire {
	w, err := m.AddWire(m.NewID(), width)
	if err != nil {
		panic(err)
	}
	return w
}

// Wire returns the named wire or nil if the module does not have it.
func (m *Module) Wire(name string) *Wire {
	return m.wireByName[name]
}

// Wires returns the module wires in creation order.
func (m *Module) Wires() []*Wire {
	result := make([]*Wire, len(m.wires))
	copy(result, m.wires)
	return result
}

// AddCell adds a new cell to the module.
func (m *Module) AddCell(name, tag string) (*Cell, error) {
	if _, ok := m.cellByName[name]; ok {
		return nil, fmt.Errorf("module %s: cell %s already defined",
			m.Name, name)
	}
	c := NewCell(name, tag)
	m.cells = append(m.cells, c)
	m.cellByName[name] = c
	return c, nil
}

// NewCell adds a new cell with a fresh name to the module.
func (m *Module) NewCell(t CellType) *Cell {
	c, err := m.AddCell(m.NewID(), t.String())
	if err != nil {
		panic(err)
	}
	return c
}

// Cell returns the named cell or nil if the module does not have it.
func (m *Module) Cell(name string) *Cell {
	return m.cellByName[name]
}

// Cells returns the module cells in creation order. The returned
// slice is a copy and stays valid while cells are removed.
func (m *Module) Cells() []*Cell {
	result := make([]*Cell, len(m.cells))
	copy(result, m.cells)
	return result
}

// NumCells returns the number of cells in the module.
func (m *Module) NumCells() int {
	return len(m.cells)
}

// Remove removes the cell from the module.
func (m *Module) Remove(cell *Cell) {
	if m.cellByName[cell.Name] != cell {
		panic(fmt.Sprintf("module %s: cell %s not in module",
			m.Name, cell.Name))
	}
	delete(m.cellByName, cell.Name)
	for idx, c := range m.cells {
		if c == cell {
			m.cells = append(m.cells[:idx], m.cells[idx+1:]...)
			break
		}
	}
}

// Connect appends a connection wiring dst to src. Empty connections
// are ignored.
func (m *Module) Connect(dst, src Signal) {
	if len(dst) == 0 && len(src) == 0 {
		return
	}
	m.Conns = append(m.Conns, Connection{
		Dst: dst,
		Src: src,
	})
}

// Stats returns the cell type statistics of the module.
func (m *Module) Stats() Stats {
	stats := make(Stats)
	for _, c := range m.cells {
		stats[c.TypeName()]++
	}
	return stats
}

func (m *Module) String() string {
	return fmt.Sprintf("module %s: #wires=%d #cells=%d (%s) #conns=%d",
		m.Name, len(m.wires), len(m.cells), m.Stats(), len(m.Conns))
}

// Design is an ordered set of modules.
type Design struct {
	Modules []*Module
}

// Module returns the named module or nil if the design does not have
// it.
func (d *Design) Module(name string) *Module {
	for _, m := range d.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddModule adds the module to the design.
func (d *Design) AddModule(m *Module) error {
	if d.Module(m.Name) != nil {
		return fmt.Errorf("module %s already defined", m.Name)
	}
	d.Modules = append(d.Modules, m)
	return nil
}
