//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"sort"
	"strconv"
)

// CellType specifies the cell kinds the optimizer distinguishes.
type CellType byte

// Cell types.
const (
	Opaque CellType = iota
	ReduceAnd
	ReduceOr
	Mux
	Pmux
	Mem
	MemWr
	DFF
)

var cellTypes = map[CellType]string{
	ReduceAnd: "$reduce_and",
	ReduceOr:  "$reduce_or",
	Mux:       "$mux",
	Pmux:      "$pmux",
	Mem:       "$mem",
	MemWr:     "$memwr",
	DFF:       "$dff",
}

func (t CellType) String() string {
	name, ok := cellTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{CellType %d}", t)
}

// ParseCellType returns the cell type for the type tag. Unknown tags
// map to Opaque.
func ParseCellType(tag string) CellType {
	for k, v := range cellTypes {
		if v == tag {
			return k
		}
	}
	return Opaque
}

// IsReduce tests if the cell type is an associative reduction gate.
func (t CellType) IsReduce() bool {
	return t == ReduceAnd || t == ReduceOr
}

// IsMux tests if the cell type is a multiplexer-family cell.
// $safe_pmux parses as Opaque: it outputs x when several selects are
// active, so OR-folding its selects would change its behavior.
func (t CellType) IsMux() bool {
	return t == Mux || t == Pmux
}

// OutputPorts returns the names of the cell type's output ports. The
// second return value is false for opaque cells whose port
// directions are unknown.
func (t CellType) OutputPorts() ([]string, bool) {
	switch t {
	case ReduceAnd, ReduceOr, Mux, Pmux:
		return []string{"Y"}, true
	case DFF:
		return []string{"Q"}, true
	case Mem:
		return []string{"RD_DATA"}, true
	case MemWr:
		return nil, true
	default:
		return nil, false
	}
}

// Param holds a cell parameter value. Integer parameters use Value;
// other values keep their netlist syntax in Text.
type Param struct {
	Value int64
	Text  string
}

func (p Param) String() string {
	if len(p.Text) > 0 {
		return p.Text
	}
	return strconv.FormatInt(p.Value, 10)
}

// Cell is a typed operation instance with named ports and
// parameters.
type Cell struct {
	Name   string
	Type   CellType
	Ports  map[string]Signal
	Params map[string]Param
	tag    string
}

// NewCell creates a new cell with the type tag.
func NewCell(name, tag string) *Cell {
	return &Cell{
		Name:   name,
		Type:   ParseCellType(tag),
		Ports:  make(map[string]Signal),
		Params: make(map[string]Param),
		tag:    tag,
	}
}

// TypeName returns the cell's type tag.
func (c *Cell) TypeName() string {
	if c.Type == Opaque {
		return c.tag
	}
	return c.Type.String()
}

// SetType sets the cell type.
func (c *Cell) SetType(t CellType) {
	c.Type = t
	c.tag = t.String()
}

// Port returns the signal bound to the port.
func (c *Cell) Port(name string) Signal {
	return c.Ports[name]
}

// HasPort tests if the cell has the port.
func (c *Cell) HasPort(name string) bool {
	_, ok := c.Ports[name]
	return ok
}

// SetPort binds the signal to the port.
func (c *Cell) SetPort(name string, sig Signal) {
	c.Ports[name] = sig
}

// PortNames returns the cell's port names in sorted order.
func (c *Cell) PortNames() []string {
	var result []string
	for name := range c.Ports {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// IsOutput tests if the port is an output port of the cell. Ports of
// opaque cells are never outputs.
func (c *Cell) IsOutput(port string) bool {
	outputs, _ := c.Type.OutputPorts()
	for _, o := range outputs {
		if o == port {
			return true
		}
	}
	return false
}

// Param returns the integer value of the parameter.
func (c *Cell) Param(name string) (int64, bool) {
	p, ok := c.Params[name]
	if !ok || len(p.Text) > 0 {
		return 0, false
	}
	return p.Value, true
}

// SetParam sets the integer parameter value.
func (c *Cell) SetParam(name string, value int) {
	c.Params[name] = Param{
		Value: int64(value),
	}
}

// DelParam removes the parameter.
func (c *Cell) DelParam(name string) {
	delete(c.Params, name)
}

// ParamNames returns the cell's parameter names in sorted order.
func (c *Cell) ParamNames() []string {
	var result []string
	for name := range c.Params {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s %s", c.TypeName(), c.Name)
}
