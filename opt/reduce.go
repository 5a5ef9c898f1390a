//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"github.com/oleiade/lane"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/sigtools"
	"github.com/markkurossi/optreduce/utils"
)

// reduceConsts returns the absorbing constant and the identity
// constant of the reduction type.
func reduceConsts(t netlist.CellType) (absorb, identity netlist.Bit) {
	if !t.IsReduce() {
		panic("reduceConsts: " + t.String())
	}
	if t == netlist.ReduceAnd {
		return netlist.Const(netlist.S0), netlist.Const(netlist.S1)
	}
	return netlist.Const(netlist.S1), netlist.Const(netlist.S0)
}

// reduceFrame holds the merge state of one cell on the merge stack.
type reduceFrame struct {
	cell     *netlist.Cell
	sigA     netlist.Signal
	inputs   netlist.Signal
	idx      int
	started  bool
	drivers  []*netlist.Cell
	didx     int
	imported bool
	bits     map[netlist.Bit]bool
	absorbed bool
}

// reduceSession holds the state of one sweep over the cells of a
// reduction type.
type reduceSession struct {
	t        netlist.CellType
	absorb   netlist.Bit
	identity netlist.Bit
	pending  map[*netlist.Cell]bool
	drivers  *sigtools.SigSet[*netlist.Cell]
	absorbed []*netlist.Cell
	merged   map[*netlist.Cell]bool
}

// reduceSweep merges the trees of the selected reduction cells of
// type t. It returns true if any cell was changed.
func (w *worker) reduceSweep(t netlist.CellType) bool {
	absorb, identity := reduceConsts(t)
	s := &reduceSession{
		t:        t,
		absorb:   absorb,
		identity: identity,
		pending:  make(map[*netlist.Cell]bool),
		drivers:  sigtools.NewSigSet[*netlist.Cell](),
		merged:   make(map[*netlist.Cell]bool),
	}

	var cells []*netlist.Cell
	for _, c := range w.module.Cells() {
		if c.Type != t || !w.sel.Selected(w.module, c) {
			continue
		}
		s.drivers.Insert(w.sigmap.Map(c.Port("Y")), c)
		s.pending[c] = true
		cells = append(cells, c)
	}

	var changed bool
	for _, c := range cells {
		if !s.pending[c] {
			continue
		}
		if w.reduce(s, c) {
			changed = true
		}
	}
	if w.removeAbsorbed(s) {
		changed = true
	}
	return changed
}

func (w *worker) newReduceFrame(s *reduceSession,
	cell *netlist.Cell) *reduceFrame {

	delete(s.pending, cell)

	sigA := w.sigmap.Map(cell.Port("A"))
	set := make(map[netlist.Bit]bool)
	for _, b := range sigA {
		set[b] = true
	}
	return &reduceFrame{
		cell:   cell,
		sigA:   sigA,
		inputs: netlist.SigBits(set),
		bits:   make(map[netlist.Bit]bool),
	}
}

// reduce merges the cell and, depth-first, all same-typed cells
// driving its inputs. Each cell is merged at most once per session.
func (w *worker) reduce(s *reduceSession, cell *netlist.Cell) bool {
	var changed bool

	stack := lane.NewStack()
	stack.Push(w.newReduceFrame(s, cell))

	for !stack.Empty() {
		f := stack.Head().(*reduceFrame)
		child := w.reduceStep(s, f)
		if child != nil {
			stack.Push(w.newReduceFrame(s, child))
			continue
		}
		stack.Pop()
		if w.reduceFinish(s, f) {
			changed = true
		}
	}
	return changed
}

// reduceStep processes the frame's input bits until it completes or
// needs a pending child merged first. In the latter case it returns
// the child and resumes from the same position on the next call.
func (w *worker) reduceStep(s *reduceSession, f *reduceFrame) *netlist.Cell {
	for ; f.idx < len(f.inputs); f.idx++ {
		bit := f.inputs[f.idx]

		if !f.started {
			if bit.IsConst() {
				if bit == s.absorb {
					f.bits = map[netlist.Bit]bool{
						bit: true,
					}
					f.absorbed = true
					f.idx = len(f.inputs)
					return nil
				}
				if bit != s.identity {
					f.bits[bit] = true
				}
				continue
			}
			f.started = true
			f.drivers = s.drivers.Find(bit)
			f.didx = 0
			f.imported = false
		}

		for ; f.didx < len(f.drivers); f.didx++ {
			child := f.drivers[f.didx]
			if s.pending[child] {
				return child
			}
			y := w.sigmap.Map(child.Port("Y"))
			if len(y) > 0 && y[0] == bit {
				for _, b := range w.sigmap.Map(child.Port("A")) {
					f.bits[b] = true
				}
				if child != f.cell && !s.merged[child] {
					s.merged[child] = true
					s.absorbed = append(s.absorbed, child)
				}
			} else {
				f.bits[netlist.Const(netlist.S0)] = true
			}
			f.imported = true
		}
		if !f.imported {
			f.bits[bit] = true
		}
		f.started = false
	}
	return nil
}

// reduceFinish writes the merged input vector of the frame's cell.
func (w *worker) reduceFinish(s *reduceSession, f *reduceFrame) bool {
	if !f.absorbed {
		if f.bits[s.absorb] {
			f.bits = map[netlist.Bit]bool{
				s.absorb: true,
			}
		} else {
			delete(f.bits, s.identity)
		}
	}
	newA := netlist.SigBits(f.bits)
	cell := f.cell

	var changed bool
	if !newA.Equal(f.sigA) || len(f.sigA) != len(cell.Port("A")) {
		w.log.Logf("    New input vector for %s cell %s: %s",
			cell.TypeName(), cell.Name, newA)
		w.stats.ReduceChanges++
		changed = true
	}

	cell.SetPort("A", newA)
	cell.SetParam("A_WIDTH", len(newA))

	if changed && len(newA) == 0 {
		w.log.Warningf(utils.Point{Source: w.module.Name},
			"%s cell %s has no inputs", cell.TypeName(), cell.Name)
	}
	return changed
}

// removeAbsorbed removes the cells whose inputs were spliced into
// other cells and whose outputs are no longer read by any cell or
// module port.
func (w *worker) removeAbsorbed(s *reduceSession) bool {
	if len(s.absorbed) == 0 {
		return false
	}

	ports := sigtools.NewSigPool()
	readers := make(map[netlist.Bit]int)
	for _, wire := range w.module.Wires() {
		if wire.IsPort() {
			ports.Add(w.sigmap.Map(netlist.SigWire(wire)))
		}
	}
	for _, c := range w.module.Cells() {
		w.countReaders(readers, c, 1)
	}

	var removed bool
	for i := len(s.absorbed) - 1; i >= 0; i-- {
		c := s.absorbed[i]
		y := w.sigmap.Map(c.Port("Y"))
		if ports.CheckAny(y) {
			continue
		}
		self := make(map[netlist.Bit]int)
		w.countReaders(self, c, 1)

		var used bool
		for _, b := range y {
			if readers[b]-self[b] > 0 {
				used = true
				break
			}
		}
		if used {
			continue
		}
		w.log.Logf("    Removed absorbed %s cell %s: %s",
			c.TypeName(), c.Name, c.Port("Y"))
		w.countReaders(readers, c, -1)
		w.module.Remove(c)
		w.stats.RemovedCells++
		removed = true
	}
	return removed
}

// countReaders adds delta to the reader counts of the bits the cell
// reads.
func (w *worker) countReaders(readers map[netlist.Bit]int, c *netlist.Cell,
	delta int) {

	for _, name := range c.PortNames() {
		if c.IsOutput(name) {
			continue
		}
		for _, b := range w.sigmap.Map(c.Port(name)) {
			if !b.IsConst() {
				readers[b] += delta
			}
		}
	}
}
