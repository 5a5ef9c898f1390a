//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/sigtools"
)

// memWrenSigs collects the bits that reach memory write enable ports
// through multiplexer data inputs and registers.
func (w *worker) memWrenSigs() *sigtools.SigPool {
	pool := sigtools.NewSigPool()
	cells := w.module.Cells()

	for _, c := range cells {
		switch c.Type {
		case netlist.Mem:
			pool.Add(w.sigmap.Map(c.Port("WR_EN")))
		case netlist.MemWr:
			pool.Add(w.sigmap.Map(c.Port("EN")))
		}
	}

	for grew := true; grew; {
		grew = false
		for _, c := range cells {
			switch c.Type {
			case netlist.Mux, netlist.Pmux:
				if !pool.CheckAny(w.sigmap.Map(c.Port("Y"))) {
					continue
				}
				if pool.Add(w.sigmap.Map(c.Port("A"))) {
					grew = true
				}
				if pool.Add(w.sigmap.Map(c.Port("B"))) {
					grew = true
				}

			case netlist.DFF:
				if !pool.CheckAny(w.sigmap.Map(c.Port("Q"))) {
					continue
				}
				if pool.Add(w.sigmap.Map(c.Port("D"))) {
					grew = true
				}

			case netlist.ReduceAnd, netlist.ReduceOr, netlist.Mem,
				netlist.MemWr, netlist.Opaque:
			}
		}
	}
	return pool
}
