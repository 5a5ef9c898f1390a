//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"fmt"

	"github.com/markkurossi/optreduce/netlist"
)

// muxPorts returns the canonical A, B, and S ports of the multiplexer
// cell after verifying that the port widths agree.
func (w *worker) muxPorts(cell *netlist.Cell) (
	a, b, s netlist.Signal, err error) {

	a = w.sigmap.Map(cell.Port("A"))
	b = w.sigmap.Map(cell.Port("B"))
	s = w.sigmap.Map(cell.Port("S"))
	y := cell.Port("Y")

	if len(y) != len(a) || len(b) != len(a)*len(s) ||
		(cell.Type == netlist.Mux && len(s) != 1) {
		return nil, nil, nil, fmt.Errorf(
			"%w: module %s: %s cell %s: A=%d, B=%d, S=%d, Y=%d",
			ErrPortShape, w.module.Name, cell.TypeName(), cell.Name,
			len(a), len(b), len(s), len(y))
	}
	return a, b, s, nil
}

// optMux merges the multiplexer's data branches that are equal to
// the default input or to each other. The select bits of equal
// branches are OR'ed together. A multiplexer without remaining
// branches is replaced with a connection.
func (w *worker) optMux(cell *netlist.Cell) (bool, error) {
	sigA, sigB, sigS, err := w.muxPorts(cell)
	if err != nil {
		return false, err
	}
	width := len(sigA)

	var newB, newS netlist.Signal
	handled := map[string]bool{
		sigA.Key(): true,
	}

	for i := 0; i < len(sigS); i++ {
		thisB := sigB.Extract(i*width, width)
		key := thisB.Key()
		if handled[key] {
			continue
		}

		thisS := netlist.Signal{sigS[i]}
		for j := i + 1; j < len(sigS); j++ {
			thatB := sigB.Extract(j*width, width)
			if thisB.Equal(thatB) {
				thisS = append(thisS, sigS[j])
			}
		}

		if len(thisS) > 1 {
			orCell := w.module.NewCell(netlist.ReduceOr)
			orCell.SetPort("A", thisS)
			orCell.SetParam("A_SIGNED", 0)
			orCell.SetParam("A_WIDTH", len(thisS))
			orCell.SetParam("Y_WIDTH", 1)

			wire := w.module.NewWire(1)
			thisS = netlist.SigWire(wire)
			orCell.SetPort("Y", thisS)

			w.log.Debugf("    New %s cell %s: %s",
				orCell.TypeName(), orCell.Name, orCell.Port("A"))
		}

		newB = append(newB, thisB...)
		newS = append(newS, thisS...)
		handled[key] = true
	}

	var changed bool
	if len(newS) != len(sigS) {
		w.log.Logf("    New ctrl vector for %s cell %s: %s",
			cell.TypeName(), cell.Name, newS)
		w.stats.MuxChanges++
		changed = true
	}

	if len(newS) == 0 {
		y := cell.Port("Y")
		a := cell.Port("A")
		w.module.Connect(y, a)
		w.sigmap.Add(y, a)
		w.module.Remove(cell)
		return changed, nil
	}

	cell.SetPort("B", newB)
	cell.SetPort("S", newS)
	if len(newS) > 1 {
		cell.SetParam("S_WIDTH", len(newS))
	} else {
		cell.SetType(netlist.Mux)
		cell.DelParam("S_WIDTH")
	}
	return changed, nil
}
