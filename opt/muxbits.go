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

// optMuxBits consolidates the multiplexer's output bits. An output
// bit whose inputs are equal in all branches is connected to that
// input, and an output bit whose input tuple duplicates an earlier
// bit's tuple is connected to the earlier output bit.
func (w *worker) optMuxBits(cell *netlist.Cell) (bool, error) {
	sigA, sigB, sigS, err := w.muxPorts(cell)
	if err != nil {
		return false, err
	}
	sigY := w.sigmap.Map(cell.Port("Y"))
	width := len(sigA)

	var newY netlist.Signal
	var connDst, connSrc netlist.Signal
	var tuples []netlist.Signal
	tupleOutputs := make(map[string]netlist.Bit)

	for i := 0; i < len(sigY); i++ {
		tuple := netlist.Signal{sigA[i]}
		same := true
		for j := i; j < len(sigB); j += width {
			if sigB[j] != sigA[i] {
				same = false
			}
			tuple = append(tuple, sigB[j])
		}
		key := tuple.Key()

		if same {
			connDst = append(connDst, sigY[i])
			connSrc = append(connSrc, sigA[i])
		} else if out, ok := tupleOutputs[key]; ok {
			connDst = append(connDst, sigY[i])
			connSrc = append(connSrc, out)
		} else {
			tupleOutputs[key] = sigY[i]
			tuples = append(tuples, tuple)
			newY = append(newY, sigY[i])
		}
	}

	if len(newY) == len(sigY) {
		return false, nil
	}

	w.log.Logf("    Consolidated identical input bits for %s cell %s:",
		cell.TypeName(), cell.Name)
	w.log.Logf("      Old ports: A=%s, B=%s, Y=%s",
		cell.Port("A"), cell.Port("B"), cell.Port("Y"))

	var newA, newB netlist.Signal
	for _, tuple := range tuples {
		newA = append(newA, tuple[0])
	}
	for i := 1; i <= len(sigS); i++ {
		for _, tuple := range tuples {
			newB = append(newB, tuple[i])
		}
	}
	cell.SetPort("A", newA)
	cell.SetPort("B", newB)
	cell.SetPort("Y", newY)
	cell.SetParam("WIDTH", len(newY))

	w.log.Logf("      New ports: A=%s, B=%s, Y=%s",
		cell.Port("A"), cell.Port("B"), cell.Port("Y"))
	w.log.Logf("      New connections: %s = %s", connDst, connSrc)

	w.module.Connect(connDst, connSrc)
	w.sigmap.Add(connDst, connSrc)
	w.stats.BitChanges++

	if err := w.module.Check(); err != nil {
		return true, fmt.Errorf("consolidating %s cell %s: %w",
			cell.TypeName(), cell.Name, err)
	}
	return true, nil
}
