//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"time"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/sigtools"
	"github.com/markkurossi/optreduce/utils"
)

// worker optimizes one module. It owns the module's canonical signal
// mapping and write enable taint set for the duration of the run.
type worker struct {
	params *Params
	sel    netlist.Selector
	module *netlist.Module
	log    *utils.Logger
	sigmap *sigtools.SigMap
	wren   *sigtools.SigPool
	stats  *ModuleStats
}

func newWorker(params *Params, sel netlist.Selector, m *netlist.Module,
	log *utils.Logger) *worker {

	return &worker{
		params: params,
		sel:    sel,
		module: m,
		log:    log,
		sigmap: sigtools.NewModuleSigMap(m),
		stats: &ModuleStats{
			Name:        m.Name,
			CellsBefore: m.NumCells(),
		},
	}
}

var reduceTypes = []netlist.CellType{
	netlist.ReduceOr, netlist.ReduceAnd,
}

// run optimizes the module until an iteration makes no changes.
func (w *worker) run() error {
	start := time.Now()
	defer func() {
		w.stats.CellsAfter = w.module.NumCells()
		w.stats.Elapsed = time.Since(start)
	}()

	w.log.Logf("  Optimizing cells in module %s.", w.module.Name)

	w.wren = w.memWrenSigs()
	w.log.Debugf("    %d write enable bits: %s", w.wren.Len(), w.wren.Signal())

	for didSomething := true; didSomething; {
		didSomething = false
		w.stats.Iterations++

		// Merge trees of reduce cells into single cells and unify
		// their input vectors.
		for _, t := range reduceTypes {
			for w.reduceSweep(t) {
				didSomething = true
			}
		}

		// Merge identical inputs of multiplexers.
		var cells []*netlist.Cell
		for _, c := range w.module.Cells() {
			if c.Type.IsMux() && w.sel.Selected(w.module, c) {
				cells = append(cells, c)
			}
		}
		for _, c := range cells {
			if w.params.Fine || w.wren.CheckAny(w.sigmap.Map(c.Port("Y"))) {
				changed, err := w.optMuxBits(c)
				if err != nil {
					return err
				}
				if changed {
					didSomething = true
				}
			}
			changed, err := w.optMux(c)
			if err != nil {
				return err
			}
			if changed {
				didSomething = true
			}
		}
	}
	return nil
}
