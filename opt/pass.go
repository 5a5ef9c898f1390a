//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package opt implements the reduce and multiplexer consolidation
// pass. The pass merges trees of $reduce_and and $reduce_or cells
// into single cells with unique inputs, and merges identical data
// inputs of $mux and $pmux cells, OR'ing their select signals
// together.
package opt

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/utils"
)

// Pass implements the reduce and multiplexer consolidation pass.
type Pass struct {
	Params *Params
	Log    *utils.Logger
}

// NewPass creates a new pass with the params, logging to log.
func NewPass(params *Params, log *utils.Logger) *Pass {
	if params == nil {
		params = NewParams()
	}
	if log == nil {
		log = utils.NewLogger(nil)
	}
	log.Verbose = params.Verbose
	return &Pass{
		Params: params,
		Log:    log,
	}
}

// Execute optimizes all selected modules of the design. Modules are
// optimized by Params.Workers parallel workers. A module whose
// optimization fails is left as it was at the point of failure;
// the other modules are optimized to completion and the first error
// is returned.
func (p *Pass) Execute(design *netlist.Design) (*Result, error) {
	p.Log.Headerf("Executing OPT_REDUCE pass " +
		"(consolidate $*mux and $reduce_* inputs).")

	sel := p.Params.selector()

	var modules []*netlist.Module
	for _, m := range design.Modules {
		if sel.SelectedModule(m) {
			modules = append(modules, m)
		}
	}

	workers := make([]*worker, len(modules))
	for idx, m := range modules {
		workers[idx] = newWorker(p.Params, sel, m, p.Log.Buffered())
	}

	limit := p.Params.Workers
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for _, w := range workers {
		g.Go(func() error {
			if err := w.run(); err != nil {
				w.stats.Err = err
				return fmt.Errorf("module %s: %w", w.module.Name, err)
			}
			return nil
		})
	}
	err := g.Wait()

	result := new(Result)
	for _, w := range workers {
		if ferr := p.Log.Flush(w.log); ferr != nil && err == nil {
			err = ferr
		}
		if w.stats.Err != nil {
			p.Log.Errorf(utils.Point{Source: w.module.Name},
				"optimization failed: %s", w.stats.Err)
		}
		result.Modules = append(result.Modules, w.stats)
	}
	p.Log.Logf("Performed a total of %d changes.", result.Total())

	return result, err
}
