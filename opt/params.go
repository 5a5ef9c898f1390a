//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markkurossi/optreduce/netlist"
)

var (
	// ErrUnknownOption is returned for unrecognized pass options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrPortShape is returned when a cell's port widths do not match
	// the shape its type requires.
	ErrPortShape = errors.New("invalid port shape")
)

// Params specify the pass parameters.
type Params struct {
	// Fine enables fine-grain bit consolidation for all multiplexers,
	// not only for those driving memory write enables.
	Fine bool

	// Workers specifies the number of modules optimized in
	// parallel. Values below 1 mean one worker.
	Workers int

	Verbose     bool
	Diagnostics bool

	// Selection limits the modules and cells the pass may modify.
	// The nil selection selects everything.
	Selection netlist.Selector
}

// NewParams returns new pass params object, initialized with the
// default values.
func NewParams() *Params {
	return &Params{
		Workers: 1,
	}
}

// ParseArgs parses the pass arguments into params. The options come
// first, followed by selection patterns.
func ParseArgs(params *Params, args []string) error {
	var argidx int
	for argidx = 0; argidx < len(args); argidx++ {
		arg := args[argidx]
		if arg == "-fine" {
			params.Fine = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("%w: %s", ErrUnknownOption, arg)
		}
		break
	}
	patterns := args[argidx:]
	for _, p := range patterns {
		if strings.HasPrefix(p, "-") {
			return fmt.Errorf("%w: %s", ErrUnknownOption, p)
		}
	}
	if len(patterns) == 0 {
		params.Selection = nil
		return nil
	}
	sel, err := netlist.NewSelection(patterns...)
	if err != nil {
		return err
	}
	params.Selection = sel
	return nil
}

func (params *Params) selector() netlist.Selector {
	if params.Selection == nil {
		sel, _ := netlist.NewSelection()
		return sel
	}
	return params.Selection
}
