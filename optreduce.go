//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package optreduce consolidates the inputs of reduction and
// multiplexer cells in netlist designs.
package optreduce

import (
	"io"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/opt"
	"github.com/markkurossi/optreduce/utils"
)

// Optimize runs the consolidation pass over the design. The args are
// the pass arguments: the -fine option followed by selection
// patterns. The pass log is written to out, which can be nil.
func Optimize(design *netlist.Design, args []string, out io.Writer) (
	*opt.Result, error) {

	params := opt.NewParams()
	if err := opt.ParseArgs(params, args); err != nil {
		return nil, err
	}
	return opt.NewPass(params, utils.NewLogger(out)).Execute(design)
}

// OptimizeFile parses the netlist file and runs the consolidation
// pass over its design.
func OptimizeFile(file string, args []string, out io.Writer) (
	*netlist.Design, *opt.Result, error) {

	design, err := netlist.ParseFile(file)
	if err != nil {
		return nil, nil, err
	}
	result, err := Optimize(design, args, out)
	if err != nil {
		return nil, nil, err
	}
	return design, result, nil
}
