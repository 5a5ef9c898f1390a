//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/opt"
	"github.com/markkurossi/optreduce/utils"
)

func main() {
	fVerbose := flag.Bool("v", false, "Verbose output")
	fDiag := flag.Bool("d", false, "Print optimization report")
	fWorkers := flag.Int("j", 1, "Number of modules optimized in parallel")
	fOut := flag.String("o", "", "Output netlist file")
	fHTML := flag.String("html", "", "Write HTML report to file")
	fDot := flag.String("dot", "", "Write graphviz dot output to file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] in.il [-fine] [selection...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Printf("no input file specified\n")
		os.Exit(1)
	}

	params := opt.NewParams()
	params.Verbose = *fVerbose
	params.Diagnostics = *fDiag
	params.Workers = *fWorkers

	if err := opt.ParseArgs(params, args[1:]); err != nil {
		log.Fatal(err)
	}

	design, err := netlist.ParseFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	pass := opt.NewPass(params, utils.NewLogger(os.Stdout))
	result, err := pass.Execute(design)
	if err != nil {
		log.Fatal(err)
	}
	if params.Diagnostics {
		result.Print(os.Stdout)
	}

	if len(*fOut) > 0 {
		if err := writeFile(*fOut, design.Marshal); err != nil {
			log.Fatal(err)
		}
	}
	if len(*fHTML) > 0 {
		if err := writeFile(*fHTML, result.HTML); err != nil {
			log.Fatal(err)
		}
	}
	if len(*fDot) > 0 {
		err := writeFile(*fDot, func(out io.Writer) error {
			for _, m := range design.Modules {
				m.Dot(out)
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}

func writeFile(name string, write func(out io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
