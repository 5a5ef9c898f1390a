//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text"
)

// ModuleStats holds the optimization statistics of one module.
type ModuleStats struct {
	Name          string
	Iterations    int
	ReduceChanges int
	MuxChanges    int
	BitChanges    int
	RemovedCells  int
	CellsBefore   int
	CellsAfter    int
	Elapsed       time.Duration
	Err           error
}

// Changes returns the number of changes made to the module.
func (s *ModuleStats) Changes() int {
	return s.ReduceChanges + s.MuxChanges + s.BitChanges + s.RemovedCells
}

// Result holds the pass statistics.
type Result struct {
	Modules []*ModuleStats
}

// Total returns the total number of changes.
func (r *Result) Total() int {
	var sum int
	for _, m := range r.Modules {
		sum += m.Changes()
	}
	return sum
}

// Changed tests if the pass changed anything.
func (r *Result) Changed() bool {
	return r.Total() > 0
}

// Module returns the statistics of the named module.
func (r *Result) Module(name string) *ModuleStats {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

var resultHeaders = []string{
	"Module", "Iter", "Reduce", "Mux", "Bits", "Removed", "Cells", "Time",
}

func (s *ModuleStats) columns() []string {
	return []string{
		s.Name,
		fmt.Sprintf("%d", s.Iterations),
		fmt.Sprintf("%d", s.ReduceChanges),
		fmt.Sprintf("%d", s.MuxChanges),
		fmt.Sprintf("%d", s.BitChanges),
		fmt.Sprintf("%d", s.RemovedCells),
		fmt.Sprintf("%d→%d", s.CellsBefore, s.CellsAfter),
		s.Elapsed.String(),
	}
}

// Print prints the pass statistics report.
func (r *Result) Print(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	for idx, h := range resultHeaders {
		if idx == 0 {
			tab.Header(h).SetAlign(tabulate.ML)
		} else {
			tab.Header(h).SetAlign(tabulate.MR)
		}
	}

	var cellsBefore, cellsAfter int
	var elapsed time.Duration
	for _, m := range r.Modules {
		row := tab.Row()
		for _, col := range m.columns() {
			if m.Err != nil {
				row.Column(col).SetFormat(tabulate.FmtItalic)
			} else {
				row.Column(col)
			}
		}
		cellsBefore += m.CellsBefore
		cellsAfter += m.CellsAfter
		elapsed += m.Elapsed
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column("")
	row.Column(fmt.Sprintf("%d", r.Total())).SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d→%d", cellsBefore, cellsAfter)).
		SetFormat(tabulate.FmtBold)
	row.Column(elapsed.String()).SetFormat(tabulate.FmtBold)

	tab.Print(out)
}

// HTML writes the pass statistics report as an HTML table.
func (r *Result) HTML(out io.Writer) error {
	w := &htmlWriter{
		out: out,
	}
	w.printf("<table class=\"optreduce\">\n<tr>")
	for _, h := range resultHeaders {
		w.printf("<th>%s</th>", text.New().Plain(h).HTML())
	}
	w.printf("</tr>\n")
	for _, m := range r.Modules {
		if m.Err != nil {
			w.printf("<tr class=\"error\">")
		} else {
			w.printf("<tr>")
		}
		for _, col := range m.columns() {
			w.printf("<td>%s</td>", text.New().Plain(col).HTML())
		}
		w.printf("</tr>\n")
		if m.Err != nil {
			w.printf("<tr class=\"error\"><td colspan=\"%d\">%s</td></tr>\n",
				len(resultHeaders), text.New().Plain(m.Err.Error()).HTML())
		}
	}
	w.printf("<tr><th>%s</th><td colspan=\"%d\">%s</td></tr>\n",
		text.New().Plain("Total").HTML(), len(resultHeaders)-1,
		text.New().Plainf("%d changes", r.Total()).HTML())
	w.printf("</table>\n")
	return w.err
}

type htmlWriter struct {
	out io.Writer
	err error
}

func (w *htmlWriter) printf(format string, a ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, a...)
}
