//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package opt

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/utils"
)

func parse(t *testing.T, data string) *netlist.Design {
	t.Helper()
	design, err := netlist.Parse(t.Name(), strings.NewReader(data))
	require.NoError(t, err)
	return design
}

func optimize(t *testing.T, design *netlist.Design, args ...string) (
	*Result, string) {

	t.Helper()
	params := NewParams()
	require.NoError(t, ParseArgs(params, args))

	var log strings.Builder
	result, err := NewPass(params, utils.NewLogger(&log)).Execute(design)
	require.NoError(t, err, log.String())
	for _, m := range design.Modules {
		require.NoError(t, m.Check(), log.String())
	}
	return result, log.String()
}

func cellsOf(m *netlist.Module, t netlist.CellType) []*netlist.Cell {
	var result []*netlist.Cell
	for _, c := range m.Cells() {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// requireEquiv simulates both modules over all input values. Output
// bits that are undefined in the reference module are don't-care.
func requireEquiv(t *testing.T, ref, m *netlist.Module) {
	t.Helper()
	var inputs []*netlist.Wire
	var bits int
	for _, w := range ref.Wires() {
		if w.Input {
			inputs = append(inputs, w)
			bits += w.Width
		}
	}
	require.LessOrEqual(t, bits, 16)

	for v := uint64(0); v < 1<<bits; v++ {
		values := make(map[string]uint64)
		shift := 0
		for _, w := range inputs {
			values[w.Name] = (v >> shift) & (1<<w.Width - 1)
			shift += w.Width
		}
		expected, err := ref.Eval(values)
		require.NoError(t, err)
		got, err := m.Eval(values)
		require.NoError(t, err)
		for name, e := range expected {
			for i := range e {
				if e[i].Data == netlist.Sx {
					continue
				}
				require.Equal(t, e[i], got[name][i],
					"output %s[%d] for inputs %s", name, i, spew.Sdump(values))
			}
		}
	}
}
