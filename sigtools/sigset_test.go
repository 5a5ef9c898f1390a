//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sigtools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markkurossi/optreduce/netlist"
)

func TestSigSet(t *testing.T) {
	_, w := testWires(t, `\a`, `\b`, `\c`)
	a := netlist.SigWire(w[0])
	b := netlist.SigWire(w[1])
	c := netlist.SigWire(w[2])

	set := NewSigSet[string]()
	set.Insert(netlist.Concat(a, b, netlist.SigConst(netlist.S1)), "x")
	set.Insert(a, "y")
	set.Insert(a, "x")

	require.Equal(t, []string{"x", "y"}, set.Find(a[0]))
	require.Equal(t, []string{"x"}, set.Find(b[0]))
	require.Empty(t, set.Find(c[0]))
	require.Empty(t, set.Find(netlist.Const(netlist.S1)))
	require.Equal(t, 2, set.Len())
}

func TestSigPool(t *testing.T) {
	_, w := testWires(t, `\a`, `\b`, `\c`)
	a := netlist.SigWire(w[0])
	b := netlist.SigWire(w[1])
	c := netlist.SigWire(w[2])

	pool := NewSigPool()
	require.True(t, pool.Add(netlist.Concat(a, b)))
	require.False(t, pool.Add(a))
	require.False(t, pool.Add(netlist.SigConst(netlist.S0)))

	require.True(t, pool.CheckAny(netlist.Concat(c, a)))
	require.False(t, pool.CheckAny(c))
	require.True(t,
		pool.CheckAny(netlist.Concat(netlist.SigConst(netlist.Sx), b)))
	require.Equal(t, 2, pool.Len())
	require.Equal(t, netlist.Concat(a, b), pool.Signal())
}
