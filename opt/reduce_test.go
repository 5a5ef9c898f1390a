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
)

const reduceTree = `
module \top
  wire input 1 \a
  wire input 2 \b
  wire input 3 \c
  wire \t
  wire output 4 \y
  cell $reduce_or $or1
    parameter \A_SIGNED 0
    parameter \A_WIDTH 3
    parameter \Y_WIDTH 1
    connect \A { 1'0 \b \a }
    connect \Y \t
  end
  cell $reduce_or $or2
    parameter \A_SIGNED 0
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \c \t }
    connect \Y \y
  end
end
`

func TestReduceFlatten(t *testing.T) {
	design := parse(t, reduceTree)
	ref := parse(t, reduceTree)
	m := design.Modules[0]

	result, log := optimize(t, design)

	cells := cellsOf(m, netlist.ReduceOr)
	require.Len(t, cells, 1, log)
	require.Equal(t, `$or2`, cells[0].Name)

	expected := netlist.Concat(
		netlist.SigWire(m.Wire(`\a`)),
		netlist.SigWire(m.Wire(`\b`)),
		netlist.SigWire(m.Wire(`\c`)))
	require.Equal(t, expected, cells[0].Port("A"), log)
	v, _ := cells[0].Param("A_WIDTH")
	require.Equal(t, int64(3), v)

	stats := result.Module(`\top`)
	require.NotNil(t, stats)
	require.GreaterOrEqual(t, stats.ReduceChanges, 2, spew.Sdump(stats))
	require.Equal(t, 1, stats.RemovedCells)
	require.Equal(t, 2, stats.CellsBefore)
	require.Equal(t, 1, stats.CellsAfter)
	require.Contains(t, log, `New input vector for $reduce_or cell $or2`)

	requireEquiv(t, ref.Modules[0], m)
}

func TestReduceAbsorb(t *testing.T) {
	data := `
module \top
  wire input 1 \a
  wire input 2 \b
  wire \t
  wire output 3 \y
  cell $reduce_or $child
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \b 1'1 }
    connect \Y \t
  end
  cell $reduce_or $parent
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \t \a }
    connect \Y \y
  end
end
`
	design := parse(t, data)
	ref := parse(t, data)
	m := design.Modules[0]
	_, log := optimize(t, design)

	for _, c := range cellsOf(m, netlist.ReduceOr) {
		require.Equal(t, netlist.SigConst(netlist.S1), c.Port("A"), log)
	}
	requireEquiv(t, ref.Modules[0], m)
}

func TestReduceIdentity(t *testing.T) {
	data := `
module \top
  wire input 1 \a
  wire output 2 \y
  cell $reduce_and $and
    parameter \A_WIDTH 4
    parameter \Y_WIDTH 1
    connect \A { 1'1 \a \a 1'1 }
    connect \Y \y
  end
end
`
	design := parse(t, data)
	m := design.Modules[0]
	result, log := optimize(t, design)

	c := m.Cell(`$and`)
	require.Equal(t, netlist.SigWire(m.Wire(`\a`)), c.Port("A"), log)
	require.Equal(t, 1, result.Total())
}

func TestReduceSharedChild(t *testing.T) {
	data := `
module \top
  wire input 1 \a
  wire input 2 \b
  wire input 3 \c
  wire \t
  wire output 4 \y
  wire output 5 \z
  cell $reduce_and $child
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \b \a }
    connect \Y \t
  end
  cell $reduce_and $parent
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \c \t }
    connect \Y \y
  end
  cell $not $inv
    connect \A \t
    connect \Y \z
  end
end
`
	design := parse(t, data)
	m := design.Modules[0]
	result, log := optimize(t, design)

	require.NotNil(t, m.Cell(`$child`), log)
	require.Len(t, m.Cell(`$parent`).Port("A"), 3, log)
	require.Equal(t, 0, result.Module(`\top`).RemovedCells)
}

func TestReduceSubRange(t *testing.T) {
	data := `
module \top
  wire input 1 \a
  wire input 2 \b
  wire input 3 \c
  wire width 2 \t
  wire output 4 \y
  wire output 5 \z
  cell $reduce_and $child
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 2
    connect \A { \b \a }
    connect \Y \t
  end
  cell $reduce_and $parent
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \c \t [1] }
    connect \Y \y
  end
  connect \z \t [0]
end
`
	design := parse(t, data)
	ref := parse(t, data)
	m := design.Modules[0]
	_, log := optimize(t, design)

	require.Equal(t, netlist.SigConst(netlist.S0), m.Cell(`$parent`).Port("A"),
		log)
	require.NotNil(t, m.Cell(`$child`))
	requireEquiv(t, ref.Modules[0], m)
}

func TestReduceCycle(t *testing.T) {
	data := `
module \top
  wire input 1 \a
  wire input 2 \b
  wire \t1
  wire output 3 \t2
  cell $reduce_or $c1
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \t2 \a }
    connect \Y \t1
  end
  cell $reduce_or $c2
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A { \t1 \b }
    connect \Y \t2
  end
end
`
	design := parse(t, data)
	m := design.Modules[0]
	result, log := optimize(t, design)

	stats := result.Module(`\top`)
	require.LessOrEqual(t, stats.Iterations, stats.CellsBefore+2, log)
	require.NotEmpty(t, cellsOf(m, netlist.ReduceOr))
}

func TestReduceSelection(t *testing.T) {
	design := parse(t, reduceTree)
	m := design.Modules[0]
	result, log := optimize(t, design, `top/$or1`)

	require.Len(t, cellsOf(m, netlist.ReduceOr), 2, log)
	require.Len(t, m.Cell(`$or1`).Port("A"), 2, log)
	require.Len(t, m.Cell(`$or2`).Port("A"), 2, log)
	require.Equal(t, 1, result.Total())
}

func TestReduceEmptyWarning(t *testing.T) {
	data := `
module \top
  wire output 1 \y
  cell $reduce_and $and
    parameter \A_WIDTH 1
    parameter \Y_WIDTH 1
    connect \A 1'1
    connect \Y \y
  end
end
`
	design := parse(t, data)
	ref := parse(t, data)
	m := design.Modules[0]
	result, log := optimize(t, design)

	require.Empty(t, m.Cell(`$and`).Port("A"), log)
	v, _ := m.Cell(`$and`).Param("A_WIDTH")
	require.Equal(t, int64(0), v)
	require.Equal(t, 1, result.Total())
	require.Contains(t, log,
		`\top: warning: $reduce_and cell $and has no inputs`)
	require.Equal(t, 1, strings.Count(log, "has no inputs"))

	requireEquiv(t, ref.Modules[0], m)
}
