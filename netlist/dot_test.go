//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"bytes"
	"strings"
	"testing"
)

var dotData = `
module \m
  wire input 1 \a
  wire input 2 \b
  wire width 2 \t
  wire output 3 \y
  cell $reduce_or $or
    parameter \A_WIDTH 2
    parameter \Y_WIDTH 1
    connect \A \t
    connect \Y \y
  end
  connect \t { \b \a }
end
`

func TestDot(t *testing.T) {
	design, err := Parse("dot", strings.NewReader(dotData))
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	var buf bytes.Buffer
	design.Modules[0].Dot(&buf)
	out := buf.String()

	for _, line := range []string{
		`digraph "\\m"`,
		"w2 -> c0;",
		"c0 -> w3;",
		"w0 -> w2 [style=dashed];",
		"w1 -> w2 [style=dashed];",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q:\n%s", line, out)
		}
	}
	if n := strings.Count(out, "[style=dashed]"); n != 2 {
		t.Errorf("unexpected connection edges %d:\n%s", n, out)
	}
}

func TestDotConcat(t *testing.T) {
	m := NewModule(`\m`)
	a, _ := m.AddWire(`\a`, 1)
	b, _ := m.AddWire(`\b`, 1)
	c, _ := m.AddWire(`\c`, 1)
	d, _ := m.AddWire(`\d`, 1)
	m.Connect(Concat(SigWire(a), SigWire(b)), Concat(SigWire(c), SigWire(d)))

	var buf bytes.Buffer
	m.Dot(&buf)
	out := buf.String()
	if !strings.Contains(out, "w2 -> w0 [style=dashed];") ||
		!strings.Contains(out, "w3 -> w1 [style=dashed];") {
		t.Errorf("missing bit edges:\n%s", out)
	}
	if strings.Contains(out, "w2 -> w1") || strings.Contains(out, "w3 -> w0") {
		t.Errorf("unexpected cross edges:\n%s", out)
	}
}
