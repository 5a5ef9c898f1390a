//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
)

// Eval evaluates the module's combinational logic. The inputs map
// input port names to their values. The function returns the values
// of the output ports. Bits that do not resolve to 0 or 1 (undriven
// bits, register and memory outputs, conflicting selects) are
// returned as Sx.
func (m *Module) Eval(inputs map[string]uint64) (map[string]Signal, error) {
	vals := make(map[Bit]State)

	for _, w := range m.wires {
		if !w.Input {
			continue
		}
		v, ok := inputs[w.Name]
		if !ok {
			return nil, fmt.Errorf("module %s: no value for input %s",
				m.Name, w.Name)
		}
		if w.Width > 64 {
			return nil, fmt.Errorf("module %s: input %s too wide: %d",
				m.Name, w.Name, w.Width)
		}
		for i := 0; i < w.Width; i++ {
			if v&(1<<i) != 0 {
				vals[WireBit(w, i)] = S1
			} else {
				vals[WireBit(w, i)] = S0
			}
		}
	}

	get := func(b Bit) (State, bool) {
		if b.IsConst() {
			if b.Data == S0 || b.Data == S1 {
				return b.Data, true
			}
			return Sx, true
		}
		v, ok := vals[b]
		return v, ok
	}
	getSig := func(sig Signal) ([]State, bool) {
		result := make([]State, len(sig))
		for i, b := range sig {
			v, ok := get(b)
			if !ok {
				return nil, false
			}
			result[i] = v
		}
		return result, true
	}
	set := func(b Bit, v State) bool {
		if b.IsConst() {
			return false
		}
		if _, ok := vals[b]; ok {
			return false
		}
		vals[b] = v
		return true
	}

	for changed := true; changed; {
		changed = false

		for _, conn := range m.Conns {
			for i := range conn.Dst {
				if v, ok := get(conn.Src[i]); ok && set(conn.Dst[i], v) {
					changed = true
				}
				if v, ok := get(conn.Dst[i]); ok && set(conn.Src[i], v) {
					changed = true
				}
			}
		}
		for _, c := range m.cells {
			y, ok := evalCell(c, getSig)
			if !ok {
				continue
			}
			for i, b := range c.Port("Y") {
				if i < len(y) && set(b, y[i]) {
					changed = true
				}
			}
		}
	}

	result := make(map[string]Signal)
	for _, w := range m.wires {
		if !w.Output {
			continue
		}
		sig := make(Signal, w.Width)
		for i := 0; i < w.Width; i++ {
			v, ok := get(WireBit(w, i))
			if !ok {
				v = Sx
			}
			sig[i] = Const(v)
		}
		result[w.Name] = sig
	}
	return result, nil
}

func evalCell(c *Cell, getSig func(sig Signal) ([]State, bool)) (
	[]State, bool) {

	switch c.Type {
	case ReduceAnd, ReduceOr:
		a, ok := getSig(c.Port("A"))
		if !ok {
			return nil, false
		}
		absorb, identity := S0, S1
		if c.Type == ReduceOr {
			absorb, identity = S1, S0
		}
		r := identity
		for _, v := range a {
			if v == absorb {
				r = absorb
				break
			}
			if v != identity {
				r = Sx
			}
		}
		y := make([]State, len(c.Port("Y")))
		for i := range y {
			y[i] = S0
		}
		if len(y) > 0 {
			y[0] = r
		}
		return y, true

	case Mux, Pmux:
		a, ok := getSig(c.Port("A"))
		if !ok {
			return nil, false
		}
		b, ok := getSig(c.Port("B"))
		if !ok {
			return nil, false
		}
		s, ok := getSig(c.Port("S"))
		if !ok {
			return nil, false
		}
		width := len(a)
		if len(b) != width*len(s) {
			return nil, false
		}
		if c.Type == Mux && len(s) == 1 && s[0] == Sx {
			y := make([]State, width)
			for i := range y {
				if a[i] == b[i] {
					y[i] = a[i]
				} else {
					y[i] = Sx
				}
			}
			return y, true
		}
		sel := -1
		for i, v := range s {
			switch v {
			case S0:
			case S1:
				if sel >= 0 {
					return xs(width), true
				}
				sel = i
			default:
				return xs(width), true
			}
		}
		if sel < 0 {
			return a, true
		}
		return b[sel*width : (sel+1)*width], true

	default:
		return nil, false
	}
}

func xs(width int) []State {
	result := make([]State, width)
	for i := range result {
		result[i] = Sx
	}
	return result
}
