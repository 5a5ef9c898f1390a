//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
)

// State specifies constant bit values.
type State uint8

// Constant bit values.
const (
	S0 State = iota
	S1
	Sx
	Sz
)

func (s State) String() string {
	switch s {
	case S0:
		return "0"
	case S1:
		return "1"
	case Sx:
		return "x"
	case Sz:
		return "z"
	default:
		return fmt.Sprintf("{State %d}", s)
	}
}

// ParseState parses the constant bit value character.
func ParseState(ch byte) (State, error) {
	switch ch {
	case '0':
		return S0, nil
	case '1':
		return S1, nil
	case 'x', 'X':
		return Sx, nil
	case 'z', 'Z':
		return Sz, nil
	default:
		return S0, fmt.Errorf("invalid constant bit '%c'", ch)
	}
}

// Bit is an atomic signal value: either a constant or a position
// within a wire. Bits are comparable and can be used as map keys.
type Bit struct {
	Wire   *Wire
	Offset int
	Data   State
}

// Const creates a constant bit.
func Const(s State) Bit {
	return Bit{
		Data: s,
	}
}

// WireBit creates a bit referring to the position offset of the wire.
func WireBit(w *Wire, offset int) Bit {
	return Bit{
		Wire:   w,
		Offset: offset,
	}
}

// IsConst tests if the bit is a constant value.
func (b Bit) IsConst() bool {
	return b.Wire == nil
}

// Less defines a total order for bits: constants first, then wire
// bits in wire creation order and offset.
func (b Bit) Less(o Bit) bool {
	if b.Wire == nil || o.Wire == nil {
		if b.Wire != nil {
			return false
		}
		if o.Wire != nil {
			return true
		}
		return b.Data < o.Data
	}
	if b.Wire != o.Wire {
		return b.Wire.ID < o.Wire.ID
	}
	return b.Offset < o.Offset
}

func (b Bit) String() string {
	if b.Wire == nil {
		return "1'" + b.Data.String()
	}
	if b.Wire.Width == 1 {
		return b.Wire.Name
	}
	return fmt.Sprintf("%s [%d]", b.Wire.Name, b.Offset)
}
