//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Signal is an ordered sequence of bits, least significant bit
// first.
type Signal []Bit

// SigWire creates a signal covering all bits of the wire.
func SigWire(w *Wire) Signal {
	result := make(Signal, w.Width)
	for i := 0; i < w.Width; i++ {
		result[i] = WireBit(w, i)
	}
	return result
}

// SigConst creates a constant signal from the bit states, least
// significant bit first.
func SigConst(states ...State) Signal {
	result := make(Signal, len(states))
	for i, s := range states {
		result[i] = Const(s)
	}
	return result
}

// SigInt creates a width bits wide constant signal holding the
// integer value.
func SigInt(value int64, width int) Signal {
	result := make(Signal, width)
	for i := 0; i < width; i++ {
		if i < 64 && value&(1<<i) != 0 {
			result[i] = Const(S1)
		} else {
			result[i] = Const(S0)
		}
	}
	return result
}

// SigBits creates a signal from a set of bits, ordered by Bit.Less.
func SigBits(set map[Bit]bool) Signal {
	result := make(Signal, 0, len(set))
	for bit := range set {
		result = append(result, bit)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Less(result[j])
	})
	return result
}

// Concat concatenates the argument signals. The first argument holds
// the least significant bits.
func Concat(sigs ...Signal) Signal {
	var result Signal
	for _, s := range sigs {
		result = append(result, s...)
	}
	return result
}

// Extract returns length bits starting from offset.
func (s Signal) Extract(offset, length int) Signal {
	result := make(Signal, length)
	copy(result, s[offset:offset+length])
	return result
}

// Equal tests if the signals have equal bits.
func (s Signal) Equal(o Signal) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// IsConst tests if all signal bits are constants.
func (s Signal) IsConst() bool {
	for _, b := range s {
		if !b.IsConst() {
			return false
		}
	}
	return true
}

// Key returns a string that identifies the signal's bits within its
// module. Equal signals have equal keys.
func (s Signal) Key() string {
	var buf []byte
	for _, b := range s {
		if b.Wire == nil {
			buf = append(buf, 'c')
			buf = strconv.AppendUint(buf, uint64(b.Data), 10)
		} else {
			buf = append(buf, 'w')
			buf = strconv.AppendInt(buf, int64(b.Wire.ID), 10)
			buf = append(buf, '.')
			buf = strconv.AppendInt(buf, int64(b.Offset), 10)
		}
		buf = append(buf, ' ')
	}
	return string(buf)
}

type chunk struct {
	wire   *Wire
	offset int
	bits   []State
	width  int
}

func (c chunk) String() string {
	if c.wire == nil {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d'", c.width)
		for i := len(c.bits) - 1; i >= 0; i-- {
			sb.WriteString(c.bits[i].String())
		}
		return sb.String()
	}
	if c.offset == 0 && c.width == c.wire.Width {
		return c.wire.Name
	}
	if c.width == 1 {
		return fmt.Sprintf("%s [%d]", c.wire.Name, c.offset)
	}
	return fmt.Sprintf("%s [%d:%d]", c.wire.Name, c.offset+c.width-1,
		c.offset)
}

func (s Signal) chunks() []chunk {
	var result []chunk
	for _, b := range s {
		if len(result) > 0 {
			last := &result[len(result)-1]
			if b.Wire == nil && last.wire == nil {
				last.bits = append(last.bits, b.Data)
				last.width++
				continue
			}
			if b.Wire != nil && b.Wire == last.wire &&
				b.Offset == last.offset+last.width {
				last.width++
				continue
			}
		}
		c := chunk{
			wire:   b.Wire,
			offset: b.Offset,
			width:  1,
		}
		if b.Wire == nil {
			c.bits = []State{b.Data}
		}
		result = append(result, c)
	}
	return result
}

// String formats the signal in the netlist text syntax. Multi-chunk
// signals are printed as concatenations, most significant chunk
// first.
func (s Signal) String() string {
	chunks := s.chunks()
	if len(chunks) == 1 {
		return chunks[0].String()
	}
	var sb strings.Builder
	sb.WriteString("{")
	for i := len(chunks) - 1; i >= 0; i-- {
		sb.WriteString(" ")
		sb.WriteString(chunks[i].String())
	}
	sb.WriteString(" }")
	return sb.String()
}
