//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sigtools

import (
	"github.com/markkurossi/optreduce/netlist"
)

// SigSet is a multimap from wire bits to values. Constant bits are
// never stored.
type SigSet[T comparable] struct {
	bits map[netlist.Bit][]T
}

// NewSigSet creates an empty SigSet.
func NewSigSet[T comparable]() *SigSet[T] {
	return &SigSet[T]{
		bits: make(map[netlist.Bit][]T),
	}
}

// Insert adds the value for all wire bits of the signal.
func (set *SigSet[T]) Insert(sig netlist.Signal, v T) {
	for _, b := range sig {
		if b.IsConst() {
			continue
		}
		set.insertBit(b, v)
	}
}

func (set *SigSet[T]) insertBit(b netlist.Bit, v T) {
	for _, old := range set.bits[b] {
		if old == v {
			return
		}
	}
	set.bits[b] = append(set.bits[b], v)
}

// Find returns the values stored for the bit in insertion order.
func (set *SigSet[T]) Find(b netlist.Bit) []T {
	return set.bits[b]
}

// Len returns the number of bits in the set.
func (set *SigSet[T]) Len() int {
	return len(set.bits)
}
