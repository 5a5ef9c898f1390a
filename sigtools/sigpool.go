//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sigtools

import (
	"github.com/markkurossi/optreduce/netlist"
)

// SigPool is a set of wire bits. Constant bits are ignored by all
// operations.
type SigPool struct {
	bits map[netlist.Bit]bool
}

// NewSigPool creates an empty SigPool.
func NewSigPool() *SigPool {
	return &SigPool{
		bits: make(map[netlist.Bit]bool),
	}
}

// Add adds the wire bits of the signal to the pool. It returns true
// if the pool grew.
func (pool *SigPool) Add(sig netlist.Signal) bool {
	var grew bool
	for _, b := range sig {
		if b.IsConst() || pool.bits[b] {
			continue
		}
		pool.bits[b] = true
		grew = true
	}
	return grew
}

// CheckAny tests if any wire bit of the signal is in the pool.
func (pool *SigPool) CheckAny(sig netlist.Signal) bool {
	for _, b := range sig {
		if !b.IsConst() && pool.bits[b] {
			return true
		}
	}
	return false
}

// Len returns the number of bits in the pool.
func (pool *SigPool) Len() int {
	return len(pool.bits)
}

// Signal returns the pool bits as a signal ordered by netlist.Bit.Less.
func (pool *SigPool) Signal() netlist.Signal {
	return netlist.SigBits(pool.bits)
}
