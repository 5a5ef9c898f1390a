//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package sigtools implements signal equivalence and lookup
// structures over netlist bits.
package sigtools

import (
	"fmt"

	"github.com/markkurossi/optreduce/netlist"
)

// SigMap maps bits to the canonical representatives of their
// equivalence classes. The classes are induced by the module
// connections and the equivalences added with Add. A class
// containing a constant is always represented by the constant.
//
// Map does not modify the SigMap so concurrent lookups are safe as
// long as no Add is running.
type SigMap struct {
	parent map[netlist.Bit]netlist.Bit
	size   map[netlist.Bit]int
	rep    map[netlist.Bit]netlist.Bit
}

// NewSigMap creates an empty SigMap.
func NewSigMap() *SigMap {
	return &SigMap{
		parent: make(map[netlist.Bit]netlist.Bit),
		size:   make(map[netlist.Bit]int),
		rep:    make(map[netlist.Bit]netlist.Bit),
	}
}

// NewModuleSigMap creates a SigMap from the module connections.
func NewModuleSigMap(m *netlist.Module) *SigMap {
	sm := NewSigMap()
	for _, conn := range m.Conns {
		sm.Add(conn.Dst, conn.Src)
	}
	return sm
}

func (sm *SigMap) find(b netlist.Bit) netlist.Bit {
	for {
		p, ok := sm.parent[b]
		if !ok {
			return b
		}
		b = p
	}
}

func (sm *SigMap) classSize(root netlist.Bit) int {
	if n, ok := sm.size[root]; ok {
		return n
	}
	return 1
}

func (sm *SigMap) repOf(root netlist.Bit) netlist.Bit {
	if r, ok := sm.rep[root]; ok {
		return r
	}
	return root
}

// Add registers the equivalence of dst and src. The representative
// of src's class represents the merged class unless dst's class is
// represented by a constant. Classes holding two different constants
// are not merged.
func (sm *SigMap) Add(dst, src netlist.Signal) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("SigMap.Add: width mismatch: %d != %d",
			len(dst), len(src)))
	}
	for i := range dst {
		sm.AddBit(dst[i], src[i])
	}
}

// AddBit registers the equivalence of bits dst and src.
func (sm *SigMap) AddBit(dst, src netlist.Bit) {
	if dst == src {
		return
	}
	rd := sm.find(dst)
	rs := sm.find(src)
	if rd == rs {
		return
	}
	repD := sm.repOf(rd)
	repS := sm.repOf(rs)
	if repD.IsConst() && repS.IsConst() {
		return
	}
	rep := repS
	if repD.IsConst() {
		rep = repD
	}

	root, child := rs, rd
	if sm.classSize(rd) > sm.classSize(rs) {
		root, child = rd, rs
	}
	sm.parent[child] = root
	sm.size[root] = sm.classSize(root) + sm.classSize(child)
	delete(sm.size, child)
	delete(sm.rep, child)
	sm.rep[root] = rep
}

// MapBit returns the canonical representative of the bit.
func (sm *SigMap) MapBit(b netlist.Bit) netlist.Bit {
	return sm.repOf(sm.find(b))
}

// Map returns the signal with all bits replaced by their canonical
// representatives.
func (sm *SigMap) Map(sig netlist.Signal) netlist.Signal {
	result := make(netlist.Signal, len(sig))
	for i, b := range sig {
		result[i] = sm.MapBit(b)
	}
	return result
}
