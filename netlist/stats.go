//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"sort"
)

// Stats holds cell counts by type tag.
type Stats map[string]int

// Count returns the total number of cells.
func (stats Stats) Count() int {
	var result int
	for _, v := range stats {
		result += v
	}
	return result
}

func (stats Stats) String() string {
	var keys []string
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result string
	for _, k := range keys {
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", k, stats[k])
	}
	return result
}
