//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"fmt"
)

// Point specifies a position in the netlist input data.
type Point struct {
	Source string
	Line   int // 1-based
	Col    int // 0-based
}

func (p Point) String() string {
	if p.Undefined() {
		return p.Source
	}
	if p.Col == 0 {
		return fmt.Sprintf("%s:%d", p.Source, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Col)
}

// Undefined tests if the input position is undefined.
func (p Point) Undefined() bool {
	return p.Line == 0
}

// Errorf creates an error prefixed with the input position.
func (p Point) Errorf(format string, a ...interface{}) error {
	return fmt.Errorf("%s: %s", p, fmt.Sprintf(format, a...))
}
