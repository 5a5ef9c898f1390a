//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"fmt"
	"path"
	"strings"
)

// Selector decides which modules and cells a pass may modify. It
// must be safe for concurrent reads.
type Selector interface {
	SelectedModule(m *Module) bool
	Selected(m *Module, c *Cell) bool
}

// Selection selects modules and cells by glob patterns of the form
// "module" or "module/cell". An empty selection selects everything.
type Selection struct {
	patterns []pattern
}

type pattern struct {
	module string
	cell   string
}

// NewSelection creates a selection from the patterns.
func NewSelection(patterns ...string) (*Selection, error) {
	sel := new(Selection)
	for _, p := range patterns {
		parts := strings.SplitN(strings.TrimPrefix(p, `\`), "/", 2)
		pat := pattern{
			module: parts[0],
		}
		if len(parts) == 2 {
			pat.cell = strings.TrimPrefix(parts[1], `\`)
		}
		if _, err := path.Match(pat.module, ""); err != nil {
			return nil, fmt.Errorf("invalid selection pattern '%s': %w",
				p, err)
		}
		if _, err := path.Match(pat.cell, ""); err != nil {
			return nil, fmt.Errorf("invalid selection pattern '%s': %w",
				p, err)
		}
		sel.patterns = append(sel.patterns, pat)
	}
	return sel, nil
}

// Full tests if the selection selects everything.
func (sel *Selection) Full() bool {
	return len(sel.patterns) == 0
}

// SelectedModule implements Selector.SelectedModule.
func (sel *Selection) SelectedModule(m *Module) bool {
	if sel.Full() {
		return true
	}
	for _, p := range sel.patterns {
		if match(p.module, m.Name) {
			return true
		}
	}
	return false
}

// Selected implements Selector.Selected.
func (sel *Selection) Selected(m *Module, c *Cell) bool {
	if sel.Full() {
		return true
	}
	for _, p := range sel.patterns {
		if !match(p.module, m.Name) {
			continue
		}
		if len(p.cell) == 0 || match(p.cell, c.Name) {
			return true
		}
	}
	return false
}

// match matches the name against the pattern. Public names carry a
// leading backslash which is not part of the pattern syntax.
func match(pattern, name string) bool {
	ok, _ := path.Match(pattern, strings.TrimPrefix(name, `\`))
	return ok
}

func (sel *Selection) String() string {
	if sel.Full() {
		return "*"
	}
	var parts []string
	for _, p := range sel.patterns {
		if len(p.cell) > 0 {
			parts = append(parts, p.module+"/"+p.cell)
		} else {
			parts = append(parts, p.module)
		}
	}
	return strings.Join(parts, " ")
}
