//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package optreduce

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/markkurossi/optreduce/netlist"
	"github.com/markkurossi/optreduce/opt"
	"github.com/markkurossi/optreduce/utils"
)

const (
	testsuite         = "testsuite"
	maxEquivInputBits = 12
)

var (
	reWhitespace = regexp.MustCompilePOSIX(`[[:space:]]+`)
)

func TestSuite(t *testing.T) {
	err := filepath.WalkDir(testsuite,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			testFile(t, path)
			return nil
		})
	if err != nil {
		t.Fatalf("failed to walk %s: %s", testsuite, err)
	}
}

func annotations(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var result []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}
		ann := strings.TrimSpace(line[1:])
		if strings.HasPrefix(ann, "@") {
			result = append(result, ann)
		}
	}
	return result, scanner.Err()
}

func testFile(t *testing.T, file string) {
	if !strings.HasSuffix(file, ".il") {
		return
	}
	anns, err := annotations(file)
	if err != nil {
		t.Errorf("%s: failed to read annotations: %s", file, err)
		return
	}

	design, err := netlist.ParseFile(file)
	if err != nil {
		t.Errorf("failed to parse '%s': %s", file, err)
		return
	}
	reference, err := netlist.ParseFile(file)
	if err != nil {
		t.Errorf("failed to parse '%s': %s", file, err)
		return
	}

	var args []string
	var equiv bool
	for _, ann := range anns {
		parts := reWhitespace.Split(ann, -1)
		switch parts[0] {
		case "@Fine":
			args = append([]string{"-fine"}, args...)
		case "@Select":
			args = append(args, parts[1:]...)
		case "@Equiv":
			equiv = true
		}
	}

	params := opt.NewParams()
	if err := opt.ParseArgs(params, args); err != nil {
		t.Errorf("%s: invalid pass arguments %v: %s", file, args, err)
		return
	}
	params.Workers = 4

	var log strings.Builder
	result, err := opt.NewPass(params, utils.NewLogger(&log)).Execute(design)
	if err != nil {
		t.Errorf("%s: pass failed: %s\n%s", file, err, log.String())
		return
	}

	for _, ann := range anns {
		parts := reWhitespace.Split(ann, -1)
		switch parts[0] {
		case "@Changes":
			if len(parts) != 3 {
				t.Errorf("%s: invalid annotation: %s", file, ann)
				continue
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				t.Errorf("%s: invalid annotation: %s", file, ann)
				continue
			}
			if !compare(result.Total(), parts[1], n) {
				t.Errorf("%s: changes: got %d, expected %s %d\n%s",
					file, result.Total(), parts[1], n, log.String())
			}

		case "@Cells":
			if len(parts) != 3 {
				t.Errorf("%s: invalid annotation: %s", file, ann)
				continue
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				t.Errorf("%s: invalid annotation: %s", file, ann)
				continue
			}
			var count int
			for _, m := range design.Modules {
				count += m.Stats()[parts[1]]
			}
			if count != n {
				t.Errorf("%s: %s cells: got %d, expected %d\n%s",
					file, parts[1], count, n, log.String())
			}
		}
	}

	for _, m := range design.Modules {
		if err := m.Check(); err != nil {
			t.Errorf("%s: %s", file, err)
		}
		if equiv {
			if err := checkEquiv(reference.Module(m.Name), m); err != nil {
				t.Errorf("%s: %s\n%s", file, err, log.String())
			}
		}
	}
}

func compare(got int, op string, n int) bool {
	switch op {
	case "==":
		return got == n
	case ">=":
		return got >= n
	case "<=":
		return got <= n
	default:
		return false
	}
}

// checkEquiv simulates both modules over all input values. Output
// bits that are undefined in the reference module are don't-care.
func checkEquiv(ref, m *netlist.Module) error {
	var inputs []*netlist.Wire
	var bits int
	for _, w := range ref.Wires() {
		if w.Input {
			inputs = append(inputs, w)
			bits += w.Width
		}
	}
	if bits > maxEquivInputBits {
		return fmt.Errorf("module %s: too many input bits for equivalence: %d",
			ref.Name, bits)
	}

	for v := uint64(0); v < 1<<bits; v++ {
		values := make(map[string]uint64)
		shift := 0
		for _, w := range inputs {
			values[w.Name] = (v >> shift) & (1<<w.Width - 1)
			shift += w.Width
		}
		expected, err := ref.Eval(values)
		if err != nil {
			return err
		}
		got, err := m.Eval(values)
		if err != nil {
			return err
		}
		for name, e := range expected {
			g := got[name]
			for i := range e {
				if e[i].Data == netlist.Sx {
					continue
				}
				if e[i] != g[i] {
					return fmt.Errorf("module %s: inputs %v: output %s: "+
						"got %s, expected %s", m.Name, values, name, g, e)
				}
			}
		}
	}
	return nil
}
