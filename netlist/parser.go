//
// parser.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package netlist

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/markkurossi/optreduce/utils"
)

var (
	reSized = regexp.MustCompilePOSIX(`^([0-9]+)'([01xzXZ-]*)$`)
	reIndex = regexp.MustCompilePOSIX(`^\[([0-9]+)(:([0-9]+))?\]$`)
)

// ParseFile parses the netlist file.
func ParseFile(file string) (*Design, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(file, f)
}

// Parse parses a netlist in the text format from the reader. The
// source names the input in error messages.
func Parse(source string, in io.Reader) (*Design, error) {
	p := &parser{
		design:  new(Design),
		scanner: bufio.NewScanner(in),
		loc: utils.Point{
			Source: source,
		},
	}
	p.scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.design, nil
}

type parser struct {
	design  *Design
	scanner *bufio.Scanner
	loc     utils.Point
	module  *Module
}

func (p *parser) readLine() ([]string, error) {
	for p.scanner.Scan() {
		p.loc.Line++
		line := p.scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		parts := strings.Fields(line)
		if len(parts) > 0 {
			return parts, nil
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (p *parser) parse() error {
	for {
		line, err := p.readLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		switch line[0] {
		case "attribute", "autoidx":
			continue

		case "module":
			if len(line) != 2 {
				return p.loc.Errorf("invalid module: %v", line)
			}
			if err := p.parseModule(line[1]); err != nil {
				return err
			}

		default:
			return p.loc.Errorf("unexpected '%s'", line[0])
		}
	}
	if p.module != nil {
		return p.loc.Errorf("unexpected EOF in module %s", p.module.Name)
	}
	return nil
}

func (p *parser) parseModule(name string) error {
	p.module = NewModule(name)
	if err := p.design.AddModule(p.module); err != nil {
		return p.loc.Errorf("%s", err)
	}
	for {
		line, err := p.readLine()
		if err != nil {
			if err == io.EOF {
				return p.loc.Errorf("unexpected EOF in module %s", name)
			}
			return err
		}
		switch line[0] {
		case "attribute":
			continue

		case "end":
			p.module = nil
			return nil

		case "wire":
			if err := p.parseWire(line[1:]); err != nil {
				return err
			}

		case "cell":
			if len(line) != 3 {
				return p.loc.Errorf("invalid cell: %v", line)
			}
			if err := p.parseCell(line[1], line[2]); err != nil {
				return err
			}

		case "connect":
			dst, rest, err := p.parseSignal(line[1:])
			if err != nil {
				return err
			}
			src, rest, err := p.parseSignal(rest)
			if err != nil {
				return err
			}
			if len(rest) != 0 {
				return p.loc.Errorf("trailing data after connect: %v", rest)
			}
			if len(dst) != len(src) {
				return p.loc.Errorf("connect width mismatch: %d != %d",
					len(dst), len(src))
			}
			p.module.Connect(dst, src)

		default:
			return p.loc.Errorf("unsupported module item '%s'", line[0])
		}
	}
}

func (p *parser) parseWire(args []string) error {
	if len(args) == 0 {
		return p.loc.Errorf("wire name missing")
	}
	width := 1
	var input, output bool
	var portID int

	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "signed", "upto":
		case "width", "input", "output", "inout":
			if i+1 >= len(args)-1 {
				return p.loc.Errorf("wire %s value missing", args[i])
			}
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				return p.loc.Errorf("invalid wire %s: %s", args[i], err)
			}
			switch args[i] {
			case "width":
				width = v
			case "input":
				input = true
				portID = v
			case "output":
				output = true
				portID = v
			default:
				input = true
				output = true
				portID = v
			}
			i++
		default:
			return p.loc.Errorf("unsupported wire option '%s'", args[i])
		}
	}
	w, err := p.module.AddWire(args[len(args)-1], width)
	if err != nil {
		return p.loc.Errorf("%s", err)
	}
	w.Input = input
	w.Output = output
	w.PortID = portID
	return nil
}

func (p *parser) parseCell(tag, name string) error {
	c, err := p.module.AddCell(name, tag)
	if err != nil {
		return p.loc.Errorf("%s", err)
	}
	for {
		line, err := p.readLine()
		if err != nil {
			if err == io.EOF {
				return p.loc.Errorf("unexpected EOF in cell %s", name)
			}
			return err
		}
		switch line[0] {
		case "attribute":
			continue

		case "end":
			return nil

		case "parameter":
			args := line[1:]
			for len(args) > 0 && (args[0] == "signed" || args[0] == "real") {
				args = args[1:]
			}
			if len(args) < 2 {
				return p.loc.Errorf("invalid parameter: %v", line)
			}
			param := Param{}
			value := strings.Join(args[1:], " ")
			v, err := strconv.ParseInt(value, 10, 64)
			if err == nil {
				param.Value = v
			} else {
				param.Text = value
			}
			c.Params[strings.TrimPrefix(args[0], `\`)] = param

		case "connect":
			if len(line) < 3 {
				return p.loc.Errorf("invalid connect: %v", line)
			}
			sig, rest, err := p.parseSignal(line[2:])
			if err != nil {
				return err
			}
			if len(rest) != 0 {
				return p.loc.Errorf("trailing data after connect: %v", rest)
			}
			c.SetPort(strings.TrimPrefix(line[1], `\`), sig)

		default:
			return p.loc.Errorf("unsupported cell item '%s'", line[0])
		}
	}
}

// parseSignal parses one signal from the tokens and returns the
// remaining tokens.
func (p *parser) parseSignal(tokens []string) (Signal, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, p.loc.Errorf("signal expected")
	}
	token := tokens[0]
	tokens = tokens[1:]

	if token == "{" {
		var parts []Signal
		for {
			if len(tokens) == 0 {
				return nil, nil, p.loc.Errorf("unterminated concatenation")
			}
			if tokens[0] == "}" {
				tokens = tokens[1:]
				break
			}
			var part Signal
			var err error
			part, tokens, err = p.parseSignal(tokens)
			if err != nil {
				return nil, nil, err
			}
			parts = append(parts, part)
		}
		// Concatenations list the most significant part first.
		var result Signal
		for i := len(parts) - 1; i >= 0; i-- {
			result = append(result, parts[i]...)
		}
		return result, tokens, nil
	}

	if m := reSized.FindStringSubmatch(token); m != nil {
		width, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, nil, p.loc.Errorf("invalid constant '%s'", token)
		}
		digits := m[2]
		if len(digits) != width {
			return nil, nil, p.loc.Errorf("constant '%s': width mismatch",
				token)
		}
		result := make(Signal, width)
		for i := 0; i < width; i++ {
			ch := digits[width-1-i]
			if ch == '-' {
				ch = 'x'
			}
			s, err := ParseState(ch)
			if err != nil {
				return nil, nil, p.loc.Errorf("constant '%s': %s", token, err)
			}
			result[i] = Const(s)
		}
		return result, tokens, nil
	}
	if v, err := strconv.ParseInt(token, 10, 64); err == nil {
		return SigInt(v, 32), tokens, nil
	}

	w := p.module.Wire(token)
	if w == nil {
		return nil, nil, p.loc.Errorf("undefined wire %s", token)
	}
	if len(tokens) == 0 {
		return SigWire(w), tokens, nil
	}
	m := reIndex.FindStringSubmatch(tokens[0])
	if m == nil {
		return SigWire(w), tokens, nil
	}
	tokens = tokens[1:]
	hi, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil, p.loc.Errorf("invalid index: %s", err)
	}
	lo := hi
	if len(m[3]) > 0 {
		lo, err = strconv.Atoi(m[3])
		if err != nil {
			return nil, nil, p.loc.Errorf("invalid index: %s", err)
		}
	}
	if lo > hi || hi >= w.Width {
		return nil, nil, p.loc.Errorf("index [%d:%d] out of range for %s",
			hi, lo, w.Name)
	}
	return SigWire(w).Extract(lo, hi-lo+1), tokens, nil
}
