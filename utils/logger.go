//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Logger implements the optimizer logging facility.
type Logger struct {
	out     io.Writer
	Verbose bool
}

// NewLogger creates a new logger outputting to the argument io.Writer.
func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{
		out: out,
	}
}

// Buffered creates a child logger that collects its messages into a
// buffer. The messages are written to the parent logger with Flush.
func (l *Logger) Buffered() *Logger {
	return &Logger{
		out:     new(bytes.Buffer),
		Verbose: l.Verbose,
	}
}

// Flush writes the buffered messages of the child logger into this
// logger.
func (l *Logger) Flush(child *Logger) error {
	buf, ok := child.out.(*bytes.Buffer)
	if !ok {
		return nil
	}
	_, err := buf.WriteTo(l.out)
	return err
}

// Logf logs a message.
func (l *Logger) Logf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(l.out, msg)
}

// Headerf logs a pass header message.
func (l *Logger) Headerf(format string, a ...interface{}) {
	fmt.Fprintln(l.out)
	l.Logf(format, a...)
}

// Debugf logs a message if verbose logging is enabled.
func (l *Logger) Debugf(format string, a ...interface{}) {
	if l.Verbose {
		l.Logf(format, a...)
	}
}

// Errorf logs an error message and returns it as an error value. The
// returned error contains the first line of the message.
func (l *Logger) Errorf(loc Point, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	if loc.Undefined() && len(loc.Source) == 0 {
		fmt.Fprintf(l.out, "error: %s", msg)
	} else {
		fmt.Fprintf(l.out, "%s: %s", loc, msg)
	}

	idx := strings.IndexRune(msg, '\n')
	if idx > 0 {
		msg = msg[:idx]
	}
	return errors.New(msg)
}

// Warningf logs a warning message.
func (l *Logger) Warningf(loc Point, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	if loc.Undefined() && len(loc.Source) == 0 {
		fmt.Fprintf(l.out, "warning: %s", msg)
	} else {
		fmt.Fprintf(l.out, "%s: warning: %s", loc, msg)
	}
}
