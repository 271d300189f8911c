// Package console retargets text output to the debug serial port on
// microcontrollers, or to the terminal on hosted systems. Log output of the
// Find Me examples is written through it.
//
// Newlines are written as LF by callers. On a serial port they are expanded
// to CRLF since serial terminals expect that.
package console

import (
	"io"
	"sync/atomic"
)

// clearScreen is the ANSI sequence to clear the screen and move the cursor
// home.
const clearScreen = "\x1b[2J\x1b[;H"

// Console is an io.Writer that knows whether a write is still in progress.
type Console struct {
	w      io.Writer
	crlf   bool
	ansi   bool
	active atomic.Int32
}

// New returns a Console writing to w. With crlf set, every LF is written as
// CRLF. With ansi set, ClearScreen emits the ANSI clear sequence.
func New(w io.Writer, crlf, ansi bool) *Console {
	return &Console{w: w, crlf: crlf, ansi: ansi}
}

// Write writes p, expanding newlines if needed.
func (c *Console) Write(p []byte) (int, error) {
	c.active.Add(1)
	defer c.active.Add(-1)

	if !c.crlf {
		return c.w.Write(p)
	}
	start := 0
	for i, ch := range p {
		if ch != '\n' || (i > 0 && p[i-1] == '\r') {
			continue
		}
		if _, err := c.w.Write(p[start:i]); err != nil {
			return start, err
		}
		if _, err := c.w.Write([]byte{'\r'}); err != nil {
			return i, err
		}
		start = i
	}
	if _, err := c.w.Write(p[start:]); err != nil {
		return start, err
	}
	return len(p), nil
}

// TxActive returns true while a Write is in progress.
func (c *Console) TxActive() bool {
	return c.active.Load() > 0
}

// ClearScreen clears the terminal, if it understands ANSI escapes.
func (c *Console) ClearScreen() {
	if c.ansi {
		io.WriteString(c, clearScreen)
	}
}
