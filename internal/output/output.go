// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a new Writer on the process streams. Color is used when
// stderr is a terminal and NO_COLOR is not set.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: ColorEnabled(os.Stderr, os.Getenv),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// Color reports whether the writer emits ANSI color codes.
func (w *Writer) Color() bool {
	return w.color
}

// Stdout returns the writer's standard output stream.
func (w *Writer) Stdout() io.Writer {
	return w.out
}

// Stderr returns the writer's error stream.
func (w *Writer) Stderr() io.Writer {
	return w.err
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Raw writes s to stdout unchanged.
func (w *Writer) Raw(s string) error {
	_, err := io.WriteString(w.out, s)
	return err
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// ErrorPrefix prints an error message with windtrader prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swindtrader:%s %s", red, reset, msg)
	} else {
		w.Errorln("windtrader: %s", msg)
	}
}

// CausedBy prints one link of an error's cause chain to stderr.
func (w *Writer) CausedBy(msg string) {
	if w.color {
		w.Errorln("  %scaused by:%s %s", dim, reset, msg)
	} else {
		w.Errorln("  caused by: %s", msg)
	}
}

// ErrorChain prints the first message with the windtrader prefix and the
// rest as its causes.
func (w *Writer) ErrorChain(msgs []string) {
	if len(msgs) == 0 {
		return
	}
	w.ErrorPrefix("%s", msgs[0])
	for _, msg := range msgs[1:] {
		w.CausedBy(msg)
	}
}

// ColorEnabled reports whether color should be used on f. NO_COLOR in the
// environment turns color off regardless of the terminal.
func ColorEnabled(f *os.File, getenv func(string) string) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}

// isTerminal returns true if f is a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	if fi, _ := f.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset = "\033[0m"
	dim   = "\033[2m"
	red   = "\033[31m"
)
