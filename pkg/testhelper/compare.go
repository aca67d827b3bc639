package testhelper

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Mode selects which command a Result came from.
type Mode int

const (
	ModeCheck Mode = iota
	ModeEcho
)

// Result is what one validator run produced.
type Result struct {
	Exit   int
	Stdout string
	Stderr string
}

// Compare checks r against the expectations of c and returns a
// human-readable description of the differences, or "" on match.
//
// check must print nothing on stdout. echo must print the input verbatim
// when the case passes and nothing otherwise. In both modes stderr must hold
// exactly the expected error lines.
func Compare(c Case, r Result, mode Mode) string {
	var diffs []string

	if r.Exit != c.Exit {
		diffs = append(diffs, fmt.Sprintf("exit code: got %d, want %d", r.Exit, c.Exit))
	}

	wantStdout := ""
	if mode == ModeEcho && c.Exit == 0 {
		wantStdout = c.Input
	}
	if r.Stdout != wantStdout {
		diffs = append(diffs, "stdout (-want +got):\n"+cmp.Diff(wantStdout, r.Stdout))
	}

	if d := cmp.Diff(c.Errors, Lines(r.Stderr), cmpopts.EquateEmpty()); d != "" {
		diffs = append(diffs, "stderr lines (-want +got):\n"+d)
	}

	if len(diffs) == 0 {
		return ""
	}
	return c.String() + ": " + strings.Join(diffs, "\n")
}

// Lines splits s into lines without their terminators.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
