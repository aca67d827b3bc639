// Package report formats rejected documents for the error stream.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/westfall/windtrader/internal/sysml"
	"github.com/westfall/windtrader/internal/validate"
)

// RootMissingMessage is reported for a parse that produced no root element.
const RootMissingMessage = "Parsed successfully but produced no root AST element."

// Line formats one syntax error. Newlines in the offending text are escaped
// so that every error stays on a single line.
func Line(e *sysml.SyntaxError) string {
	return fmt.Sprintf("error: line=%d offset=%d near=%s", e.Line, e.Offset, strings.ReplaceAll(e.Text, "\n", `\n`))
}

// Message formats an error that has no source location.
func Message(msg string) string {
	return "error: msg=" + msg
}

// Write writes one line per error of o, in the order the parser reported
// them.
func Write(w io.Writer, o *validate.SyntaxInvalid) error {
	var lines []string
	switch {
	case o.Message != "":
		lines = append(lines, Message(o.Message))
	case o.RootMissing:
		lines = append(lines, Message(RootMissingMessage))
	}
	for _, e := range o.Errors {
		lines = append(lines, Line(e))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnippets renders the errors of o with source excerpts, the way hcl
// renders its own diagnostics. width of zero disables word wrapping.
func WriteSnippets(w io.Writer, filename, src string, o *validate.SyntaxInvalid, width uint, color bool) error {
	if len(o.Errors) == 0 {
		return nil
	}

	files := map[string]*hcl.File{
		filename: {Bytes: []byte(src)},
	}
	return hcl.NewDiagnosticTextWriter(w, files, width, color).WriteDiagnostics(sysml.Diagnostics(o.Errors))
}
