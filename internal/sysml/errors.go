package sysml

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// SyntaxError is a defect the parser recovered from.
type SyntaxError struct {
	// Line is the 1-based line of the offending text.
	Line int
	// Offset is the absolute character offset of the offending text, in
	// UTF-16 code units. Range carries the byte position.
	Offset int
	// Text is the offending source text, empty at end of input.
	Text    string
	Message string
	Range   hcl.Range
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Range.Start.Column, e.Message)
}

// Diagnostic returns the error as an hcl diagnostic.
func (e *SyntaxError) Diagnostic() *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Syntax error",
		Detail:   e.Message,
		Subject:  e.Range.Ptr(),
	}
}

// ParseError is returned when the parser gives up on the input as a whole.
type ParseError struct {
	Message string
	Pos     hcl.Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
