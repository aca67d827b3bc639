// Package errors provides structured error types and exit codes for windtrader.
package errors

import (
	"errors"
	"fmt"

	"github.com/westfall/windtrader/pkg/windtrader"
)

// Exit codes, mirrored from pkg/windtrader for internal callers.
const (
	ExitOK      = windtrader.ExitOK      // Valid document or informational command
	ExitInvalid = windtrader.ExitInvalid // Document is not syntactically valid
	ExitRuntime = windtrader.ExitRuntime // Usage error or runtime failure
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindUsage
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	default:
		return "runtime"
	}
}

// WindtraderError is the base error type for windtrader.
type WindtraderError struct {
	Kind    ErrorKind
	Message string
	Command string // Command name if applicable
	Cause   error  // Underlying error
}

func (e *WindtraderError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Message)
	}
	return e.Message
}

func (e *WindtraderError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error. Both kinds exit with
// ExitRuntime; invalid documents are outcomes, not errors.
func (e *WindtraderError) ExitCode() int {
	return ExitRuntime
}

// New creates a new runtime error.
func New(message string) *WindtraderError {
	return &WindtraderError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Usage creates a new usage error.
func Usage(message string) *WindtraderError {
	return &WindtraderError{
		Kind:    KindUsage,
		Message: message,
	}
}

// Usagef creates a new usage error with formatting.
func Usagef(format string, args ...interface{}) *WindtraderError {
	return Usage(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *WindtraderError {
	return &WindtraderError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var we *WindtraderError
	if errors.As(err, &we) {
		return we.ExitCode()
	}
	return ExitRuntime
}

// Chain returns one message per link of err's cause chain, outermost first.
// A WindtraderError contributes its own message and continues with its Cause.
// Any other error ends the chain with its full message, which already embeds
// whatever it wraps with %w. Errors joined with errors.Join are walked
// depth-first.
func Chain(err error) []string {
	var msgs []string
	var walk func(error)
	walk = func(err error) {
		for err != nil {
			switch e := err.(type) {
			case *WindtraderError:
				msgs = append(msgs, e.Error())
				err = e.Cause
			case interface{ Unwrap() []error }:
				for _, inner := range e.Unwrap() {
					walk(inner)
				}
				return
			default:
				msgs = append(msgs, err.Error())
				return
			}
		}
	}
	walk(err)
	return msgs
}
