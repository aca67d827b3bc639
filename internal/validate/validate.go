// Package validate runs a document through bootstrap, parser construction
// and parsing, and classifies the result.
package validate

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/westfall/windtrader/internal/errors"
	"github.com/westfall/windtrader/internal/sysml"
)

// Initializer prepares the process-wide parser dependencies.
type Initializer interface {
	EnsureInitialized() error
}

// Parser parses one document.
type Parser interface {
	Parse(text string) (*sysml.ParseResult, error)
}

// ParserFactory creates parsers after initialization.
type ParserFactory interface {
	NewParser() (Parser, error)
}

// Outcome is the classification of one validation. It is one of *Success,
// *SyntaxInvalid or *RuntimeFailure.
type Outcome interface {
	// ExitCode returns the process exit code for the outcome.
	ExitCode() int
	outcome()
}

// Success is a document with no syntax errors and a root element.
type Success struct {
	// RootText is the input text covered by the root element.
	RootText string
	// Elements counts the nodes of the parsed tree, the root included.
	Elements int
}

// SyntaxInvalid is a document the parser rejected.
type SyntaxInvalid struct {
	// Errors are in the order the parser reported them.
	Errors []*sysml.SyntaxError
	// Message is set when the parser gave up with a single message instead
	// of located errors.
	Message string
	// RootMissing is set when parsing succeeded without producing a root.
	RootMissing bool
}

// RuntimeFailure is a failure of the tool rather than of the document.
type RuntimeFailure struct {
	Cause error
}

func (*Success) ExitCode() int        { return errors.ExitOK }
func (*SyntaxInvalid) ExitCode() int  { return errors.ExitInvalid }
func (*RuntimeFailure) ExitCode() int { return errors.ExitRuntime }

func (*Success) outcome()        {}
func (*SyntaxInvalid) outcome()  {}
func (*RuntimeFailure) outcome() {}

// Pipeline validates documents.
type Pipeline struct {
	Init    Initializer
	Factory ParserFactory
	Logger  *slog.Logger
}

// Validate parses text and classifies the result. It never panics.
func (p *Pipeline) Validate(text string) (outcome Outcome) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	defer func() {
		if v := recover(); v != nil {
			logger.Debug("recovered panic during validation", "panic", v)
			outcome = &RuntimeFailure{Cause: errors.Wrap(panicError(v), "parser panicked")}
		}
	}()

	if err := p.Init.EnsureInitialized(); err != nil {
		return &RuntimeFailure{Cause: err}
	}

	parser, err := p.Factory.NewParser()
	if err != nil {
		return &RuntimeFailure{Cause: err}
	}

	logger.Debug("parsing document", "bytes", len(text))
	result, err := parser.Parse(text)

	var perr *sysml.ParseError
	switch {
	case stderrors.As(err, &perr):
		return &SyntaxInvalid{Message: perr.Message}
	case err != nil:
		return &RuntimeFailure{Cause: errors.Wrap(err, "parse failed")}
	case result == nil || result.HasSyntaxErrors():
		var errs []*sysml.SyntaxError
		if result != nil {
			errs = result.SyntaxErrors
		}
		logger.Debug("document has syntax errors", "count", len(errs))
		return &SyntaxInvalid{Errors: errs}
	case result.Root == nil:
		return &SyntaxInvalid{RootMissing: true}
	}

	elements := 0
	result.Root.Walk(func(*sysml.Node) bool {
		elements++
		return true
	})
	logger.Debug("document parsed", "elements", elements)
	return &Success{RootText: result.RootText(), Elements: elements}
}

func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
