// Package mocks provides shared test doubles for windtrader packages.
package mocks

import (
	"sync"
	"sync/atomic"

	"github.com/westfall/windtrader/internal/metamodel"
	"github.com/westfall/windtrader/internal/sysml"
	"github.com/westfall/windtrader/internal/validate"
)

// Initializer implements validate.Initializer for testing.
type Initializer struct {
	err   error
	calls int32
}

// NewInitializer creates an initializer that succeeds.
func NewInitializer() *Initializer {
	return &Initializer{}
}

// WithError makes every EnsureInitialized call return err.
func (m *Initializer) WithError(err error) *Initializer {
	m.err = err
	return m
}

func (m *Initializer) EnsureInitialized() error {
	atomic.AddInt32(&m.calls, 1)
	return m.err
}

// Calls returns the number of EnsureInitialized calls.
func (m *Initializer) Calls() int32 {
	return atomic.LoadInt32(&m.calls)
}

// Parser implements validate.Parser for testing.
// Use NewParser() to create instances with a fluent builder API.
type Parser struct {
	result *sysml.ParseResult
	err    error

	// ParseFunc is called by Parse when set and replaces the configured
	// result and error.
	ParseFunc func(text string) (*sysml.ParseResult, error)

	mu     sync.Mutex
	inputs []string
}

// NewParser creates a parser that accepts every document with a root node
// covering the whole input.
func NewParser() *Parser {
	return &Parser{}
}

// WithResult makes Parse return result.
func (m *Parser) WithResult(result *sysml.ParseResult) *Parser {
	m.result = result
	return m
}

// WithSyntaxErrors makes Parse report errs against the parsed text.
func (m *Parser) WithSyntaxErrors(errs ...*sysml.SyntaxError) *Parser {
	m.ParseFunc = func(text string) (*sysml.ParseResult, error) {
		return &sysml.ParseResult{Source: text, Root: RootFor(text), SyntaxErrors: errs}, nil
	}
	return m
}

// WithoutRoot makes Parse succeed without producing a root node.
func (m *Parser) WithoutRoot() *Parser {
	m.ParseFunc = func(text string) (*sysml.ParseResult, error) {
		return &sysml.ParseResult{Source: text}, nil
	}
	return m
}

// WithError makes Parse fail with err.
func (m *Parser) WithError(err error) *Parser {
	m.err = err
	return m
}

// WithPanic makes Parse panic with v.
func (m *Parser) WithPanic(v any) *Parser {
	m.ParseFunc = func(string) (*sysml.ParseResult, error) {
		panic(v)
	}
	return m
}

func (m *Parser) Parse(text string) (*sysml.ParseResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()

	if m.ParseFunc != nil {
		return m.ParseFunc(text)
	}
	if m.err != nil || m.result != nil {
		return m.result, m.err
	}
	return &sysml.ParseResult{Source: text, Root: RootFor(text)}, nil
}

// Inputs returns every text passed to Parse, in call order.
func (m *Parser) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.inputs))
	copy(result, m.inputs)
	return result
}

// ParserFactory implements validate.ParserFactory for testing.
type ParserFactory struct {
	parser validate.Parser
	err    error
	calls  int32
}

// NewParserFactory creates a factory that returns parser.
func NewParserFactory(parser validate.Parser) *ParserFactory {
	return &ParserFactory{parser: parser}
}

// WithError makes NewParser fail with err.
func (m *ParserFactory) WithError(err error) *ParserFactory {
	m.err = err
	return m
}

func (m *ParserFactory) NewParser() (validate.Parser, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	return m.parser, nil
}

// Calls returns the number of NewParser calls.
func (m *ParserFactory) Calls() int32 {
	return atomic.LoadInt32(&m.calls)
}

// RootFor returns a root node spanning all of text.
func RootFor(text string) *sysml.Node {
	root := &sysml.Node{Class: metamodel.Class{Name: "Namespace"}}
	root.Range.End.Byte = len(text)
	return root
}
