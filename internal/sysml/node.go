package sysml

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/westfall/windtrader/internal/metamodel"
)

// Node is an element of the concrete syntax tree.
type Node struct {
	Class metamodel.Class
	// Keyword is the declaration keyword as written, "part def" for example.
	Keyword  string
	Prefixes []string
	Name     string
	Range    hcl.Range
	Children []*Node
}

// Kind returns the name of the node's metaclass.
func (n *Node) Kind() string {
	return n.Class.Name
}

// Text returns the part of src covered by the node.
func (n *Node) Text(src string) string {
	start, end := n.Range.Start.Byte, n.Range.End.Byte
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// Walk calls fn for n and its descendants in document order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n.Name == "" {
		return n.Kind()
	}
	return fmt.Sprintf("%s %s", n.Kind(), n.Name)
}

// ParseResult is the outcome of a parse that ran to completion.
type ParseResult struct {
	Source string
	// Root is the document node. It may be nil for results produced by
	// other parser implementations; this parser always sets it.
	Root *Node
	// SyntaxErrors are in the order the parser encountered them.
	SyntaxErrors []*SyntaxError
}

// HasSyntaxErrors reports whether the parser reported any syntax error.
func (r *ParseResult) HasSyntaxErrors() bool {
	return len(r.SyntaxErrors) > 0
}

// RootText returns the exact input text covered by the root node.
func (r *ParseResult) RootText() string {
	if r.Root == nil {
		return ""
	}
	return r.Root.Text(r.Source)
}

// Diagnostics converts syntax errors into hcl diagnostics, keeping their
// order.
func Diagnostics(errs []*SyntaxError) hcl.Diagnostics {
	diags := make(hcl.Diagnostics, 0, len(errs))
	for _, e := range errs {
		diags = append(diags, e.Diagnostic())
	}
	return diags
}
