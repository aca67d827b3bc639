// Package sysml parses the SysML v2 textual notation into a concrete syntax
// tree.
//
// The parser covers the declarative core of the language: packages, imports,
// aliases, documentation and comments, definitions and usages of every
// keyword in the installed grammar tables, typing and specialization,
// multiplicities, feature values and the common relationship statements.
// It is a validator front end: it never resolves names and never builds an
// abstract syntax model.
//
// A Grammar is built from metaclasses registered in a metamodel.Registry, so
// the metamodel packages must be registered before the grammar tables are
// installed:
//
//	reg := metamodel.NewRegistry()
//	// register packages ...
//	g := sysml.NewGrammar(reg)
//	if err := g.Install(sysml.KerML, metamodel.SysMLNsURI); err != nil {
//		return err
//	}
//	if err := g.Install(sysml.SysML, metamodel.SysMLNsURI); err != nil {
//		return err
//	}
//	p, err := sysml.NewParser(g)
//	if err != nil {
//		return err
//	}
//	result, err := p.Parse(text)
//
// Syntax errors are collected with error recovery and returned in the order
// they are encountered. Conditions that prevent parsing altogether, such as
// invalid UTF-8 or excessive nesting, are returned as *ParseError.
package sysml
