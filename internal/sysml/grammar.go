package sysml

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/westfall/windtrader/internal/metamodel"
)

// Entry maps a declaration keyword to the metaclasses it produces.
type Entry struct {
	// Keyword is one word, or two words separated by a space ("use case").
	Keyword string
	// Class is the metaclass of the plain keyword form.
	Class string
	// DefClass is the metaclass of the "<keyword> def" form. Empty when
	// "def" may not follow the keyword.
	DefClass string
	// Between, when set, makes the keyword a binary relationship statement
	// whose two endpoints are separated by this keyword or symbol.
	Between string
	// Reference makes the keyword take a feature chain instead of a
	// declared name ("perform drive;").
	Reference bool
}

// Table is a named set of grammar entries plus the structural metaclasses
// the parser produces without a keyword.
type Table struct {
	Name     string
	Keywords []Entry
	Classes  []string
}

// KerML is the kernel keyword table.
var KerML = Table{
	Name: "kerml",
	Keywords: []Entry{
		{Keyword: "namespace", Class: "Namespace"},
		{Keyword: "package", Class: "Package"},
		{Keyword: "type", Class: "Type"},
		{Keyword: "classifier", Class: "Classifier"},
		{Keyword: "class", Class: "Class"},
		{Keyword: "struct", Class: "Structure"},
		{Keyword: "datatype", Class: "DataType"},
		{Keyword: "assoc", Class: "Association"},
		{Keyword: "feature", Class: "Feature"},
		{Keyword: "behavior", Class: "Behavior"},
		{Keyword: "step", Class: "Step"},
		{Keyword: "function", Class: "Function"},
		{Keyword: "predicate", Class: "Predicate"},
		{Keyword: "expr", Class: "Expression"},
		{Keyword: "connector", Class: "Connector"},
		{Keyword: "binding", Class: "BindingConnector"},
		{Keyword: "succession", Class: "Succession"},
		{Keyword: "metaclass", Class: "Metaclass"},
	},
	Classes: []string{
		"Namespace",
		"LibraryPackage",
		"NamespaceImport",
		"MembershipImport",
		"Membership",
		"Documentation",
		"Comment",
		"MultiplicityRange",
		"LiteralExpression",
		"FeatureReferenceExpression",
		"OperatorExpression",
		"InvocationExpression",
	},
}

// SysML is the systems modeling keyword table. It is installed after KerML
// and overrides entries with the same keyword.
var SysML = Table{
	Name: "sysml",
	Keywords: []Entry{
		{Keyword: "part", Class: "PartUsage", DefClass: "PartDefinition"},
		{Keyword: "attribute", Class: "AttributeUsage", DefClass: "AttributeDefinition"},
		{Keyword: "port", Class: "PortUsage", DefClass: "PortDefinition"},
		{Keyword: "item", Class: "ItemUsage", DefClass: "ItemDefinition"},
		{Keyword: "action", Class: "ActionUsage", DefClass: "ActionDefinition"},
		{Keyword: "state", Class: "StateUsage", DefClass: "StateDefinition"},
		{Keyword: "requirement", Class: "RequirementUsage", DefClass: "RequirementDefinition"},
		{Keyword: "constraint", Class: "ConstraintUsage", DefClass: "ConstraintDefinition"},
		{Keyword: "connection", Class: "ConnectionUsage", DefClass: "ConnectionDefinition"},
		{Keyword: "interface", Class: "InterfaceUsage", DefClass: "InterfaceDefinition"},
		{Keyword: "enum", Class: "EnumerationUsage", DefClass: "EnumerationDefinition"},
		{Keyword: "occurrence", Class: "OccurrenceUsage", DefClass: "OccurrenceDefinition"},
		{Keyword: "view", Class: "ViewUsage", DefClass: "ViewDefinition"},
		{Keyword: "viewpoint", Class: "ViewpointUsage", DefClass: "ViewpointDefinition"},
		{Keyword: "concern", Class: "ConcernUsage", DefClass: "ConcernDefinition"},
		{Keyword: "calc", Class: "CalculationUsage", DefClass: "CalculationDefinition"},
		{Keyword: "flow", Class: "FlowUsage", DefClass: "FlowDefinition"},
		{Keyword: "allocation", Class: "AllocationUsage", DefClass: "AllocationDefinition"},
		{Keyword: "use case", Class: "UseCaseUsage", DefClass: "UseCaseDefinition"},
		{Keyword: "analysis", Class: "AnalysisCaseUsage", DefClass: "AnalysisCaseDefinition"},
		{Keyword: "verification", Class: "VerificationCaseUsage", DefClass: "VerificationCaseDefinition"},
		{Keyword: "case", Class: "CaseUsage", DefClass: "CaseDefinition"},
		{Keyword: "rendering", Class: "RenderingUsage", DefClass: "RenderingDefinition"},
		{Keyword: "metadata", Class: "MetadataUsage", DefClass: "MetadataDefinition"},
		{Keyword: "connect", Class: "ConnectionUsage", Between: "to"},
		{Keyword: "allocate", Class: "AllocationUsage", Between: "to"},
		{Keyword: "bind", Class: "BindingConnectorAsUsage", Between: "="},
		{Keyword: "first", Class: "SuccessionAsUsage", Between: "then"},
		{Keyword: "satisfy", Class: "SatisfyRequirementUsage", Reference: true},
		{Keyword: "perform", Class: "PerformActionUsage", Reference: true},
		{Keyword: "exhibit", Class: "ExhibitStateUsage", Reference: true},
		{Keyword: "include", Class: "IncludeUseCaseUsage", Reference: true},
	},
	Classes: []string{
		"ReferenceUsage",
		"MetadataUsage",
	},
}

// Keywords that may precede a declaration keyword.
var prefixKeywords = []string{
	"abstract", "ref", "in", "out", "inout", "variation", "individual",
	"readonly", "derived", "end", "standard", "library", "composite",
	"portion", "snapshot", "timeslice", "variant", "subject", "actor",
	"stakeholder", "objective", "return", "require", "assume", "assert",
}

// Words the grammar uses structurally. They are reserved in addition to the
// installed declaration keywords.
var structuralKeywords = []string{
	"def", "import", "alias", "for", "doc", "comment", "about", "locale",
	"public", "private", "protected", "true", "false", "null", "and", "or",
	"not", "xor", "implies", "specializes", "subsets", "redefines",
	"references", "conjugates", "typed", "defined", "by", "default", "to",
	"from", "of", "then", "ordered", "nonunique", "all",
}

// Metaclasses the parser needs regardless of which keywords are installed.
var requiredClasses = []string{
	"Namespace",
	"LibraryPackage",
	"NamespaceImport",
	"MembershipImport",
	"Membership",
	"Documentation",
	"Comment",
	"ReferenceUsage",
	"MetadataUsage",
	"MultiplicityRange",
	"LiteralExpression",
	"FeatureReferenceExpression",
	"OperatorExpression",
	"InvocationExpression",
}

type keyword struct {
	words    []string
	entry    Entry
	class    metamodel.Class
	defClass metamodel.Class
	hasDef   bool
}

// Grammar is the set of keywords and metaclasses a Parser recognizes.
type Grammar struct {
	registry *metamodel.Registry
	keywords map[string][]*keyword // by first word
	classes  map[string]metamodel.Class
	tables   []string
}

// NewGrammar creates an empty grammar resolving metaclasses through reg.
func NewGrammar(reg *metamodel.Registry) *Grammar {
	return &Grammar{
		registry: reg,
		keywords: make(map[string][]*keyword),
		classes:  make(map[string]metamodel.Class),
	}
}

// Install resolves every metaclass of t and adds its keywords. Each
// metaclass is looked up in the given namespaces in order; the first one
// that defines it wins. Nothing is installed if any metaclass is unresolved.
func (g *Grammar) Install(t Table, nsURIs ...string) error {
	resolved := make(map[string]metamodel.Class)
	resolve := func(name string) (metamodel.Class, error) {
		if c, ok := resolved[name]; ok {
			return c, nil
		}
		var errs []error
		for _, uri := range nsURIs {
			c, err := g.registry.Resolve(uri, name)
			if err == nil {
				resolved[name] = c
				return c, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return metamodel.Class{}, fmt.Errorf("%w %s: no namespace given", metamodel.ErrUnresolvedClass, name)
		}
		return metamodel.Class{}, errors.Join(errs...)
	}

	for _, name := range t.Classes {
		if _, err := resolve(name); err != nil {
			return fmt.Errorf("install %s grammar: %w", t.Name, err)
		}
	}

	var kws []*keyword
	for _, e := range t.Keywords {
		kw := &keyword{words: strings.Fields(e.Keyword), entry: e}

		c, err := resolve(e.Class)
		if err != nil {
			return fmt.Errorf("install %s grammar: keyword %q: %w", t.Name, e.Keyword, err)
		}
		kw.class = c

		if e.DefClass != "" {
			dc, err := resolve(e.DefClass)
			if err != nil {
				return fmt.Errorf("install %s grammar: keyword %q: %w", t.Name, e.Keyword+" def", err)
			}
			kw.defClass = dc
			kw.hasDef = true
		}

		kws = append(kws, kw)
	}

	for name, c := range resolved {
		g.classes[name] = c
	}
	for _, kw := range kws {
		g.add(kw)
	}
	g.tables = append(g.tables, t.Name)

	return nil
}

func (g *Grammar) add(kw *keyword) {
	first := kw.words[0]
	list := g.keywords[first]
	for i, existing := range list {
		if strings.Join(existing.words, " ") == strings.Join(kw.words, " ") {
			list[i] = kw
			return
		}
	}

	// Longer spellings first so "use case" wins over a plain "use".
	list = append(list, kw)
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].words) > len(list[j].words)
	})
	g.keywords[first] = list
}

// Tables returns the names of the installed tables in installation order.
func (g *Grammar) Tables() []string {
	return append([]string(nil), g.tables...)
}

// Keywords returns every installed declaration keyword, sorted.
func (g *Grammar) Keywords() []string {
	var result []string
	for _, list := range g.keywords {
		for _, kw := range list {
			result = append(result, strings.Join(kw.words, " "))
		}
	}
	sort.Strings(result)
	return result
}

// Class returns an installed metaclass by name.
func (g *Grammar) Class(name string) (metamodel.Class, bool) {
	c, ok := g.classes[name]
	return c, ok
}

// check reports the first metaclass the parser needs but the grammar lacks.
func (g *Grammar) check() error {
	for _, name := range requiredClasses {
		if _, ok := g.classes[name]; !ok {
			return fmt.Errorf("%w %s: grammar tables installed: %v", metamodel.ErrUnresolvedClass, name, g.tables)
		}
	}
	if len(g.keywords) == 0 {
		return errors.New("grammar has no declaration keywords")
	}
	return nil
}

// match returns the keyword spelled by the tokens at the head of tokens.
func (g *Grammar) match(tokens []*Token) *keyword {
	if len(tokens) == 0 || tokens[0].Type != TokenIdent {
		return nil
	}

	for _, kw := range g.keywords[tokens[0].Text] {
		if len(kw.words) > len(tokens) {
			continue
		}
		matched := true
		for i, w := range kw.words[1:] {
			if !tokens[i+1].is(w) {
				matched = false
				break
			}
		}
		if matched {
			return kw
		}
	}
	return nil
}

func (g *Grammar) reserved(word string) bool {
	if _, ok := g.keywords[word]; ok {
		return true
	}
	for _, list := range [][]string{prefixKeywords, structuralKeywords} {
		for _, w := range list {
			if w == word {
				return true
			}
		}
	}
	return false
}
