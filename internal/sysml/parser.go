package sysml

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"

	"github.com/westfall/windtrader/internal/metamodel"
)

// DefaultMaxDepth bounds the nesting of bodies and expressions.
const DefaultMaxDepth = 256

// DefaultFilename names the input in source ranges.
const DefaultFilename = "<stdin>"

// Parser parses documents with a fixed grammar. A Parser holds no state
// between calls to Parse.
type Parser struct {
	grammar  *Grammar
	Filename string
	MaxDepth int
}

// NewParser returns a parser for g. It fails if g lacks a metaclass the
// parser produces.
func NewParser(g *Grammar) (*Parser, error) {
	if g == nil {
		return nil, fmt.Errorf("new parser: no grammar")
	}
	if err := g.check(); err != nil {
		return nil, fmt.Errorf("new parser: %w", err)
	}

	return &Parser{
		grammar:  g,
		Filename: DefaultFilename,
		MaxDepth: DefaultMaxDepth,
	}, nil
}

// bailout unwinds the current element after a syntax error was recorded.
type bailout struct{}

type parser struct {
	grammar  *Grammar
	src      string
	idx      *sourceIndex
	tokens   []*Token
	pos      int
	errs     []*SyntaxError
	depth    int
	maxDepth int
}

// Parse parses text. Syntax errors are reported in the result; the returned
// error is a *ParseError when the input cannot be parsed at all.
func (p *Parser) Parse(text string) (result *ParseResult, err error) {
	idx := newSourceIndex(p.Filename, []byte(text))

	if !utf8.ValidString(text) {
		offset := 0
		for offset < len(text) {
			r, size := utf8.DecodeRuneInString(text[offset:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			offset += size
		}
		return nil, &ParseError{Message: "input is not valid UTF-8", Pos: idx.pos(offset)}
	}

	ps := &parser{
		grammar:  p.grammar,
		src:      text,
		idx:      idx,
		tokens:   newTokenizer(text, idx).tokenize(),
		maxDepth: p.MaxDepth,
	}

	defer func() {
		if v := recover(); v != nil {
			if perr, ok := v.(*ParseError); ok {
				result = nil
				err = perr
				return
			}
			panic(v)
		}
	}()

	root := ps.parseRoot()

	return &ParseResult{
		Source:       text,
		Root:         root,
		SyntaxErrors: ps.errs,
	}, nil
}

func (p *parser) parseRoot() *Node {
	root := &Node{
		Class: p.class("Namespace"),
		Range: p.idx.rangeOf(0, len(p.src)),
	}

	for p.peek().Type != TokenEOF {
		if p.at("}") {
			token := p.next()
			p.record(token, "extraneous input %s", token.quoted())
			continue
		}
		p.member(root)
	}

	return root
}

// member parses one element into parent, recovering from syntax errors.
func (p *parser) member(parent *Node) {
	start := p.pos
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(bailout); !ok {
				panic(v)
			}
			p.synchronize(start)
		}
	}()

	if n := p.parseElement(); n != nil {
		parent.Children = append(parent.Children, n)
	}
}

// synchronize skips to the end of the broken element: past the next ';' or
// balanced block, up to the '}' closing the enclosing body, or up to a
// keyword that starts the next element.
func (p *parser) synchronize(start int) {
	depth := 0
	for {
		token := p.peek()
		switch {
		case token.Type == TokenEOF:
			return
		case token.is("{"):
			depth++
			p.pos++
		case token.is("}"):
			if depth == 0 {
				if p.pos == start {
					p.pos++
				}
				return
			}
			depth--
			p.pos++
			if depth == 0 {
				return
			}
		case token.is(";") && depth == 0:
			p.pos++
			return
		case depth == 0 && p.pos != start && p.startsElement(token):
			return
		default:
			p.pos++
		}
	}
}

// startsElement reports whether token can only begin a new element.
func (p *parser) startsElement(token *Token) bool {
	if token.Type == TokenComment {
		return true
	}
	if token.Type != TokenIdent {
		return false
	}
	switch token.Text {
	case "import", "alias", "doc", "comment", "public", "private", "protected":
		return true
	}
	if isPrefix(token.Text) {
		return true
	}
	_, ok := p.grammar.keywords[token.Text]
	return ok
}

func (p *parser) parseElement() *Node {
	first := p.peek()

	var prefixes []string
	if p.at("public") || p.at("private") || p.at("protected") {
		prefixes = append(prefixes, p.next().Text)
	}

	token := p.peek()
	switch {
	case token.Type == TokenComment:
		p.next()
		return p.finish(&Node{Class: p.class("Comment"), Prefixes: prefixes}, first)
	case p.at("import"):
		return p.parseImport(first, prefixes)
	case p.at("alias"):
		return p.parseAlias(first, prefixes)
	case p.at("doc"):
		return p.parseDoc(first)
	case p.at("comment"):
		return p.parseComment(first, prefixes)
	case p.at("@"):
		return p.parseMetadataAnnotation(first, prefixes)
	default:
		return p.parseDeclaration(first, prefixes)
	}
}

func (p *parser) parseImport(first *Token, prefixes []string) *Node {
	p.next()
	n := &Node{Class: p.class("MembershipImport"), Keyword: "import", Prefixes: prefixes}
	p.accept("all")
	n.Name = p.qualifiedName()

	if p.accept("::") {
		switch {
		case p.accept("*"):
			n.Class = p.class("NamespaceImport")
			if p.accept("::") {
				p.expect("**")
			}
		case p.accept("**"):
		default:
			p.fail("mismatched input %s expecting '*' or '**'", p.peek().quoted())
		}
	}

	p.body(n)
	return p.finish(n, first)
}

func (p *parser) parseAlias(first *Token, prefixes []string) *Node {
	p.next()
	n := &Node{Class: p.class("Membership"), Keyword: "alias", Prefixes: prefixes}
	p.identification(n)
	if n.Name == "" {
		p.fail("mismatched input %s expecting name", p.peek().quoted())
	}
	p.expect("for")
	p.qualifiedName()
	p.body(n)
	return p.finish(n, first)
}

func (p *parser) parseDoc(first *Token) *Node {
	p.next()
	n := &Node{Class: p.class("Documentation"), Keyword: "doc"}
	p.identification(n)
	p.locale()
	p.commentText()
	return p.finish(n, first)
}

func (p *parser) parseComment(first *Token, prefixes []string) *Node {
	p.next()
	n := &Node{Class: p.class("Comment"), Keyword: "comment", Prefixes: prefixes}
	p.identification(n)
	if p.accept("about") {
		p.qualifiedName()
		for p.accept(",") {
			p.qualifiedName()
		}
	}
	p.locale()
	p.commentText()
	return p.finish(n, first)
}

func (p *parser) parseMetadataAnnotation(first *Token, prefixes []string) *Node {
	p.next()
	n := &Node{Class: p.class("MetadataUsage"), Keyword: "@", Prefixes: prefixes}
	if p.atName() && p.peekAt(1).is(":") {
		n.Name = p.name()
		p.next()
	}
	p.qualifiedName()
	if p.accept("about") {
		p.qualifiedName()
		for p.accept(",") {
			p.qualifiedName()
		}
	}
	p.body(n)
	return p.finish(n, first)
}

func (p *parser) parseDeclaration(first *Token, prefixes []string) *Node {
	for p.peek().Type == TokenIdent && isPrefix(p.peek().Text) {
		prefixes = append(prefixes, p.next().Text)
	}

	n := &Node{Prefixes: prefixes}
	kw := p.grammar.match(p.tokens[p.pos:])

	switch {
	case kw != nil:
		for range kw.words {
			p.next()
		}
		n.Keyword = strings.Join(kw.words, " ")
		n.Class = kw.class

		switch {
		case kw.entry.Between != "":
			return p.parseBinaryStatement(n, first, kw.entry.Between)
		case kw.entry.Reference:
			return p.parseReferenceStatement(n, first)
		}

		if p.at("def") {
			if !kw.hasDef {
				p.fail("'def' is not allowed after %s", "'"+n.Keyword+"'")
			}
			p.next()
			n.Keyword += " def"
			n.Class = kw.defClass
		}
		if n.Class.Name == "Package" && hasPrefix(prefixes, "library") {
			n.Class = p.class("LibraryPackage")
		}

	case len(prefixes) > 0 && !(len(prefixes) == 1 && isVisibility(prefixes[0])),
		p.atName(), p.atFeatureOperator():
		n.Class = p.class("ReferenceUsage")

	default:
		p.fail("no viable alternative at input %s", p.peek().quoted())
	}

	p.identification(n)
	p.features()
	p.value()

	if isExpressionBodied(n) {
		p.expressionBody(n)
	} else {
		p.body(n)
	}

	return p.finish(n, first)
}

// parseBinaryStatement parses "connect a to b", "bind a = b" and the like.
func (p *parser) parseBinaryStatement(n *Node, first *Token, between string) *Node {
	p.endpoint()
	p.expect(between)
	p.endpoint()
	p.body(n)
	return p.finish(n, first)
}

// parseReferenceStatement parses "perform action a.b;" and the like.
func (p *parser) parseReferenceStatement(n *Node, first *Token) *Node {
	if kw := p.grammar.match(p.tokens[p.pos:]); kw != nil && kw.entry.Between == "" && !kw.entry.Reference {
		for range kw.words {
			p.next()
		}
	}

	n.Name = p.endpoint()
	p.features()
	if p.accept("by") {
		p.endpoint()
	}
	p.value()
	p.body(n)
	return p.finish(n, first)
}

// identification parses an optional short name and an optional name.
func (p *parser) identification(n *Node) {
	if p.at("<") {
		p.next()
		p.name()
		p.expect(">")
	}
	if p.atName() {
		n.Name = p.name()
	}
}

func (p *parser) features() {
	for {
		switch {
		case p.at("["):
			p.multiplicity()
		case p.atFeatureOperator():
			p.next()
			p.featureTargets()
		case p.at("typed"), p.at("defined"):
			p.next()
			p.expect("by")
			p.featureTargets()
		case p.at("ordered"), p.at("nonunique"):
			p.next()
		case p.at("connect"), p.at("from"):
			p.next()
			p.endpoint()
			p.expect("to")
			p.endpoint()
		case p.at("of"):
			p.next()
			p.qualifiedName()
		default:
			return
		}
	}
}

func (p *parser) featureTargets() {
	p.featureTarget()
	for p.accept(",") {
		p.featureTarget()
	}
}

func (p *parser) featureTarget() {
	p.accept("~")
	p.endpoint()
}

// endpoint parses a qualified name followed by an optional feature chain.
func (p *parser) endpoint() string {
	var b strings.Builder
	b.WriteString(p.qualifiedName())
	for p.at(".") && p.peekAt(1).Type != TokenEOF {
		p.next()
		b.WriteByte('.')
		b.WriteString(p.name())
	}
	return b.String()
}

func (p *parser) multiplicity() {
	p.expect("[")
	p.bound()
	if p.accept("..") {
		p.bound()
	}
	p.expect("]")
}

func (p *parser) bound() {
	switch {
	case p.peek().Type == TokenNumber, p.at("*"):
		p.next()
	case p.atName():
		p.qualifiedName()
	default:
		p.fail("mismatched input %s expecting multiplicity bound", p.peek().quoted())
	}
}

func (p *parser) value() {
	switch {
	case p.at("="), p.at(":="):
		p.next()
		p.expression()
	case p.at("default"):
		p.next()
		if !p.accept("=") {
			p.accept(":=")
		}
		p.expression()
	}
}

// body parses ';' or a braced list of members.
func (p *parser) body(n *Node) {
	if p.accept(";") {
		return
	}
	if !p.at("{") {
		p.fail("mismatched input %s expecting ';' or '{'", p.peek().quoted())
	}

	p.next()
	p.enter()
	defer p.leave()

	for !p.at("}") && p.peek().Type != TokenEOF {
		p.member(n)
	}
	p.expect("}")
}

// expressionBody parses a body whose members may be followed by a result
// expression, as in constraint and calculation bodies.
func (p *parser) expressionBody(n *Node) {
	if p.accept(";") {
		return
	}
	if !p.at("{") {
		p.fail("mismatched input %s expecting ';' or '{'", p.peek().quoted())
	}

	p.next()
	p.enter()
	defer p.leave()

	for !p.at("}") && p.peek().Type != TokenEOF {
		if p.try(func() { p.memberStrict(n) }) {
			continue
		}
		p.expression()
		break
	}
	p.expect("}")
}

// memberStrict parses one element without error recovery.
func (p *parser) memberStrict(parent *Node) {
	if n := p.parseElement(); n != nil {
		parent.Children = append(parent.Children, n)
	}
}

// try runs fn and reports whether it parsed without syntax errors. On
// failure the parser state is restored.
func (p *parser) try(fn func()) (ok bool) {
	pos, nerrs, depth := p.pos, len(p.errs), p.depth
	defer func() {
		if v := recover(); v != nil {
			if _, isBailout := v.(bailout); !isBailout {
				panic(v)
			}
			p.pos, p.errs, p.depth = pos, p.errs[:nerrs], depth
			ok = false
		}
	}()

	fn()
	return true
}

func (p *parser) expression() {
	p.unary()
	for p.atBinaryOperator() {
		p.next()
		p.unary()
	}
}

func (p *parser) unary() {
	p.enter()
	defer p.leave()

	if p.at("-") || p.at("+") || p.at("~") || p.at("not") || p.at("!") {
		p.next()
		p.unary()
		return
	}
	p.primary()
	p.postfix()
}

func (p *parser) primary() {
	token := p.peek()
	switch {
	case token.Type == TokenNumber, token.Type == TokenString,
		p.at("true"), p.at("false"), p.at("null"), p.at("*"):
		p.next()
	case p.atName():
		p.qualifiedName()
	case p.at("("):
		p.next()
		if !p.at(")") {
			p.expression()
			for p.accept(",") {
				p.expression()
			}
		}
		p.expect(")")
	default:
		p.fail("no viable alternative at input %s", token.quoted())
	}
}

func (p *parser) postfix() {
	for {
		switch {
		case p.at("."):
			p.next()
			p.name()
		case p.at("("):
			p.next()
			if !p.at(")") {
				p.expression()
				for p.accept(",") {
					p.expression()
				}
			}
			p.expect(")")
		case p.at("["):
			p.next()
			p.expression()
			p.expect("]")
		default:
			return
		}
	}
}

func (p *parser) qualifiedName() string {
	var b strings.Builder
	b.WriteString(p.name())
	for p.at("::") && p.isName(p.peekAt(1)) {
		p.next()
		b.WriteString("::")
		b.WriteString(p.name())
	}
	return b.String()
}

func (p *parser) name() string {
	if !p.atName() {
		p.fail("mismatched input %s expecting name", p.peek().quoted())
	}
	return p.next().Text
}

func (p *parser) locale() {
	if p.accept("locale") {
		if p.peek().Type != TokenString {
			p.fail("mismatched input %s expecting locale string", p.peek().quoted())
		}
		p.next()
	}
}

func (p *parser) commentText() {
	if p.peek().Type != TokenComment {
		p.fail("mismatched input %s expecting comment text", p.peek().quoted())
	}
	p.next()
}

func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(&ParseError{
			Message: fmt.Sprintf("maximum nesting depth of %d exceeded", p.maxDepth),
			Pos:     p.peek().Range.Start,
		})
	}
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) peek() *Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) *Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) next() *Token {
	token := p.tokens[p.pos]
	if token.Type != TokenEOF {
		p.pos++
	}
	return token
}

func (p *parser) at(s string) bool {
	return p.peek().is(s)
}

func (p *parser) accept(s string) bool {
	if p.at(s) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(s string) *Token {
	if !p.at(s) {
		p.fail("mismatched input %s expecting '%s'", p.peek().quoted(), s)
	}
	return p.next()
}

func (p *parser) isName(t *Token) bool {
	switch t.Type {
	case TokenName:
		return true
	case TokenIdent:
		return !p.grammar.reserved(t.Text)
	default:
		return false
	}
}

func (p *parser) atName() bool {
	return p.isName(p.peek())
}

func (p *parser) atFeatureOperator() bool {
	for _, op := range []string{":", ":>", ":>>", "::>", "specializes", "subsets", "redefines", "references", "conjugates"} {
		if p.at(op) {
			return true
		}
	}
	return false
}

var binaryOperators = []string{
	"+", "-", "*", "/", "%", "**", "^", "==", "!=", "===", "!==", "<", ">",
	"<=", ">=", "and", "or", "xor", "implies", "&", "|", "..", "??", "->",
}

func (p *parser) atBinaryOperator() bool {
	for _, op := range binaryOperators {
		if p.at(op) {
			return true
		}
	}
	return false
}

// fail records a syntax error at the current token and abandons the current
// element.
func (p *parser) fail(format string, args ...any) {
	p.record(p.peek(), format, args...)
	panic(bailout{})
}

func (p *parser) record(token *Token, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if token.Type == TokenInvalid {
		message = token.Problem
	}

	p.errs = append(p.errs, &SyntaxError{
		Line:    token.Range.Start.Line,
		Offset:  p.idx.charOffset(token.Range.Start.Byte),
		Text:    token.Text,
		Message: message,
		Range:   token.Range,
	})
}

// finish sets the range of n from first to the last consumed token.
func (p *parser) finish(n *Node, first *Token) *Node {
	end := first.Range.End
	if p.pos > 0 {
		end = p.tokens[p.pos-1].Range.End
	}
	n.Range = hcl.Range{
		Filename: first.Range.Filename,
		Start:    first.Range.Start,
		End:      end,
	}
	return n
}

func (p *parser) class(name string) metamodel.Class {
	c, _ := p.grammar.Class(name)
	return c
}

func isPrefix(word string) bool {
	for _, w := range prefixKeywords {
		if w == word {
			return true
		}
	}
	return false
}

func isVisibility(word string) bool {
	return word == "public" || word == "private" || word == "protected"
}

func hasPrefix(prefixes []string, word string) bool {
	for _, w := range prefixes {
		if w == word {
			return true
		}
	}
	return false
}

func isExpressionBodied(n *Node) bool {
	switch n.Class.Name {
	case "ConstraintUsage", "ConstraintDefinition", "CalculationUsage",
		"CalculationDefinition", "RequirementUsage", "RequirementDefinition",
		"Function", "Predicate", "Expression":
		return true
	}
	return false
}
