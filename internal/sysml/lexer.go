package sysml

import (
	"strings"
	"unicode/utf8"
)

// Symbols ordered so that longer spellings are tried first.
var symbols = []string{
	":>>", "::>", "===", "!==",
	"::", ":>", ":=", "..", "**", "==", "!=", "<=", ">=", "->", "=>",
	";", "{", "}", "[", "]", "(", ")", ",", ".", ":", "=", "~", "*", "+",
	"-", "/", "<", ">", "#", "@", "%", "!", "?", "&", "|", "^", "$",
}

type tokenizer struct {
	data  string
	idx   *sourceIndex
	start int
	pos   int
}

func newTokenizer(data string, idx *sourceIndex) *tokenizer {
	return &tokenizer{data: data, idx: idx}
}

// tokenize returns every token of the input followed by a TokenEOF token.
func (t *tokenizer) tokenize() []*Token {
	var tokens []*Token
	for {
		token := t.readToken()
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			return tokens
		}
	}
}

func (t *tokenizer) readToken() *Token {
	if token := t.skipTrivia(); token != nil {
		return token
	}

	t.start = t.pos
	if t.pos >= len(t.data) {
		return t.token(TokenEOF)
	}

	c := t.data[t.pos]
	switch {
	case isIdentStart(c):
		for t.pos < len(t.data) && isIdentPart(t.data[t.pos]) {
			t.pos++
		}
		return t.token(TokenIdent)

	case isDigit(c):
		return t.readNumber()

	case c == '\'':
		return t.readQuoted('\'', TokenName, "unterminated unrestricted name")

	case c == '"':
		return t.readQuoted('"', TokenString, "unterminated string")

	case c == '/' && strings.HasPrefix(t.data[t.pos:], "/*"):
		end := strings.Index(t.data[t.pos+2:], "*/")
		if end < 0 {
			t.pos = len(t.data)
			return t.invalid("unterminated comment")
		}
		t.pos += 2 + end + 2
		return t.token(TokenComment)
	}

	for _, sym := range symbols {
		if strings.HasPrefix(t.data[t.pos:], sym) {
			t.pos += len(sym)
			return t.token(TokenSymbol)
		}
	}

	_, size := utf8.DecodeRuneInString(t.data[t.pos:])
	t.pos += size
	return t.invalid("unexpected character " + t.data[t.start:t.pos])
}

// byteOrderMark is accepted only at the very start of a document.
const byteOrderMark = "\uFEFF"

// skipTrivia skips whitespace and notes. It returns an invalid token for an
// unterminated multi-line note.
func (t *tokenizer) skipTrivia() *Token {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
			t.pos++

		case t.pos == 0 && strings.HasPrefix(t.data, byteOrderMark):
			t.pos += len(byteOrderMark)

		case strings.HasPrefix(t.data[t.pos:], "//*"):
			t.start = t.pos
			end := strings.Index(t.data[t.pos+3:], "*/")
			if end < 0 {
				t.pos = len(t.data)
				return t.invalid("unterminated note")
			}
			t.pos += 3 + end + 2

		case strings.HasPrefix(t.data[t.pos:], "//"):
			end := strings.IndexByte(t.data[t.pos:], '\n')
			if end < 0 {
				t.pos = len(t.data)
			} else {
				t.pos += end + 1
			}

		default:
			return nil
		}
	}
	return nil
}

func (t *tokenizer) readNumber() *Token {
	for t.pos < len(t.data) && isDigit(t.data[t.pos]) {
		t.pos++
	}

	// A dot only continues the number when a digit follows: "1..2" is a
	// range, not a malformed real.
	if t.pos+1 < len(t.data) && t.data[t.pos] == '.' && isDigit(t.data[t.pos+1]) {
		t.pos++
		for t.pos < len(t.data) && isDigit(t.data[t.pos]) {
			t.pos++
		}
	}

	if t.pos < len(t.data) && (t.data[t.pos] == 'e' || t.data[t.pos] == 'E') {
		p := t.pos + 1
		if p < len(t.data) && (t.data[p] == '+' || t.data[p] == '-') {
			p++
		}
		if p < len(t.data) && isDigit(t.data[p]) {
			t.pos = p
			for t.pos < len(t.data) && isDigit(t.data[t.pos]) {
				t.pos++
			}
		}
	}

	return t.token(TokenNumber)
}

func (t *tokenizer) readQuoted(quote byte, typ TokenType, problem string) *Token {
	t.pos++
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case c == '\\' && t.pos+1 < len(t.data):
			t.pos += 2
		case c == quote:
			t.pos++
			return t.token(typ)
		case c == '\n':
			return t.invalid(problem)
		default:
			t.pos++
		}
	}
	return t.invalid(problem)
}

func (t *tokenizer) token(typ TokenType) *Token {
	return &Token{
		Type:  typ,
		Text:  t.data[t.start:t.pos],
		Range: t.idx.rangeOf(t.start, t.pos),
	}
}

func (t *tokenizer) invalid(problem string) *Token {
	token := t.token(TokenInvalid)
	token.Problem = problem
	return token
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
