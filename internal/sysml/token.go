package sysml

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenName
	TokenString
	TokenNumber
	TokenSymbol
	TokenComment
	TokenInvalid
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenName:
		return "unrestricted name"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenSymbol:
		return "symbol"
	case TokenComment:
		return "comment"
	case TokenInvalid:
		return "invalid token"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

type Token struct {
	Type TokenType
	// Text is the exact source text of the token.
	Text  string
	Range hcl.Range
	// Problem describes why a TokenInvalid token could not be lexed.
	Problem string
}

// is reports whether the token is the given keyword or symbol.
func (t *Token) is(s string) bool {
	return (t.Type == TokenIdent || t.Type == TokenSymbol) && t.Text == s
}

// quoted renders the token the way syntax error messages refer to it.
func (t *Token) quoted() string {
	if t.Type == TokenEOF {
		return "'<EOF>'"
	}
	return "'" + t.Text + "'"
}
