// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"scribbit/internal/span"
	"strconv"
)

// Kind represents the type of a token.
type Kind int

const (
	EOF Kind = iota

	// Keywords
	DEF
	EXTERN

	// Literals
	IDENT  // identifiers: x, foo, fib2
	NUMBER // numeric literals: 1, 3.14, .5

	// CHAR is any other single character, including ( ) , ; and the
	// binary operators.
	CHAR
)

var kindNames = map[Kind]string{
	EOF:    "EOF",
	DEF:    "def",
	EXTERN: "extern",
	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	CHAR:   "CHAR",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k == DEF || k == EXTERN
}

var keywords = map[string]Kind{
	"def":    DEF,
	"extern": EXTERN,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token is a lexical token with its kind, text, decoded payload and
// source location. Value is set for NUMBER, Char for CHAR.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Value  float64   `json:"value,omitempty"`
	Char   rune      `json:"char,omitempty"`
	Span   span.Span `json:"span"`
}

// Is reports whether t is the single-character token ch.
func (t Token) Is(ch rune) bool {
	return t.Kind == CHAR && t.Char == ch
}

// Describe returns a short form of t suitable for diagnostics.
func (t Token) Describe() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Kind.IsKeyword():
		return "keyword '" + t.Kind.String() + "'"
	case t.Kind == IDENT:
		return "identifier " + strconv.Quote(t.Lexeme)
	case t.Kind == NUMBER:
		return "number " + t.Lexeme
	case t.Kind == CHAR:
		return strconv.QuoteRune(t.Char)
	default:
		return t.Kind.String()
	}
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
