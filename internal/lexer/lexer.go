// Package lexer implements the lexical analysis (tokenization) for scribbit.
//
// The lexer pulls one character at a time from its source and keeps exactly
// one character of lookahead, so it can sit directly on top of an
// interactive reader.
package lexer

import (
	"bufio"
	"errors"
	"io"
	"scribbit/internal/diag"
	"scribbit/internal/span"
	"scribbit/internal/token"
	"strconv"
	"strings"
	"unicode"
)

const eof rune = -1

// Lexer tokenizes a character stream into a sequence of tokens.
type Lexer struct {
	r        io.RuneReader
	filename string

	last    rune          // pending lookahead character, eof once input is exhausted
	width   int           // encoded size of last
	pos     span.Position // position of last
	started bool

	diags []diag.Diagnostic
}

// New creates a Lexer reading from r. If r is not an io.RuneReader it is
// wrapped in a bufio.Reader.
func New(r io.Reader, filename string) *Lexer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return NewRuneReader(rr, filename)
}

// NewRuneReader creates a Lexer that pulls characters from r one at a
// time. It never reads further ahead than the current token needs.
func NewRuneReader(r io.RuneReader, filename string) *Lexer {
	return &Lexer{
		r:        r,
		filename: filename,
		last:     ' ',
		pos:      span.Start,
	}
}

// NewString creates a Lexer over an in-memory source.
func NewString(source, filename string) *Lexer {
	return New(strings.NewReader(source), filename)
}

// Filename returns the name the lexer was created with.
func (l *Lexer) Filename() string {
	return l.filename
}

// Diagnostics returns the warnings recorded so far. The lexer never
// produces errors; malformed input degrades to a best-effort token.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags
}

// Tokenize scans the entire input and returns all tokens, ending with
// EOF, and any diagnostics.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

// ---- internal helpers ----

// advance replaces the lookahead character with the next one from the
// source. Once the source is exhausted the lookahead stays at eof.
func (l *Lexer) advance() {
	if l.started {
		if l.last == eof {
			return
		}
		l.pos = l.pos.Advance(l.last, l.width)
	}
	l.started = true

	r, size, err := l.r.ReadRune()
	if err != nil {
		// Read errors other than io.EOF are treated as end of input too;
		// the caller owns the source and its error reporting.
		l.last, l.width = eof, 0
		return
	}
	l.last, l.width = r, size
}

func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.pos}
}

func (l *Lexer) skipWhitespace() {
	for l.last != eof && unicode.IsSpace(l.last) {
		l.advance()
	}
}

// skipLineComment discards through end of line or end of input. The
// terminating newline is left as lookahead.
func (l *Lexer) skipLineComment() {
	for l.last != eof && l.last != '\n' && l.last != '\r' {
		l.advance()
	}
}

// skipBlockComment discards through the closing */ or to end of input.
// The lookahead is the opening '*' on entry.
func (l *Lexer) skipBlockComment() {
	l.advance()
	star := false
	for l.last != eof {
		if star && l.last == '/' {
			l.advance()
			return
		}
		star = l.last == '*'
		l.advance()
	}
}

// ---- token reading ----

// Next returns the next token. After the input is exhausted every call
// returns EOF.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	start := l.pos
	ch := l.last

	switch {
	case ch == eof:
		return token.Token{Kind: token.EOF, Span: l.makeSpan(start)}

	case isIdentStart(ch):
		return l.readIdentifier(start)

	case isNumberPart(ch):
		return l.readNumber(start)

	case ch == '/':
		l.advance()
		switch l.last {
		case '/':
			l.skipLineComment()
		case '*':
			l.skipBlockComment()
		default:
			return token.Token{Kind: token.CHAR, Lexeme: "/", Char: '/', Span: l.makeSpan(start)}
		}
		if l.last == eof {
			return token.Token{Kind: token.EOF, Span: l.makeSpan(l.pos)}
		}
		return l.Next()
	}

	l.advance()
	return token.Token{Kind: token.CHAR, Lexeme: string(ch), Char: ch, Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	var sb strings.Builder
	for l.last != eof && isIdentPart(l.last) {
		sb.WriteRune(l.last)
		l.advance()
	}

	lexeme := sb.String()
	return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readNumber reads a run of digits and dots. Malformed runs such as
// "1.2.3" are not rejected: the longest prefix that parses is used and a
// warning is recorded.
func (l *Lexer) readNumber(start span.Position) token.Token {
	var sb strings.Builder
	for l.last != eof && isNumberPart(l.last) {
		sb.WriteRune(l.last)
		l.advance()
	}

	lexeme := sb.String()
	s := l.makeSpan(start)
	value, ok := parseNumber(lexeme)
	if !ok {
		l.diags = append(l.diags, diag.Warningf(diag.CodeMalformedNumber, s,
			"malformed number literal %q, using %s", lexeme, strconv.FormatFloat(value, 'g', -1, 64)))
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Value: value, Span: s}
}

// parseNumber converts a digit/dot run to a float64. ok is false when the
// literal was not well formed and value came from its longest valid prefix
// (or is 0 when no prefix parses).
func parseNumber(lit string) (value float64, ok bool) {
	if v, err := strconv.ParseFloat(lit, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return v, true
	}
	for i := len(lit) - 1; i > 0; i-- {
		if v, err := strconv.ParseFloat(lit[:i], 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return v, false
		}
	}
	return 0, false
}

// ---- character classification ----

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberPart(ch rune) bool {
	return isDigit(ch) || ch == '.'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
