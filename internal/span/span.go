// Package span provides source positions and ranges shared by the lexer,
// parser and diagnostics.
package span

import "fmt"

// Position is a location in the input stream.
type Position struct {
	Offset int `json:"offset"` // byte offset from the start of input
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based, counted in runes
}

// Start is the position of the first character of any input.
var Start = Position{Offset: 0, Line: 1, Column: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position just past r, where width is the encoded
// size of r in bytes.
func (p Position) Advance(r rune, width int) Position {
	p.Offset += width
	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// Span is a half-open range [Start, End) of input.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}
