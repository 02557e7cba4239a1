package span

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestAdvance(t *testing.T) {
	p := Start.Advance('a', 1)
	be.Equal(t, p, Position{Offset: 1, Line: 1, Column: 2})

	p = p.Advance('\n', 1)
	be.Equal(t, p, Position{Offset: 2, Line: 2, Column: 1})

	p = p.Advance('é', 2)
	be.Equal(t, p, Position{Offset: 4, Line: 2, Column: 2})
}

func TestJoin(t *testing.T) {
	a := Span{Start: Position{Offset: 4, Line: 1, Column: 5}, End: Position{Offset: 6, Line: 1, Column: 7}}
	b := Span{Start: Position{Offset: 0, Line: 1, Column: 1}, End: Position{Offset: 2, Line: 1, Column: 3}}

	j := Join(a, b)
	be.Equal(t, j.Start, b.Start)
	be.Equal(t, j.End, a.End)
	be.Equal(t, j.Len(), 6)
	be.Equal(t, j.String(), "1:1..1:7")
}
