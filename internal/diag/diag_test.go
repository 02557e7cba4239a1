package diag

import (
	"scribbit/internal/span"
	"testing"

	"github.com/nalgeon/be"
)

func at(offset int) span.Span {
	p := span.Position{Offset: offset, Line: 1, Column: offset + 1}
	return span.Span{Start: p, End: p}
}

func TestLine(t *testing.T) {
	d := Errorf(CodeExpectedToken, at(3), "expected '%c' in prototype", ')')
	be.Equal(t, d.Line(), "Error: expected ')' in prototype")
	be.Equal(t, d.String(), "[E2001] error at 1:4: expected ')' in prototype")

	w := Warningf(CodeMalformedNumber, at(0), "malformed number %q", "1.2.3")
	be.Equal(t, w.Line(), `Warning: malformed number "1.2.3"`)
}

func TestMergeOrdersByOffset(t *testing.T) {
	a := []Diagnostic{Errorf("E1", at(5), "a"), Errorf("E2", at(9), "b")}
	b := []Diagnostic{Warningf("W1", at(1), "c"), Warningf("W2", at(5), "d")}

	got := Merge(a, b)
	var codes []string
	for _, d := range got {
		codes = append(codes, d.Code)
	}
	be.Equal(t, codes, []string{"W1", "E1", "W2", "E2"})
	be.Equal(t, len(Errors(got)), 2)
}
