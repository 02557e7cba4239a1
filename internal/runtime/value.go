// Package runtime implements a tree-walking evaluator for parsed scribbit
// statements. Every value is a float64.
package runtime

import (
	"fmt"
	"strconv"
)

// ResultKind says what executing a top-level statement did.
type ResultKind int

const (
	Defined   ResultKind = iota // a named function was stored
	Declared                    // an extern was bound
	Evaluated                   // an anonymous expression produced Value
)

func (k ResultKind) String() string {
	switch k {
	case Defined:
		return "defined"
	case Declared:
		return "declared"
	case Evaluated:
		return "evaluated"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result describes the effect of one executed statement.
type Result struct {
	Kind  ResultKind
	Name  string  // function or extern name; empty for Evaluated
	Value float64 // set for Evaluated
}

func (r Result) String() string {
	switch r.Kind {
	case Defined:
		return "defined " + r.Name
	case Declared:
		return "extern " + r.Name
	default:
		return FormatValue(r.Value)
	}
}

// FormatValue renders v in its shortest exact form: 3, 0.5, 1e+21.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
