package runtime

import (
	"fmt"
	"io"
	"math"
)

// BuiltinFn is the Go signature for native functions.
type BuiltinFn func(args []float64) float64

// Builtin is a native function an extern declaration can bind to.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFn
}

func unary(name string, fn func(float64) float64) *Builtin {
	return &Builtin{Name: name, Arity: 1, Fn: func(args []float64) float64 { return fn(args[0]) }}
}

// NewBuiltins returns the native library. putchard and printd write to w.
func NewBuiltins(w io.Writer) map[string]*Builtin {
	lib := map[string]*Builtin{}
	for _, b := range []*Builtin{
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("atan", math.Atan),
		unary("exp", math.Exp),
		unary("log", math.Log),
		unary("sqrt", math.Sqrt),
		unary("fabs", math.Abs),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),
		{Name: "pow", Arity: 2, Fn: func(args []float64) float64 { return math.Pow(args[0], args[1]) }},
		unary("putchard", func(x float64) float64 {
			fmt.Fprintf(w, "%c", rune(x))
			return 0
		}),
		unary("printd", func(x float64) float64 {
			fmt.Fprintf(w, "%f\n", x)
			return 0
		}),
	} {
		lib[b.Name] = b
	}
	return lib
}
