package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"scribbit/internal/ast"
	"scribbit/internal/lexer"
	"scribbit/internal/parser"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

// runSource parses and executes source the way the REPL does: each
// evaluated value and each runtime error becomes one line of output,
// interleaved with what native functions print.
func runSource(source string) (string, error) {
	nodes, diags := parser.New(lexer.NewString(source, "test.scb")).ParseProgram()
	if len(diags) > 0 {
		return "", fmt.Errorf("parse errors: %v", diags)
	}

	var buf bytes.Buffer
	interp := NewInterpreter(&buf)
	for _, node := range nodes {
		res, err := interp.Exec(node)
		if err != nil {
			fmt.Fprintln(&buf, err)
			continue
		}
		if res.Kind == Evaluated {
			fmt.Fprintln(&buf, res)
		}
	}
	return buf.String(), nil
}

func expectOutput(t *testing.T, source, expected string) {
	t.Helper()
	out, err := runSource(source)
	be.Err(t, err, nil)
	be.Equal(t, strings.TrimRight(out, "\n"), strings.TrimRight(expected, "\n"))
}

// execAll executes nodes in order, stopping at the first error, and
// collects the values of evaluated expressions.
func execAll(interp *Interpreter, nodes []ast.TopLevel) ([]float64, error) {
	var values []float64
	for _, node := range nodes {
		res, err := interp.Exec(node)
		if err != nil {
			return values, err
		}
		if res.Kind == Evaluated {
			values = append(values, res.Value)
		}
	}
	return values, nil
}

func execErr(t *testing.T, source string) error {
	t.Helper()
	nodes, diags := parser.New(lexer.NewString(source, "test.scb")).ParseProgram()
	be.Equal(t, len(diags), 0)
	_, err := execAll(NewInterpreter(&bytes.Buffer{}), nodes)
	return err
}

// ---- Tests ----

func TestArithmetic(t *testing.T) {
	expectOutput(t, "1+2*3;", "7")
	expectOutput(t, "(1+2)*3;", "9")
	expectOutput(t, "1-2-3;", "-4")
	expectOutput(t, "0.5*3;", "1.5")
}

func TestLessThan(t *testing.T) {
	expectOutput(t, "1 < 2; 2 < 1; 1 < 1;", "1\n0\n0")
}

func TestDefinitionAndCall(t *testing.T) {
	expectOutput(t, `
def sq(x) x*x;
def sum(a b) a+b;
sum(sq(3), sq(4));
`, "25")
}

func TestRedefinitionReplaces(t *testing.T) {
	expectOutput(t, `
def f() 1;
f();
def f() 2;
f();
`, "1\n2")
}

func TestRecursionWithoutConditionalHitsDepthLimit(t *testing.T) {
	err := execErr(t, "def loop(x) loop(x+1); loop(0);")
	var rerr *Error
	be.True(t, errors.As(err, &rerr))
	be.Err(t, err, "maximum call depth")
}

func TestMaxDepthOption(t *testing.T) {
	nodes, _ := parser.New(lexer.NewString("def a() b(); def b() c(); def c() 1; a();", "t")).ParseProgram()

	_, err := execAll(NewInterpreter(&bytes.Buffer{}, WithMaxDepth(2)), nodes)
	be.Err(t, err, "maximum call depth 2 exceeded")

	values, err := execAll(NewInterpreter(&bytes.Buffer{}, WithMaxDepth(3)), nodes)
	be.Err(t, err, nil)
	be.Equal(t, values, []float64{1})
}

func TestExternBuiltins(t *testing.T) {
	expectOutput(t, `
extern sqrt(x);
extern fabs(x);
sqrt(16) + fabs(0-2);
`, "6")
}

func TestPutchardAndPrintd(t *testing.T) {
	expectOutput(t, `
extern putchard(c);
extern printd(x);
putchard(72) + putchard(105) + putchard(10);
printd(2.5);
`, "Hi\n0\n2.500000\n0")
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"x;", "unknown variable name 'x'"},
		{"nope(1);", "unknown function referenced 'nope'"},
		{"sin(1);", "unknown function referenced 'sin'"},
		{"def f(a) a; f(1, 2);", "incorrect number of arguments passed to 'f': expected 1, got 2"},
		{"extern mystery(); mystery();", "no native implementation for extern 'mystery'"},
		{"extern sin(); sin();", "native function takes 1"},
		{"extern sin(x); sin();", "expected 1, got 0"},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			be.Err(t, execErr(t, test.source), test.want)
		})
	}
}

func TestVariablesAreCallLocal(t *testing.T) {
	be.Err(t, execErr(t, "def f(x) g(); def g() x; f(1);"), "unknown variable name 'x'")
}

func TestDuplicateParamLastWins(t *testing.T) {
	expectOutput(t, "def f(a a) a; f(1, 2);", "2")
}

func TestExecResults(t *testing.T) {
	interp := NewInterpreter(&bytes.Buffer{})
	nodes, _ := parser.New(lexer.NewString("def id(x) x; extern cos(x); id(4);", "t")).ParseProgram()

	var got []string
	for _, n := range nodes {
		res, err := interp.Exec(n)
		be.Err(t, err, nil)
		got = append(got, res.Kind.String()+":"+res.String())
	}
	be.Equal(t, got, []string{"defined:defined id", "declared:extern cos", "evaluated:4"})

	fn, ok := interp.Function("id")
	be.True(t, ok)
	be.Equal(t, ast.SExpr(fn.Body), `(variable "x")`)
}

func TestRuntimeErrorPosition(t *testing.T) {
	err := execErr(t, "\n  y;")
	be.Equal(t, err.Error(), "runtime error at 2:3: unknown variable name 'y'")
}

func TestFormatValue(t *testing.T) {
	be.Equal(t, FormatValue(3), "3")
	a, b := 0.1, 0.2
	be.Equal(t, FormatValue(a+b), "0.30000000000000004")
	be.Equal(t, FormatValue(-0.5), "-0.5")
}
