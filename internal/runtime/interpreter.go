package runtime

import (
	"fmt"
	"io"
	"scribbit/internal/ast"
	"scribbit/internal/span"
)

// DefaultMaxDepth bounds nested calls so runaway recursion ends in an
// error instead of a stack overflow.
const DefaultMaxDepth = 10000

// ============================================================
// Runtime error
// ============================================================

// Error represents an error during evaluation.
type Error struct {
	Message string
	Span    span.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

func runtimeErr(s span.Span, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: s}
}

// ============================================================
// Interpreter
// ============================================================

// Interpreter evaluates top-level statements one at a time. Definitions
// persist across calls to Exec, so it can back an interactive session.
type Interpreter struct {
	functions map[string]*ast.Function
	externs   map[string]*ast.Prototype
	builtins  map[string]*Builtin

	maxDepth int
	depth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxDepth sets the call depth limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

// NewInterpreter creates an interpreter whose native functions write to
// output.
func NewInterpreter(output io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{
		functions: make(map[string]*ast.Function),
		externs:   make(map[string]*ast.Prototype),
		builtins:  NewBuiltins(output),
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Exec runs one top-level statement. A named definition replaces any
// earlier one with the same name; an extern declares that calls to its
// name go to the native function of that name; an anonymous expression
// is evaluated.
func (i *Interpreter) Exec(node ast.TopLevel) (Result, error) {
	switch n := node.(type) {
	case *ast.Prototype:
		i.externs[n.Name] = n
		return Result{Kind: Declared, Name: n.Name}, nil

	case *ast.Function:
		if n.IsAnonymous() {
			i.depth = 0
			v, err := i.evalExpr(n.Body, nil)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: Evaluated, Value: v}, nil
		}
		i.functions[n.Proto.Name] = n
		return Result{Kind: Defined, Name: n.Proto.Name}, nil

	default:
		return Result{}, fmt.Errorf("unexpected node type: %T", node)
	}
}

// Function returns the stored definition named name.
func (i *Interpreter) Function(name string) (*ast.Function, bool) {
	fn, ok := i.functions[name]
	return fn, ok
}

// ============================================================
// Expression evaluation
// ============================================================

func (i *Interpreter) evalExpr(expr ast.Expr, env *Environment) (float64, error) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return e.Value, nil

	case *ast.VariableExpr:
		v, ok := env.Get(e.Name)
		if !ok {
			return 0, runtimeErr(e.Span, "unknown variable name '%s'", e.Name)
		}
		return v, nil

	case *ast.BinaryExpr:
		return i.evalBinary(e, env)

	case *ast.CallExpr:
		return i.evalCall(e, env)

	default:
		return 0, fmt.Errorf("unexpected expression type: %T", expr)
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr, env *Environment) (float64, error) {
	l, err := i.evalExpr(e.Left, env)
	if err != nil {
		return 0, err
	}
	r, err := i.evalExpr(e.Right, env)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '<':
		if l < r {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, runtimeErr(e.Span, "invalid binary operator '%c'", e.Op)
	}
}

func (i *Interpreter) evalCall(e *ast.CallExpr, env *Environment) (float64, error) {
	args := make([]float64, len(e.Args))
	for idx, arg := range e.Args {
		v, err := i.evalExpr(arg, env)
		if err != nil {
			return 0, err
		}
		args[idx] = v
	}

	if fn, ok := i.functions[e.Callee]; ok {
		if len(args) != len(fn.Proto.Params) {
			return 0, runtimeErr(e.Span, "incorrect number of arguments passed to '%s': expected %d, got %d",
				e.Callee, len(fn.Proto.Params), len(args))
		}
		if i.depth >= i.maxDepth {
			return 0, runtimeErr(e.Span, "maximum call depth %d exceeded", i.maxDepth)
		}
		i.depth++
		defer func() { i.depth-- }()
		return i.evalExpr(fn.Body, NewEnvironment(fn.Proto.Params, args))
	}

	proto, ok := i.externs[e.Callee]
	if !ok {
		return 0, runtimeErr(e.Span, "unknown function referenced '%s'", e.Callee)
	}
	if len(args) != len(proto.Params) {
		return 0, runtimeErr(e.Span, "incorrect number of arguments passed to '%s': expected %d, got %d",
			e.Callee, len(proto.Params), len(args))
	}
	native, ok := i.builtins[e.Callee]
	if !ok {
		return 0, runtimeErr(e.Span, "no native implementation for extern '%s'", e.Callee)
	}
	if native.Arity != len(args) {
		return 0, runtimeErr(e.Span, "extern '%s' declared with %d parameters, native function takes %d",
			e.Callee, len(args), native.Arity)
	}
	return native.Fn(args), nil
}
