// Package ast defines the abstract syntax tree for scribbit.
//
// The node set is closed: expressions are NumberExpr, VariableExpr,
// BinaryExpr and CallExpr; declarations are Prototype and Function. Every
// parent exclusively owns its children and nodes are never mutated after
// the parser hands them out.
package ast

import "scribbit/internal/span"

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// TopLevel is a complete statement handed back to the driver: a
// *Function (definition or wrapped top-level expression) or a *Prototype
// (extern declaration).
type TopLevel interface {
	Node
	topLevelNode()
}

// ============================================================
// Base types
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// ============================================================
// Expressions
// ============================================================

// NumberExpr is a numeric literal.
type NumberExpr struct {
	ExprBase
	Value float64
}

// VariableExpr references a variable by name.
type VariableExpr struct {
	ExprBase
	Name string
}

// BinaryExpr is a binary operation: a + b, x < y.
type BinaryExpr struct {
	ExprBase
	Op    rune
	Left  Expr
	Right Expr
}

// CallExpr is a function call: f(a, b).
type CallExpr struct {
	ExprBase
	Callee string
	Args   []Expr
}

// ============================================================
// Declarations
// ============================================================

// AnonName is the prototype name reserved for top-level expressions.
const AnonName = ""

// Prototype is a function signature: its name and parameter names.
// Parameter names are not checked for uniqueness.
type Prototype struct {
	NodeBase
	Name   string
	Params []string
}

func (*Prototype) topLevelNode() {}

// IsAnonymous reports whether p wraps a top-level expression.
func (p *Prototype) IsAnonymous() bool { return p.Name == AnonName }

// Function is a function definition. The body is a single expression.
type Function struct {
	NodeBase
	Proto *Prototype
	Body  Expr
}

func (*Function) topLevelNode() {}

// IsAnonymous reports whether f is a wrapped top-level expression.
func (f *Function) IsAnonymous() bool { return f.Proto.IsAnonymous() }
