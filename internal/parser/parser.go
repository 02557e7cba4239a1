// Package parser implements the syntax analysis for scribbit.
// It uses recursive descent for primaries and declarations and precedence
// climbing for binary operator chains.
//
// The parser pulls tokens from the lexer on demand and keeps a single
// current token. Every parse operation either returns a fully formed node
// or records exactly one diagnostic and returns an *Error; recovery
// (skipping one token) is left to the caller, see Next and Skip.
package parser

import (
	"errors"
	"io"
	"log/slog"
	"scribbit/internal/ast"
	"scribbit/internal/diag"
	"scribbit/internal/lexer"
	"scribbit/internal/span"
	"scribbit/internal/token"
)

// Error is a grammar violation. It carries the diagnostic that was
// recorded when the violation was detected.
type Error struct {
	Diag diag.Diagnostic
}

func (e *Error) Error() string {
	return e.Diag.Message
}

// Parser performs syntax analysis on a token stream.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	primed bool
	prev   span.Position // end of the last consumed token

	diags  []diag.Diagnostic
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser reading from lex. No token is pulled until the
// first parse call, so constructing a parser over an interactive source
// never blocks.
func New(lex *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		lex:    lex,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "parser"), slog.String("file", lex.Filename()))
	return p
}

// Diagnostics returns the grammar violations recorded so far.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags
}

// Current returns the current token.
func (p *Parser) Current() token.Token {
	p.prime()
	return p.cur
}

// ---- navigation helpers ----

func (p *Parser) prime() {
	if !p.primed {
		p.primed = true
		p.cur = p.lex.Next()
	}
}

func (p *Parser) advance() token.Token {
	tok := p.cur
	p.prev = tok.Span.End
	p.cur = p.lex.Next()
	return tok
}

func (p *Parser) check(ch rune) bool {
	return p.cur.Is(ch)
}

func (p *Parser) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: p.prev}
}

// fail records one diagnostic at the current token and returns it as an
// *Error.
func (p *Parser) fail(code, msg string) error {
	return p.failHint(code, msg, "")
}

func (p *Parser) failHint(code, msg, hint string) error {
	d := diag.Errorf(code, p.cur.Span, "%s", msg)
	d.Hint = hint
	p.diags = append(p.diags, d)
	p.logger.Debug("grammar violation",
		slog.String("code", code),
		slog.String("message", msg),
		slog.String("at", p.cur.Span.Start.String()),
		slog.String("token", p.cur.Describe()))
	return &Error{Diag: d}
}

// curPrecedence returns the precedence of the current token, or
// NoPrecedence if it is not a binary operator.
func (p *Parser) curPrecedence() int {
	if p.cur.Kind != token.CHAR || !IsBinaryOp(p.cur.Char) {
		return NoPrecedence
	}
	return Precedence(p.cur.Char)
}

// ============================================================
// Top-level driving and recovery
// ============================================================

// Next parses the next top-level statement: a definition, an extern
// declaration or a bare expression. Bare ';' separators are skipped. It
// returns io.EOF at end of input.
//
// On a grammar violation Next returns an *Error and leaves the offending
// token current; call Skip before calling Next again.
func (p *Parser) Next() (ast.TopLevel, error) {
	p.prime()
	for p.check(';') {
		p.advance()
	}

	switch p.cur.Kind {
	case token.EOF:
		return nil, io.EOF
	case token.DEF:
		fn, err := p.ParseDefinition()
		if err != nil {
			return nil, err
		}
		p.logger.Debug("parsed definition", slog.String("name", fn.Proto.Name))
		return fn, nil
	case token.EXTERN:
		proto, err := p.ParseExtern()
		if err != nil {
			return nil, err
		}
		p.logger.Debug("parsed extern", slog.String("name", proto.Name))
		return proto, nil
	default:
		fn, err := p.ParseTopLevelExpr()
		if err != nil {
			return nil, err
		}
		p.logger.Debug("parsed top-level expression")
		return fn, nil
	}
}

// Skip discards exactly one token. It is the recovery step after Next
// reports an error; at end of input it is a no-op.
func (p *Parser) Skip() {
	p.prime()
	if p.cur.Kind == token.EOF {
		return
	}
	tok := p.advance()
	p.logger.Debug("recovery skipped token", slog.String("token", tok.Describe()))
}

// ParseProgram parses statements until end of input, recovering from
// each grammar violation by skipping one token. It returns the parsed
// nodes together with the lexer's and parser's diagnostics.
func (p *Parser) ParseProgram() ([]ast.TopLevel, []diag.Diagnostic) {
	var nodes []ast.TopLevel
	for {
		node, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.Skip()
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, diag.Merge(p.lex.Diagnostics(), p.diags)
}

// ============================================================
// Declarations
// ============================================================

// ParseDefinition parses: 'def' prototype expression
func (p *Parser) ParseDefinition() (*ast.Function, error) {
	p.prime()
	if p.cur.Kind != token.DEF {
		return nil, p.fail(diag.CodeExpectedToken, "expected 'def'")
	}
	start := p.advance() // consume 'def'

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		NodeBase: ast.NodeBase{Span: p.makeSpan(start.Span.Start)},
		Proto:    proto,
		Body:     body,
	}, nil
}

// ParseExtern parses: 'extern' prototype
func (p *Parser) ParseExtern() (*ast.Prototype, error) {
	p.prime()
	if p.cur.Kind != token.EXTERN {
		return nil, p.fail(diag.CodeExpectedToken, "expected 'extern'")
	}
	start := p.advance() // consume 'extern'

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}
	proto.Span = p.makeSpan(start.Span.Start)
	return proto, nil
}

// ParseTopLevelExpr parses an expression and wraps it in an anonymous
// zero-parameter function.
func (p *Parser) ParseTopLevelExpr() (*ast.Function, error) {
	p.prime()
	start := p.cur.Span.Start

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	s := p.makeSpan(start)
	return &ast.Function{
		NodeBase: ast.NodeBase{Span: s},
		Proto: &ast.Prototype{
			NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: start}},
			Name:     ast.AnonName,
		},
		Body: body,
	}, nil
}

// ParsePrototype parses: IDENT '(' IDENT* ')'
func (p *Parser) ParsePrototype() (*ast.Prototype, error) {
	p.prime()
	if p.cur.Kind != token.IDENT {
		return nil, p.fail(diag.CodeExpectedToken, "expected function name in prototype")
	}
	nameTok := p.advance()

	if !p.check('(') {
		return nil, p.fail(diag.CodeExpectedToken, "expected '(' in prototype")
	}
	p.advance() // consume '('

	var params []string
	for p.cur.Kind == token.IDENT {
		params = append(params, p.advance().Lexeme)
	}

	if !p.check(')') {
		return nil, p.failHint(diag.CodeExpectedToken, "expected ')' in prototype",
			"parameters are identifiers separated by spaces, without ','")
	}
	p.advance() // consume ')'

	return &ast.Prototype{
		NodeBase: ast.NodeBase{Span: p.makeSpan(nameTok.Span.Start)},
		Name:     nameTok.Lexeme,
		Params:   params,
	}, nil
}

// ============================================================
// Expression parsing
// ============================================================

// ParseExpression parses: primary (binop primary)*
func (p *Parser) ParseExpression() (ast.Expr, error) {
	p.prime()
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS folds operators with precedence >= minPrec onto lhs.
// When the operator after the right operand binds tighter than the one
// just consumed, that suffix is resolved into the right operand first.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expr) (ast.Expr, error) {
	for {
		prec := p.curPrecedence()
		if prec < minPrec {
			return lhs, nil
		}
		op := p.advance().Char

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		if prec < p.curPrecedence() {
			rhs, err = p.parseBinOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.BinaryExpr{
			ExprBase: makeExprBase(span.Join(lhs.GetSpan(), rhs.GetSpan())),
			Op:       op,
			Left:     lhs,
			Right:    rhs,
		}
	}
}

// ParsePrimary parses a number, an identifier expression or a
// parenthesized expression.
func (p *Parser) ParsePrimary() (ast.Expr, error) {
	p.prime()
	switch {
	case p.cur.Kind == token.IDENT:
		return p.parseIdentifierExpr()
	case p.cur.Kind == token.NUMBER:
		tok := p.advance()
		return &ast.NumberExpr{ExprBase: makeExprBase(tok.Span), Value: tok.Value}, nil
	case p.check('('):
		return p.parseParenExpr()
	default:
		return nil, p.fail(diag.CodeUnknownToken, "unknown token when expecting an expression")
	}
}

// parseParenExpr parses: '(' expression ')'. The parentheses do not
// produce a node.
func (p *Parser) parseParenExpr() (ast.Expr, error) {
	p.advance() // consume '('
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(')') {
		return nil, p.fail(diag.CodeExpectedToken, "expected ')'")
	}
	p.advance() // consume ')'
	return expr, nil
}

// parseIdentifierExpr parses: IDENT | IDENT '(' (expression (',' expression)*)? ')'
func (p *Parser) parseIdentifierExpr() (ast.Expr, error) {
	nameTok := p.advance()

	if !p.check('(') {
		return &ast.VariableExpr{ExprBase: makeExprBase(nameTok.Span), Name: nameTok.Lexeme}, nil
	}
	p.advance() // consume '('

	var args []ast.Expr
	if !p.check(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.check(')') {
				break
			}
			if !p.check(',') {
				return nil, p.failHint(diag.CodeBadArgumentList, "expected ')' or ',' in argument list",
					"separate call arguments with ','")
			}
			p.advance() // consume ','
		}
	}
	p.advance() // consume ')'

	return &ast.CallExpr{
		ExprBase: makeExprBase(p.makeSpan(nameTok.Span.Start)),
		Callee:   nameTok.Lexeme,
		Args:     args,
	}, nil
}

// ============================================================
// Span helpers
// ============================================================

func makeExprBase(s span.Span) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: s}}
}
