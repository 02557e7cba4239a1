package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"scribbit/internal/ast"
	"scribbit/internal/config"
	"scribbit/internal/diag"
	"scribbit/internal/lexer"
	"scribbit/internal/parser"
	"scribbit/internal/runtime"
)

// driver pulls statements from a parser one at a time, reports each one
// in the configured format and optionally evaluates it. It backs the stdin
// driver, the run command and the REPL.
type driver struct {
	out    io.Writer // parsed trees and values
	errOut io.Writer // summaries, diagnostics and runtime errors
	format string    // config.Format*; "" reports nothing
	styles styles
	interp *runtime.Interpreter // nil disables evaluation
	logger *slog.Logger

	// afterStatement runs once each statement has been handled, whether
	// it parsed or not.
	afterStatement func()

	failures int
}

func newDriver(out, errOut io.Writer, cfg *config.Config, logger *slog.Logger) *driver {
	d := &driver{
		out:    out,
		errOut: errOut,
		format: cfg.Format,
		styles: newStyles(cfg.Color),
		logger: logger,
	}
	if cfg.Eval {
		d.enableEval(cfg.MaxCallDepth)
	}
	return d
}

func (d *driver) enableEval(maxDepth int) {
	d.interp = runtime.NewInterpreter(d.out, runtime.WithMaxDepth(maxDepth))
}

// run handles statements until end of input. Each grammar violation is
// reported and recovered from by skipping one token. It returns the number
// of errors reported.
func (d *driver) run(lex *lexer.Lexer) int {
	p := parser.New(lex, parser.WithLogger(d.logger))

	seen := 0
	flushLexer := func() {
		diags := lex.Diagnostics()
		for ; seen < len(diags); seen++ {
			d.diagnostic(diags[seen])
		}
	}

	for {
		node, err := p.Next()
		flushLexer()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *parser.Error
			if errors.As(err, &perr) {
				d.diagnostic(perr.Diag)
			} else {
				d.failures++
				fmt.Fprintln(d.errOut, d.styles.err.Render("Error: "+err.Error()))
			}
			p.Skip()
		} else {
			d.statement(node)
		}
		if d.afterStatement != nil {
			d.afterStatement()
		}
	}
	return d.failures
}

func (d *driver) diagnostic(dg diag.Diagnostic) {
	if dg.Severity == diag.Error {
		d.failures++
		fmt.Fprintln(d.errOut, d.styles.err.Render(dg.Line()))
		return
	}
	fmt.Fprintln(d.errOut, d.styles.warn.Render(dg.Line()))
}

func (d *driver) statement(node ast.TopLevel) {
	if err := d.report(node); err != nil {
		d.failures++
		fmt.Fprintln(d.errOut, d.styles.err.Render("Error: "+err.Error()))
	}
	if d.interp == nil {
		return
	}

	res, err := d.interp.Exec(node)
	if err != nil {
		d.failures++
		fmt.Fprintln(d.errOut, d.styles.err.Render(err.Error()))
		return
	}
	if res.Kind == runtime.Evaluated {
		fmt.Fprintln(d.out, d.styles.value.Render(res.String()))
	}
}

func (d *driver) report(node ast.TopLevel) error {
	switch d.format {
	case "":
		return nil
	case config.FormatSummary:
		fmt.Fprintln(d.errOut, d.styles.muted.Render(summary(node)))
		return nil
	case config.FormatSExpr:
		_, err := fmt.Fprintln(d.out, ast.SExpr(node))
		return err
	case config.FormatJSON:
		return printJSON(d.out, ast.NodeToMap(node))
	case config.FormatYAML:
		if _, err := fmt.Fprintln(d.out, "---"); err != nil {
			return err
		}
		return printYAML(d.out, ast.NodeToMap(node))
	default:
		return fmt.Errorf("unknown format %q", d.format)
	}
}

// summary names the kind of statement that was parsed.
func summary(node ast.TopLevel) string {
	switch n := node.(type) {
	case *ast.Function:
		if n.IsAnonymous() {
			return "Parsed a top-level expr"
		}
		return "Parsed a function definition."
	case *ast.Prototype:
		return "Parsed an extern"
	default:
		return fmt.Sprintf("Parsed %T", node)
	}
}
