package main

import (
	"fmt"
	"os"

	"scribbit/internal/ast"
	"scribbit/internal/config"
	"scribbit/internal/diag"
	"scribbit/internal/lexer"
	"scribbit/internal/parser"

	"github.com/spf13/cobra"
)

var (
	tokensJSON  bool
	parseFormat string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Tokenize a file and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and print the tree",
	Long: `Parses a file, recovering from each error by skipping one token, and
prints every statement that parsed.

Formats:
  sexpr  one S-expression per statement (default)
  json   {"ast": [...], "diagnostics": [...]}
  yaml   the same document as YAML`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse and evaluate a file",
	Long: `Parses a file statement by statement and evaluates each one. Values of
top-level expressions are printed to stdout, diagnostics and runtime
errors to stderr. The exit status is non-zero if anything failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(runCmd)

	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "print tokens as JSON")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", config.FormatSExpr, "output format: sexpr, json or yaml")
}

func openSource(path string) (*lexer.Lexer, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return lexer.New(f, path), func() { f.Close() }, nil
}

// ---- tokens command ----

func runTokens(cmd *cobra.Command, args []string) error {
	lex, closeFn, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeFn()

	tokens, diags := lex.Tokenize()
	out := cmd.OutOrStdout()
	if tokensJSON {
		err = printTokensJSON(out, tokens, diags)
	} else {
		printTokensText(out, tokens)
		printDiagsText(cmd.ErrOrStderr(), newStyles(cfg.Color), diags)
	}
	if err != nil {
		return err
	}
	if len(diag.Errors(diags)) > 0 {
		return errReported
	}
	return nil
}

// ---- parse command ----

func runParse(cmd *cobra.Command, args []string) error {
	switch parseFormat {
	case config.FormatSExpr, config.FormatJSON, config.FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want sexpr, json or yaml)", parseFormat)
	}

	lex, closeFn, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeFn()

	nodes, diags := parser.New(lex, parser.WithLogger(logger)).ParseProgram()
	out := cmd.OutOrStdout()

	switch parseFormat {
	case config.FormatSExpr:
		for _, n := range nodes {
			fmt.Fprintln(out, ast.SExpr(n))
		}
		printDiagsText(cmd.ErrOrStderr(), newStyles(cfg.Color), diags)
	case config.FormatJSON:
		err = printJSON(out, programDocument(nodes, diags))
	case config.FormatYAML:
		err = printYAML(out, programDocument(nodes, diags))
	}
	if err != nil {
		return err
	}
	if len(diag.Errors(diags)) > 0 {
		return errReported
	}
	return nil
}

// ---- run command ----

func runRun(cmd *cobra.Command, args []string) error {
	lex, closeFn, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeFn()

	d := newDriver(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
	d.format = ""
	d.enableEval(cfg.MaxCallDepth)
	if d.run(lex) > 0 {
		return errReported
	}
	return nil
}
