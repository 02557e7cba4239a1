// Command scribbit is the CLI entry point for the scribbit toolchain.
//
// Usage:
//
//	scribbit                          Parse stdin, or start the REPL on a terminal
//	scribbit tokens <file> [--json]   Print tokens
//	scribbit parse  <file>            Print the parsed tree (sexpr, json or yaml)
//	scribbit run    <file>            Parse and evaluate a source file
//	scribbit repl                     Start interactive REPL
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"scribbit/internal/config"
	"scribbit/internal/lexer"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

// errReported signals a failure whose diagnostics were already printed.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "scribbit",
	Short: "scribbit - a small expression language front end",
	Long: `scribbit tokenizes and parses a small expression language with
function definitions, extern declarations and top-level expressions.

Without a subcommand it reads statements from standard input and reports
what it parsed, or starts the REPL when standard input is a terminal.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser activity to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by all
// commands.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", slog.String("path", cfg.Path()), slog.String("format", cfg.Format))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if readline.IsTerminal(int(os.Stdin.Fd())) {
		return runRepl(cmd, args)
	}

	d := newDriver(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
	if d.run(lexer.New(cmd.InOrStdin(), "<stdin>")) > 0 {
		return errReported
	}
	return nil
}
