package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"scribbit/internal/config"
	"scribbit/internal/lexer"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const continuationPrompt = "...    "

var (
	replFormat string
	replNoEval bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Reads statements line by line. A statement may span several lines;
the prompt changes to "..." until it is complete. A statement without a
trailing ';' is only known to be complete once the next line starts, so
end it with ';' to see its result immediately.

Type 'exit' on a line of its own or press Ctrl+D to quit. Any statement
still pending at that point is finished first.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replFormat, "format", "f", "", "echo format: summary, sexpr, json or yaml (default from config)")
	replCmd.Flags().BoolVar(&replNoEval, "no-eval", false, "parse only, do not evaluate")
}

// lineReader feeds readline input to the lexer one rune at a time. A new
// line is only requested when the lexer needs more input, so the prompt
// appears exactly when the parser is waiting.
type lineReader struct {
	rl     *readline.Instance
	prompt string
	buf    []rune
	fresh  bool // the next line starts a new statement
	done   bool // exit or end of input was seen
}

func newLineReader(rl *readline.Instance, prompt string) *lineReader {
	return &lineReader{rl: rl, prompt: prompt, fresh: true}
}

func (r *lineReader) ReadRune() (rune, int, error) {
	for len(r.buf) == 0 {
		if r.done {
			return 0, 0, io.EOF
		}
		if r.fresh {
			r.rl.SetPrompt(r.prompt)
		} else {
			r.rl.SetPrompt(continuationPrompt)
		}

		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			line, err = "", nil
		}
		if err != nil {
			r.done = true
			return 0, 0, err
		}
		// exit ends the input even mid-statement; the pending statement
		// then completes at end of input
		if strings.TrimSpace(line) == "exit" {
			r.done = true
			return 0, 0, io.EOF
		}
		if strings.TrimSpace(line) != "" {
			r.fresh = false
		}
		r.buf = []rune(line + "\n")
	}

	ch := r.buf[0]
	r.buf = r.buf[1:]
	return ch, utf8.RuneLen(ch), nil
}

// statementDone resets the prompt for the next statement.
func (r *lineReader) statementDone() {
	r.fresh = true
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	st := newStyles(cfg.Color)
	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		st.banner.Render("scribbit REPL"), st.muted.Render("(type 'exit' or Ctrl+D to quit)"))

	d := newDriver(rl.Stdout(), rl.Stderr(), cfg, logger)
	if replFormat != "" {
		if err := config.CheckFormat(replFormat); err != nil {
			return err
		}
		d.format = replFormat
	}
	if replNoEval {
		d.interp = nil
	}

	in := newLineReader(rl, cfg.Prompt)
	d.afterStatement = in.statementDone
	d.run(lexer.NewRuneReader(in, "<repl>"))

	fmt.Fprintln(rl.Stdout())
	return nil
}
