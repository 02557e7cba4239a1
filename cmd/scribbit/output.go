package main

import (
	"encoding/json"
	"fmt"
	"io"

	"scribbit/internal/ast"
	"scribbit/internal/diag"
	"scribbit/internal/token"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ---- styles ----

var (
	colorError = lipgloss.Color("#EF4444")
	colorWarn  = lipgloss.Color("#F59E0B")
	colorValue = lipgloss.Color("#10B981")
	colorMuted = lipgloss.Color("#6B7280")
)

type styles struct {
	err    lipgloss.Style
	warn   lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	banner lipgloss.Style
}

// newStyles returns the terminal styles, or pass-through styles when
// color is off.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{err: plain, warn: plain, value: plain, muted: plain, banner: plain}
	}
	return styles{
		err:    lipgloss.NewStyle().Foreground(colorError),
		warn:   lipgloss.NewStyle().Foreground(colorWarn),
		value:  lipgloss.NewStyle().Foreground(colorValue).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(colorMuted),
		banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
	}
}

// ---- output helpers ----

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return enc.Close()
}

func printDiagsText(w io.Writer, st styles, diags []diag.Diagnostic) {
	for _, d := range diags {
		style := st.err
		if d.Severity == diag.Warning {
			style = st.warn
		}
		fmt.Fprintln(w, style.Render(d.Line()))
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
			"offset":   d.Span.Start.Offset,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

// programDocument is the JSON/YAML shape of a parsed file.
func programDocument(nodes []ast.TopLevel, diags []diag.Diagnostic) map[string]interface{} {
	return map[string]interface{}{
		"ast":         ast.ProgramToMaps(nodes),
		"diagnostics": diagsToSlice(diags),
	}
}

// ---- token output helpers ----

func printTokensText(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%-8s %-20s %d:%d\n", tok.Kind, tok.Lexeme, tok.Span.Start.Line, tok.Span.Start.Column)
	}
}

func printTokensJSON(w io.Writer, tokens []token.Token, diags []diag.Diagnostic) error {
	type tokenJSON struct {
		Kind   string   `json:"kind"`
		Lexeme string   `json:"lexeme"`
		Value  *float64 `json:"value,omitempty"`
		Line   int      `json:"line"`
		Column int      `json:"column"`
		Offset int      `json:"offset"`
		Length int      `json:"length"`
	}

	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		tj := tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
			Length: tok.Span.Len(),
		}
		if tok.Kind == token.NUMBER {
			v := tok.Value
			tj.Value = &v
		}
		toks = append(toks, tj)
	}

	return printJSON(w, map[string]interface{}{
		"tokens":      toks,
		"diagnostics": diagsToSlice(diags),
	})
}
