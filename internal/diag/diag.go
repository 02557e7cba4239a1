// Package diag provides diagnostic (error/warning) types for the front end.
package diag

import (
	"fmt"
	"scribbit/internal/span"
	"sort"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes.
const (
	CodeMalformedNumber = "W1001"
	CodeExpectedToken   = "E2001"
	CodeUnknownToken    = "E2002"
	CodeBadArgumentList = "E2003"
)

// Diagnostic represents a front-end diagnostic message.
type Diagnostic struct {
	Code     string    `json:"code"`           // stable code, e.g. "E2001"
	Severity Severity  `json:"severity"`       // error or warning
	Message  string    `json:"message"`        // human-readable description
	Span     span.Span `json:"span"`           // source location
	Hint     string    `json:"hint,omitempty"` // optional hint
}

// String returns a detailed representation of the diagnostic including
// code and location.
func (d Diagnostic) String() string {
	prefix := d.Severity.String()
	loc := fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Column)
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, prefix, loc, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Line renders the diagnostic the way the interactive driver prints it:
// "Error: <message>" or "Warning: <message>".
func (d Diagnostic) Line() string {
	if d.Severity == Warning {
		return "Warning: " + d.Message
	}
	return "Error: " + d.Message
}

// Errorf creates an error diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Warningf creates a warning diagnostic at the given span.
func Warningf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Errors returns only the error-severity diagnostics of diags.
func Errors(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Merge combines diagnostic lists and orders them by source offset,
// keeping the relative order of diagnostics at the same offset.
func Merge(lists ...[]Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start.Offset < out[j].Span.Start.Offset
	})
	return out
}
