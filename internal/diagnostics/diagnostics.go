// Package diagnostics carries the transpiler's problem codes and the
// soft-failure reporting channel. Analysis never aborts on a problem; it
// reports here and keeps scanning, and the front end decides the exit
// status from the accumulated counts.
package diagnostics

import (
	"fmt"

	"github.com/nagarajutv11/jsweet/internal/java"
)

// Severity of a reported problem.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies a problem kind.
type Code string

const (
	// ErrT001 is reported when no Java front end is available to produce
	// source trees for the requested input files.
	ErrT001 Code = "T001"
	// ErrT002 is reported when an input path cannot be read.
	ErrT002 Code = "T002"
	// WarnT010 is reported when an overload group cannot be merged into a
	// single function with default parameters.
	WarnT010 Code = "T010"
	// ErrC001 is reported when a candy archive cannot be read.
	ErrC001 Code = "C001"
	// WarnC002 is reported when a candy was built for another transpiler
	// version.
	WarnC002 Code = "C002"
	// ErrG001 is reported when generated output cannot be written.
	ErrG001 Code = "G001"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Pos      java.Pos
	Message  string
}

func (d *Diagnostic) Error() string {
	if d.Pos.File == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Code, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s: %s", d.Pos.File, d.Pos.Line, d.Pos.Column, d.Code, d.Severity, d.Message)
}

// NewError creates an error-severity diagnostic.
func NewError(code Code, pos java.Pos, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: Error, Pos: pos, Message: message}
}

// NewWarning creates a warning-severity diagnostic.
func NewWarning(code Code, pos java.Pos, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: Warning, Pos: pos, Message: message}
}

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d *Diagnostic)
}

// Handler accumulates diagnostics, deduplicates repeats at the same position,
// counts errors and warnings, and forwards to an optional Reporter.
type Handler struct {
	reporter Reporter
	seen     map[string]bool
	all      []*Diagnostic
	errors   int
	warnings int
}

// NewHandler creates a handler forwarding to reporter. reporter may be nil.
func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter, seen: make(map[string]bool)}
}

// Report records the diagnostic. Duplicate code+position pairs are dropped.
func (h *Handler) Report(d *Diagnostic) {
	if h == nil || d == nil {
		return
	}
	key := fmt.Sprintf("%s:%d:%d:%s", d.Pos.File, d.Pos.Line, d.Pos.Column, d.Code)
	if h.seen[key] {
		return
	}
	h.seen[key] = true
	h.all = append(h.all, d)
	switch d.Severity {
	case Error:
		h.errors++
	case Warning:
		h.warnings++
	}
	if h.reporter != nil {
		h.reporter.Report(d)
	}
}

// ErrorCount returns the number of distinct error diagnostics reported.
func (h *Handler) ErrorCount() int {
	if h == nil {
		return 0
	}
	return h.errors
}

// WarningCount returns the number of distinct warning diagnostics reported.
func (h *Handler) WarningCount() int {
	if h == nil {
		return 0
	}
	return h.warnings
}

// All returns the recorded diagnostics in report order.
func (h *Handler) All() []*Diagnostic {
	if h == nil {
		return nil
	}
	return h.all
}
