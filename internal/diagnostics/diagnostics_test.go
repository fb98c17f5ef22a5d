package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nagarajutv11/jsweet/internal/java"
)

func TestHandlerCountsBySeverity(t *testing.T) {
	h := NewHandler(nil)
	h.Report(NewError(ErrC001, java.Pos{File: "a.jar"}, "bad archive"))
	h.Report(NewWarning(WarnC002, java.Pos{File: "b.jar"}, "old candy"))
	h.Report(NewWarning(WarnT010, java.Pos{File: "C.java", Line: 3}, "not mergeable"))

	if h.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", h.ErrorCount())
	}
	if h.WarningCount() != 2 {
		t.Errorf("expected 2 warnings, got %d", h.WarningCount())
	}
}

func TestHandlerDeduplicatesByPositionAndCode(t *testing.T) {
	h := NewHandler(nil)
	pos := java.Pos{File: "C.java", Line: 10, Column: 4}
	h.Report(NewWarning(WarnT010, pos, "not mergeable"))
	h.Report(NewWarning(WarnT010, pos, "not mergeable"))
	h.Report(NewWarning(WarnT010, java.Pos{File: "C.java", Line: 11, Column: 4}, "not mergeable"))

	if h.WarningCount() != 2 {
		t.Errorf("duplicate report should be dropped, got %d warnings", h.WarningCount())
	}
}

func TestNilHandlerIsSafe(t *testing.T) {
	var h *Handler
	h.Report(NewError(ErrT001, java.Pos{}, "boom"))
	if h.ErrorCount() != 0 {
		t.Error("nil handler should swallow reports")
	}
}

func TestConsoleReporterFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(NewWriterReporter(&buf))
	h.Report(NewError(ErrC001, java.Pos{File: "x.jar", Line: 1, Column: 1}, "cannot read"))

	out := buf.String()
	if !strings.Contains(out, "x.jar:1:1") || !strings.Contains(out, "[C001]") {
		t.Errorf("unexpected console format: %q", out)
	}
}
