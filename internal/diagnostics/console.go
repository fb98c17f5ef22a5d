package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// ConsoleReporter prints diagnostics to a writer, colorizing severity when
// the writer is a terminal.
type ConsoleReporter struct {
	out   io.Writer
	color bool
}

// NewConsoleReporter creates a reporter writing to stderr.
func NewConsoleReporter() *ConsoleReporter {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return &ConsoleReporter{out: os.Stderr, color: color}
}

// NewWriterReporter creates an uncolored reporter writing to out.
func NewWriterReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (c *ConsoleReporter) Report(d *Diagnostic) {
	if !c.color {
		fmt.Fprintln(c.out, d.Error())
		return
	}
	var col string
	switch d.Severity {
	case Error:
		col = colorRed
	case Warning:
		col = colorYellow
	default:
		col = colorCyan
	}
	fmt.Fprintf(c.out, "%s%s%s\n", col, d.Error(), colorReset)
}
