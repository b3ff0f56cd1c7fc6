package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Renderer writes diagnostic records in a compact terminal form.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a renderer for f, enabling color only when f is a
// terminal.
func NewRenderer(f *os.File) *Renderer {
	return &Renderer{
		out:   f,
		color: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
	}
}

// NewPlainRenderer builds a renderer with color disabled, for tests and
// non-terminal sinks.
func NewPlainRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	posLabel   = color.New(color.FgCyan).SprintFunc()
)

// Render writes every record, one per line.
func (r *Renderer) Render(records []Record) {
	for _, rec := range records {
		sev := rec.Severity.String()
		pos := rec.Range.String()
		if r.color {
			if rec.Severity == Error {
				sev = errorLabel(sev)
			} else {
				sev = warnLabel(sev)
			}
			pos = posLabel(pos)
		}
		fmt.Fprintf(r.out, "%s: %s[%s]: %s\n", pos, sev, rec.Code, rec.Message)
	}
}
