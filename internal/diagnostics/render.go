package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
)

// Renderer writes diagnostics as text with an excerpt of the offending line.
type Renderer struct {
	Out    io.Writer
	Source string
	Color  bool
}

func (r *Renderer) paint(code, s string) string {
	if !r.Color {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) levelColor(l Level) string {
	switch l {
	case LevelError:
		return ansiRed
	case LevelWarning:
		return ansiYellow
	default:
		return ansiBlue
	}
}

// Render writes one diagnostic.
//
//	main.poly:2:14: error[T001]: type mismatch: expected i32, got str
//	   2 | let x: i32 = "hi"
//	     |              ^
func (r *Renderer) Render(d *Diagnostic) {
	head := fmt.Sprintf("%s[%s]", d.Level, d.Code)
	head = r.paint(ansiBold+r.levelColor(d.Level), head)
	if d.Location != nil {
		fmt.Fprintf(r.Out, "%s: %s: %s\n", d.Location, head, d.Message)
	} else {
		fmt.Fprintf(r.Out, "%s: %s\n", head, d.Message)
	}

	if d.Location != nil && r.Source != "" {
		lines := strings.Split(r.Source, "\n")
		if d.Location.Line >= 1 && d.Location.Line <= len(lines) {
			text := strings.TrimRight(lines[d.Location.Line-1], "\r")
			gutter := fmt.Sprintf("%4d | ", d.Location.Line)
			fmt.Fprintf(r.Out, "%s%s\n", r.paint(ansiBlue, gutter), text)
			pad := strings.Repeat(" ", len(gutter)-2)
			col := d.Location.Column
			if col < 1 {
				col = 1
			}
			caret := strings.Repeat(" ", col-1) + "^"
			fmt.Fprintf(r.Out, "%s%s\n", r.paint(ansiBlue, pad+"| "), r.paint(r.levelColor(d.Level), caret))
		}
	}
	for _, note := range d.Notes {
		fmt.Fprintf(r.Out, "     = note: %s\n", note)
	}
}

// RenderAll writes every diagnostic followed by a summary line.
func (r *Renderer) RenderAll(diags []*Diagnostic) {
	for _, d := range diags {
		r.Render(d)
	}
	errs := Count(diags, LevelError)
	warns := Count(diags, LevelWarning)
	if errs > 0 || warns > 0 {
		fmt.Fprintf(r.Out, "%d error(s), %d warning(s)\n", errs, warns)
	}
}
