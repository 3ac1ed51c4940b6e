package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/polymodal/internal/token"
)

// Reporter accumulates diagnostics for a single pass. It is append-only
// and meant to be read after the pass completes.
type Reporter struct {
	file  string
	lines []string
	diags []*Diagnostic
}

// NewReporter creates a reporter. source is kept only to render source
// lines next to diagnostics.
func NewReporter(source string) *Reporter {
	return &Reporter{lines: strings.Split(source, "\n")}
}

// SetFile stamps file onto every diagnostic reported afterwards.
func (r *Reporter) SetFile(file string) { r.file = file }

func (r *Reporter) Report(d *Diagnostic) {
	if d.Location != nil && d.Location.File == "" {
		d.Location.File = r.file
	}
	r.diags = append(r.diags, d)
}

func (r *Reporter) Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *Diagnostic {
	d := NewError(code, tok, fmt.Sprintf(format, args...))
	r.Report(d)
	return d
}

func (r *Reporter) Warningf(code ErrorCode, tok token.Token, format string, args ...interface{}) *Diagnostic {
	d := NewWarning(code, tok, fmt.Sprintf(format, args...))
	r.Report(d)
	return d
}

func (r *Reporter) Infof(code ErrorCode, tok token.Token, format string, args ...interface{}) *Diagnostic {
	d := NewInfo(code, tok, fmt.Sprintf(format, args...))
	r.Report(d)
	return d
}

// Diagnostics returns every diagnostic in report order.
func (r *Reporter) Diagnostics() []*Diagnostic {
	out := make([]*Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

func (r *Reporter) HasErrors() bool { return HasErrors(r.diags) }

func (r *Reporter) Errors() []*Diagnostic { return r.filter(LevelError) }

func (r *Reporter) Warnings() []*Diagnostic { return r.filter(LevelWarning) }

func (r *Reporter) filter(level Level) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range r.diags {
		if d.Level == level {
			out = append(out, d)
		}
	}
	return out
}

// SourceLine returns the 1-based line n of the reporter's source.
func (r *Reporter) SourceLine(n int) (string, bool) {
	if n < 1 || n > len(r.lines) {
		return "", false
	}
	return strings.TrimRight(r.lines[n-1], "\r"), true
}
