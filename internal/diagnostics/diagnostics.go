package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/polymodal/internal/token"
)

type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Location is a 1-based position in a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is a single structured report produced by a pass.
type Diagnostic struct {
	Level    Level
	Code     ErrorCode
	Message  string
	Location *Location // nil when the problem has no source position
	Notes    []string
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.Location != nil {
		sb.WriteString(d.Location.String())
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s[%s]: %s", d.Level, d.Code, d.Message)
	return sb.String()
}

// WithNote appends a note and returns d for chaining.
func (d *Diagnostic) WithNote(format string, args ...interface{}) *Diagnostic {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	return d
}

func (d *Diagnostic) IsError() bool { return d.Level == LevelError }

func newDiagnostic(level Level, code ErrorCode, tok token.Token, msg string) *Diagnostic {
	d := &Diagnostic{Level: level, Code: code, Message: msg}
	if tok.Line > 0 {
		d.Location = &Location{Line: tok.Line, Column: tok.Column}
	}
	return d
}

func NewError(code ErrorCode, tok token.Token, msg string) *Diagnostic {
	return newDiagnostic(LevelError, code, tok, msg)
}

func NewWarning(code ErrorCode, tok token.Token, msg string) *Diagnostic {
	return newDiagnostic(LevelWarning, code, tok, msg)
}

func NewInfo(code ErrorCode, tok token.Token, msg string) *Diagnostic {
	return newDiagnostic(LevelInfo, code, tok, msg)
}

// HasErrors reports whether any diagnostic in diags is an error.
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at the given level.
func Count(diags []*Diagnostic, level Level) int {
	n := 0
	for _, d := range diags {
		if d.Level == level {
			n++
		}
	}
	return n
}
