package evaluator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/token"
)

// RuntimeError stops the current Interpret call. Line and Column are zero
// when the failing node has no position.
type RuntimeError struct {
	Message string
	Line    int
	Column  int
}

func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return "runtime error: " + e.Message
	}
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Token returns the error position as a token for diagnostics.
func (e *RuntimeError) Token() token.Token {
	return token.Token{Line: e.Line, Column: e.Column}
}

// Evaluator walks a program. It is single-threaded and not reentrant;
// extensions that need concurrency must use their own Evaluator.
type Evaluator struct {
	Out    io.Writer
	Logger *slog.Logger
	// MaxDepth bounds nested function calls.
	MaxDepth int
	// ID identifies this evaluator in log records.
	ID uuid.UUID

	globals map[string]object.Object
	frames  []map[string]object.Object
	depth   int

	// yields collects values for the innermost running generator.
	yields [][]object.Object

	warnings []*diagnostics.Diagnostic
}

func New() *Evaluator {
	return &Evaluator{
		Out:      os.Stdout,
		Logger:   slog.Default(),
		MaxDepth: config.DefaultMaxCallDepth,
		ID:       uuid.New(),
		globals:  make(map[string]object.Object),
	}
}

// Interpret runs program to completion or to its first runtime error.
func (e *Evaluator) Interpret(program *ast.Program) error {
	_, err := e.Run(program)
	return err
}

// Run is Interpret that also returns the value of the last top-level
// statement, or the value of a top-level return.
func (e *Evaluator) Run(program *ast.Program) (object.Object, error) {
	e.Logger.Debug("evaluating program", "session", e.ID, "file", program.File, "mode", program.Mode)

	e.hoistFunctions(program.Statements)
	return unwrapReturn(e.evalStatements(program.Statements))
}

// Warnings returns the non-fatal problems found while running, such as
// non-exhaustive match statements.
func (e *Evaluator) Warnings() []*diagnostics.Diagnostic {
	out := make([]*diagnostics.Diagnostic, len(e.warnings))
	copy(out, e.warnings)
	return out
}

// Global returns a copy of a top-level binding.
func (e *Evaluator) Global(name string) (object.Object, bool) {
	v, ok := e.globals[name]
	if !ok {
		return nil, false
	}
	return object.Copy(v), true
}

// FrameDepth is the number of open scope frames.
func (e *Evaluator) FrameDepth() int { return len(e.frames) }

func (e *Evaluator) errorf(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *Evaluator) warn(tok token.Token, format string, args ...interface{}) {
	d := diagnostics.NewWarning(diagnostics.WarnR002, tok, fmt.Sprintf(format, args...))
	e.warnings = append(e.warnings, d)
	e.Logger.Warn(d.Message, "session", e.ID, "line", tok.Line, "column", tok.Column)
}

// returnSignal travels the error path out of nested blocks, loops and
// expressions up to the nearest call boundary or the top level.
type returnSignal struct {
	Value object.Object
}

func (rs *returnSignal) Error() string { return "return outside of a function call" }

// unwrapReturn turns a return signal back into a value.
func unwrapReturn(val object.Object, err error) (object.Object, error) {
	var rs *returnSignal
	if errors.As(err, &rs) {
		return rs.Value, nil
	}
	return val, err
}
