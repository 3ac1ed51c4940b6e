package pipeline

import (
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/token"
)

// PipelineContext carries one source file through the stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Config     *config.Config
	Out        io.Writer
	Logger     *slog.Logger

	TokenStream []token.Token
	AstRoot     *ast.Program
	Diagnostics []*diagnostics.Diagnostic

	// Halted stops every later stage. It is set for load-time failures
	// such as a missing header.
	Halted bool

	// Result holds the value of the last top-level statement after evaluation.
	Result object.Object
}

// NewContext returns a context with default configuration writing to stdout.
func NewContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Config:     config.Default(),
		Out:        os.Stdout,
		Logger:     slog.Default(),
	}
}

func (c *PipelineContext) AddDiagnostics(diags ...*diagnostics.Diagnostic) {
	for _, d := range diags {
		if d.Location != nil && d.Location.File == "" {
			d.Location.File = c.FilePath
		}
		c.Diagnostics = append(c.Diagnostics, d)
	}
}

func (c *PipelineContext) HasErrors() bool {
	return diagnostics.HasErrors(c.Diagnostics)
}

// Blocked reports whether evaluation must not run: the context was halted,
// an error was reported, or warnings are configured to count as errors.
func (c *PipelineContext) Blocked() bool {
	if c.Halted || c.HasErrors() {
		return true
	}
	if c.Config != nil && c.Config.Checks.WarningsAsErrors {
		return diagnostics.Count(c.Diagnostics, diagnostics.LevelWarning) > 0
	}
	return false
}

// Mode returns the program's execution mode, or Unknown before parsing.
func (c *PipelineContext) Mode() ast.ExecutionMode {
	if c.AstRoot == nil {
		return ast.ModeUnknown
	}
	return c.AstRoot.Mode
}
