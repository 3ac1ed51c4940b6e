package source

import (
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/pipeline"
)

// HeaderProcessor gates the pipeline on the source header. A missing
// header halts every later stage.
type HeaderProcessor struct{}

func (hp *HeaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Halted {
		return ctx
	}
	mode, first, err := header(ctx.SourceCode)
	if err != nil {
		ctx.AddDiagnostics(diagnostics.NewError(diagnostics.ErrH001, first,
			"the first line must be [Compiled] or [Interpreted]"))
		ctx.Halted = true
		return ctx
	}
	ctx.Logger.Debug("source header", "file", ctx.FilePath, "mode", mode)
	return ctx
}
