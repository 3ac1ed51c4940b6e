package analyzer

import "github.com/funvibe/polymodal/internal/pipeline"

// TypeCheckProcessor runs the type checker on Compiled programs when
// checks.types is enabled.
type TypeCheckProcessor struct{}

func (tp *TypeCheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Halted || ctx.AstRoot == nil {
		return ctx
	}
	if ctx.Config != nil && !ctx.Config.Checks.Types {
		return ctx
	}

	checker := NewTypeChecker(ctx.SourceCode)
	checker.SetFile(ctx.FilePath)
	if !checker.Check(ctx.AstRoot) {
		ctx.Logger.Debug("type check failed", "file", ctx.FilePath)
	}
	ctx.AddDiagnostics(checker.Diagnostics()...)
	return ctx
}
