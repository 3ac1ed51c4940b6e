package ownership

import "github.com/funvibe/polymodal/internal/pipeline"

// OwnershipProcessor runs the borrow checker on Compiled programs when
// checks.ownership is enabled.
type OwnershipProcessor struct{}

func (op *OwnershipProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Halted || ctx.AstRoot == nil {
		return ctx
	}
	if ctx.Config != nil && !ctx.Config.Checks.Ownership {
		return ctx
	}

	checker := NewBorrowChecker(ctx.SourceCode)
	checker.SetFile(ctx.FilePath)
	checker.Check(ctx.AstRoot)
	ctx.AddDiagnostics(checker.Diagnostics()...)
	return ctx
}
