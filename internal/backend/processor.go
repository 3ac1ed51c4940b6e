package backend

import (
	"errors"

	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/evaluator"
	"github.com/funvibe/polymodal/internal/pipeline"
	"github.com/funvibe/polymodal/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

// Process runs the program unless an earlier stage halted the pipeline or
// reported a blocking diagnostic.
func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Blocked() {
		return ctx
	}

	if ctx.Logger != nil {
		ctx.Logger.Debug("executing", "backend", p.Backend.Name(), "mode", ctx.Mode().String())
	}
	result, err := p.Backend.Run(ctx)
	if err != nil {
		p.handleError(ctx, err)
		return ctx
	}
	ctx.Result = result
	return ctx
}

func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	tok := token.Token{}
	msg := err.Error()

	var rerr *evaluator.RuntimeError
	if errors.As(err, &rerr) {
		tok = rerr.Token()
		msg = rerr.Message
	}
	ctx.AddDiagnostics(diagnostics.NewError(diagnostics.ErrR001, tok, msg))
}
