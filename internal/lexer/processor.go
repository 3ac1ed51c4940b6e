package lexer

import "github.com/funvibe/polymodal/internal/pipeline"

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Halted {
		return ctx
	}
	ctx.TokenStream = Tokenize(ctx.SourceCode)
	return ctx
}
