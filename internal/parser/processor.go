package parser

import "github.com/funvibe/polymodal/internal/pipeline"

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Halted {
		return ctx
	}

	parser := New(ctx.TokenStream)
	program := parser.ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program
	ctx.AddDiagnostics(parser.Diagnostics()...)
	return ctx
}
