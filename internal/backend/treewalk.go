package backend

import (
	"fmt"

	"github.com/funvibe/polymodal/internal/evaluator"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/pipeline"
)

// TreeWalkBackend wraps the tree-walking evaluator
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run evaluates ctx.AstRoot with the context's output, logger and call
// depth limit. Runtime warnings are added to ctx.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (object.Object, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no AST to execute")
	}

	eval := evaluator.New()
	if ctx.Out != nil {
		eval.Out = ctx.Out
	}
	if ctx.Logger != nil {
		eval.Logger = ctx.Logger.With("file", ctx.FilePath)
	}
	if ctx.Config != nil {
		eval.MaxDepth = ctx.Config.Runtime.MaxCallDepth
	}

	result, err := eval.Run(ctx.AstRoot)
	ctx.AddDiagnostics(eval.Warnings()...)
	return result, err
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
