package backend

import (
	"fmt"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/prettyprinter"
)

// ASTEmitter writes the program back as canonical source.
type ASTEmitter struct {
	LineWidth int
}

func NewASTEmitter() *ASTEmitter {
	return &ASTEmitter{LineWidth: 100}
}

func (e *ASTEmitter) Emit(program *ast.Program) ([]byte, error) {
	if program == nil {
		return nil, fmt.Errorf("no AST to emit")
	}
	p := prettyprinter.NewCodePrinterWithWidth(e.LineWidth)
	p.PrintProgram(program)
	return []byte(p.String()), nil
}

func (e *ASTEmitter) Target() string {
	return config.TargetAST
}
