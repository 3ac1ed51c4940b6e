// Package backend holds the consumers of a checked program: execution
// backends that run it and emitters that turn it into an artifact.
package backend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/pipeline"
)

// ErrUnsupportedTarget is returned for a target with no emitter.
var ErrUnsupportedTarget = errors.New("unsupported target")

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (object.Object, error)

	// Name returns the backend name for display
	Name() string
}

// Emitter produces a target artifact from a program. Emitters do not run
// the checkers and accept any program the parser produced.
type Emitter interface {
	Emit(program *ast.Program) ([]byte, error)

	// Target returns the name used in [target name] and -target.
	Target() string
}

var emitters = map[string]func() Emitter{
	config.TargetAST: func() Emitter { return NewASTEmitter() },
}

// NewEmitter returns the emitter registered for target.
func NewEmitter(target string) (Emitter, error) {
	newEmitter, ok := emitters[target]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnsupportedTarget, target, Targets())
	}
	return newEmitter(), nil
}

// Targets lists the registered emitter targets in sorted order.
func Targets() []string {
	names := make([]string, 0, len(emitters))
	for name := range emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
