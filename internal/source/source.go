package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/token"
)

// ErrMissingHeader is returned when the first meaningful line of a source
// is neither [Compiled] nor [Interpreted].
var ErrMissingHeader = errors.New("missing [Compiled] or [Interpreted] header")

// CheckHeader returns the execution mode declared by src. Blank lines and
// comment lines may precede the header.
func CheckHeader(src string) (ast.ExecutionMode, error) {
	mode, _, err := header(src)
	return mode, err
}

// header also returns the first token, which positions the diagnostic.
func header(src string) (ast.ExecutionMode, token.Token, error) {
	first := lexer.New(src).NextToken()
	switch first.Type {
	case token.COMPILED:
		return ast.ModeCompiled, first, nil
	case token.INTERPRETED:
		return ast.ModeInterpreted, first, nil
	}
	return ast.ModeUnknown, first, ErrMissingHeader
}

// Load reads a source file. Files without the source extension are
// rejected so that a stray argument is not run as a program.
func Load(path string) (string, error) {
	if ext := filepath.Ext(path); ext != config.SourceFileExt {
		return "", fmt.Errorf("%s: expected a %s file, got %q", path, config.SourceFileExt, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading source: %w", err)
	}
	return string(data), nil
}
