package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/pipeline"
	"github.com/funvibe/polymodal/internal/source"
)

func TestCheckHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  ast.ExecutionMode
		err   error
	}{
		{"compiled", "[Compiled]\nlet x = 1", ast.ModeCompiled, nil},
		{"interpreted", "[Interpreted]\nprint(1)", ast.ModeInterpreted, nil},
		{"after blank and comment lines", "\n  \n// note\n/# other\n[Interpreted]\n", ast.ModeInterpreted, nil},
		{"with target", "[Compiled]\n[target wasm32]\n", ast.ModeCompiled, nil},
		{"no header", "let x = 1", ast.ModeUnknown, source.ErrMissingHeader},
		{"empty", "", ast.ModeUnknown, source.ErrMissingHeader},
		{"target first", "[target evm]\n[Compiled]", ast.ModeUnknown, source.ErrMissingHeader},
		{"misspelled", "[compiled]\nlet x = 1", ast.ModeUnknown, source.ErrMissingHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := source.CheckHeader(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("error = %v, want %v", err, tt.err)
			}
			if mode != tt.mode {
				t.Errorf("mode = %s, want %s", mode, tt.mode)
			}
		})
	}
}

func TestHeaderProcessor(t *testing.T) {
	ctx := pipeline.NewContext("print(1)")
	ctx.FilePath = "main.poly"
	ctx = (&source.HeaderProcessor{}).Process(ctx)

	if !ctx.Halted {
		t.Fatal("expected the pipeline to halt")
	}
	if len(ctx.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(ctx.Diagnostics))
	}
	d := ctx.Diagnostics[0]
	if d.Code != diagnostics.ErrH001 || !d.IsError() {
		t.Errorf("unexpected diagnostic %v", d)
	}
	if d.Location == nil || d.Location.File != "main.poly" || d.Location.Line != 1 {
		t.Errorf("unexpected location %+v", d.Location)
	}

	ok := (&source.HeaderProcessor{}).Process(pipeline.NewContext("[Compiled]\n"))
	if ok.Halted || len(ok.Diagnostics) != 0 {
		t.Errorf("valid header should pass: %v", ok.Diagnostics)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.poly")
	if err := os.WriteFile(path, []byte("[Interpreted]\nprint(1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := source.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src != "[Interpreted]\nprint(1)\n" {
		t.Errorf("source = %q", src)
	}

	if _, err := source.Load(filepath.Join(dir, "missing.poly")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, err := source.Load(filepath.Join(dir, "main.txt")); err == nil {
		t.Error("expected extension error")
	}
}
