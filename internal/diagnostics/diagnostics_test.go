package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/polymodal/internal/token"
)

func TestReporterCollectsInOrder(t *testing.T) {
	r := NewReporter("let x = 1\nlet y = 2")
	r.SetFile("main.poly")
	r.Warningf(WarnW001, token.Token{Line: 1, Column: 5}, "cannot infer type of %s", "x")
	r.Errorf(ErrT003, token.Token{Line: 2, Column: 9}, "undefined variable: %s", "z")

	all := r.Diagnostics()
	if len(all) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(all))
	}
	if all[0].Level != LevelWarning || all[1].Level != LevelError {
		t.Errorf("diagnostics out of order: %v", all)
	}
	if !r.HasErrors() {
		t.Errorf("expected HasErrors")
	}
	if len(r.Errors()) != 1 || len(r.Warnings()) != 1 {
		t.Errorf("filter mismatch: %d errors, %d warnings", len(r.Errors()), len(r.Warnings()))
	}
	if got := all[1].Error(); got != "main.poly:2:9: error[T003]: undefined variable: z" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestDiagnosticWithoutLocation(t *testing.T) {
	d := NewError(ErrR001, token.Token{}, "boom")
	if d.Location != nil {
		t.Fatalf("expected no location for zero token")
	}
	if d.Error() != "error[R001]: boom" {
		t.Errorf("unexpected Error(): %q", d.Error())
	}
}

func TestSourceLine(t *testing.T) {
	r := NewReporter("first\r\nsecond")
	if line, ok := r.SourceLine(1); !ok || line != "first" {
		t.Errorf("SourceLine(1) = %q, %v", line, ok)
	}
	if _, ok := r.SourceLine(3); ok {
		t.Errorf("SourceLine(3) should be out of range")
	}
}

func TestRendererCaret(t *testing.T) {
	var buf bytes.Buffer
	src := "[Compiled]\nlet x: i32 = \"hi\""
	r := &Renderer{Out: &buf, Source: src}
	d := NewError(ErrT001, token.Token{Line: 2, Column: 14}, "type mismatch: expected i32, got str")
	d.WithNote("annotation is %s", "i32")
	r.RenderAll([]*Diagnostic{d})

	out := buf.String()
	for _, want := range []string{
		"2:14: error[T001]: type mismatch",
		"   2 | let x: i32 = \"hi\"",
		"             ^",
		"note: annotation is i32",
		"1 error(s), 0 warning(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("uncolored renderer emitted escape codes")
	}
}
