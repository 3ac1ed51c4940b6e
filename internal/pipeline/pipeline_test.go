package pipeline_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/funvibe/polymodal/internal/analyzer"
	"github.com/funvibe/polymodal/internal/backend"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/ownership"
	"github.com/funvibe/polymodal/internal/parser"
	"github.com/funvibe/polymodal/internal/pipeline"
	"github.com/funvibe/polymodal/internal/source"
)

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&source.HeaderProcessor{},
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.TypeCheckProcessor{},
		&ownership.OwnershipProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()),
	)
}

func runPipeline(input string, configure func(*pipeline.PipelineContext)) (*pipeline.PipelineContext, string) {
	var out bytes.Buffer
	ctx := pipeline.NewContext(input)
	ctx.FilePath = "main.poly"
	ctx.Out = &out
	ctx.Logger = slog.New(slog.DiscardHandler)
	if configure != nil {
		configure(ctx)
	}
	ctx = newPipeline().Run(ctx)
	return ctx, out.String()
}

func codes(diags []*diagnostics.Diagnostic) string {
	var parts []string
	for _, d := range diags {
		parts = append(parts, string(d.Code))
	}
	return strings.Join(parts, ",")
}

func TestPipeline(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		codes  string
	}{
		{"interpreted program runs", "[Interpreted]\nlet x = 2 + 3\nprint(x)", "5\n", ""},
		{"type error blocks evaluation", "[Compiled]\nlet x: i32 = \"hi\"\nprint(\"ran\")", "", "T001"},
		{"same body interpreted runs", "[Interpreted]\nlet x: i32 = \"hi\"\nprint(\"ran\")", "ran\n", ""},
		{"use after move blocks evaluation", "[Compiled]\nlet a = [1]\nfn f(x) { x }\nf(a)\nprint(a)", "", "O001"},
		{"missing header halts", "print(1)", "", "H001"},
		{"runtime error is reported", "[Interpreted]\nprint(1)\nprint(1 / 0)", "1\n", "R001"},
		{"parser warnings do not block", "[Interpreted]\n)\nprint(1)", "1\n", "P001"},
		{"warnings do not block", "[Compiled]\nlet xs = [1, \"a\"]\nprint(1)", "1\n", "W002"},
		{"non-exhaustive match warns at runtime", "[Interpreted]\nmatch 1 { 1 => print(1) }", "1\n", "R002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := runPipeline(tt.input, nil)
			if out != tt.output {
				t.Errorf("output = %q, want %q", out, tt.output)
			}
			if got := codes(ctx.Diagnostics); got != tt.codes {
				t.Errorf("diagnostics = %q, want %q", got, tt.codes)
			}
		})
	}
}

func TestTypeErrorSkipsEvaluator(t *testing.T) {
	ctx, out := runPipeline("[Compiled]\nlet x: i32 = \"hi\"", nil)
	if !ctx.HasErrors() {
		t.Fatal("expected a type error")
	}
	if ctx.Result != nil || out != "" {
		t.Errorf("evaluator ran: result=%v output=%q", ctx.Result, out)
	}
	d := ctx.Diagnostics[0]
	if d.Location == nil || d.Location.File != "main.poly" || d.Location.Line != 2 {
		t.Errorf("unexpected location %+v", d.Location)
	}
}

func TestWarningsAsErrors(t *testing.T) {
	ctx, out := runPipeline("[Compiled]\nlet xs = [1, \"a\"]\nprint(1)", func(ctx *pipeline.PipelineContext) {
		ctx.Config.Checks.WarningsAsErrors = true
	})
	if out != "" {
		t.Errorf("evaluator ran with a blocking warning: %q", out)
	}
	if !ctx.Blocked() {
		t.Error("context should be blocked")
	}
}

func TestDisabledChecks(t *testing.T) {
	ctx, out := runPipeline("[Compiled]\nlet a = [1]\nfn f(x) { x }\nf(a)\nprint(a)", func(ctx *pipeline.PipelineContext) {
		ctx.Config.Checks.Ownership = false
	})
	if len(ctx.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %s", codes(ctx.Diagnostics))
	}
	if out != "[1]\n" {
		t.Errorf("output = %q", out)
	}
}

func TestResultIsRecorded(t *testing.T) {
	ctx, _ := runPipeline("[Interpreted]\nlet x = 4\nx * 2", nil)
	if ctx.Result == nil || ctx.Result.Inspect() != "8" {
		t.Errorf("result = %v, want 8", ctx.Result)
	}
}

func TestRuntimeErrorLocation(t *testing.T) {
	ctx, _ := runPipeline("[Interpreted]\nlet a = 1\nprint(a / 0)", func(ctx *pipeline.PipelineContext) {
		ctx.Config.Runtime.MaxCallDepth = 5
	})
	if len(ctx.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %s", codes(ctx.Diagnostics))
	}
	d := ctx.Diagnostics[0]
	if d.Error() != "main.poly:3:9: error[R001]: division by zero" {
		t.Errorf("diagnostic = %q", d.Error())
	}
}
