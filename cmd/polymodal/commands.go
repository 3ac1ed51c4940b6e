package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/polymodal/internal/analyzer"
	"github.com/funvibe/polymodal/internal/backend"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/lexer"
	"github.com/funvibe/polymodal/internal/ownership"
	"github.com/funvibe/polymodal/internal/parser"
	"github.com/funvibe/polymodal/internal/pipeline"
	"github.com/funvibe/polymodal/internal/prettyprinter"
	"github.com/funvibe/polymodal/internal/source"
	"github.com/funvibe/polymodal/internal/token"
)

type command struct {
	stdout io.Writer
	stderr io.Writer
}

// loaded is a source file with its governing configuration.
type loaded struct {
	path   string
	source string
	config *config.Config
}

func load(path string) (*loaded, error) {
	src, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	return &loaded{path: path, source: src, config: cfg}, nil
}

// withFile loads the single file named in args and hands it to fn.
func (c *command) withFile(args []string, fn func(*loaded) int) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "Error: expected exactly one source file")
		return 1
	}
	file, err := load(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	return fn(file)
}

func (c *command) newContext(file *loaded, out io.Writer, logTo io.Writer) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(file.source)
	ctx.FilePath = file.path
	ctx.Config = file.config
	ctx.Out = out
	ctx.Logger = newLogger(file.config, logTo)
	return ctx
}

// frontEnd lists the stages up to and including the checkers.
func frontEnd() []pipeline.Processor {
	return []pipeline.Processor{
		&source.HeaderProcessor{},
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.TypeCheckProcessor{},
		&ownership.OwnershipProcessor{},
	}
}

// report renders the diagnostics of ctx to w and returns the exit status.
func (c *command) report(ctx *pipeline.PipelineContext, w io.Writer) int {
	r := &diagnostics.Renderer{
		Out:    w,
		Source: ctx.SourceCode,
		Color:  useColor(ctx.Config.Output.Color, c.stderr),
	}
	r.RenderAll(ctx.Diagnostics)
	if ctx.Blocked() {
		return 1
	}
	return 0
}

func (c *command) runFile(file *loaded) int {
	ctx := c.newContext(file, c.stdout, c.stderr)
	stages := append(frontEnd(), backend.NewExecutionProcessor(backend.NewTreeWalk()))
	ctx = pipeline.New(stages...).Run(ctx)
	return c.report(ctx, c.stderr)
}

// checkFiles runs the front end over every file concurrently and reports
// the results in argument order.
func (c *command) checkFiles(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.stderr, "Error: expected at least one source file")
		return 1
	}

	reports := make([]bytes.Buffer, len(args))
	statuses := make([]int, len(args))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := load(path)
			if err != nil {
				return err
			}
			ctx := c.newContext(file, io.Discard, &reports[i])
			ctx = pipeline.New(frontEnd()...).Run(ctx)
			statuses[i] = c.report(ctx, &reports[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}

	status := 0
	for i := range args {
		// A report that cannot be shown must not pass as a clean check.
		if _, err := io.Copy(c.stderr, &reports[i]); err != nil {
			return 1
		}
		if statuses[i] != 0 {
			status = 1
		}
	}
	if status == 0 {
		fmt.Fprintf(c.stdout, "%s checked\n", pluralFiles(len(args)))
	}
	return status
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// build checks a file and writes the artifact of the chosen target. The
// target comes from -target, then the [target] header, then defaults to ast.
func (c *command) build(args []string) int {
	positional, flags, err := parseArgs(args, "target", "o")
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	return c.withFile(positional, func(file *loaded) int {
		ctx := c.newContext(file, io.Discard, c.stderr)
		ctx = pipeline.New(frontEnd()...).Run(ctx)
		if status := c.report(ctx, c.stderr); status != 0 {
			return status
		}

		target := flags["target"]
		if target == "" {
			target = ctx.AstRoot.Target
		}
		if target == "" {
			target = config.TargetAST
		}
		emitter, err := backend.NewEmitter(target)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %s\n", err)
			return 1
		}
		artifact, err := emitter.Emit(ctx.AstRoot)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %s target: %s\n", target, err)
			return 1
		}

		outPath := flags["o"]
		if outPath == "" {
			outPath = strings.TrimSuffix(file.path, filepath.Ext(file.path)) + "." + emitter.Target()
		}
		if err := os.WriteFile(outPath, artifact, 0644); err != nil {
			fmt.Fprintf(c.stderr, "Error writing artifact: %s\n", err)
			return 1
		}
		fmt.Fprintf(c.stdout, "Built %s -> %s (%s)\n", file.path, outPath, humanize.Bytes(uint64(len(artifact))))
		return 0
	})
}

// format prints the canonical source of a file. A file the parser had to
// recover from is refused, since dropped tokens would be lost.
func (c *command) format(args []string) int {
	positional, flags, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return 1
	}
	return c.withFile(positional, func(file *loaded) int {
		ctx := c.newContext(file, io.Discard, c.stderr)
		ctx = pipeline.New(
			&source.HeaderProcessor{},
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
		).Run(ctx)
		if len(ctx.Diagnostics) > 0 {
			c.report(ctx, c.stderr)
			return 1
		}

		formatted := prettyprinter.Print(ctx.AstRoot)
		if flags["w"] != "true" {
			fmt.Fprint(c.stdout, formatted)
			return 0
		}
		if formatted == file.source {
			return 0
		}
		if err := os.WriteFile(file.path, []byte(formatted), 0644); err != nil {
			fmt.Fprintf(c.stderr, "Error writing %s: %s\n", file.path, err)
			return 1
		}
		fmt.Fprintf(c.stdout, "formatted %s\n", file.path)
		return 0
	})
}

func (c *command) tokens(file *loaded) int {
	for _, tok := range lexer.Tokenize(file.source) {
		fmt.Fprintf(c.stdout, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
		if tok.Type == token.EOF {
			break
		}
	}
	return 0
}
