package transpiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nagarajutv11/jsweet/internal/candies"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/java"
	"github.com/nagarajutv11/jsweet/internal/overloads"
	"github.com/nagarajutv11/jsweet/internal/printer"
)

// Context flows through the pipeline stages.
type Context struct {
	Session *Session

	// Files are the input source paths handed to the front end.
	Files []string

	// Units and Resolver are produced by the parse stage.
	Units    []*java.CompilationUnit
	Resolver java.Resolver

	// Outputs maps generated file names to their TypeScript source.
	Outputs map[string]string

	// Declarations maps generated .d.ts file names to their source,
	// populated only when the config requests declarations.
	Declarations map[string]string

	// Err is the first fatal stage failure. Soft problems go through the
	// session's diagnostics handler instead.
	Err error
}

// Stage is one pipeline step.
type Stage interface {
	Name() string
	Process(ctx *Context) *Context
}

// Pipeline runs stages in order, stopping at the first fatal error.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		if ctx.Err != nil {
			break
		}
		ctx = stage.Process(ctx)
	}
	return ctx
}

// CandiesStage extracts candy payloads from the configured classpath.
type CandiesStage struct{}

func (CandiesStage) Name() string { return "candies" }

func (CandiesStage) Process(ctx *Context) *Context {
	cfg := ctx.Session.Config
	proc := candies.NewProcessor(cfg.WorkingDir, cfg.Classpath, cfg.CandiesJsOut, ctx.Session.Handler)
	if err := proc.Process(); err != nil {
		ctx.Err = fmt.Errorf("processing candies: %w", err)
	}
	return ctx
}

// FrontEnd parses and resolves Java source files into compilation units.
// Parsing is not implemented by this repository; hosts plug in a front end
// (typically wrapping an external Java parser) when constructing the
// transpiler. encoding is the configured source encoding.
type FrontEnd interface {
	Parse(files []string, encoding string) ([]*java.CompilationUnit, java.Resolver, error)
}

// ParseStage invokes the front end. A missing front end is reported as a
// diagnostic, mirroring a missing Java compiler installation.
type ParseStage struct {
	Front FrontEnd
}

func (ParseStage) Name() string { return "parse" }

func (st ParseStage) Process(ctx *Context) *Context {
	if st.Front == nil {
		ctx.Session.Handler.Report(diagnostics.NewError(diagnostics.ErrT001, java.Pos{},
			"no Java front end available; cannot parse input files"))
		ctx.Err = fmt.Errorf("no front end")
		return ctx
	}
	units, resolver, err := st.Front.Parse(ctx.Files, ctx.Session.Config.Encoding)
	if err != nil {
		ctx.Err = fmt.Errorf("parsing: %w", err)
		return ctx
	}
	ctx.Units = units
	ctx.Resolver = resolver
	return ctx
}

// ScanStage runs the two-pass overload analysis over every unit. Each
// unit's register/analyze pair completes before the next unit starts, so
// cross-unit index reads always see finished groups.
type ScanStage struct{}

func (ScanStage) Name() string { return "scan" }

func (ScanStage) Process(ctx *Context) *Context {
	scanner := overloads.NewScanner(ctx.Session.Index, ctx.Resolver, ctx.Session.Handler)
	for _, unit := range ctx.Units {
		scanner.Process(unit)
	}
	return ctx
}

// PrintStage renders every unit to TypeScript.
type PrintStage struct{}

func (PrintStage) Name() string { return "print" }

func (PrintStage) Process(ctx *Context) *Context {
	declarations := ctx.Session.Config.Declarations
	ctx.Outputs = make(map[string]string, len(ctx.Units))
	if declarations {
		ctx.Declarations = make(map[string]string, len(ctx.Units))
	}
	for _, unit := range ctx.Units {
		p := printer.New(ctx.Session.Index)
		ctx.Outputs[printer.FileName(unit)] = p.PrintUnit(unit)
		if declarations {
			ctx.Declarations[printer.DeclarationFileName(unit)] = p.PrintDeclarations(unit)
		}
	}
	return ctx
}

// WriteStage writes the generated sources into the configured tsout
// directory.
type WriteStage struct{}

func (WriteStage) Name() string { return "write" }

func (WriteStage) Process(ctx *Context) *Context {
	if err := writeAll(ctx, ctx.Session.Config.TsOut, ctx.Outputs); err != nil {
		ctx.Err = err
		return ctx
	}
	if len(ctx.Declarations) > 0 {
		dtsDir := ctx.Session.Config.DtsOut
		if dtsDir == "" {
			dtsDir = ctx.Session.Config.TsOut
		}
		if err := writeAll(ctx, dtsDir, ctx.Declarations); err != nil {
			ctx.Err = err
		}
	}
	return ctx
}

func writeAll(ctx *Context, dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for name, src := range files {
		dest := filepath.Join(dir, name)
		if err := os.WriteFile(dest, []byte(src), 0o644); err != nil {
			ctx.Session.Handler.Report(diagnostics.NewError(diagnostics.ErrG001, java.Pos{File: dest},
				fmt.Sprintf("cannot write output: %v", err)))
		}
	}
	return nil
}
