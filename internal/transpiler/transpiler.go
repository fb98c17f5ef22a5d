package transpiler

import (
	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/java"
)

// Transpiler is the programmatic entry point. A nil front end is legal; the
// run then reports the missing front end and fails, the same way the
// original reacts to a missing Java compiler.
type Transpiler struct {
	cfg   *config.Config
	front FrontEnd
}

func New(cfg *config.Config, front FrontEnd) *Transpiler {
	return &Transpiler{cfg: cfg, front: front}
}

// Transpile runs the full pipeline over the given source files. Soft
// problems land in handler; the returned error covers only fatal stage
// failures (unwritable working dir, broken store, missing front end).
func (t *Transpiler) Transpile(handler *diagnostics.Handler, files []string) error {
	session, err := NewSession(t.cfg, handler)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := &Context{Session: session, Files: files}
	ctx = NewPipeline(
		CandiesStage{},
		ParseStage{Front: t.front},
		ScanStage{},
		PrintStage{},
		WriteStage{},
	).Run(ctx)
	return ctx.Err
}

// TranspileUnits runs analysis and printing over already-built compilation
// units, skipping candy processing and the front end. The session is
// returned with its overload index populated, for callers that want to
// inspect merge decisions; the caller owns closing it.
func (t *Transpiler) TranspileUnits(handler *diagnostics.Handler, units []*java.CompilationUnit, resolver java.Resolver) (*Session, map[string]string, error) {
	session, err := NewSession(t.cfg, handler)
	if err != nil {
		return nil, nil, err
	}

	ctx := &Context{Session: session, Units: units, Resolver: resolver}
	ctx = NewPipeline(ScanStage{}, PrintStage{}).Run(ctx)
	if ctx.Err != nil {
		session.Close()
		return nil, nil, ctx.Err
	}
	return session, ctx.Outputs, nil
}
