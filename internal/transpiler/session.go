// Package transpiler orchestrates a transpilation run: candy processing,
// the two-pass overload analysis and TypeScript emission, chained as
// pipeline stages over a shared context.
package transpiler

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/overloads"
)

// Session owns the cross-unit analysis state for one transpilation run.
// The overload index lives here, not in any single compilation unit, so a
// unit's code generator can ask about overload groups declared in units
// processed earlier in the same session. A session is single-threaded:
// callers must not share one across goroutines.
type Session struct {
	// ID distinguishes this session's artifacts (staging dirs, logs).
	ID string

	Config  *config.Config
	Handler *diagnostics.Handler

	// Index is the session-wide overload index.
	Index *overloads.Index
}

// NewSession creates a session and its working directory.
func NewSession(cfg *config.Config, handler *diagnostics.Handler) (*Session, error) {
	if err := os.MkdirAll(cfg.WorkingDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	return &Session{
		ID:      uuid.NewString(),
		Config:  cfg,
		Handler: handler,
		Index:   overloads.NewIndex(),
	}, nil
}

// Close tears the session down. Analysis results obtained from the session
// must not be used afterwards.
func (s *Session) Close() error {
	s.Index = nil
	return nil
}
