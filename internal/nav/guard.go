package nav

import (
	"context"
	"sync"

	"github.com/souhardya/vervoer-core/internal/session"
)

// Redirect instructs the UI shell to navigate.
//
// Replace and ClearHistory are always set: a guard-initiated navigation must
// not leave the vacated surface reachable through the back stack.
type Redirect struct {
	Target       Location `json:"target"`
	Replace      bool     `json:"replace"`
	ClearHistory bool     `json:"clearHistory"`
}

// DecideRedirect is the guard's policy, kept as a pure function over the
// session snapshot and the current location.
//
// Rules, in order:
//   - while the session is still loading, never redirect
//   - no token on a protected surface redirects to the auth surface
//   - a token on an auth-only surface redirects to the main surface
//
// Returns:
//   - Redirect: The navigation to perform
//   - bool: Whether a redirect is required at all
func DecideRedirect(snap session.Snapshot, loc Location) (Redirect, bool) {
	if snap.Loading {
		return Redirect{}, false
	}

	authenticated := snap.Token != nil

	if !authenticated && loc.Protected() {
		return Redirect{Target: LocationAuth, Replace: true, ClearHistory: true}, true
	}
	if authenticated && loc.AuthOnly() {
		return Redirect{Target: LocationMain, Replace: true, ClearHistory: true}, true
	}

	return Redirect{}, false
}

// Sink receives guard-issued redirects. The API layer implements this by
// pushing a nav.redirect event over the WebSocket hub.
type Sink interface {
	Redirect(Redirect)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Redirect)

// Redirect implements Sink.
func (f SinkFunc) Redirect(r Redirect) { f(r) }

// Logger is the minimal logging interface the guard uses.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Guard watches the session store and the shell's reported location and
// emits redirects whenever the combination violates the access policy.
//
// The guard is deliberately stateless beyond "current location": every
// decision is recomputed from the latest snapshot, so a redirect is emitted
// exactly once per violating (session, location) pair, and the shell's
// follow-up location report resolves the violation.
type Guard struct {
	sessions *session.Store
	sink     Sink
	logger   Logger

	mu       sync.Mutex
	location Location
}

// NewGuard creates a route guard.
//
// Parameters:
//   - sessions: Session store to watch
//   - sink: Redirect receiver
//   - logger: Logger instance (may be nil)
func NewGuard(sessions *session.Store, sink Sink, logger Logger) *Guard {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Guard{
		sessions: sessions,
		sink:     sink,
		logger:   logger,
		location: LocationIndex,
	}
}

// Location returns the shell's last reported location.
func (g *Guard) Location() Location {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.location
}

// SetLocation records a shell location report and re-evaluates the policy.
func (g *Guard) SetLocation(loc Location) {
	g.mu.Lock()
	g.location = loc
	g.mu.Unlock()

	g.evaluate(g.sessions.Snapshot())
}

// Run subscribes to session changes and re-evaluates the policy on every
// snapshot until ctx is cancelled. Blocks; run it in its own goroutine.
func (g *Guard) Run(ctx context.Context) {
	ch := g.sessions.Subscribe()
	defer g.sessions.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			g.evaluate(snap)
		}
	}
}

// evaluate applies the policy to one snapshot against the current location.
func (g *Guard) evaluate(snap session.Snapshot) {
	g.mu.Lock()
	loc := g.location
	g.mu.Unlock()

	redirect, ok := DecideRedirect(snap, loc)
	if !ok {
		return
	}

	g.logger.Debug("route guard redirecting",
		"from", string(loc),
		"to", string(redirect.Target),
		"authenticated", snap.Token != nil,
	)

	// Record the target as the expected location so a slow shell doesn't
	// trigger the same redirect again on the next session notification.
	g.mu.Lock()
	g.location = redirect.Target
	g.mu.Unlock()

	g.sink.Redirect(redirect)
}
