package session

import (
	"context"
	"errors"
	"sync"

	"github.com/souhardya/vervoer-core/internal/backend"
)

// ProfileFetcher is the interface the store needs from the backend client.
type ProfileFetcher interface {
	// Profile fetches the profile for the current session token.
	Profile(ctx context.Context) (*backend.User, error)
}

// Logger is the minimal logging interface the store uses.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is used when no logger is set.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Store is the single authority for the current auth token and the profile it
// belongs to. It is an explicit, constructor-injected object: screens and
// the route guard receive it as a dependency, never through a global.
//
// State transitions (refresh, set, logout) notify subscribers with a
// coalesced Snapshot; slow subscribers see the latest state, not every
// intermediate one.
//
// Failure policy is fail-closed: any ambiguity during refresh (storage
// unavailable, expired token) resolves to token == nil. Showing protected
// content to a logged-out user is the one outcome the store must prevent.
//
// Thread Safety: all methods are safe for concurrent use.
type Store struct {
	storage  TokenStorage
	profiles ProfileFetcher
	logger   Logger

	mu      sync.RWMutex
	token   *string
	profile *backend.User
	loading bool

	subMu sync.Mutex
	subs  map[chan Snapshot]struct{}
}

// NewStore creates a session store in the Unknown state.
//
// The store holds no token and reports loading until the first Refresh
// completes the storage read.
//
// Parameters:
//   - storage: Persisted token storage
//   - profiles: Backend profile fetcher
//   - logger: Logger instance (may be nil)
func NewStore(storage TokenStorage, profiles ProfileFetcher, logger Logger) *Store {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Store{
		storage:  storage,
		profiles: profiles,
		logger:   logger,
		loading:  true,
		subs:     make(map[chan Snapshot]struct{}),
	}
}

// Snapshot returns a consistent copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked builds a Snapshot. Caller must hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Loading: s.loading}
	if s.token != nil {
		t := *s.token
		snap.Token = &t
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// TokenString returns the current token or "" when logged out.
// This is the backend.TokenProvider the REST client is constructed with.
func (s *Store) TokenString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return ""
	}
	return *s.token
}

// Refresh reads the token from persisted storage, stores it as current state,
// and schedules an asynchronous profile refetch.
//
// Failure semantics: a missing token, a storage error, and an expired token
// all resolve to token == nil. Refresh is idempotent; concurrent overlapping
// calls are not deduplicated and the last write to token wins, which is
// acceptable for a single-user device-local client.
func (s *Store) Refresh(ctx context.Context) {
	s.setLoading(true)

	var next *string
	raw, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, ErrNoStoredToken):
		s.logger.Debug("no persisted token, session is logged out")
	case err != nil:
		// Storage trouble is indistinguishable from "no token" for the
		// user; fail closed rather than risk showing protected content.
		s.logger.Warn("token storage unavailable, treating as logged out", "error", err)
	case TokenExpired(raw):
		s.logger.Debug("persisted token has expired, discarding")
	default:
		next = &raw
	}

	s.mu.Lock()
	s.token = next
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	// The refetch must outlive the caller: API handlers pass the request
	// context, which is canceled as soon as the handler returns.
	go s.refetchProfile(context.WithoutCancel(ctx))
}

// SetToken overrides the in-memory token without touching persisted storage.
// Used to optimistically clear state before a storage write completes.
func (s *Store) SetToken(token *string) {
	s.mu.Lock()
	if token != nil {
		t := *token
		s.token = &t
	} else {
		s.token = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Logout clears the in-memory token, clears persisted storage, and triggers a
// profile refetch. It always succeeds from the caller's perspective: even if
// the storage deletion fails, the end state is token == nil in memory, and the
// route guard reacts to that. Storage is deliberately not re-read here; a
// failed Clear must not resurrect the session.
func (s *Store) Logout(ctx context.Context) {
	// Optimistically clear in-memory state first so observers react
	// before the storage write lands.
	s.SetToken(nil)

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("clearing persisted token failed, session stays logged out in memory", "error", err)
	}

	go s.refetchProfile(context.WithoutCancel(ctx))
}

// refetchProfile fetches the profile for the current token.
//
// Stale-read policy: on any failure the previous profile is left in place and
// no retry is scheduled. The profile is only ever replaced by a successful
// fetch.
func (s *Store) refetchProfile(ctx context.Context) {
	user, err := s.profiles.Profile(ctx)
	if err != nil {
		if !errors.Is(err, backend.ErrNoToken) {
			s.logger.Warn("profile refetch failed, keeping last known profile", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.profile = user
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// setLoading flips the loading flag and notifies subscribers.
func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Subscribe registers a change listener. The returned channel has a buffer of
// one and is coalesced: if the subscriber lags, it receives only the latest
// snapshot. Call Unsubscribe when done.
func (s *Store) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(ch chan Snapshot) {
	s.subMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.subMu.Unlock()
}

// notify delivers a snapshot to all subscribers, replacing any undelivered
// previous snapshot.
func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for ch := range s.subs {
		// Drain a stale snapshot, then deliver the fresh one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
