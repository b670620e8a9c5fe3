package session

import (
	"github.com/souhardya/vervoer-core/internal/backend"
)

// State is the authentication state of the session machine.
type State string

const (
	// StateUnknown means the persisted token has not been read yet.
	// This is the only initial state.
	StateUnknown State = "unknown"

	// StateAuthenticated means a token is held in memory.
	StateAuthenticated State = "authenticated"

	// StateUnauthenticated means no token is held. Ambiguous situations
	// (storage failure, expired token) always resolve here: fail closed.
	StateUnauthenticated State = "unauthenticated"
)

// Snapshot is a consistent copy of the session at one point in time.
//
// Token is nil when logged out. Profile is whatever was last successfully
// fetched and may be momentarily stale immediately after a token change,
// until the background refetch completes.
//
// The token never serializes: anything shell-facing projects a Snapshot into
// a derived view instead.
type Snapshot struct {
	Token   *string       `json:"-"`
	Profile *backend.User `json:"profile"`
	Loading bool          `json:"loading"`
}

// State derives the machine state from the snapshot.
func (s Snapshot) State() State {
	switch {
	case s.Loading:
		return StateUnknown
	case s.Token != nil:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// Authenticated reports whether a token is held and trustworthy.
func (s Snapshot) Authenticated() bool {
	return !s.Loading && s.Token != nil
}
