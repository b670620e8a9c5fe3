package session

import "errors"

// Domain errors for the session package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, session.ErrNoStoredToken) {
//	    // treat as logged out
//	}
var (
	// ErrNoStoredToken is returned when the storage holds no token.
	// Callers treat this as "unauthenticated", never as a failure.
	ErrNoStoredToken = errors.New("session: no stored token")

	// ErrStorageUnavailable is returned when the storage read/write itself
	// failed. The store swallows it during refresh (fail-closed to nil).
	ErrStorageUnavailable = errors.New("session: storage unavailable")
)
