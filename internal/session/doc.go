// Package session owns the authentication session against the remote Vervoer
// backend.
//
// The Store is the single source of truth for "is a user authenticated". It
// holds the in-memory token and the last fetched profile, persists the token
// through TokenStorage, and fans out coalesced change snapshots to
// subscribers (the route guard and the local API layer).
//
// # State machine
//
// States: Unknown (loading), Authenticated, Unauthenticated.
//
//	Unknown         → Unauthenticated   storage read yields no token
//	Unknown         → Authenticated     storage read yields a token
//	Authenticated   → Unauthenticated   logout or storage clear
//	Unauthenticated → Authenticated     successful login/register/OTP-reset/
//	                                    Google auth (each writes a token and
//	                                    calls Refresh)
//
// Unknown is the only initial state; the machine runs for the process
// lifetime.
//
// # Failure policy
//
// Fail closed. Storage errors and expired tokens during Refresh resolve to
// token == nil: ambiguous state is always treated as "logged out" rather than
// risking protected content being shown.
package session
