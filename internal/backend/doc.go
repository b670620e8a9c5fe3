// Package backend is the client for the remote Vervoer REST API.
//
// The backend is an opaque HTTP collaborator: the companion sends JSON
// requests and reads `{success, token, user, message}` envelopes back. The
// package owns the client-side form validation that gates each auth flow and
// the error taxonomy the rest of the daemon relies on:
//
//   - ValidationErrors — field-scoped, produced before any request is sent
//   - *AuthError       — backend-reported failure, carries the banner message
//   - *NetworkError    — transport failure with no response
//
// No operation retries. Every failure is terminal for that user action and
// requires a new user-initiated attempt.
package backend
