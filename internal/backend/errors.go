package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoToken is returned by Profile when no session token is available.
var ErrNoToken = errors.New("backend: no session token")

// AuthError is a failure reported by the backend itself: wrong credentials,
// expired OTP, already-registered email, and so on. It carries the display
// message the UI shows in its error banner. Auth errors never alter session
// state.
type AuthError struct {
	// StatusCode is the HTTP status the backend responded with.
	StatusCode int

	// Message is the backend's human-readable failure description.
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("backend: request rejected (%d): %s", e.StatusCode, e.Message)
}

// DisplayMessage returns the banner text for the UI, falling back to a
// generic message when the backend sent none.
func (e *AuthError) DisplayMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Request failed. Please try again."
}

// NetworkError is a transport failure with no backend response: DNS failure,
// refused connection, timeout. The prior session state is left intact.
type NetworkError struct {
	// Op names the operation that failed (e.g. "login").
	Op string

	// Err is the underlying transport error.
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend: %s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationErrors is a set of client-side, field-scoped validation failures.
// These are produced before any request is sent and never leave the form that
// raised them.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	return "backend: validation failed: " + strings.Join(fields, ", ")
}

// Field returns the message for a field, or "" if the field is valid.
func (v ValidationErrors) Field(name string) string {
	return v[name]
}
