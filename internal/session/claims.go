package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects a bearer token's exp claim without verifying the
// signature. Verification belongs to the backend; the companion only uses the
// claim to discard a token that cannot possibly work any more, so stale
// sessions resolve to "logged out" without a round trip.
//
// Opaque tokens (anything that doesn't parse as a JWT or carries no exp
// claim) are never rejected by inspection.
func TokenExpired(raw string) bool {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
