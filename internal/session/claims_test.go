package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return raw
}

func TestTokenExpired(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name: "expired an hour ago",
			token: signedToken(t, jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			want: true,
		},
		{
			name: "valid for another hour",
			token: signedToken(t, jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			want: false,
		},
		{
			name:  "no exp claim",
			token: signedToken(t, jwt.MapClaims{"sub": "u1"}),
			want:  false,
		},
		{
			name:  "opaque token",
			token: "4f2d9a1e-not-a-jwt",
			want:  false,
		},
		{
			name:  "empty token",
			token: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
