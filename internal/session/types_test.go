package session

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshot_State(t *testing.T) {
	tok := "tok"
	tests := []struct {
		name string
		snap Snapshot
		want State
	}{
		{"loading is unknown", Snapshot{Loading: true, Token: &tok}, StateUnknown},
		{"token is authenticated", Snapshot{Token: &tok}, StateAuthenticated},
		{"no token is unauthenticated", Snapshot{}, StateUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_JSONNeverCarriesToken(t *testing.T) {
	tok := "tok-secret"
	data, err := json.Marshal(Snapshot{Token: &tok})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if strings.Contains(string(data), "tok-secret") {
		t.Errorf("serialized snapshot leaked the token: %s", data)
	}
	if strings.Contains(strings.ToLower(string(data)), "token") {
		t.Errorf("serialized snapshot carries a token field: %s", data)
	}
}
