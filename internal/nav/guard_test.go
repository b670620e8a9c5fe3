package nav

import (
	"context"
	"testing"

	"github.com/souhardya/vervoer-core/internal/backend"
	"github.com/souhardya/vervoer-core/internal/session"
)

func tokenSnap(token string) session.Snapshot {
	return session.Snapshot{Token: &token}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"index", LocationIndex},
		{"auth", LocationAuth},
		{"main", LocationMain},
		{"profile", LocationProfile},
		{"  Main  ", LocationMain},
		{"AUTH", LocationAuth},
		{"settings", LocationOther},
		{"", LocationOther},
	}

	for _, tt := range tests {
		if got := ParseLocation(tt.raw); got != tt.want {
			t.Errorf("ParseLocation(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDecideRedirect(t *testing.T) {
	tests := []struct {
		name       string
		snap       session.Snapshot
		loc        Location
		wantTarget Location
		wantOK     bool
	}{
		{
			name:   "loading never redirects even on protected surface",
			snap:   session.Snapshot{Loading: true},
			loc:    LocationMain,
			wantOK: false,
		},
		{
			name:   "loading never redirects on auth surface",
			snap:   session.Snapshot{Loading: true, Token: strPtr("tok")},
			loc:    LocationAuth,
			wantOK: false,
		},
		{
			name:       "logged out on main redirects to auth",
			snap:       session.Snapshot{},
			loc:        LocationMain,
			wantTarget: LocationAuth,
			wantOK:     true,
		},
		{
			name:       "logged out on profile redirects to auth",
			snap:       session.Snapshot{},
			loc:        LocationProfile,
			wantTarget: LocationAuth,
			wantOK:     true,
		},
		{
			name:   "logged out on auth stays",
			snap:   session.Snapshot{},
			loc:    LocationAuth,
			wantOK: false,
		},
		{
			name:   "logged out on other stays",
			snap:   session.Snapshot{},
			loc:    LocationOther,
			wantOK: false,
		},
		{
			name:       "logged in on auth redirects to main",
			snap:       tokenSnap("tok"),
			loc:        LocationAuth,
			wantTarget: LocationMain,
			wantOK:     true,
		},
		{
			name:       "logged in on index redirects to main",
			snap:       tokenSnap("tok"),
			loc:        LocationIndex,
			wantTarget: LocationMain,
			wantOK:     true,
		},
		{
			name:   "logged in on main stays",
			snap:   tokenSnap("tok"),
			loc:    LocationMain,
			wantOK: false,
		},
		{
			name:   "logged in on profile stays",
			snap:   tokenSnap("tok"),
			loc:    LocationProfile,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, ok := DecideRedirect(tt.snap, tt.loc)
			if ok != tt.wantOK {
				t.Fatalf("DecideRedirect() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if redirect.Target != tt.wantTarget {
				t.Errorf("Target = %v, want %v", redirect.Target, tt.wantTarget)
			}
			if !redirect.Replace || !redirect.ClearHistory {
				t.Errorf("Replace/ClearHistory = %v/%v, want true/true",
					redirect.Replace, redirect.ClearHistory)
			}
		})
	}
}

func TestGuard_SetLocationEvaluates(t *testing.T) {
	store := session.NewStore(loggedOutStorage{}, noProfile{}, nil)

	var got []Redirect
	guard := NewGuard(store, SinkFunc(func(r Redirect) { got = append(got, r) }), nil)

	// Still loading: no redirect regardless of location.
	guard.SetLocation(LocationMain)
	if len(got) != 0 {
		t.Fatalf("redirects while loading = %d, want 0", len(got))
	}

	store.Refresh(context.Background())

	// Now settled logged-out; reporting a protected surface must redirect.
	guard.SetLocation(LocationMain)
	if len(got) != 1 {
		t.Fatalf("redirects = %d, want 1", len(got))
	}
	if got[0].Target != LocationAuth {
		t.Errorf("Target = %v, want %v", got[0].Target, LocationAuth)
	}
	if guard.Location() != LocationAuth {
		t.Errorf("guard location = %v, want %v after redirect", guard.Location(), LocationAuth)
	}

	// The expected follow-up report is a no-op.
	guard.SetLocation(LocationAuth)
	if len(got) != 1 {
		t.Errorf("redirects after settling = %d, want still 1", len(got))
	}
}

func TestGuard_RedirectsOnceAfterLogin(t *testing.T) {
	store := session.NewStore(loggedOutStorage{}, noProfile{}, nil)
	store.Refresh(context.Background())

	var got []Redirect
	guard := NewGuard(store, SinkFunc(func(r Redirect) { got = append(got, r) }), nil)
	guard.SetLocation(LocationAuth)

	tok := "tok-fresh"
	store.SetToken(&tok)
	guard.evaluate(store.Snapshot())

	if len(got) != 1 {
		t.Fatalf("redirects = %d, want 1", len(got))
	}
	if got[0].Target != LocationMain {
		t.Errorf("Target = %v, want %v", got[0].Target, LocationMain)
	}

	// Re-evaluating the same snapshot must not redirect again.
	guard.evaluate(store.Snapshot())
	if len(got) != 1 {
		t.Errorf("redirects after re-evaluation = %d, want still 1", len(got))
	}
}

func strPtr(s string) *string { return &s }

// loggedOutStorage always reports no persisted token.
type loggedOutStorage struct{}

func (loggedOutStorage) Load(context.Context) (string, error) { return "", session.ErrNoStoredToken }
func (loggedOutStorage) Save(context.Context, string) error   { return nil }
func (loggedOutStorage) Clear(context.Context) error          { return nil }

// noProfile always reports no session.
type noProfile struct{}

func (noProfile) Profile(context.Context) (*backend.User, error) { return nil, backend.ErrNoToken }
