package api

import (
	"net/http"

	"github.com/souhardya/vervoer-core/internal/backend"
	"github.com/souhardya/vervoer-core/internal/nav"
	"github.com/souhardya/vervoer-core/internal/session"
)

// SessionView is the shell-facing projection of the session. The raw token
// stays inside the companion; the shell only needs the derived state.
type SessionView struct {
	State         session.State `json:"state"`
	Loading       bool          `json:"loading"`
	Authenticated bool          `json:"authenticated"`
	User          *backend.User `json:"user,omitempty"`
}

// sessionView projects a snapshot for the shell.
func sessionView(snap session.Snapshot) SessionView {
	return SessionView{
		State:         snap.State(),
		Loading:       snap.Loading,
		Authenticated: snap.Authenticated(),
		User:          snap.Profile,
	}
}

// handleGetSession returns the current session view.
func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sessionView(s.sessions.Snapshot()))
}

// handleRefreshSession re-reads the persisted token and returns the settled
// session view.
func (s *Server) handleRefreshSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Refresh(r.Context())
	writeJSON(w, http.StatusOK, sessionView(s.sessions.Snapshot()))
}

// handleUpdateProfile proxies PATCH /profile to the remote backend and
// refreshes the cached profile on success.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req backend.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := s.backend.UpdateProfile(r.Context(), req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	// Refresh re-reads the token and refetches the profile, so the cached
	// copy converges on what the backend now holds.
	s.sessions.Refresh(r.Context())

	writeJSON(w, http.StatusOK, authResult{Message: env.Message, User: env.User})
}

// locationReport is the payload for PUT /location.
type locationReport struct {
	Location string `json:"location"`
}

// handleGetLocation returns the shell's last reported location.
func (s *Server) handleGetLocation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, locationReport{Location: string(s.guard.Location())})
}

// handleSetLocation records a shell location report. Any resulting redirect
// arrives as a nav.redirect event on the WebSocket.
func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var report locationReport
	if !decodeJSON(w, r, &report) {
		return
	}
	if report.Location == "" {
		writeBadRequest(w, "location is required")
		return
	}

	loc := nav.ParseLocation(report.Location)
	s.guard.SetLocation(loc)

	writeJSON(w, http.StatusOK, locationReport{Location: string(s.guard.Location())})
}
