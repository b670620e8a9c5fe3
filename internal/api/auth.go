package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/souhardya/vervoer-core/internal/backend"
)

// decodeJSON decodes a request body, reporting malformed payloads as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// adoptToken persists a freshly issued token and refreshes the session from
// storage, which also kicks off the profile refetch.
func (s *Server) adoptToken(ctx context.Context, token string) {
	if err := s.tokens.Save(ctx, token); err != nil {
		// The session still works for this run; it just won't survive a
		// restart. Surfacing this to the shell would not help the user.
		s.logger.Warn("persisting session token failed", "error", err)
	}
	s.sessions.Refresh(ctx)
}

// mergeValidation folds several field-validation results into one set.
func mergeValidation(sets ...backend.ValidationErrors) backend.ValidationErrors {
	merged := backend.ValidationErrors{}
	for _, set := range sets {
		for field, msg := range set {
			merged[field] = msg
		}
	}
	return merged
}

// authResult is the response for auth actions that may establish a session.
type authResult struct {
	Message string        `json:"message"`
	User    *backend.User `json:"user,omitempty"`
}

// handleLogin proxies POST /auth/login to the remote backend and, on success,
// establishes the local session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req backend.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verrs := backend.ValidateLogin(req); len(verrs) > 0 {
		writeValidationError(w, verrs)
		return
	}

	env, err := s.backend.Login(r.Context(), req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if env.Token != "" {
		s.adoptToken(r.Context(), env.Token)
	}
	writeJSON(w, http.StatusOK, authResult{Message: env.Message, User: env.User})
}

// handleRegister proxies POST /auth/register. A token in the response means
// the backend logs new accounts straight in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verrs := backend.ValidateRegister(req); len(verrs) > 0 {
		writeValidationError(w, verrs)
		return
	}

	env, err := s.backend.Register(r.Context(), req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if env.Token != "" {
		s.adoptToken(r.Context(), env.Token)
	}
	writeJSON(w, http.StatusCreated, authResult{Message: env.Message, User: env.User})
}

// handleForgotPassword requests a password-reset OTP for an email address.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req backend.SendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verrs := backend.ValidateEmailField(req.Email); len(verrs) > 0 {
		writeValidationError(w, verrs)
		return
	}

	env, err := s.backend.SendOTP(r.Context(), req.Email)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResult{Message: env.Message})
}

// handleVerifyOTP checks a password-reset OTP.
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req backend.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	verrs := mergeValidation(
		backend.ValidateEmailField(req.Email),
		backend.ValidateOTP(req.OTP),
	)
	if len(verrs) > 0 {
		writeValidationError(w, verrs)
		return
	}

	env, err := s.backend.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResult{Message: env.Message})
}

// handleResetPassword sets a new password after OTP verification. The user
// logs in with the new password afterwards; no session is established here.
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req backend.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	verrs := mergeValidation(
		backend.ValidateEmailField(req.Email),
		backend.ValidateNewPassword(req.NewPassword),
	)
	if len(verrs) > 0 {
		writeValidationError(w, verrs)
		return
	}

	env, err := s.backend.ResetPassword(r.Context(), req.Email, req.NewPassword)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResult{Message: env.Message})
}

// handleGoogleAuth proxies POST /auth/google with a Google OAuth token.
func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req backend.GoogleAuthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AccessToken == "" && req.IDToken == "" {
		writeBadRequest(w, "accessToken or idToken is required")
		return
	}

	env, err := s.backend.GoogleAuth(r.Context(), req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if env.Token != "" {
		s.adoptToken(r.Context(), env.Token)
	}
	writeJSON(w, http.StatusOK, authResult{Message: env.Message, User: env.User})
}

// handleLogout tears down the session. The backend call is best-effort; the
// local session ends regardless.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.backend.Logout(r.Context()); err != nil {
		s.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
	}

	s.sessions.Logout(r.Context())
	writeJSON(w, http.StatusOK, authResult{Message: "Logged out."})
}
