package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Auth actions loop through the remote backend.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.Post("/forgot-password", s.handleForgotPassword)
			r.Post("/verify-otp", s.handleVerifyOTP)
			r.Post("/reset-password", s.handleResetPassword)
			r.Post("/google", s.handleGoogleAuth)
			r.Post("/logout", s.handleLogout)
		})

		// Session and profile
		r.Get("/session", s.handleGetSession)
		r.Post("/session/refresh", s.handleRefreshSession)
		r.Patch("/profile", s.handleUpdateProfile)

		// Shell location reporting
		r.Get("/location", s.handleGetLocation)
		r.Put("/location", s.handleSetLocation)

		// Alert log
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.handleListAlerts)
			r.Delete("/", s.handleClearAlerts)
		})

		// Device connection and live vitals
		r.Get("/connection", s.handleGetConnection)
		r.Put("/connection", s.handleSetConnection)
		r.Route("/vitals", func(r chi.Router) {
			r.Get("/", s.handleGetVitals)
			r.Get("/history", s.handleVitalsHistory)
			r.Post("/{metric}/nudge", s.handleNudgeVital)
		})

		// WebSocket event stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"device":  s.deviceID,
	})
}
