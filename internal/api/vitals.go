package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/souhardya/vervoer-core/internal/telemetry"
)

// handleListAlerts returns the alert log, newest first.
func (s *Server) handleListAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": s.alertLog.Entries(),
	})
}

// handleClearAlerts discards the alert history.
func (s *Server) handleClearAlerts(w http.ResponseWriter, _ *http.Request) {
	s.alertLog.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// connectionState is the payload for the connection endpoints.
type connectionState struct {
	Connected bool `json:"connected"`
}

// handleGetConnection returns the device connection state.
func (s *Server) handleGetConnection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, connectionState{Connected: s.evaluator.Connected()})
}

// handleSetConnection toggles the device connection state locally. The real
// state normally comes from the device status topic; this endpoint backs the
// shell's simulation control.
func (s *Server) handleSetConnection(w http.ResponseWriter, r *http.Request) {
	var req connectionState
	if !decodeJSON(w, r, &req) {
		return
	}

	changed := s.evaluator.Connected() != req.Connected
	s.evaluator.SetConnected(req.Connected)
	if changed {
		s.hub.Broadcast(ChannelDeviceConnection, telemetry.ConnectionUpdate{Connected: req.Connected})
	}

	writeJSON(w, http.StatusOK, connectionState{Connected: s.evaluator.Connected()})
}

// handleGetVitals returns the current reading per metric.
func (s *Server) handleGetVitals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": s.evaluator.Connected(),
		"vitals":    s.evaluator.Values(),
	})
}

// defaultHistoryWindow is how far back /vitals/history looks by default.
const defaultHistoryWindow = time.Hour

// handleVitalsHistory returns historical readings from the history store.
//
// Query parameters: metric (optional filter), window (Go duration, default 1h).
func (s *Server) handleVitalsHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "vitals history is not enabled")
		return
	}

	window := defaultHistoryWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			writeBadRequest(w, "window must be a positive duration")
			return
		}
		window = parsed
	}

	samples, err := s.history.QueryVitals(r.Context(), s.deviceID, r.URL.Query().Get("metric"), window)
	if err != nil {
		s.logger.Error("vitals history query failed", "error", err)
		writeInternalError(w, "querying vitals history failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"samples": samples,
	})
}

// nudgeRequest is the payload for POST /vitals/{metric}/nudge.
type nudgeRequest struct {
	Delta float64 `json:"delta"`
}

// handleNudgeVital shifts a metric by a delta, running the result through the
// threshold evaluator. Backs the shell's simulation controls.
func (s *Server) handleNudgeVital(w http.ResponseWriter, r *http.Request) {
	var req nudgeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	metric := chi.URLParam(r, "metric")
	value, err := s.evaluator.Nudge(metric, req.Delta)
	if err != nil {
		writeAlertsError(w, err)
		return
	}

	s.hub.Broadcast(ChannelVitalsUpdated, telemetry.VitalUpdate{Metric: metric, Value: value})

	writeJSON(w, http.StatusOK, map[string]any{
		"metric": metric,
		"value":  value,
	})
}
