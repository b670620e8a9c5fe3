package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/souhardya/vervoer-core/internal/alerts"
	"github.com/souhardya/vervoer-core/internal/backend"
)

// Error represents a structured error response.
type Error struct {
	Status  int               `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeAuthFailed    = "auth_failed"
	ErrCodeConflict      = "conflict"
	ErrCodeInternal      = "internal_error"
	ErrCodeValidation    = "validation_error"
	ErrCodeBackendDown   = "backend_unreachable"
	ErrCodeDeviceOffline = "device_offline"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeValidationError writes a 422 response carrying per-field messages.
func writeValidationError(w http.ResponseWriter, verrs backend.ValidationErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Fields:  verrs,
	})
}

// writeBackendError maps a backend client failure onto the local API.
//
// Auth rejections keep the backend's status and display message so the shell
// can show them verbatim. Transport failures become 502: the backend never
// saw the request.
func writeBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, backend.ErrNoToken) {
		writeError(w, http.StatusUnauthorized, ErrCodeAuthFailed, "Not logged in.")
		return
	}

	var authErr *backend.AuthError
	if errors.As(err, &authErr) {
		status := authErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		writeError(w, status, ErrCodeAuthFailed, authErr.DisplayMessage())
		return
	}

	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		writeError(w, http.StatusBadGateway, ErrCodeBackendDown,
			"Could not reach the Vervoer service. Check your connection.")
		return
	}

	writeInternalError(w, "unexpected backend failure")
}

// writeAlertsError maps alert pipeline failures onto the local API.
func writeAlertsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, alerts.ErrDeviceOffline):
		writeError(w, http.StatusConflict, ErrCodeDeviceOffline,
			"Connect to device to receive updates.")
	case errors.Is(err, alerts.ErrUnknownMetric):
		writeNotFound(w, "unknown metric")
	default:
		writeInternalError(w, "alert pipeline failure")
	}
}
