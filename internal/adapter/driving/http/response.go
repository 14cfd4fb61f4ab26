package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// StatusResponse reports the session as seen by this process.
type StatusResponse struct {
	AuthState      string `json:"auth_state"`
	BackendEnabled bool   `json:"backend_enabled"`
	Attempted      bool   `json:"attempted"`
	Reachable      bool   `json:"reachable"`
	Offline        bool   `json:"offline"`
}

// SaveRouteRequest is the JSON body for the save route endpoint.
type SaveRouteRequest struct {
	RouteID string `json:"route_id"`
}

// toStatusResponse converts session state to its JSON representation. The
// app is offline when the backend is disabled or the circuit is open.
func toStatusResponse(auth model.AuthState, conn model.ConnectionState, enabled bool) StatusResponse {
	return StatusResponse{
		AuthState:      string(auth),
		BackendEnabled: enabled,
		Attempted:      conn.Attempted,
		Reachable:      conn.Reachable,
		Offline:        !enabled || conn.CircuitOpen(),
	}
}

// actionStatus maps an ActionResult to an HTTP status code.
func actionStatus(r model.ActionResult) int {
	switch {
	case r.Success:
		return http.StatusOK
	case r.Message == model.AuthRequiredMessage:
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}
