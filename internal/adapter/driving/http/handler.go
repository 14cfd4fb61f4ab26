// Package httphandler serves the JSON API the browser uses. Every endpoint
// mirrors a remote endpoint and delegates to a domain service, so offline
// responses carry the same shapes as online ones.
package httphandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// Defaults applied when a query parameter is omitted.
const (
	defaultRadius       = 10.0
	defaultDistance     = 3.0
	defaultDifficulty   = model.DifficultyEasy
	defaultWithChildren = true
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	routes         *application.RouteService
	narratives     *application.NarrativeService
	users          *application.UserService
	safety         *application.SafetyService
	encounters     *application.EncounterService
	session        *application.Session
	backendEnabled bool
	logger         *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	routes *application.RouteService,
	narratives *application.NarrativeService,
	users *application.UserService,
	safety *application.SafetyService,
	encounters *application.EncounterService,
	session *application.Session,
	backendEnabled bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		routes:         routes,
		narratives:     narratives,
		users:          users,
		safety:         safety,
		encounters:     encounters,
		session:        session,
		backendEnabled: backendEnabled,
		logger:         logger,
	}
}

// RegisterAPIRoutes registers all API routes on mux. A non-nil gatherer is
// additionally served at /metrics.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler, gatherer prometheus.Gatherer) {
	mux.HandleFunc("GET /api/v1/routes/nearby", h.NearbyRoutes)
	mux.HandleFunc("GET /api/v1/routes/generate", h.GenerateRoute)
	mux.HandleFunc("GET /api/v1/routes/{id}", h.GetRoute)
	mux.HandleFunc("POST /api/v1/routes/saved", h.SaveRoute)

	mux.HandleFunc("GET /api/v1/narratives/generate/{routeID}", h.GenerateNarratives)
	mux.HandleFunc("GET /api/v1/narratives/preview/{routeID}", h.PreviewNarratives)

	mux.HandleFunc("POST /api/v1/users/login", h.Login)
	mux.HandleFunc("POST /api/v1/users/logout", h.Logout)
	mux.HandleFunc("POST /api/v1/users/register", h.Register)
	mux.HandleFunc("GET /api/v1/users/profile", h.Profile)
	mux.HandleFunc("GET /api/v1/users/family/{id}", h.GetFamily)
	mux.HandleFunc("GET /api/v1/users/family/{id}/progress", h.GetFamilyProgress)
	mux.HandleFunc("PUT /api/v1/users/preferences", h.UpdatePreferences)
	mux.HandleFunc("POST /api/v1/users/complete-route/{familyID}/{routeID}", h.CompleteRoute)

	mux.HandleFunc("GET /api/v1/safety/route-safety/{routeID}", h.RouteSafety)
	mux.HandleFunc("GET /api/v1/safety/content-check", h.CheckContent)
	mux.HandleFunc("GET /api/v1/safety/parental-controls/{familyID}", h.ParentalControls)
	mux.HandleFunc("POST /api/v1/safety/parental-controls/{familyID}", h.UpdateParentalControls)
	mux.HandleFunc("POST /api/v1/safety/report-issue/{routeID}", h.ReportIssue)

	mux.HandleFunc("GET /api/v1/ar-encounters/generate/{routeID}", h.GenerateEncounters)
	mux.HandleFunc("GET /api/v1/ar-encounters/{id}", h.EncounterDetails)

	mux.HandleFunc("GET /api/v1/status", h.Status)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}

// NearbyRoutes lists trails around a point.
func (h *Handler) NearbyRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := floatParam(q.Get("lat"), "lat", 0, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := floatParam(q.Get("lng"), "lng", 0, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := floatParam(q.Get("radius"), "radius", defaultRadius, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.routes.NearbyRoutes(r.Context(), lat, lng, radius))
}

// GenerateRoute builds a trail from a starting point.
func (h *Handler) GenerateRoute(w http.ResponseWriter, r *http.Request) {
	params, err := parseRouteParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.routes.GenerateRoute(r.Context(), params))
}

// GetRoute returns one trail by identifier.
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.routes.GetRoute(r.Context(), r.PathValue("id")))
}

// SaveRoute bookmarks a trail for the signed-in family.
func (h *Handler) SaveRoute(w http.ResponseWriter, r *http.Request) {
	var req SaveRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RouteID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body: route_id is required")
		return
	}

	result := h.routes.SaveRoute(r.Context(), req.RouteID)
	writeJSON(w, actionStatus(result), result)
}

// GenerateNarratives returns the stories for a trail.
func (h *Handler) GenerateNarratives(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode, err := modeParam(q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var childAge int
	if v := q.Get("child_age"); v != "" {
		childAge, err = strconv.Atoi(v)
		if err != nil || childAge < 0 {
			writeError(w, http.StatusBadRequest, "invalid child_age")
			return
		}
	}

	opts := model.NarrativeOptions{Mode: mode, ChildAge: childAge, Language: q.Get("language")}
	writeJSON(w, http.StatusOK, h.narratives.Generate(r.Context(), r.PathValue("routeID"), opts))
}

// PreviewNarratives returns the parent-facing preview of a trail's stories.
func (h *Handler) PreviewNarratives(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.narratives.Preview(r.Context(), r.PathValue("routeID"), mode))
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request body: email is required")
		return
	}

	result := h.users.Login(r.Context(), req.Email, req.Password)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, result)
}

// Logout forgets the session token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	result := h.users.Logout(r.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

// Register creates a family account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var family model.Family
	if err := json.NewDecoder(r.Body).Decode(&family); err != nil || family.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid request body: family name is required")
		return
	}

	writeJSON(w, http.StatusCreated, h.users.Register(r.Context(), family))
}

// Profile returns the signed-in user's profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.users.FetchProfile(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.AuthRequiredMessage)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetFamily returns a family and its members.
func (h *Handler) GetFamily(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.users.GetFamily(r.Context(), r.PathValue("id")))
}

// GetFamilyProgress returns a family's achievements.
func (h *Handler) GetFamilyProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.users.GetFamilyProgress(r.Context(), r.PathValue("id")))
}

// UpdatePreferences replaces the signed-in user's preferences.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs model.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil || prefs == nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected a JSON object")
		return
	}

	result := h.users.UpdatePreferences(r.Context(), prefs)
	writeJSON(w, actionStatus(result), result)
}

// Status reports authentication and connectivity.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(h.session.AuthState(r.Context()), h.session.Connection(), h.backendEnabled))
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseRouteParams reads the route generation query. Omitted values take
// the same defaults as the remote service.
func parseRouteParams(r *http.Request) (model.RouteParams, error) {
	q := r.URL.Query()

	lat, err := floatParam(q.Get("start_lat"), "start_lat", 0, true)
	if err != nil {
		return model.RouteParams{}, err
	}
	lng, err := floatParam(q.Get("start_lng"), "start_lng", 0, true)
	if err != nil {
		return model.RouteParams{}, err
	}
	distance, err := floatParam(q.Get("distance"), "distance", defaultDistance, false)
	if err != nil {
		return model.RouteParams{}, err
	}

	difficulty := defaultDifficulty
	if v := q.Get("difficulty"); v != "" {
		difficulty = model.Difficulty(v)
		if !difficulty.Valid() {
			return model.RouteParams{}, fmt.Errorf("invalid difficulty %q", v)
		}
	}

	withChildren := defaultWithChildren
	if v := q.Get("with_children"); v != "" {
		withChildren, err = strconv.ParseBool(v)
		if err != nil {
			return model.RouteParams{}, fmt.Errorf("invalid with_children %q", v)
		}
	}

	return model.RouteParams{
		StartLat:     lat,
		StartLng:     lng,
		Distance:     distance,
		Difficulty:   difficulty,
		WithChildren: withChildren,
	}, nil
}

// floatParam parses a float query value. Missing values are an error when
// required, otherwise def.
func floatParam(v, name string, def float64, required bool) (float64, error) {
	if v == "" {
		if required {
			return 0, fmt.Errorf("missing %s", name)
		}
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return f, nil
}

// modeParam parses a narrative mode, defaulting to history.
func modeParam(v string) (model.NarrativeMode, error) {
	if v == "" {
		return model.NarrativeModeHistory, nil
	}
	mode := model.NarrativeMode(v)
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q", v)
	}
	return mode, nil
}
