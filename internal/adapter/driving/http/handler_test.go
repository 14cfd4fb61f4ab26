package httphandler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/trailtail/internal/adapter/driving/http"
	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// --- Mock implementations ---

type mockBackend struct {
	mu      sync.Mutex
	payload map[string]any
	calls   []model.RequestDescriptor
}

// Execute answers with the payload registered for the request path prefix,
// or reports the backend unreachable.
func (m *mockBackend) Execute(_ context.Context, req model.RequestDescriptor) model.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	for prefix, v := range m.payload {
		if strings.HasPrefix(req.Path, prefix) {
			data, _ := json.Marshal(v)
			return model.Success(data)
		}
	}
	return model.Absent(model.AbsentTransportError)
}

type memTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *memTokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func (s *memTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// --- Helpers ---

type testServer struct {
	handler http.Handler
	backend *mockBackend
	session *application.Session
}

func newTestServer(t *testing.T, payload map[string]any) testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := &mockBackend{payload: payload}
	session := application.NewSession(&memTokenStore{}, logger)

	h := httphandler.NewHandler(
		application.NewRouteService(backend, session, logger),
		application.NewNarrativeService(backend, logger),
		application.NewUserService(backend, session, logger),
		application.NewSafetyService(backend, session, logger),
		application.NewEncounterService(backend, logger),
		session,
		true,
		logger,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "trailtail_test_total", Help: "test"}))

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, h, reg)

	return testServer{
		handler: httphandler.ApplyMiddleware(mux, logger),
		backend: backend,
		session: session,
	}
}

func (ts testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// --- Tests ---

func TestNearbyRoutes_Offline(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/routes/nearby?lat=47.6&lng=-122.3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	routes := decode[[]model.RouteSummary](t, rec)
	require.Len(t, routes, 2)
	assert.Equal(t, "route_101", routes[0].ID)
	assert.Equal(t, "route_102", routes[1].ID)

	require.Len(t, ts.backend.calls, 1)
	assert.Contains(t, ts.backend.calls[0].Path, "radius=10")
}

func TestNearbyRoutes_BadQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing lat", target: "/api/v1/routes/nearby?lng=1"},
		{name: "invalid lng", target: "/api/v1/routes/nearby?lat=1&lng=east"},
		{name: "invalid radius", target: "/api/v1/routes/nearby?lat=1&lng=1&radius=far"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, ts.backend.calls)
}

func TestGenerateRoute(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/routes/generate?start_lat=1&start_lng=2&difficulty=hard&with_children=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	route := decode[model.Route](t, rec)
	assert.Equal(t, model.DifficultyHard, route.Difficulty)
	assert.Equal(t, "Challenging Adventure Trail", route.Name)

	rec = ts.do(t, http.MethodGet, "/api/v1/routes/generate?start_lat=1&start_lng=2&difficulty=extreme", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoute_PassesThrough(t *testing.T) {
	ts := newTestServer(t, map[string]any{"/routes/": map[string]any{"id": "route_101", "name": "Live Trail"}})

	rec := ts.do(t, http.MethodGet, "/api/v1/routes/route_101", "")

	require.Equal(t, http.StatusOK, rec.Code)
	route := decode[model.Route](t, rec)
	assert.Equal(t, "Live Trail", route.Name)
}

func TestSaveRoute_RequiresAuthentication(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/routes/saved", `{"route_id":"route_101"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	result := decode[model.ActionResult](t, rec)
	assert.Equal(t, model.ActionResult{Success: false, Message: "Authentication required"}, result)
	assert.Empty(t, ts.backend.calls)
}

func TestSaveRoute_InvalidBody(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/routes/saved", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginStatusLogout(t *testing.T) {
	ts := newTestServer(t, map[string]any{
		"/users/login":   map[string]any{"token": "abc", "user": map[string]any{"id": "user_123", "name": "John"}},
		"/users/profile": map[string]any{"id": "user_123", "name": "John"},
	})

	rec := ts.do(t, http.MethodGet, "/api/v1/users/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/users/login", `{"email":"john@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[model.LoginResult](t, rec)
	assert.True(t, login.Success)
	assert.Equal(t, "abc", ts.session.Token())

	rec = ts.do(t, http.MethodGet, "/api/v1/status", "")
	status := decode[httphandler.StatusResponse](t, rec)
	assert.Equal(t, "authenticated", status.AuthState)

	rec = ts.do(t, http.MethodGet, "/api/v1/users/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John", decode[model.User](t, rec).Name)

	rec = ts.do(t, http.MethodPost, "/api/v1/users/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, "anonymous", decode[httphandler.StatusResponse](t, rec).AuthState)
}

func TestLogin_Offline(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/users/login", `{"email":"john@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decode[model.LoginResult](t, rec).Success)
}

func TestNarratives(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/narratives/preview/route_101?mode=history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Educational, age-appropriate for 7-12", decode[model.NarrativePreview](t, rec).ContentRating)

	rec = ts.do(t, http.MethodGet, "/api/v1/narratives/generate/route_101?mode=fantasy&child_age=8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.NarrativeSegment](t, rec), 2)

	rec = ts.do(t, http.MethodGet, "/api/v1/narratives/generate/route_101?mode=horror", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/narratives/generate/route_101?child_age=young", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFamilyEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/users/family/family_1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family_1", decode[model.Family](t, rec).ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/users/family/family_1/progress", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family_1", decode[model.FamilyProgress](t, rec).FamilyID)

	rec = ts.do(t, http.MethodPost, "/api/v1/users/register", `{"id":"family_9","name":"Hikers","members":[]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "family_9", decode[model.RegisterResult](t, rec).FamilyID)

	rec = ts.do(t, http.MethodPost, "/api/v1/users/register", `{"members":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePreferences_RequiresAuthentication(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPut, "/api/v1/users/preferences", `{"units":"km"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/users/preferences", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus_OfflineAfterFailure(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.session.Begin()
	ts.session.Settle(false)

	rec := ts.do(t, http.MethodGet, "/api/v1/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[httphandler.StatusResponse](t, rec)
	assert.Equal(t, httphandler.StatusResponse{
		AuthState:      "anonymous",
		BackendEnabled: true,
		Attempted:      true,
		Reachable:      false,
		Offline:        true,
	}, status)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[httphandler.HealthResponse](t, rec).Status)
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trailtail_test_total")
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := httphandler.ApplyMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestMutatingRoutes_RejectCrossOrigin(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"logout", http.MethodPost, "/api/v1/users/logout", ""},
		{"login", http.MethodPost, "/api/v1/users/login", `{"email":"a@b.c","password":"pw"}`},
		{"save route", http.MethodPost, "/api/v1/routes/saved", `{"route_id":"route_101"}`},
		{"preferences", http.MethodPut, "/api/v1/users/preferences", `{"units":"metric"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			require.NoError(t, ts.session.SetToken(context.Background(), "abc"))

			for _, hdr := range []http.Header{
				{"Sec-Fetch-Site": {"cross-site"}},
				{"Origin": {"http://evil.example"}},
			} {
				req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				for k, v := range hdr {
					req.Header[k] = v
				}
				rec := httptest.NewRecorder()
				ts.handler.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusForbidden, rec.Code, hdr)
			}

			assert.Empty(t, ts.backend.calls)
			assert.Equal(t, "abc", ts.session.Token())
		})
	}
}

func TestMutatingRoutes_AllowSameOrigin(t *testing.T) {
	ts := newTestServer(t, nil)
	require.NoError(t, ts.session.SetToken(context.Background(), "abc"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ts.session.Token())
}
