package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// --- Mock implementations ---

// stubBackend answers login with a token and everything else as unreachable.
type stubBackend struct{}

func (stubBackend) Execute(_ context.Context, req model.RequestDescriptor) model.Outcome {
	if req.Path == "/users/login" {
		data, _ := json.Marshal(model.LoginResponse{Token: "abc", User: model.User{ID: "user_123", Name: "John"}})
		return model.Success(data)
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

type testApp struct {
	mux     *http.ServeMux
	session *application.Session
	banner  *OfflineBanner
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := application.NewSession(&memTokenStore{}, logger)
	backend := stubBackend{}
	banner := NewOfflineBanner(time.Minute, logger)

	h := NewHandler(
		application.NewRouteService(backend, session, logger),
		application.NewNarrativeService(backend, logger),
		application.NewUserService(backend, session, logger),
		session,
		banner,
		logger,
	)

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return testApp{mux: mux, session: session, banner: banner}
}

func (a testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (a testApp) postForm(t *testing.T, target string, form url.Values, csrfCookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if csrfCookie != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: csrfCookie})
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestEntry_SetsCSRFCookieAndRendersForm(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == csrfCookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	body := rec.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, `value="`+token+`"`)
	assert.Contains(t, body, `id="offline-banner"`)
}

func TestLogin_RejectsMissingCSRF(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"email": {"john@example.com"}, "password": {"pw"}, "csrf_token": {"tok"}}
	rec := app.postForm(t, "/login", form, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, app.session.Token())
}

func TestLoginThenLogout(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	form := url.Values{"email": {"john@example.com"}, "password": {"pw"}, "csrf_token": {"tok"}}
	rec := app.postForm(t, "/login", form, "tok")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/routes", rec.Header().Get("Location"))
	assert.True(t, app.session.IsAuthenticated(ctx))

	rec = app.postForm(t, "/logout", url.Values{"csrf_token": {"tok"}}, "tok")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, app.session.IsAuthenticated(ctx))
}

func TestRoutesPage_Offline(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/routes")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sunset Ridge Trail")
	assert.Contains(t, body, "Forest Adventure Loop")
	assert.Less(t, strings.Index(body, "Sunset Ridge Trail"), strings.Index(body, "Forest Adventure Loop"))
	assert.Contains(t, body, `href="/routes/route_101/story?mode=fantasy"`)
}

func TestStoryPage_RendersMarkdown(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/routes/route_101/story?mode=fantasy")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Dragon&#39;s Bridge")
	assert.Contains(t, body, "<strong>Ember</strong>")
	assert.Contains(t, body, "Switch to Local history")
}

func TestBannerFragment(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/banner")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hidden")

	app.banner.ShowOffline(context.Background(), model.OfflineNotice{Message: model.OfflineMessage, Path: "/routes/nearby"})

	rec = app.get(t, "/banner")
	assert.NotContains(t, rec.Body.String(), "hidden")
	assert.Contains(t, rec.Body.String(), "offline mode")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/static/app.css", "/static/banner.js"} {
		rec := app.get(t, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
