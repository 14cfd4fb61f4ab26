// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/trailtail/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/trailtail/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// Starting point of the nearby search when the browser sends no location.
const (
	defaultLat    = 47.6062
	defaultLng    = -122.3321
	defaultRadius = 10.0
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	routes     *application.RouteService
	narratives *application.NarrativeService
	users      *application.UserService
	session    *application.Session
	banner     *OfflineBanner
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	routes *application.RouteService,
	narratives *application.NarrativeService,
	users *application.UserService,
	session *application.Session,
	banner *OfflineBanner,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		routes:     routes,
		narratives: narratives,
		users:      users,
		session:    session,
		banner:     banner,
		logger:     logger,
	}
}

// Entry renders the landing page with the login form.
func (h *Handler) Entry(w http.ResponseWriter, r *http.Request) {
	v := vm.EntryViewModel{CSRFToken: csrfToken(w, r)}
	if user, ok := h.users.FetchProfile(r.Context()); ok {
		v.Authenticated = true
		v.UserName = user.Name
	}

	h.render(w, r, http.StatusOK, "Welcome", templates.EntryPage(v))
}

// Login handles the login form. Success lands on the trail list; failure
// re-renders the entry page with the reason.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	email := r.FormValue("email")
	result := h.users.Login(r.Context(), email, r.FormValue("password"))
	if result.Success {
		http.Redirect(w, r, "/routes", http.StatusSeeOther)
		return
	}

	v := vm.EntryViewModel{
		CSRFToken: csrfToken(w, r),
		Error:     result.Message,
		Email:     email,
	}
	h.render(w, r, http.StatusUnauthorized, "Welcome", templates.EntryPage(v))
}

// Logout forgets the credential and navigates back to the entry page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if result := h.users.Logout(r.Context()); !result.Success {
		h.logger.Error("logout failed", "message", result.Message)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Routes renders trails near the requested point.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat := queryFloat(q.Get("lat"), defaultLat)
	lng := queryFloat(q.Get("lng"), defaultLng)
	radius := queryFloat(q.Get("radius"), defaultRadius)

	v := vm.RoutesPageViewModel{
		Routes:        toRouteCards(h.routes.NearbyRoutes(r.Context(), lat, lng, radius)),
		Authenticated: h.session.IsAuthenticated(r.Context()),
		CSRFToken:     csrfToken(w, r),
	}
	h.render(w, r, http.StatusOK, "Trails", templates.RoutesPage(v))
}

// Story renders the narratives of one trail.
func (h *Handler) Story(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	mode := model.NarrativeMode(r.URL.Query().Get("mode"))
	if !mode.Valid() {
		mode = model.NarrativeModeHistory
	}

	route := h.routes.GetRoute(r.Context(), id)
	segments := h.narratives.Generate(r.Context(), id, model.NarrativeOptions{Mode: mode})

	v := toNarrativePageViewModel(route, mode, segments)
	h.render(w, r, http.StatusOK, v.RouteName, templates.NarrativePage(v))
}

// Banner renders the offline banner fragment polled by banner.js.
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Banner(h.bannerViewModel()).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render banner", "error", err)
	}
}

func (h *Handler) bannerViewModel() vm.BannerViewModel {
	return toBannerViewModel(h.banner.Current())
}

// render writes body inside the page layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	layout := templates.Layout(title, h.bannerViewModel(), body)
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "title", title, "error", err)
	}
}

func queryFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
