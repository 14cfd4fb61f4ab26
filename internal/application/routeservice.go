package application

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// RouteService finds, generates and saves trails. Every read falls back to
// canned trails when the backend is absent.
type RouteService struct {
	backend driven.Backend
	session *Session
	logger  *slog.Logger
}

// NewRouteService creates a new RouteService with the required dependencies.
func NewRouteService(backend driven.Backend, session *Session, logger *slog.Logger) *RouteService {
	return &RouteService{
		backend: backend,
		session: session,
		logger:  logger,
	}
}

// NearbyRoutes lists trails within radius kilometres of lat/lng.
func (s *RouteService) NearbyRoutes(ctx context.Context, lat, lng, radius float64) []model.RouteSummary {
	q := url.Values{}
	q.Set("lat", formatFloat(lat))
	q.Set("lng", formatFloat(lng))
	q.Set("radius", formatFloat(radius))

	return fetch(ctx, s.backend, s.logger, model.Get("/routes/nearby?"+q.Encode()), fallbackNearbyRoutes)
}

// GenerateRoute asks the backend for a new trail matching p.
func (s *RouteService) GenerateRoute(ctx context.Context, p model.RouteParams) model.Route {
	q := url.Values{}
	q.Set("start_lat", formatFloat(p.StartLat))
	q.Set("start_lng", formatFloat(p.StartLng))
	q.Set("distance", formatFloat(p.Distance))
	if p.Difficulty != "" {
		q.Set("difficulty", string(p.Difficulty))
	}
	q.Set("with_children", strconv.FormatBool(p.WithChildren))

	return fetch(ctx, s.backend, s.logger, model.Get("/routes/generate?"+q.Encode()), func() model.Route {
		return fallbackGeneratedRoute(p)
	})
}

// GetRoute returns the full description of one trail.
func (s *RouteService) GetRoute(ctx context.Context, id string) model.Route {
	return fetch(ctx, s.backend, s.logger, model.Get("/routes/"+url.PathEscape(id)), func() model.Route {
		return fallbackRouteDetail(id)
	})
}

// SaveRoute bookmarks a trail for the signed-in family.
func (s *RouteService) SaveRoute(ctx context.Context, id string) model.ActionResult {
	if !s.session.IsAuthenticated(ctx) {
		return authRequired()
	}

	req := model.Post("/routes/saved", model.SaveRouteRequest{RouteID: id})
	return action(ctx, s.backend, req, "Route saved", "Route could not be saved while offline")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
