package application

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// NarrativeService produces the stories told along a trail.
type NarrativeService struct {
	backend driven.Backend
	logger  *slog.Logger
}

// NewNarrativeService creates a new NarrativeService with the required dependencies.
func NewNarrativeService(backend driven.Backend, logger *slog.Logger) *NarrativeService {
	return &NarrativeService{
		backend: backend,
		logger:  logger,
	}
}

// Generate returns the stories for each waypoint of routeID. Zero-valued
// options are left out of the query so the backend applies its defaults.
func (s *NarrativeService) Generate(ctx context.Context, routeID string, opts model.NarrativeOptions) []model.NarrativeSegment {
	mode := opts.Mode
	if mode == "" {
		mode = model.NarrativeModeHistory
	}

	q := url.Values{}
	q.Set("mode", string(mode))
	if opts.ChildAge > 0 {
		q.Set("child_age", strconv.Itoa(opts.ChildAge))
	}
	if opts.Language != "" {
		q.Set("language", opts.Language)
	}

	path := "/narratives/generate/" + url.PathEscape(routeID) + "?" + q.Encode()
	return fetch(ctx, s.backend, s.logger, model.Get(path), func() []model.NarrativeSegment {
		return fallbackNarratives(mode)
	})
}

// Preview returns the parent-facing preview of routeID's stories.
func (s *NarrativeService) Preview(ctx context.Context, routeID string, mode model.NarrativeMode) model.NarrativePreview {
	if mode == "" {
		mode = model.NarrativeModeHistory
	}

	q := url.Values{}
	q.Set("mode", string(mode))

	path := "/narratives/preview/" + url.PathEscape(routeID) + "?" + q.Encode()
	return fetch(ctx, s.backend, s.logger, model.Get(path), func() model.NarrativePreview {
		return fallbackPreview(mode)
	})
}
