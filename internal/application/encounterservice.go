package application

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Encounter generation defaults, matching the remote service.
const (
	defaultChildAge       = 10
	defaultEncounterCount = 5
)

// EncounterService places AR encounters along a trail.
type EncounterService struct {
	backend driven.Backend
	logger  *slog.Logger
}

// NewEncounterService creates a new EncounterService with the required dependencies.
func NewEncounterService(backend driven.Backend, logger *slog.Logger) *EncounterService {
	return &EncounterService{
		backend: backend,
		logger:  logger,
	}
}

// Generate returns the encounters for routeID. Unset options default to
// fantasy mode, age 10 and five encounters.
func (s *EncounterService) Generate(ctx context.Context, routeID string, opts model.EncounterOptions) []model.Encounter {
	if opts.Mode == "" {
		opts.Mode = model.NarrativeModeFantasy
	}
	if opts.ChildAge <= 0 {
		opts.ChildAge = defaultChildAge
	}
	if opts.Count <= 0 {
		opts.Count = defaultEncounterCount
	}

	q := url.Values{}
	q.Set("narrative_mode", string(opts.Mode))
	q.Set("child_age", strconv.Itoa(opts.ChildAge))
	q.Set("count", strconv.Itoa(opts.Count))

	path := "/ar-encounters/generate/" + url.PathEscape(routeID) + "?" + q.Encode()
	return fetch(ctx, s.backend, s.logger, model.Get(path), func() []model.Encounter {
		return fallbackEncounters(routeID, opts)
	})
}

// Details returns everything the AR view needs to run encounter id.
func (s *EncounterService) Details(ctx context.Context, id string) model.EncounterDetail {
	return fetch(ctx, s.backend, s.logger, model.Get("/ar-encounters/"+url.PathEscape(id)), func() model.EncounterDetail {
		return fallbackEncounterDetail(id)
	})
}
