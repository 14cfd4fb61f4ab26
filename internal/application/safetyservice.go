package application

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// SafetyService answers the safety questions parents ask before a hike:
// route hazards, story moderation and family limits.
type SafetyService struct {
	backend driven.Backend
	session *Session
	logger  *slog.Logger
}

// NewSafetyService creates a new SafetyService with the required dependencies.
func NewSafetyService(backend driven.Backend, session *Session, logger *slog.Logger) *SafetyService {
	return &SafetyService{
		backend: backend,
		session: session,
		logger:  logger,
	}
}

// RouteSafety returns the safety briefing for routeID.
func (s *SafetyService) RouteSafety(ctx context.Context, routeID string) model.RouteSafety {
	path := "/safety/route-safety/" + url.PathEscape(routeID)
	return fetch(ctx, s.backend, s.logger, model.Get(path), func() model.RouteSafety {
		return fallbackRouteSafety(routeID)
	})
}

// CheckContent rates content for a child of childAge. Offline, the text is
// rated locally against the same word lists the demo service uses.
func (s *SafetyService) CheckContent(ctx context.Context, content string, childAge int) model.ContentCheck {
	if childAge <= 0 {
		childAge = defaultChildAge
	}

	q := url.Values{}
	q.Set("content", content)
	q.Set("child_age", strconv.Itoa(childAge))

	return fetch(ctx, s.backend, s.logger, model.Get("/safety/content-check?"+q.Encode()), func() model.ContentCheck {
		return fallbackContentCheck(content, childAge)
	})
}

// ParentalControls returns the limits set for familyID.
func (s *SafetyService) ParentalControls(ctx context.Context, familyID string) model.ParentalControls {
	path := "/safety/parental-controls/" + url.PathEscape(familyID)
	return fetch(ctx, s.backend, s.logger, model.Get(path), fallbackParentalControls)
}

// UpdateParentalControls replaces the limits for familyID.
func (s *SafetyService) UpdateParentalControls(ctx context.Context, familyID string, controls model.ParentalControls) model.ActionResult {
	if !s.session.IsAuthenticated(ctx) {
		return authRequired()
	}

	req := model.Post("/safety/parental-controls/"+url.PathEscape(familyID), controls)
	return action(ctx, s.backend, req, "Parental controls updated", "Parental controls could not be saved while offline")
}

// ReportIssue files a safety concern about routeID.
func (s *SafetyService) ReportIssue(ctx context.Context, routeID string, issue model.SafetyIssue) model.ActionResult {
	if !s.session.IsAuthenticated(ctx) {
		return authRequired()
	}

	req := model.Post("/safety/report-issue/"+url.PathEscape(routeID), issue)
	return action(ctx, s.backend, req, "Safety issue reported", "Safety issue could not be reported while offline")
}
