package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Messages reported by UserService.
const (
	msgLoggedIn          = "Logged in"
	msgLoggedOut         = "Logged out"
	msgLoginOffline      = "Login unavailable while offline"
	msgLoginNoToken      = "Login failed: no token in response"
	msgCredentialsFailed = "Login succeeded but credentials could not be stored"
	msgLogoutFailed      = "Logout failed: stored credentials could not be cleared"
)

// UserService signs families in and out and manages their profile data.
type UserService struct {
	backend driven.Backend
	session *Session
	logger  *slog.Logger
}

// NewUserService creates a new UserService with the required dependencies.
func NewUserService(backend driven.Backend, session *Session, logger *slog.Logger) *UserService {
	return &UserService{
		backend: backend,
		session: session,
		logger:  logger,
	}
}

// Login exchanges credentials for a token. On success the token replaces
// any previous one, whoever it belonged to.
func (s *UserService) Login(ctx context.Context, email, password string) model.LoginResult {
	out := s.backend.Execute(ctx, model.Post("/users/login", model.LoginRequest{Email: email, Password: password}))
	if !out.OK() {
		msg := msgLoginOffline
		if out.Message != "" {
			msg = out.Message
		}
		return model.LoginResult{Success: false, Message: msg}
	}

	var resp model.LoginResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil || resp.Token == "" {
		s.logger.Warn("login response carried no token", "error", err)
		return model.LoginResult{Success: false, Message: msgLoginNoToken}
	}

	if err := s.session.SetToken(ctx, resp.Token); err != nil {
		s.logger.Error("storing credentials failed", "error", err)
		return model.LoginResult{Success: false, Message: msgCredentialsFailed}
	}

	s.logger.Info("logged in", "user_id", resp.User.ID)
	user := resp.User
	return model.LoginResult{Success: true, Message: msgLoggedIn, User: &user}
}

// Logout forgets the credential. Navigation back to the entry page is the
// caller's concern.
func (s *UserService) Logout(ctx context.Context) model.ActionResult {
	if err := s.session.ClearToken(ctx); err != nil {
		s.logger.Error("clearing credentials failed", "error", err)
		return model.ActionResult{Success: false, Message: msgLogoutFailed}
	}
	return model.ActionResult{Success: true, Message: msgLoggedOut}
}

// Register creates a family account.
func (s *UserService) Register(ctx context.Context, family model.Family) model.RegisterResult {
	return fetch(ctx, s.backend, s.logger, model.Post("/users/register", family), func() model.RegisterResult {
		return fallbackRegistration(family)
	})
}

// FetchProfile returns the signed-in user's profile. The boolean is false
// when nobody is signed in, in which case no call is made.
func (s *UserService) FetchProfile(ctx context.Context) (model.User, bool) {
	if !s.session.IsAuthenticated(ctx) {
		return model.User{}, false
	}

	user := fetch(ctx, s.backend, s.logger, model.Get("/users/profile"), fallbackProfile)
	return user, true
}

// GetFamily returns a family and its members.
func (s *UserService) GetFamily(ctx context.Context, id string) model.Family {
	return fetch(ctx, s.backend, s.logger, model.Get("/users/family/"+url.PathEscape(id)), func() model.Family {
		return fallbackFamily(id)
	})
}

// GetFamilyProgress returns a family's hiking achievements.
func (s *UserService) GetFamilyProgress(ctx context.Context, id string) model.FamilyProgress {
	path := "/users/family/" + url.PathEscape(id) + "/progress"
	return fetch(ctx, s.backend, s.logger, model.Get(path), func() model.FamilyProgress {
		return fallbackProgress(id)
	})
}

// UpdatePreferences replaces the signed-in user's preferences.
func (s *UserService) UpdatePreferences(ctx context.Context, prefs model.Preferences) model.ActionResult {
	if !s.session.IsAuthenticated(ctx) {
		return authRequired()
	}

	req := model.Put("/users/preferences", prefs)
	return action(ctx, s.backend, req, "Preferences updated", "Preferences could not be saved while offline")
}

// CompleteRoute records that familyID finished routeID.
func (s *UserService) CompleteRoute(ctx context.Context, familyID, routeID string, activity model.CompletedActivity) model.ActionResult {
	if !s.session.IsAuthenticated(ctx) {
		return authRequired()
	}

	activity.RouteID = routeID
	path := "/users/complete-route/" + url.PathEscape(familyID) + "/" + url.PathEscape(routeID)
	return action(ctx, s.backend, model.Post(path, activity), "Route completion recorded", "Route completion could not be recorded while offline")
}
