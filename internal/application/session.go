package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Session holds the per-process connection state and the credential used on
// outgoing requests. One Session is constructed by the composition root and
// passed to the executor and to every domain service.
type Session struct {
	mu    sync.RWMutex
	conn  model.ConnectionState
	token string

	// writeMu serializes credential writers so persisted and in-memory
	// copies are replaced together.
	writeMu sync.Mutex
	store   driven.TokenStore
	logger  *slog.Logger
}

// NewSession creates a Session in the anonymous, never-attempted state.
func NewSession(store driven.TokenStore, logger *slog.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger,
	}
}

// Connection returns the latest settled connection state.
func (s *Session) Connection() model.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// Begin gates a network attempt. It returns false without touching the
// state when the circuit is open; otherwise it marks the state attempted
// and returns true. Check and mark happen under one lock.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn.CircuitOpen() {
		return false
	}
	s.conn.Attempted = true
	return true
}

// Settle records the result of a finished attempt.
func (s *Session) Settle(reachable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.Attempted = true
	s.conn.Reachable = reachable
}

// Token returns the bearer token attached to outgoing requests, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken records token for outgoing requests and persists it. An empty
// token clears both the in-memory and the persisted copy. The in-memory
// copy only changes once the store write succeeds.
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if token == "" {
		if err := s.store.Delete(ctx, model.CredentialKey); err != nil {
			return fmt.Errorf("clear persisted token: %w", err)
		}
		s.setMemory("")
		return nil
	}

	if err := s.store.Set(ctx, model.CredentialKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.setMemory(token)
	return nil
}

// ClearToken forgets the credential.
func (s *Session) ClearToken(ctx context.Context) error {
	return s.SetToken(ctx, "")
}

// IsAuthenticated reports whether a persisted token exists.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Get(ctx, model.CredentialKey)
	if err != nil {
		s.logger.Warn("reading persisted token failed", "error", err)
		return false
	}
	return token != ""
}

// AuthState maps IsAuthenticated onto the login state machine.
func (s *Session) AuthState(ctx context.Context) model.AuthState {
	if s.IsAuthenticated(ctx) {
		return model.AuthStateAuthenticated
	}
	return model.AuthStateAnonymous
}

// Restore loads a persisted token into the outgoing header set. It reports
// whether a token was found. Read failures are logged and treated as absent.
func (s *Session) Restore(ctx context.Context) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	token, err := s.store.Get(ctx, model.CredentialKey)
	if err != nil {
		s.logger.Warn("restoring persisted token failed", "error", err)
		return false
	}
	if token == "" {
		return false
	}
	s.setMemory(token)
	return true
}

func (s *Session) setMemory(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
