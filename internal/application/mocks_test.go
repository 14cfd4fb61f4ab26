package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// --- Mock implementations ---

type mockBackend struct {
	mu      sync.Mutex
	respond func(req model.RequestDescriptor) model.Outcome
	calls   []model.RequestDescriptor
}

func (m *mockBackend) Execute(_ context.Context, req model.RequestDescriptor) model.Outcome {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.respond == nil {
		return model.Absent(model.AbsentTransportError)
	}
	return m.respond(req)
}

func (m *mockBackend) lastCall() model.RequestDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

// offlineBackend answers every call as if the circuit were open.
func offlineBackend() *mockBackend {
	return &mockBackend{respond: func(model.RequestDescriptor) model.Outcome {
		return model.Absent(model.AbsentPreviouslyUnreachable)
	}}
}

// jsonBackend answers every call with v marshaled as JSON.
func jsonBackend(v any) *mockBackend {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &mockBackend{respond: func(model.RequestDescriptor) model.Outcome {
		return model.Success(data)
	}}
}

type mockTokenStore struct {
	mu        sync.Mutex
	values    map[string]string
	getErr    error
	setErr    error
	deleteErr error
}

func (m *mockTokenStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *mockTokenStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[key], nil
}

func (m *mockTokenStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

var errStore = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(store *mockTokenStore) *application.Session {
	return application.NewSession(store, discardLogger())
}

// signedIn returns a session holding token.
func signedIn(token string) *application.Session {
	store := &mockTokenStore{values: map[string]string{model.CredentialKey: token}}
	s := newSession(store)
	s.Restore(context.Background())
	return s
}
