package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

func TestSession_SetTokenAuthenticates(t *testing.T) {
	ctx := context.Background()
	store := &mockTokenStore{}
	s := newSession(store)

	require.NoError(t, s.SetToken(ctx, "abc"))
	assert.True(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "abc", s.Token())
	assert.Equal(t, model.AuthStateAuthenticated, s.AuthState(ctx))
	assert.Equal(t, "abc", store.values[model.CredentialKey])

	require.NoError(t, s.SetToken(ctx, ""))
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Empty(t, s.Token())
	assert.Equal(t, model.AuthStateAnonymous, s.AuthState(ctx))
	assert.NotContains(t, store.values, model.CredentialKey)
}

func TestSession_SetTokenOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newSession(&mockTokenStore{})

	require.NoError(t, s.SetToken(ctx, "first"))
	require.NoError(t, s.SetToken(ctx, "second"))

	assert.Equal(t, "second", s.Token())
}

func TestSession_SetTokenPersistFailureKeepsMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &mockTokenStore{}
	s := newSession(store)
	require.NoError(t, s.SetToken(ctx, "old"))

	store.setErr = errStore
	err := s.SetToken(ctx, "new")

	require.ErrorIs(t, err, errStore)
	assert.Equal(t, "old", s.Token())
}

func TestSession_ClearTokenKeepsCredentialWhenDeleteFails(t *testing.T) {
	ctx := context.Background()
	store := &mockTokenStore{}
	s := newSession(store)
	require.NoError(t, s.SetToken(ctx, "abc"))

	store.deleteErr = errStore
	err := s.ClearToken(ctx)

	require.ErrorIs(t, err, errStore)
	assert.True(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "abc", s.Token(), "memory and store must agree after a failed clear")

	store.deleteErr = nil
	require.NoError(t, s.ClearToken(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Empty(t, s.Token())
}

func TestSession_IsAuthenticatedReadErrorMeansAnonymous(t *testing.T) {
	ctx := context.Background()
	store := &mockTokenStore{values: map[string]string{model.CredentialKey: "abc"}, getErr: errStore}
	s := newSession(store)

	assert.False(t, s.IsAuthenticated(ctx))
	assert.False(t, s.Restore(ctx))
	assert.Empty(t, s.Token())
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("persisted token is loaded", func(t *testing.T) {
		s := newSession(&mockTokenStore{values: map[string]string{model.CredentialKey: "abc"}})
		assert.Empty(t, s.Token())

		assert.True(t, s.Restore(ctx))
		assert.Equal(t, "abc", s.Token())
	})

	t.Run("nothing persisted", func(t *testing.T) {
		s := newSession(&mockTokenStore{})
		assert.False(t, s.Restore(ctx))
		assert.Empty(t, s.Token())
	})
}

func TestSession_CircuitGate(t *testing.T) {
	s := newSession(&mockTokenStore{})
	assert.Equal(t, model.ConnectionState{}, s.Connection())

	require.True(t, s.Begin())
	assert.Equal(t, model.ConnectionState{Attempted: true}, s.Connection())

	s.Settle(true)
	assert.Equal(t, model.ConnectionState{Attempted: true, Reachable: true}, s.Connection())
	require.True(t, s.Begin(), "a reachable backend keeps the gate open")

	s.Settle(false)
	assert.False(t, s.Begin())
	assert.False(t, s.Begin())
	assert.Equal(t, model.ConnectionState{Attempted: true, Reachable: false}, s.Connection())
}

func TestSession_BeginWhileFirstCallInFlight(t *testing.T) {
	s := newSession(&mockTokenStore{})

	require.True(t, s.Begin())
	assert.False(t, s.Begin(), "overlapping calls observe the unsettled first attempt")

	s.Settle(true)
	assert.True(t, s.Begin())
}

func TestSession_ConcurrentTokenWrites(t *testing.T) {
	ctx := context.Background()
	store := &mockTokenStore{}
	s := newSession(store)

	var wg sync.WaitGroup
	for _, tok := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SetToken(ctx, tok)
		}()
	}
	wg.Wait()

	assert.Equal(t, store.values[model.CredentialKey], s.Token(), "persisted and in-memory copies are replaced together")
}
