package application_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

func TestEncounterService_GenerateQueryDefaults(t *testing.T) {
	backend := jsonBackend([]model.Encounter{{ID: "treasure_1", Type: model.EncounterTreasure}})
	svc := application.NewEncounterService(backend, discardLogger())

	got := svc.Generate(context.Background(), "route_101", model.EncounterOptions{})

	require.Len(t, got, 1)
	u, err := url.Parse(backend.lastCall().Path)
	require.NoError(t, err)
	assert.Equal(t, "/ar-encounters/generate/route_101", u.Path)
	assert.Equal(t, "fantasy", u.Query().Get("narrative_mode"))
	assert.Equal(t, "10", u.Query().Get("child_age"))
	assert.Equal(t, "5", u.Query().Get("count"))
}

func TestEncounterService_GenerateOffline(t *testing.T) {
	svc := application.NewEncounterService(offlineBackend(), discardLogger())
	ctx := context.Background()

	t.Run("stable per route", func(t *testing.T) {
		opts := model.EncounterOptions{Mode: model.NarrativeModeHistory, ChildAge: 10, Count: 3}

		first := svc.Generate(ctx, "route_12345", opts)
		second := svc.Generate(ctx, "route_12345", opts)

		require.Len(t, first, 3)
		assert.Equal(t, first, second)
		for i, e := range first {
			assert.True(t, strings.HasPrefix(e.ID, string(e.Type)+"_12345_"), e.ID)
			assert.Contains(t, []string{"easy", "medium"}, e.Difficulty, i)
			assert.True(t, strings.HasPrefix(e.Reward, "History"), e.Reward)
		}
	})

	t.Run("young children only get easy encounters", func(t *testing.T) {
		for _, e := range svc.Generate(ctx, "route_101", model.EncounterOptions{ChildAge: 5, Count: 8}) {
			assert.Equal(t, "easy", e.Difficulty, e.ID)
		}
	})

	t.Run("count is capped by the pool", func(t *testing.T) {
		got := svc.Generate(ctx, "route_101", model.EncounterOptions{Count: 50})

		assert.Len(t, got, 8)
		seen := map[string]bool{}
		for _, e := range got {
			assert.False(t, seen[e.Title], "duplicate %s", e.Title)
			seen[e.Title] = true
		}
	})
}

func TestEncounterService_DetailsOffline(t *testing.T) {
	svc := application.NewEncounterService(offlineBackend(), discardLogger())

	tests := []struct {
		id   string
		want model.EncounterType
	}{
		{"animal_12345_1", model.EncounterAnimal},
		{"treasure_12345_2", model.EncounterTreasure},
		{"character_101_1", model.EncounterCharacter},
		{"puzzle_101_3", model.EncounterPuzzle},
		{"mystery", model.EncounterLandmark},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d := svc.Details(context.Background(), tt.id)

			assert.Equal(t, tt.id, d.ID)
			assert.Equal(t, tt.want, d.Type)
			assert.NotEmpty(t, d.CompletionCriteria)
		})
	}
}

func TestEncounterService_DetailsPath(t *testing.T) {
	backend := jsonBackend(model.EncounterDetail{
		Encounter:          model.Encounter{ID: "puzzle_1", Type: model.EncounterPuzzle, Title: "Forest Riddle"},
		CompletionCriteria: "Answer the riddle",
	})
	svc := application.NewEncounterService(backend, discardLogger())

	d := svc.Details(context.Background(), "puzzle_1")

	assert.Equal(t, "Forest Riddle", d.Title)
	assert.Equal(t, "Answer the riddle", d.CompletionCriteria)
	assert.Equal(t, "/ar-encounters/puzzle_1", backend.lastCall().Path)
}
