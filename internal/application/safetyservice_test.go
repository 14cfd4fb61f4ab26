package application_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

func TestSafetyService_RouteSafetyOffline(t *testing.T) {
	svc := application.NewSafetyService(offlineBackend(), newSession(&mockTokenStore{}), discardLogger())
	ctx := context.Background()

	tests := []struct {
		routeID     string
		difficulty  model.Difficulty
		hazards     int
		forChildren bool
	}{
		{"route_101", model.DifficultyEasy, 1, true},
		{"route_moderate_family", model.DifficultyModerate, 3, true},
		{"route_moderate_2", model.DifficultyModerate, 3, false},
		{"route_challenging_9", model.DifficultyHard, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.routeID, func(t *testing.T) {
			info := svc.RouteSafety(ctx, tt.routeID)

			assert.Equal(t, tt.difficulty, info.DifficultyRating)
			assert.Len(t, info.TrailConditions.Hazards, tt.hazards)
			assert.Equal(t, tt.forChildren, info.FamilyFriendliness.SuitableForChildren)
			assert.NotEmpty(t, info.EmergencyInfo.EmergencyContacts)
		})
	}

	hard := svc.RouteSafety(ctx, "route_hard_1")
	easy := svc.RouteSafety(ctx, "route_101")
	assert.Greater(t, len(hard.Recommendations), len(easy.Recommendations))
	assert.Contains(t, hard.WildlifeAwareness.CommonWildlife, "Occasional bear sightings")
}

func TestSafetyService_RouteSafetyPassesPayloadThrough(t *testing.T) {
	want := model.RouteSafety{
		DifficultyRating: model.DifficultyModerate,
		SafetyNotes:      []string{"Bridge closed for repairs"},
		TrailConditions:  model.TrailConditions{Condition: "Closed", Hazards: []string{"Washout"}},
	}
	backend := jsonBackend(want)
	svc := application.NewSafetyService(backend, newSession(&mockTokenStore{}), discardLogger())

	got := svc.RouteSafety(context.Background(), "route 7")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RouteSafety mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/safety/route-safety/route%207", backend.lastCall().Path)
}

func TestSafetyService_CheckContentQuery(t *testing.T) {
	backend := jsonBackend(model.ContentCheck{Appropriate: true, AgeRating: "Suitable for ages 7-12"})
	svc := application.NewSafetyService(backend, newSession(&mockTokenStore{}), discardLogger())

	got := svc.CheckContent(context.Background(), "a friendly dragon", 0)

	assert.True(t, got.Appropriate)
	u, err := url.Parse(backend.lastCall().Path)
	require.NoError(t, err)
	assert.Equal(t, "/safety/content-check", u.Path)
	assert.Equal(t, "a friendly dragon", u.Query().Get("content"))
	assert.Equal(t, "10", u.Query().Get("child_age"))
}

func TestSafetyService_CheckContentOffline(t *testing.T) {
	svc := application.NewSafetyService(offlineBackend(), newSession(&mockTokenStore{}), discardLogger())
	ctx := context.Background()

	t.Run("strong terms", func(t *testing.T) {
		got := svc.CheckContent(ctx, "The knight drew a knife. It was scary!", 10)

		assert.False(t, got.Appropriate)
		assert.Equal(t, []string{"scary", "knife"}, got.FlaggedTerms)
		assert.Equal(t, "Not suitable for children under 13", got.AgeRating)
	})

	t.Run("mild terms depend on age", func(t *testing.T) {
		text := "Two monsters hide in the dark cave"

		young := svc.CheckContent(ctx, text, 6)
		older := svc.CheckContent(ctx, text, 9)

		assert.False(t, young.Appropriate)
		assert.True(t, older.Appropriate)
		assert.Equal(t, []string{"dark", "monster"}, older.FlaggedTerms)
	})

	t.Run("terms match whole words only", func(t *testing.T) {
		got := svc.CheckContent(ctx, "A soldier learned history at the old fort", 8)

		assert.True(t, got.Appropriate)
		assert.Empty(t, got.FlaggedTerms)
		assert.Equal(t, "informational and educational", got.ContentType)
		assert.Equal(t, "Suitable for ages 7-12", got.AgeRating)
	})
}

func TestSafetyService_ParentalControls(t *testing.T) {
	ctx := context.Background()

	t.Run("offline defaults", func(t *testing.T) {
		svc := application.NewSafetyService(offlineBackend(), newSession(&mockTokenStore{}), discardLogger())

		controls := svc.ParentalControls(ctx, "family_1")

		assert.Equal(t, model.ContentFilterMild, controls.ContentFilter)
		assert.Equal(t, model.DifficultyModerate, controls.MaxDifficulty)
		assert.True(t, controls.PreviewRequired)
	})

	t.Run("path", func(t *testing.T) {
		backend := jsonBackend(model.ParentalControls{ContentFilter: model.ContentFilterStrict})
		svc := application.NewSafetyService(backend, newSession(&mockTokenStore{}), discardLogger())

		controls := svc.ParentalControls(ctx, "family_1")

		assert.Equal(t, model.ContentFilterStrict, controls.ContentFilter)
		assert.Equal(t, "/safety/parental-controls/family_1", backend.lastCall().Path)
	})
}

func TestSafetyService_GatedActions(t *testing.T) {
	ctx := context.Background()
	controls := model.ParentalControls{
		NarrativeModes: []model.NarrativeMode{model.NarrativeModeHistory},
		ContentFilter:  model.ContentFilterStrict,
		MaxDifficulty:  model.DifficultyEasy,
	}
	issue := model.SafetyIssue{Category: "trail", Description: "Fallen tree across the path", Severity: "urgent"}

	t.Run("anonymous never calls the backend", func(t *testing.T) {
		backend := jsonBackend(map[string]string{"message": "ok"})
		svc := application.NewSafetyService(backend, newSession(&mockTokenStore{}), discardLogger())

		assert.Equal(t, model.AuthRequiredMessage, svc.UpdateParentalControls(ctx, "family_1", controls).Message)
		assert.Equal(t, model.AuthRequiredMessage, svc.ReportIssue(ctx, "route_101", issue).Message)
		assert.Empty(t, backend.calls)
	})

	t.Run("signed in posts the body", func(t *testing.T) {
		backend := jsonBackend(map[string]string{"message": "Safety issue reported successfully"})
		svc := application.NewSafetyService(backend, signedIn("abc"), discardLogger())

		result := svc.ReportIssue(ctx, "route_101", issue)
		assert.Equal(t, model.ActionResult{Success: true, Message: "Safety issue reported successfully"}, result)
		req := backend.lastCall()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/safety/report-issue/route_101", req.Path)
		assert.Equal(t, issue, req.Body)

		result = svc.UpdateParentalControls(ctx, "family_1", controls)
		assert.True(t, result.Success)
		req = backend.lastCall()
		assert.Equal(t, "/safety/parental-controls/family_1", req.Path)
		assert.Equal(t, controls, req.Body)
	})

	t.Run("signed in but offline", func(t *testing.T) {
		svc := application.NewSafetyService(offlineBackend(), signedIn("abc"), discardLogger())

		result := svc.ReportIssue(ctx, "route_101", issue)

		assert.False(t, result.Success)
		assert.Equal(t, "Safety issue could not be reported while offline", result.Message)
	})
}
