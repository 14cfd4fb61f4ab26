package httphandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// RouteSafety returns the safety briefing for a trail.
func (h *Handler) RouteSafety(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.safety.RouteSafety(r.Context(), r.PathValue("routeID")))
}

// CheckContent rates a piece of text for a child's age.
func (h *Handler) CheckContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	content := q.Get("content")
	if content == "" {
		writeError(w, http.StatusBadRequest, "missing content")
		return
	}
	childAge, err := intParam(q.Get("child_age"), "child_age")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.safety.CheckContent(r.Context(), content, childAge))
}

// ParentalControls returns a family's limits.
func (h *Handler) ParentalControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.safety.ParentalControls(r.Context(), r.PathValue("familyID")))
}

// UpdateParentalControls replaces a family's limits.
func (h *Handler) UpdateParentalControls(w http.ResponseWriter, r *http.Request) {
	var controls model.ParentalControls
	if err := json.NewDecoder(r.Body).Decode(&controls); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected parental controls")
		return
	}
	if !controls.ContentFilter.Valid() {
		writeError(w, http.StatusBadRequest, "invalid content_filter")
		return
	}
	if controls.MaxDifficulty != "" && !controls.MaxDifficulty.Valid() {
		writeError(w, http.StatusBadRequest, "invalid max_difficulty")
		return
	}

	result := h.safety.UpdateParentalControls(r.Context(), r.PathValue("familyID"), controls)
	writeJSON(w, actionStatus(result), result)
}

// ReportIssue files a safety concern about a trail.
func (h *Handler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	var issue model.SafetyIssue
	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil || issue.Description == "" {
		writeError(w, http.StatusBadRequest, "invalid request body: description is required")
		return
	}

	result := h.safety.ReportIssue(r.Context(), r.PathValue("routeID"), issue)
	writeJSON(w, actionStatus(result), result)
}

// CompleteRoute records a family finishing a trail.
func (h *Handler) CompleteRoute(w http.ResponseWriter, r *http.Request) {
	var activity model.CompletedActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected a completed activity")
		return
	}

	result := h.users.CompleteRoute(r.Context(), r.PathValue("familyID"), r.PathValue("routeID"), activity)
	writeJSON(w, actionStatus(result), result)
}

// GenerateEncounters places AR encounters along a trail.
func (h *Handler) GenerateEncounters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var mode model.NarrativeMode
	if v := q.Get("narrative_mode"); v != "" {
		mode = model.NarrativeMode(v)
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "invalid narrative_mode")
			return
		}
	}
	childAge, err := intParam(q.Get("child_age"), "child_age")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	count, err := intParam(q.Get("count"), "count")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := model.EncounterOptions{Mode: mode, ChildAge: childAge, Count: count}
	writeJSON(w, http.StatusOK, h.encounters.Generate(r.Context(), r.PathValue("routeID"), opts))
}

// EncounterDetails returns one AR encounter in full.
func (h *Handler) EncounterDetails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.encounters.Details(r.Context(), r.PathValue("id")))
}

// intParam parses an optional non-negative integer. Missing means 0, which
// the services read as "use the default".
func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
