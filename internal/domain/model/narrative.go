package model

// NarrativeMode selects the storytelling style.
type NarrativeMode string

const (
	NarrativeModeHistory NarrativeMode = "history"
	NarrativeModeFantasy NarrativeMode = "fantasy"
)

// Valid reports whether m is a known mode.
func (m NarrativeMode) Valid() bool {
	return m == NarrativeModeHistory || m == NarrativeModeFantasy
}

// NarrativeSegment is one story told at a waypoint.
type NarrativeSegment struct {
	Title      string   `json:"title"`
	Story      string   `json:"story"`
	WaypointID string   `json:"waypoint_id"`
	Images     []string `json:"images,omitempty"`
	Facts      []string `json:"facts,omitempty"`
}

// NarrativeOptions shape a narrative generation request.
type NarrativeOptions struct {
	Mode     NarrativeMode
	ChildAge int
	Language string
}

// PreviewNarrative is a story as shown to a parent for approval. History
// previews carry educational fields, fantasy previews carry tone fields.
type PreviewNarrative struct {
	Title            string   `json:"title"`
	Story            string   `json:"story"`
	EducationalValue string   `json:"educational_value,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	FantasyElements  []string `json:"fantasy_elements,omitempty"`
	EmotionalTone    string   `json:"emotional_tone,omitempty"`
}

// NarrativePreview is the parent-facing preview of a route's stories.
type NarrativePreview struct {
	Narratives         []PreviewNarrative `json:"narratives"`
	ContentRating      string             `json:"content_rating"`
	HistoricalAccuracy string             `json:"historical_accuracy,omitempty"`
	Disclaimer         string             `json:"disclaimer,omitempty"`
}
