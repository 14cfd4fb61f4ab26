package model

// ContentFilter is how strictly stories are filtered for a family.
type ContentFilter string

const (
	ContentFilterNone   ContentFilter = "none"
	ContentFilterMild   ContentFilter = "mild"
	ContentFilterStrict ContentFilter = "strict"
)

// Valid reports whether f is a known filter level.
func (f ContentFilter) Valid() bool {
	switch f {
	case ContentFilterNone, ContentFilterMild, ContentFilterStrict:
		return true
	}
	return false
}

// ParentalControls are the per-family limits a parent sets.
type ParentalControls struct {
	NarrativeModes      []NarrativeMode `json:"narrative_mode"`
	ContentFilter       ContentFilter   `json:"content_filter"`
	MaxDifficulty       Difficulty      `json:"max_difficulty"`
	AllowSocialFeatures bool            `json:"allow_social_features"`
	PreviewRequired     bool            `json:"preview_required"`
	ScreenTimeLimit     int             `json:"screen_time_limit,omitempty"`
	LocationSharing     string          `json:"location_sharing,omitempty"`
	ApprovedTrailTypes  []Difficulty    `json:"approved_trail_types,omitempty"`
}

// ContentCheck is the moderation verdict for a piece of text.
type ContentCheck struct {
	Appropriate   bool     `json:"appropriate"`
	Reason        string   `json:"reason,omitempty"`
	SuggestedEdit string   `json:"suggested_edit,omitempty"`
	FlaggedTerms  []string `json:"flagged_terms,omitempty"`
	AgeRating     string   `json:"age_rating"`
	ContentType   string   `json:"content_type,omitempty"`
	ReadingLevel  string   `json:"reading_level,omitempty"`
	Confidence    string   `json:"confidence,omitempty"`
}

// EmergencyInfo tells a family where help is.
type EmergencyInfo struct {
	NearestHelp       string   `json:"nearest_help"`
	EmergencyContacts []string `json:"emergency_contacts"`
	CellCoverage      string   `json:"cell_coverage"`
}

// TrailConditions is the latest maintenance report for a route.
type TrailConditions struct {
	LastUpdated       string   `json:"last_updated"`
	Condition         string   `json:"condition"`
	RecentMaintenance string   `json:"recent_maintenance,omitempty"`
	Hazards           []string `json:"hazards"`
}

// FamilyFriendliness flags the amenities that matter with children.
type FamilyFriendliness struct {
	SuitableForChildren bool `json:"suitable_for_children"`
	StrollerAccessible  bool `json:"stroller_accessible"`
	RestroomFacilities  bool `json:"restroom_facilities"`
	WaterFountains      bool `json:"water_fountains"`
}

// WildlifeAwareness lists the animals to expect and how to behave.
type WildlifeAwareness struct {
	CommonWildlife []string `json:"common_wildlife"`
	Precautions    []string `json:"precautions"`
}

// RouteSafety is the full safety briefing for one route.
type RouteSafety struct {
	DifficultyRating      Difficulty         `json:"difficulty_rating"`
	SafetyNotes           []string           `json:"safety_notes"`
	WeatherConsiderations []string           `json:"weather_considerations"`
	EmergencyInfo         EmergencyInfo      `json:"emergency_info"`
	TrailConditions       TrailConditions    `json:"trail_conditions"`
	FamilyFriendliness    FamilyFriendliness `json:"family_friendliness"`
	WildlifeAwareness     WildlifeAwareness  `json:"wildlife_awareness"`
	Recommendations       []string           `json:"recommendations"`
}

// SafetyIssue is a hazard reported by a family on a route.
type SafetyIssue struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	// Severity "urgent" notifies the maintenance team directly.
	Severity string `json:"severity,omitempty"`
}
