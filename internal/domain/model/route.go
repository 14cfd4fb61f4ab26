package model

// Difficulty grades a trail.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	}
	return false
}

// RouteSummary is a route as listed by the nearby search.
type RouteSummary struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Distance            float64    `json:"distance"`
	Difficulty          Difficulty `json:"difficulty"`
	PreviewImage        string     `json:"preview_image,omitempty"`
	SuitableForChildren bool       `json:"suitable_for_children"`
	EstimatedTime       int        `json:"estimated_time"`
	Rating              float64    `json:"rating,omitempty"`
	Location            string     `json:"location,omitempty"`
	ElevationGain       float64    `json:"elevation_gain"`
	Description         string     `json:"description,omitempty"`
}

// RoutePoint is a waypoint along a route.
type RoutePoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Elevation   float64 `json:"elevation"`
	Description string  `json:"description,omitempty"`
}

// SafetyInfo summarizes on-trail safety facts.
type SafetyInfo struct {
	CellCoverage    string   `json:"cell_coverage"`
	WaterSources    int      `json:"water_sources"`
	BailoutPoints   int      `json:"bailout_points"`
	Recommendations []string `json:"recommendations"`
}

// SuitableFor flags which hikers a route suits.
type SuitableFor struct {
	Beginners   bool `json:"beginners"`
	Children    bool `json:"children"`
	Elderly     bool `json:"elderly"`
	Pets        bool `json:"pets"`
	Wheelchairs bool `json:"wheelchairs"`
}

// Route is a fully described route, as returned by generate and detail calls.
type Route struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Distance      float64      `json:"distance"`
	ElevationGain float64      `json:"elevation_gain"`
	EstimatedTime int          `json:"estimated_time"`
	Difficulty    Difficulty   `json:"difficulty"`
	Points        []RoutePoint `json:"points"`
	Description   string       `json:"description"`
	Features      []string     `json:"features,omitempty"`
	SafetyInfo    *SafetyInfo  `json:"safety_info,omitempty"`
	SuitableFor   *SuitableFor `json:"suitable_for,omitempty"`
	Images        []string     `json:"images,omitempty"`
	BestSeason    string       `json:"best_season,omitempty"`
}

// RouteParams are the inputs of a route generation request. Ranges are not
// validated here.
type RouteParams struct {
	StartLat     float64
	StartLng     float64
	Distance     float64
	Difficulty   Difficulty
	WithChildren bool
}

// SaveRouteRequest is the body of POST /routes/saved.
type SaveRouteRequest struct {
	RouteID string `json:"route_id"`
}
