// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// EntryViewModel holds the state of the entry page.
type EntryViewModel struct {
	Authenticated bool
	UserName      string
	CSRFToken     string
	Error         string
	Email         string
}

// RouteCardViewModel holds presentation-ready data for one trail in the list.
type RouteCardViewModel struct {
	ID             string
	Name           string
	Location       string
	Description    string
	Difficulty     string
	DistanceLabel  string // "2.5 km"
	DurationLabel  string // "1h 35m"
	RatingLabel    string // empty when unrated
	FamilyFriendly bool
	HistoryPath    string
	FantasyPath    string
}

// RoutesPageViewModel holds the nearby routes page.
type RoutesPageViewModel struct {
	Routes        []RouteCardViewModel
	Authenticated bool
	CSRFToken     string
}

// StoryViewModel is one narrative segment with its story rendered to HTML.
type StoryViewModel struct {
	Title     string
	StoryHTML string
	Facts     []string
}

// NarrativePageViewModel holds the stories page for one trail.
type NarrativePageViewModel struct {
	RouteID        string
	RouteName      string
	ModeLabel      string
	OtherModeLabel string
	OtherModePath  string
	Stories        []StoryViewModel
}

// BannerViewModel drives the offline banner element.
type BannerViewModel struct {
	Visible bool
	Message string
}
