package model

// User is the authenticated account as returned by login and profile calls.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email,omitempty"`
	Name        string         `json:"name"`
	FamilyID    string         `json:"family_id,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// FamilyMember is a parent or child in a family.
type FamilyMember struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Age         int            `json:"age,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Family groups members hiking together.
type Family struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Members []FamilyMember `json:"members"`
}

// CompletedActivity records one finished route.
type CompletedActivity struct {
	RouteID        string   `json:"route_id"`
	CompletionDate string   `json:"completion_date"`
	Duration       int      `json:"duration"`
	Distance       float64  `json:"distance"`
	BadgesEarned   []string `json:"badges_earned"`
}

// FamilyProgress aggregates a family's hiking achievements.
type FamilyProgress struct {
	FamilyID            string              `json:"family_id"`
	TotalRoutes         int                 `json:"total_routes"`
	TotalDistance       float64             `json:"total_distance"`
	Badges              []string            `json:"badges"`
	CompletedActivities []CompletedActivity `json:"completed_activities"`
	NextMilestone       string              `json:"next_milestone,omitempty"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginResult is what the user service reports for a login attempt.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// RegisterResult is the payload of POST /users/register.
type RegisterResult struct {
	FamilyID string `json:"family_id"`
	Message  string `json:"message,omitempty"`
}

// ActionResult is the structured result of a mutating operation. Failures
// are reported here instead of as errors.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Preferences is a free-form preference document.
type Preferences map[string]any
