package application

import (
	"strings"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// Offline demo content. Every fallback returns a fresh value so callers may
// modify what they receive.

// Default location of the canned trail when the caller supplies none.
const (
	demoLat = 47.6062
	demoLng = -122.3321
)

// Family and user identifiers used in offline mode.
const (
	DemoFamilyID = "family_demo"
	DemoUserID   = "user_demo"
)

func fallbackNearbyRoutes() []model.RouteSummary {
	return []model.RouteSummary{
		{
			ID:                  "route_101",
			Name:                "Sunset Ridge Trail",
			Distance:            2.5,
			Difficulty:          model.DifficultyEasy,
			PreviewImage:        "sunset_ridge.jpg",
			SuitableForChildren: true,
			EstimatedTime:       50,
			Rating:              4.7,
			Location:            "Cedar Grove Park",
			ElevationGain:       95,
			Description:         "A gentle ridge walk with wide views over the valley, best in the late afternoon.",
		},
		{
			ID:                  "route_102",
			Name:                "Forest Adventure Loop",
			Distance:            3.8,
			Difficulty:          model.DifficultyModerate,
			PreviewImage:        "forest_loop.jpg",
			SuitableForChildren: true,
			EstimatedTime:       95,
			Rating:              4.5,
			Location:            "Eagle Ridge Preserve",
			ElevationGain:       180,
			Description:         "A shaded loop through old pines with a footbridge, a creek and plenty of places to rest.",
		},
	}
}

// fallbackRoute builds the canned trail for the given parameters. Zero
// coordinates place it at the demo location; a zero distance means 3 km.
func fallbackRoute(id string, p model.RouteParams) model.Route {
	lat, lng := p.StartLat, p.StartLng
	if lat == 0 && lng == 0 {
		lat, lng = demoLat, demoLng
	}
	distance := p.Distance
	if distance <= 0 {
		distance = 3.0
	}
	difficulty := p.Difficulty
	if !difficulty.Valid() {
		difficulty = model.DifficultyEasy
	}

	return model.Route{
		ID:            id,
		Name:          routeName(difficulty, p.WithChildren),
		Distance:      distance,
		ElevationGain: pick(difficulty, 120.5, 250.8, 450.2),
		EstimatedTime: int(distance * pick(difficulty, 20.0, 25.0, 35.0)),
		Difficulty:    difficulty,
		Points:        demoPoints(lat, lng),
		Description:   routeDescription(difficulty, p.WithChildren),
		Features:      routeFeatures(difficulty, p.WithChildren),
		SafetyInfo: &model.SafetyInfo{
			CellCoverage:  pick(difficulty, "Good", "Spotty", "Limited"),
			WaterSources:  pick(difficulty, 2, 1, 0),
			BailoutPoints: pick(difficulty, 3, 2, 1),
			Recommendations: []string{
				"Bring water and snacks",
				"Wear appropriate footwear",
				"Check weather before starting" + pick(difficulty, "", ", trail can be slippery when wet", ", trail not recommended in bad weather"),
			},
		},
		SuitableFor: &model.SuitableFor{
			Beginners:   difficulty == model.DifficultyEasy,
			Children:    p.WithChildren || difficulty == model.DifficultyEasy,
			Elderly:     difficulty == model.DifficultyEasy,
			Pets:        difficulty != model.DifficultyHard,
			Wheelchairs: false,
		},
		Images: []string{
			string(difficulty) + "_trail1.jpg",
			string(difficulty) + "_trail2.jpg",
			string(difficulty) + "_viewpoint.jpg",
			string(difficulty) + "_creek.jpg",
		},
	}
}

// fallbackGeneratedRoute is the canned family trail returned by an offline
// route generation.
func fallbackGeneratedRoute(p model.RouteParams) model.Route {
	return fallbackRoute("route_demo", p)
}

// fallbackRouteDetail is the canned trail for an offline detail lookup. The
// identifier is kept and hints in it select difficulty and family fit.
func fallbackRouteDetail(id string) model.Route {
	p := model.RouteParams{
		Difficulty:   model.DifficultyEasy,
		WithChildren: strings.Contains(id, "family"),
	}
	switch {
	case strings.Contains(id, "moderate"):
		p.Difficulty = model.DifficultyModerate
		p.Distance = 5.0
	case strings.Contains(id, "hard"):
		p.Difficulty = model.DifficultyHard
		p.Distance = 8.0
	}
	return fallbackRoute(id, p)
}

func pick[T any](d model.Difficulty, easy, moderate, hard T) T {
	switch d {
	case model.DifficultyModerate:
		return moderate
	case model.DifficultyHard:
		return hard
	default:
		return easy
	}
}

func routeName(d model.Difficulty, withChildren bool) string {
	name := pick(d, "Easy", "Moderate", "Challenging") + " Adventure Trail"
	if withChildren {
		return "Family-friendly " + name
	}
	return name
}

func routeDescription(d model.Difficulty, withChildren bool) string {
	audience := "hikers"
	if withChildren {
		audience = "families with children"
	}

	var detail string
	switch {
	case d == model.DifficultyHard:
		detail = "This challenging trail features significant elevation gain, rugged terrain and some technical sections. Recommended for experienced hikers."
	case d == model.DifficultyModerate && withChildren:
		detail = "This moderately challenging trail suits older children with some hiking experience, with varied terrain to keep young adventurers engaged."
	case d == model.DifficultyModerate:
		detail = "Moderate elevation gain and varied terrain make this a good step up without extreme difficulty."
	case withChildren:
		detail = "This wide, well-maintained trail offers gentle slopes, plenty of rest areas and educational nature signs."
	default:
		detail = "This smooth, well-marked trail is perfect for beginners or a relaxing afternoon."
	}

	return "A beautiful " + string(d) + " trail through the forest, perfect for " + audience + ". " + detail
}

func routeFeatures(d model.Difficulty, withChildren bool) []string {
	features := []string{"Forest scenery", "Wildlife viewing opportunities", "Seasonal wildflowers"}
	if withChildren {
		features = append(features, "Educational nature signs", "Child-friendly rest areas")
	}

	switch d {
	case model.DifficultyModerate:
		features = append(features, "Some steep sections", "Creek crossings", "Varied terrain", "Scenic overlooks")
	case model.DifficultyHard:
		features = append(features, "Challenging terrain", "Significant elevation gain", "Remote sections", "Scenic overlooks")
	default:
		features = append(features, "Gentle slopes", "Well-maintained path", "Clear trail markers")
	}

	if d == model.DifficultyEasy || (d == model.DifficultyModerate && withChildren) {
		features = append(features, "Picnic spots")
	}
	return features
}

func demoPoints(lat, lng float64) []model.RoutePoint {
	offsets := []struct {
		dLat, dLng, elevation float64
		description           string
	}{
		{0, 0, 100.0, "Starting point - Trailhead parking area"},
		{0.005, 0.005, 110.2, "Trail entrance - Information board"},
		{0.01, 0.01, 120.5, "Forest entry - Dense pine grove"},
		{0.015, 0.015, 135.0, "Wooden footbridge - Small stream crossing"},
		{0.02, 0.02, 150.2, "Scenic viewpoint - Valley overlook"},
		{0.025, 0.02, 145.5, "Rest area - Picnic benches"},
		{0.03, 0.015, 135.8, "Small creek - Wildlife viewing area"},
		{0.025, 0.01, 125.3, "Fern grove - Shaded rest spot"},
		{0.02, 0.005, 115.0, "Historical marker - Old mill site"},
		{0.01, 0.03, 110.5, "End point - Trail loop completion"},
	}

	points := make([]model.RoutePoint, 0, len(offsets))
	for _, o := range offsets {
		points = append(points, model.RoutePoint{
			Lat:         lat + o.dLat,
			Lng:         lng + o.dLng,
			Elevation:   o.elevation,
			Description: o.description,
		})
	}
	return points
}

func fallbackNarratives(mode model.NarrativeMode) []model.NarrativeSegment {
	if mode == model.NarrativeModeFantasy {
		return []model.NarrativeSegment{
			{
				Title:      "The Dragon's Bridge",
				Story:      "Legend says that a friendly dragon named **Ember** lives under this bridge! She protects travelers and helps lost children find their way home. Can you spot her scales shimmering in the water below?",
				WaypointID: "wp_1",
				Images:     []string{"dragon_bridge.jpg"},
			},
			{
				Title:      "The Wizard's Cabin",
				Story:      "This magical cabin belongs to **Wizard Orion**! He uses plants from the forest to make magical potions. Sometimes, at night, you can see colorful lights dancing around his windows.",
				WaypointID: "wp_2",
				Images:     []string{"wizard_cabin.jpg"},
			},
		}
	}

	return []model.NarrativeSegment{
		{
			Title:      "The Old Forest Bridge",
			Story:      "This bridge was built in **1887** by local settlers. They used stones from the nearby river and wood from the old oak trees to carry goods to the market in the next town.",
			WaypointID: "wp_1",
			Images:     []string{"old_bridge.jpg"},
			Facts:      []string{"Built in 1887", "Made from river stone and oak"},
		},
		{
			Title:      "The Miner's Cabin",
			Story:      "A long time ago, miners came to these hills looking for gold. They built small cabins like this one. Life was hard, but some found enough gold to become rich!",
			WaypointID: "wp_2",
			Images:     []string{"miners_cabin.jpg"},
			Facts:      []string{"Gold was found here in the 1850s", "Cabins were built from local timber"},
		},
	}
}

// HistoryContentRating is the content rating of the offline history preview.
const HistoryContentRating = "Educational, age-appropriate for 7-12"

func fallbackPreview(mode model.NarrativeMode) model.NarrativePreview {
	if mode == model.NarrativeModeFantasy {
		return model.NarrativePreview{
			Narratives: []model.PreviewNarrative{
				{
					Title:           "The Dragon's Bridge",
					Story:           "Legend says that a friendly dragon named Ember lives under this bridge! She protects travelers and helps lost children find their way home.",
					FantasyElements: []string{"Friendly dragon", "Magic scales"},
					EmotionalTone:   "Playful, non-threatening",
				},
				{
					Title:           "The Wizard's Cabin",
					Story:           "This magical cabin belongs to Wizard Orion! He uses plants from the forest to make magical potions.",
					FantasyElements: []string{"Wizard", "Magic potions", "Spell casting"},
					EmotionalTone:   "Mysterious, but friendly and safe",
				},
				{
					Title:           "The Fairy Meadow",
					Story:           "This sunny meadow is home to a family of tiny fairies! If you're quiet and patient, you might see the flowers twinkle as they fly from petal to petal.",
					FantasyElements: []string{"Shy fairies", "Twinkling flowers"},
					EmotionalTone:   "Gentle, enchanting",
				},
			},
			ContentRating: "Child-friendly fantasy, no scary elements",
			Disclaimer:    "All fantasy content is fictional and designed to stimulate imagination",
		}
	}

	return model.NarrativePreview{
		Narratives: []model.PreviewNarrative{
			{
				Title:            "The Old Forest Bridge",
				Story:            "This bridge was built in 1887 by local settlers. Many travelers used it to transport goods to the market in the next town.",
				EducationalValue: "Local history, architecture, transportation",
				Sources:          []string{"Local Historical Society", "County Records"},
			},
			{
				Title:            "The Miner's Cabin",
				Story:            "A long time ago, miners came to these hills looking for gold. Life was hard for the miners, but some found enough gold to become rich!",
				EducationalValue: "Gold rush history, resource economics, living conditions in the past",
				Sources:          []string{"State Historical Archives", "Mining Museum"},
			},
			{
				Title:            "The Native American Trail",
				Story:            "Long before roads were built, Native American tribes created this path through the forest to travel between their summer and winter homes.",
				EducationalValue: "Indigenous history, early trade routes, seasonal migration",
				Sources:          []string{"Tribal Historical Society", "State Historical Archives"},
			},
		},
		ContentRating:      HistoryContentRating,
		HistoricalAccuracy: "Verified with historical records",
	}
}

func fallbackProfile() model.User {
	return model.User{
		ID:       DemoUserID,
		Name:     "Trail Explorer",
		FamilyID: DemoFamilyID,
		Preferences: map[string]any{
			"narrative_preference":  "history",
			"difficulty_preference": "easy",
			"units":                 "km",
		},
	}
}

func fallbackFamily(id string) model.Family {
	return model.Family{
		ID:   id,
		Name: "Adventure Family",
		Members: []model.FamilyMember{
			{ID: DemoUserID, Name: "Trail Explorer", Role: "parent"},
			{ID: "user_demo_child", Name: "Little Hiker", Role: "child", Age: 9},
		},
	}
}

func fallbackProgress(id string) model.FamilyProgress {
	return model.FamilyProgress{
		FamilyID:      id,
		TotalRoutes:   2,
		TotalDistance: 6.3,
		Badges:        []string{"Trail Pioneer", "History Explorer"},
		CompletedActivities: []model.CompletedActivity{
			{
				RouteID:        "route_101",
				CompletionDate: "2025-06-21",
				Duration:       55,
				Distance:       2.5,
				BadgesEarned:   []string{"Trail Pioneer"},
			},
			{
				RouteID:        "route_102",
				CompletionDate: "2025-07-04",
				Duration:       102,
				Distance:       3.8,
				BadgesEarned:   []string{"History Explorer"},
			},
		},
		NextMilestone: "Hike 5 trails to earn Forest Friend",
	}
}

func fallbackRegistration(family model.Family) model.RegisterResult {
	id := family.ID
	if id == "" {
		id = DemoFamilyID
	}
	return model.RegisterResult{
		FamilyID: id,
		Message:  "Family saved in offline demo mode",
	}
}
