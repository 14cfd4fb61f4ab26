package application

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// Words the offline content check flags. Matching is per word, so "die"
// does not flag "soldier".
var (
	inappropriateTerms = []string{"scary", "violent", "blood", "kill", "dead", "weapon", "gun", "knife", "die"}
	mildConcernTerms   = []string{"fight", "dark", "afraid", "scream", "monster", "ghost"}
)

// routeDifficultyHint reads the difficulty encoded in a demo route ID.
func routeDifficultyHint(routeID string) model.Difficulty {
	switch {
	case strings.Contains(routeID, "moderate"):
		return model.DifficultyModerate
	case strings.Contains(routeID, "hard"), strings.Contains(routeID, "challenging"):
		return model.DifficultyHard
	}
	return model.DifficultyEasy
}

func fallbackRouteSafety(routeID string) model.RouteSafety {
	d := routeDifficultyHint(routeID)

	weather := "Not recommended during heavy rain"
	if d != model.DifficultyEasy {
		weather += " or snow"
	}

	safety := model.RouteSafety{
		DifficultyRating: d,
		SafetyNotes: []string{
			"Trail is well-maintained and marked",
			pick(d, "Cell phone reception available throughout", "Cell phone reception variable", "Limited cell phone reception"),
			pick(d, "Water crossing has a sturdy bridge", "Water crossing has a sturdy bridge", "Water crossing may require careful footing"),
		},
		WeatherConsiderations: []string{
			weather,
			"Sunny areas require sunscreen",
			"Trail may be muddy for 1-2 days after rainfall",
		},
		EmergencyInfo: model.EmergencyInfo{
			NearestHelp:       "Ranger station " + pick(d, "1.5", "3.0", "5.0") + " km from the trailhead",
			EmergencyContacts: []string{"Park Rangers: 555-1234", "Emergency Services: 911"},
			CellCoverage:      pick(d, "Good throughout trail", "Available at higher elevations", "Very limited"),
		},
		TrailConditions: model.TrailConditions{
			LastUpdated:       "2025-09-03",
			Condition:         pick(d, "Excellent", "Good", "Fair"),
			RecentMaintenance: "2025-08-15",
			Hazards: pick(d,
				[]string{"Occasional exposed tree roots"},
				[]string{"Occasional steep sections", "Some rocky terrain", "One narrow path along hillside"},
				[]string{"Several steep drops", "Rocky and uneven terrain", "Stream crossing without bridge", "Loose gravel on steep sections"},
			),
		},
		FamilyFriendliness: model.FamilyFriendliness{
			SuitableForChildren: d == model.DifficultyEasy || (d == model.DifficultyModerate && strings.Contains(routeID, "family")),
			StrollerAccessible:  d == model.DifficultyEasy && strings.Contains(routeID, "accessible"),
			RestroomFacilities:  d == model.DifficultyEasy,
			WaterFountains:      d == model.DifficultyEasy,
		},
		WildlifeAwareness: model.WildlifeAwareness{
			CommonWildlife: pick(d,
				[]string{"Deer", "Squirrels", "Various birds"},
				[]string{"Deer", "Squirrels", "Various birds", "Foxes", "Raccoons"},
				[]string{"Deer", "Squirrels", "Various birds", "Foxes", "Raccoons", "Occasional bear sightings"},
			),
			Precautions: []string{"Store food properly", "Do not feed wildlife", "Observe from a distance"},
		},
		Recommendations: []string{
			"Bring plenty of water",
			"Wear appropriate footwear",
			"Check weather forecast before starting",
			"Share your route plan with someone",
		},
	}

	if d == model.DifficultyHard {
		safety.WildlifeAwareness.Precautions = append(safety.WildlifeAwareness.Precautions,
			"Make noise while hiking to avoid startling wildlife")
	}
	if d != model.DifficultyEasy {
		safety.Recommendations = append(safety.Recommendations,
			"Bring a basic first aid kit",
			"Consider hiking poles for steep sections")
	}
	if d == model.DifficultyHard {
		safety.Recommendations = append(safety.Recommendations,
			"Not recommended for inexperienced hikers",
			"Bring navigation tools (map, compass, or GPS)",
			"Plan for a full day excursion")
	}
	return safety
}

// fallbackContentCheck rates content locally. Strong terms are never
// appropriate; mild ones are fine from age nine.
func fallbackContentCheck(content string, childAge int) model.ContentCheck {
	words := contentWords(content)

	if flagged := matchTerms(words, inappropriateTerms); len(flagged) > 0 {
		minAge := max(13, childAge+2)
		return model.ContentCheck{
			Appropriate:   false,
			Reason:        "Contains potentially scary or inappropriate content",
			SuggestedEdit: "Consider using more child-friendly language",
			FlaggedTerms:  flagged,
			AgeRating:     "Not suitable for children under " + strconv.Itoa(minAge),
			Confidence:    "high",
		}
	}

	if flagged := matchTerms(words, mildConcernTerms); len(flagged) > 0 {
		return model.ContentCheck{
			Appropriate:   childAge >= 9,
			Reason:        "Contains some terms that may be concerning for very young children",
			SuggestedEdit: "Consider gentler language for younger audiences",
			FlaggedTerms:  flagged,
			AgeRating:     "Suitable for ages 9+",
			Confidence:    "medium",
		}
	}

	check := model.ContentCheck{
		Appropriate: true,
		ContentType: "entertainment",
		Confidence:  "high",
	}
	if words["learn"] || words["history"] {
		check.ContentType = "informational and educational"
	}
	switch {
	case childAge < 7:
		check.AgeRating = "Suitable for ages 3-7"
		check.ReadingLevel = "Simple vocabulary, appropriate for early readers"
	case childAge < 12:
		check.AgeRating = "Suitable for ages 7-12"
		check.ReadingLevel = "Appropriate vocabulary for middle-grade readers"
	default:
		check.AgeRating = "Suitable for ages 12+"
		check.ReadingLevel = "Vocabulary suitable for young teens"
	}
	return check
}

// contentWords returns the lower-cased words of s. A trailing plural "s"
// is also indexed without it.
func contentWords(s string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		words[w] = true
		if len(w) > 3 && strings.HasSuffix(w, "s") {
			words[strings.TrimSuffix(w, "s")] = true
		}
	}
	return words
}

func matchTerms(words map[string]bool, terms []string) []string {
	var flagged []string
	for _, t := range terms {
		if words[t] {
			flagged = append(flagged, t)
		}
	}
	return flagged
}

func fallbackParentalControls() model.ParentalControls {
	return model.ParentalControls{
		NarrativeModes:      []model.NarrativeMode{model.NarrativeModeHistory, model.NarrativeModeFantasy},
		ContentFilter:       model.ContentFilterMild,
		MaxDifficulty:       model.DifficultyModerate,
		AllowSocialFeatures: true,
		PreviewRequired:     true,
		ScreenTimeLimit:     60,
		LocationSharing:     "family_only",
		ApprovedTrailTypes:  []model.Difficulty{model.DifficultyEasy, model.DifficultyModerate},
	}
}
