package web

import (
	"fmt"
	"net/url"
	"strconv"

	vm "github.com/ericfisherdev/trailtail/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// toRouteCardViewModel converts a route summary to its card representation.
func toRouteCardViewModel(r model.RouteSummary) vm.RouteCardViewModel {
	card := vm.RouteCardViewModel{
		ID:             r.ID,
		Name:           r.Name,
		Location:       r.Location,
		Description:    r.Description,
		Difficulty:     string(r.Difficulty),
		DistanceLabel:  strconv.FormatFloat(r.Distance, 'f', 1, 64) + " km",
		DurationLabel:  formatMinutes(r.EstimatedTime),
		FamilyFriendly: r.SuitableForChildren,
		HistoryPath:    storyPath(r.ID, model.NarrativeModeHistory),
		FantasyPath:    storyPath(r.ID, model.NarrativeModeFantasy),
	}
	if r.Rating > 0 {
		card.RatingLabel = strconv.FormatFloat(r.Rating, 'f', 1, 64) + " / 5"
	}
	return card
}

func toRouteCards(routes []model.RouteSummary) []vm.RouteCardViewModel {
	cards := make([]vm.RouteCardViewModel, 0, len(routes))
	for _, r := range routes {
		cards = append(cards, toRouteCardViewModel(r))
	}
	return cards
}

// toNarrativePageViewModel renders every story's markdown to sanitized HTML.
func toNarrativePageViewModel(route model.Route, mode model.NarrativeMode, segments []model.NarrativeSegment) vm.NarrativePageViewModel {
	other := model.NarrativeModeFantasy
	if mode == model.NarrativeModeFantasy {
		other = model.NarrativeModeHistory
	}

	stories := make([]vm.StoryViewModel, 0, len(segments))
	for _, seg := range segments {
		stories = append(stories, vm.StoryViewModel{
			Title:     seg.Title,
			StoryHTML: RenderStory(seg.Story),
			Facts:     seg.Facts,
		})
	}

	name := route.Name
	if name == "" {
		name = route.ID
	}

	return vm.NarrativePageViewModel{
		RouteID:        route.ID,
		RouteName:      name,
		ModeLabel:      modeLabel(mode),
		OtherModeLabel: modeLabel(other),
		OtherModePath:  storyPath(route.ID, other),
		Stories:        stories,
	}
}

func toBannerViewModel(notice model.OfflineNotice, visible bool) vm.BannerViewModel {
	if !visible {
		return vm.BannerViewModel{}
	}
	return vm.BannerViewModel{Visible: true, Message: notice.Message}
}

func storyPath(routeID string, mode model.NarrativeMode) string {
	return "/routes/" + url.PathEscape(routeID) + "/story?mode=" + url.QueryEscape(string(mode))
}

func modeLabel(mode model.NarrativeMode) string {
	if mode == model.NarrativeModeFantasy {
		return "Fantasy adventure"
	}
	return "Local history"
}

// formatMinutes renders a duration in minutes as "1h 35m" or "50m".
func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
