package application

import (
	"strconv"
	"strings"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var historyEncounters = []model.Encounter{
	{Type: model.EncounterLandmark, Title: "Old Bridge", Description: "This bridge has been standing for over 100 years! Look for the date carved in the stone.", ARModel: "models/old_bridge_overlay.glb", InteractionType: "find_and_learn", Reward: "History Badge: Bridge Builder"},
	{Type: model.EncounterCharacter, Title: "Pioneer Guide", Description: "Meet Sarah, a pioneer who can tell you about life in the 1800s.", ARModel: "models/pioneer_woman.glb", InteractionType: "talk_and_learn", Reward: "History Fact: Pioneer Life"},
	{Type: model.EncounterPuzzle, Title: "Mining Tools", Description: "Can you match these old mining tools to their names?", ARModel: "models/mining_tools.glb", InteractionType: "match_items", Reward: "History Badge: Mining Expert"},
	{Type: model.EncounterLandmark, Title: "Stone Cairn", Description: "These stacked stones were used as trail markers long before maps were printed.", ARModel: "models/stone_cairn.glb", InteractionType: "learn_and_build", Reward: "History Badge: Trail Marker"},
	{Type: model.EncounterPuzzle, Title: "Old Map Challenge", Description: "Compare this old map from 1890 with today's landscape. Can you spot what has changed?", ARModel: "models/old_map_overlay.glb", InteractionType: "spot_differences", Reward: "History Badge: Cartographer"},
	{Type: model.EncounterCharacter, Title: "Forest Ranger Historian", Description: "Ranger Bill knows all about the history of this forest. Ask him about the old logging camp!", ARModel: "models/ranger_character.glb", InteractionType: "interview", Reward: "History Badge: Forest Historian"},
	{Type: model.EncounterAnimal, Title: "Historical Wildlife", Description: "See what animals lived here 200 years ago, including some that are no longer found in this area.", ARModel: "models/historical_animals.glb", InteractionType: "observe_and_learn", Reward: "History Badge: Wildlife Historian"},
	{Type: model.EncounterLandmark, Title: "Old Mill Ruins", Description: "Discover the remains of an old water mill that powered the early settlement.", ARModel: "models/mill_ruins.glb", InteractionType: "explore_ruins", Reward: "History Badge: Industrial Archaeologist"},
}

var fantasyEncounters = []model.Encounter{
	{Type: model.EncounterTreasure, Title: "Dragon's Treasure", Description: "The dragon has hidden a treasure chest nearby! Can you find it?", ARModel: "models/treasure_chest.glb", InteractionType: "find_and_tap", Reward: "Fantasy Badge: Treasure Hunter"},
	{Type: model.EncounterCharacter, Title: "Forest Fairy", Description: "A tiny forest fairy needs your help to find her lost wand!", ARModel: "models/forest_fairy.glb", InteractionType: "help_character", Reward: "Magic Dust (virtual item)"},
	{Type: model.EncounterPuzzle, Title: "Wizard's Riddle", Description: "Solve the wizard's riddle to unlock a magical spell!", ARModel: "models/magic_book.glb", InteractionType: "solve_riddle", Reward: "Fantasy Badge: Apprentice Wizard"},
	{Type: model.EncounterAnimal, Title: "Friendly Forest Dragon", Description: "Meet Ember, the friendly dragon who protects the forest!", ARModel: "models/small_dragon.glb", InteractionType: "feed_and_pet", Reward: "Fantasy Badge: Dragon Friend"},
	{Type: model.EncounterLandmark, Title: "Magic Crystal Formation", Description: "These crystals glow with magical energy. Place your hand near them to change their color!", ARModel: "models/glowing_crystals.glb", InteractionType: "touch_and_change", Reward: "Crystal Shard (virtual item)"},
	{Type: model.EncounterPuzzle, Title: "Enchanted Music Stones", Description: "Tap these stones in the correct order to play a magical melody!", ARModel: "models/music_stones.glb", InteractionType: "sequence_puzzle", Reward: "Fantasy Badge: Music Mage"},
	{Type: model.EncounterCharacter, Title: "Talking Tree Guardian", Description: "This ancient tree has awakened! It has stories to tell about the magical forest.", ARModel: "models/talking_tree.glb", InteractionType: "listen_and_respond", Reward: "Magical Seed (virtual item)"},
	{Type: model.EncounterTreasure, Title: "Fairy Ring", Description: "Find the circle of mushrooms where fairies dance at night. There might be a gift waiting for you!", ARModel: "models/fairy_ring.glb", InteractionType: "discover_and_receive", Reward: "Fantasy Badge: Fairy Friend"},
}

// fallbackEncounters picks opts.Count encounters for routeID. The same
// route always gets the same selection.
func fallbackEncounters(routeID string, opts model.EncounterOptions) []model.Encounter {
	pool := fantasyEncounters
	if opts.Mode == model.NarrativeModeHistory {
		pool = historyEncounters
	}

	seed := 0
	for _, b := range []byte(routeID) {
		seed += int(b)
	}

	levels := []string{"easy", "medium", "hard"}
	switch {
	case opts.ChildAge < 8:
		levels = levels[:1]
	case opts.ChildAge < 12:
		levels = levels[:2]
	}

	suffix := routeID
	if len(suffix) > 5 {
		suffix = suffix[len(suffix)-5:]
	}

	n := min(opts.Count, len(pool))
	encounters := make([]model.Encounter, 0, n)
	for i := range n {
		e := pool[(seed+i)%len(pool)]
		e.ID = string(e.Type) + "_" + suffix + "_" + strconv.Itoa(i+1)
		e.Difficulty = levels[(seed+i)%len(levels)]
		encounters = append(encounters, e)
	}
	return encounters
}

// fallbackEncounterDetail describes an encounter from the type prefix of
// its ID. Unknown prefixes are landmarks.
func fallbackEncounterDetail(id string) model.EncounterDetail {
	kind, _, _ := strings.Cut(id, "_")

	switch model.EncounterType(kind) {
	case model.EncounterAnimal:
		return model.EncounterDetail{
			Encounter: model.Encounter{
				ID: id, Type: model.EncounterAnimal, Title: "Forest Fox",
				Description:     "A curious fox appears on the trail! Watch quietly as it sniffs around and maybe even comes closer to investigate you.",
				ARModel:         "models/forest_fox.glb",
				InteractionType: "observe_and_learn",
				Reward:          "Animal Friend Badge",
			},
			CompletionCriteria: "Stay still and observe the fox for at least 30 seconds",
			Animation:          "fox_curious.animation",
			SoundEffects:       []string{"fox_call.mp3", "forest_ambience.mp3"},
			Facts: []string{
				"Foxes are members of the canine family",
				"They have excellent night vision",
				"Foxes use the Earth's magnetic field to hunt",
			},
		}
	case model.EncounterTreasure:
		return model.EncounterDetail{
			Encounter: model.Encounter{
				ID: id, Type: model.EncounterTreasure, Title: "Hidden Treasure Chest",
				Description:     "A mysterious treasure chest is hidden nearby! Follow the clues to find it.",
				ARModel:         "models/treasure_chest.glb",
				InteractionType: "find_and_tap",
				Reward:          "Treasure Hunter Badge",
				Difficulty:      "medium",
			},
			CompletionCriteria: "Find and tap on the treasure chest",
			Animation:          "chest_opening.animation",
			SoundEffects:       []string{"success.mp3", "magic_sparkle.mp3"},
			Hints: []string{
				"Look for something shiny near water",
				"It's hidden where trees make an X shape",
				"You'll find it where animals drink",
			},
		}
	case model.EncounterCharacter:
		return model.EncounterDetail{
			Encounter: model.Encounter{
				ID: id, Type: model.EncounterCharacter, Title: "Forest Ranger",
				Description:     "Meet Park Ranger Alex, who can tell you all about the forest and its creatures!",
				ARModel:         "models/forest_ranger.glb",
				InteractionType: "talk_and_learn",
				Reward:          "Ranger Helper Badge",
			},
			CompletionCriteria: "Complete the ranger's mini-quiz about forest conservation",
			Animation:          "ranger_greeting.animation",
			SoundEffects:       []string{"ranger_hello.mp3", "birds_chirping.mp3"},
			Facts: []string{
				"Pack out everything you bring into the forest",
				"Staying on marked trails protects fragile plants",
			},
		}
	case model.EncounterPuzzle:
		return model.EncounterDetail{
			Encounter: model.Encounter{
				ID: id, Type: model.EncounterPuzzle, Title: "Forest Riddle",
				Description:     "Solve this riddle to unlock a special forest secret!",
				ARModel:         "models/riddle_stone.glb",
				InteractionType: "solve_riddle",
				Reward:          "Riddle Master Badge",
				Difficulty:      "medium",
			},
			CompletionCriteria: "Select the correct answer to the riddle",
			Animation:          "stone_glowing.animation",
			SoundEffects:       []string{"magic_chime.mp3", "success.mp3"},
			Hints:              []string{"Think about something that burns..."},
		}
	}

	return model.EncounterDetail{
		Encounter: model.Encounter{
			ID: id, Type: model.EncounterLandmark, Title: "Ancient Oak Tree",
			Description:     "This massive oak tree is over 500 years old! It's been standing here since before explorers first came to this land.",
			ARModel:         "models/ancient_oak.glb",
			InteractionType: "explore_and_learn",
			Reward:          "Nature History Badge",
		},
		CompletionCriteria: "Find and identify three features of the ancient oak",
		Animation:          "leaves_rustling.animation",
		SoundEffects:       []string{"wind_in_leaves.mp3", "creaking_wood.mp3"},
		Facts: []string{
			"This tree germinated around 1520 CE",
			"Ancient trees like this provide habitat for dozens of species",
		},
	}
}
