package model

// EncounterType is the kind of AR encounter placed on a route.
type EncounterType string

const (
	EncounterAnimal    EncounterType = "animal"
	EncounterTreasure  EncounterType = "treasure"
	EncounterCharacter EncounterType = "character"
	EncounterPuzzle    EncounterType = "puzzle"
	EncounterLandmark  EncounterType = "landmark"
)

// Encounter is an AR moment along a route.
type Encounter struct {
	ID              string        `json:"id"`
	Type            EncounterType `json:"type"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ARModel         string        `json:"ar_model"`
	InteractionType string        `json:"interaction_type"`
	Reward          string        `json:"reward,omitempty"`
	Difficulty      string        `json:"difficulty,omitempty"`
}

// EncounterDetail is an Encounter with what the AR view needs to run it.
type EncounterDetail struct {
	Encounter
	CompletionCriteria string   `json:"completion_criteria"`
	Animation          string   `json:"animation,omitempty"`
	SoundEffects       []string `json:"sound_effects,omitempty"`
	Hints              []string `json:"hints,omitempty"`
	Facts              []string `json:"facts,omitempty"`
}

// EncounterOptions shape an encounter generation request. Zero values take
// the remote service's defaults.
type EncounterOptions struct {
	Mode     NarrativeMode
	ChildAge int
	Count    int
}
