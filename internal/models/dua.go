package models

// TimeSlot partitions a day's habits. It is a closed enum: no values other
// than the three below are permitted.
type TimeSlot string

const (
	SlotMorning TimeSlot = "morning"
	SlotAnytime TimeSlot = "anytime"
	SlotEvening TimeSlot = "evening"
)

// Priority orders slots for "next up" selection: morning first, evening last.
func (s TimeSlot) Priority() int {
	switch s {
	case SlotMorning:
		return 0
	case SlotAnytime:
		return 1
	case SlotEvening:
		return 2
	default:
		return 3
	}
}

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAnytime, SlotEvening:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Category groups duas by theme in the catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Dua is an immutable catalog record for a single supplication. It is
// created by content curation and read-only to this client.
type Dua struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	TitleArabic     string     `json:"title_arabic,omitempty"`
	Arabic          string     `json:"arabic"`
	Transliteration string     `json:"transliteration,omitempty"`
	Translation     string     `json:"translation"`
	Source          string     `json:"source,omitempty"`
	Repetitions     int        `json:"repetitions"`
	RecommendedTime TimeSlot   `json:"recommended_time,omitempty"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	XPValue         int        `json:"xp_value"`
	Benefit         string     `json:"benefit,omitempty"`
	CategoryID      int        `json:"category_id,omitempty"`
}
