package models

// JourneyDua is the join record tying a dua into a journey with its
// time-slot assignment and position within that slot.
type JourneyDua struct {
	DuaID     int      `json:"dua_id"`
	TimeSlot  TimeSlot `json:"time_slot"`
	SortOrder int      `json:"sort_order"`
}

// Journey is an immutable catalog record grouping an ordered list of duas.
// DailyXP is denormalized: it should equal the sum of the member duas' XP
// values, validated by the catalog consistency checks rather than enforced
// here.
type Journey struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	DailyXP     int    `json:"daily_xp"`
	IsPremium   bool   `json:"is_premium"`
	IsFeatured  bool   `json:"is_featured"`
	SortOrder   int    `json:"sort_order"`
}

// JourneyWithDuas is a journey plus its member join records, ordered by
// ascending SortOrder as fetched from the catalog.
type JourneyWithDuas struct {
	Journey
	Duas []JourneyDua `json:"duas"`
}
