package models

import "time"

// HabitSource distinguishes how a habit entered the user's daily list.
type HabitSource string

const (
	SourceJourney HabitSource = "journey"
	SourceCustom  HabitSource = "custom"
)

// UserHabit is an ad-hoc habit entry referencing a dua directly, bypassing
// any journey. Custom habits carry their own slot assignment and position.
type UserHabit struct {
	ID        string      `json:"id"`
	DuaID     int         `json:"dua_id"`
	TimeSlot  TimeSlot    `json:"time_slot"`
	SortOrder int         `json:"sort_order"`
	Source    HabitSource `json:"source"`
	AddedAt   time.Time   `json:"added_at"`
}

// HabitCompletion is the daily completion record: one per calendar date,
// holding the set of dua ids completed that day. Append-only within a day.
type HabitCompletion struct {
	Day             string `json:"day"` // YYYY-MM-DD, user's timezone
	CompletedDuaIDs []int  `json:"completed_dua_ids"`
}

// Contains reports whether the day's record already holds the given dua id.
func (c HabitCompletion) Contains(duaID int) bool {
	for _, id := range c.CompletedDuaIDs {
		if id == duaID {
			return true
		}
	}
	return false
}

// DuaProgress tracks lifetime completion counters for a single dua.
type DuaProgress struct {
	CompletedCount   int    `json:"completed_count"`
	LastCompletedDay string `json:"last_completed_day,omitempty"`
}

// UserHabitsStorage is the mutable root of user state. It is owned
// exclusively by the tracker; everything else reads deep-copy snapshots.
type UserHabitsStorage struct {
	// ActiveJourneyID is the legacy single-journey field. It is upgraded to
	// ActiveJourneyIDs on load and never written back.
	ActiveJourneyID *string `json:"active_journey_id,omitempty"`

	ActiveJourneyIDs []string            `json:"active_journey_ids"`
	CustomHabits     []UserHabit         `json:"custom_habits"`
	HabitCompletions []HabitCompletion   `json:"habit_completions"`
	DuaProgress      map[int]DuaProgress `json:"dua_progress,omitempty"`
	LastUpdated      time.Time           `json:"last_updated"`
}

// NewUserHabitsStorage returns the empty default state used on first run
// and as the fallback when the persisted document cannot be parsed.
func NewUserHabitsStorage() UserHabitsStorage {
	return UserHabitsStorage{
		ActiveJourneyIDs: []string{},
		CustomHabits:     []UserHabit{},
		HabitCompletions: []HabitCompletion{},
		DuaProgress:      map[int]DuaProgress{},
	}
}

// Migrate upgrades the legacy single-journey representation to the
// multi-journey one by wrapping a non-null id in a singleton list, and
// initializes any nil collections. It is lossless and idempotent.
func (s UserHabitsStorage) Migrate() UserHabitsStorage {
	if s.ActiveJourneyID != nil {
		if *s.ActiveJourneyID != "" && !containsString(s.ActiveJourneyIDs, *s.ActiveJourneyID) {
			s.ActiveJourneyIDs = append([]string{*s.ActiveJourneyID}, s.ActiveJourneyIDs...)
		}
		s.ActiveJourneyID = nil
	}
	if s.ActiveJourneyIDs == nil {
		s.ActiveJourneyIDs = []string{}
	}
	if s.CustomHabits == nil {
		s.CustomHabits = []UserHabit{}
	}
	if s.HabitCompletions == nil {
		s.HabitCompletions = []HabitCompletion{}
	}
	if s.DuaProgress == nil {
		s.DuaProgress = map[int]DuaProgress{}
	}
	return s
}

// CompletionForDay returns the completion record for the given day key, if any.
func (s UserHabitsStorage) CompletionForDay(day string) (HabitCompletion, bool) {
	for _, c := range s.HabitCompletions {
		if c.Day == day {
			return c, true
		}
	}
	return HabitCompletion{}, false
}

// Clone returns a deep copy so readers never share mutable slices with the
// tracker's live state.
func (s UserHabitsStorage) Clone() UserHabitsStorage {
	out := s
	out.ActiveJourneyIDs = append([]string{}, s.ActiveJourneyIDs...)
	out.CustomHabits = append([]UserHabit{}, s.CustomHabits...)
	out.HabitCompletions = make([]HabitCompletion, len(s.HabitCompletions))
	for i, c := range s.HabitCompletions {
		out.HabitCompletions[i] = HabitCompletion{
			Day:             c.Day,
			CompletedDuaIDs: append([]int{}, c.CompletedDuaIDs...),
		}
	}
	out.DuaProgress = make(map[int]DuaProgress, len(s.DuaProgress))
	for id, p := range s.DuaProgress {
		out.DuaProgress[id] = p
	}
	return out
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

// HabitWithDua is a user-facing habit scheduled for today: the resolved
// catalog dua plus its slot placement and completion status.
type HabitWithDua struct {
	Dua              Dua         `json:"dua"`
	TimeSlot         TimeSlot    `json:"time_slot"`
	SortOrder        int         `json:"sort_order"`
	Source           HabitSource `json:"source"`
	JourneyID        string      `json:"journey_id,omitempty"`
	IsCompletedToday bool        `json:"is_completed_today"`
}
