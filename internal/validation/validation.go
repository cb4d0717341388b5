package validation

import (
	"fmt"
	"sort"

	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDanglingDuaRef     ConflictType = "dangling_dua_ref"
	ConflictDuplicateSlug      ConflictType = "duplicate_slug"
	ConflictDuplicateJourneyID ConflictType = "duplicate_journey_id"
	ConflictDuplicateMember    ConflictType = "duplicate_member"
	ConflictInvalidTimeSlot    ConflictType = "invalid_time_slot"
	ConflictXPMismatch         ConflictType = "xp_mismatch"
	ConflictUnknownJourney     ConflictType = "unknown_journey"
	ConflictInvalidDay         ConflictType = "invalid_day"
)

// Conflict represents a detected inconsistency in the catalog or stored state
type Conflict struct {
	Type        ConflictType
	Description string
	JourneyID   string // Journey involved (if applicable)
	DuaIDs      []int  // Dua IDs involved (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks catalog snapshots and stored habit state for consistency
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateCatalog checks a catalog snapshot for internal consistency:
// journeys must reference existing duas exactly once, slugs and ids must be
// unique, time slots must be known, and the advertised daily XP should match
// the sum of the members' XP values.
func (v *Validator) ValidateCatalog(cat models.Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	duaIDs := make(map[int]bool, len(cat.Duas))
	for _, d := range cat.Duas {
		duaIDs[d.ID] = true
		if d.RecommendedTime != "" && !d.RecommendedTime.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimeSlot,
				Description: fmt.Sprintf("Dua %d (%q) has unknown recommended time: %q", d.ID, d.Title, d.RecommendedTime),
				DuaIDs:      []int{d.ID},
			})
		}
	}

	slugOwners := make(map[string][]string)
	idCount := make(map[string]int)
	for _, j := range cat.Journeys {
		idCount[j.ID]++
		if j.Slug != "" {
			slugOwners[j.Slug] = append(slugOwners[j.Slug], j.ID)
		}
	}
	for id, n := range idCount {
		if n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateJourneyID,
				Description: fmt.Sprintf("Journey id %q appears %d times", id, n),
				JourneyID:   id,
			})
		}
	}
	slugs := make([]string, 0, len(slugOwners))
	for slug := range slugOwners {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		if owners := slugOwners[slug]; len(owners) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSlug,
				Description: fmt.Sprintf("Duplicate journey slug %q (journeys: %v)", slug, owners),
			})
		}
	}

	for _, j := range cat.Journeys {
		seen := make(map[int]bool)
		xpSum := 0
		for _, member := range j.Duas {
			if !duaIDs[member.DuaID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDanglingDuaRef,
					Description: fmt.Sprintf("Journey %q references missing dua %d", j.ID, member.DuaID),
					JourneyID:   j.ID,
					DuaIDs:      []int{member.DuaID},
				})
			}
			if seen[member.DuaID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateMember,
					Description: fmt.Sprintf("Journey %q lists dua %d more than once", j.ID, member.DuaID),
					JourneyID:   j.ID,
					DuaIDs:      []int{member.DuaID},
				})
			}
			seen[member.DuaID] = true
			if member.TimeSlot != "" && !member.TimeSlot.Valid() {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTimeSlot,
					Description: fmt.Sprintf("Journey %q assigns dua %d an unknown time slot: %q", j.ID, member.DuaID, member.TimeSlot),
					JourneyID:   j.ID,
					DuaIDs:      []int{member.DuaID},
				})
			}
			if d, ok := cat.DuaByID(member.DuaID); ok {
				xpSum += d.XPValue
			}
		}

		if j.DailyXP > 0 && len(j.Duas) > 0 && xpSum != j.DailyXP {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictXPMismatch,
				Description: fmt.Sprintf("Journey %q advertises %d daily XP but members sum to %d",
					j.ID, j.DailyXP, xpSum),
				JourneyID: j.ID,
			})
		}
	}

	return result
}

// ValidateState checks stored habit state against a catalog snapshot:
// subscriptions must point at known journeys, custom habits at known duas,
// and completion day keys must be well-formed. Conflicts here are advisory;
// the aggregator tolerates all of them at runtime.
func (v *Validator) ValidateState(st models.UserHabitsStorage, cat models.Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, id := range st.ActiveJourneyIDs {
		if _, ok := cat.JourneyByID(id); !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownJourney,
				Description: fmt.Sprintf("Subscribed journey %q is not in the catalog", id),
				JourneyID:   id,
			})
		}
	}

	duaIDs := make(map[int]bool, len(cat.Duas))
	for _, d := range cat.Duas {
		duaIDs[d.ID] = true
	}
	for _, h := range st.CustomHabits {
		if !duaIDs[h.DuaID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDanglingDuaRef,
				Description: fmt.Sprintf("Custom habit %s references missing dua %d", h.ID, h.DuaID),
				DuaIDs:      []int{h.DuaID},
			})
		}
		if !h.TimeSlot.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimeSlot,
				Description: fmt.Sprintf("Custom habit %s has unknown time slot: %q", h.ID, h.TimeSlot),
				DuaIDs:      []int{h.DuaID},
			})
		}
	}

	for _, c := range st.HabitCompletions {
		if err := utils.ValidateDayKey(c.Day); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Completion record has invalid day key: %q", c.Day),
			})
		}
	}

	return result
}
