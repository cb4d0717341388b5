// Package tracker is the single writer over the habit store. Every state
// mutation (subscriptions, custom habits, completions) funnels through one
// Tracker guarded by a mutex, so readers always see a consistent snapshot.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rizqapp/rizq/internal/catalog"
	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/internal/utils"
)

// Tracker coordinates habit state changes. Completions are recorded locally
// first; when a recorder and user id are configured, the remote write happens
// asynchronously and its failure never rolls back the local record.
type Tracker struct {
	mu       sync.Mutex
	store    storage.Provider
	recorder catalog.Recorder
	userID   string
	pending  sync.WaitGroup
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

// WithRecorder enables remote completion sync for the given user. An empty
// user id keeps the tracker in anonymous, local-only mode.
func (t *Tracker) WithRecorder(r catalog.Recorder, userID string) *Tracker {
	t.recorder = r
	t.userID = userID
	return t
}

// State returns a snapshot of the current habit state.
func (t *Tracker) State() (models.UserHabitsStorage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.State()
}

// Wait blocks until all in-flight remote completion writes have finished.
// Call before process exit so sync attempts are not abandoned mid-request.
func (t *Tracker) Wait() {
	t.pending.Wait()
}

// MarkCompleted records a completion for the given dua on the given day.
// Recording the same (dua, day) twice is a no-op. Returns true when the
// completion was newly recorded.
func (t *Tracker) MarkCompleted(ctx context.Context, duaID int, xpAwarded int, day string) (bool, error) {
	if err := utils.ValidateDayKey(day); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.store.State()
	if err != nil {
		return false, err
	}

	recorded := false
	found := false
	for i, c := range state.HabitCompletions {
		if c.Day != day {
			continue
		}
		found = true
		if !c.Contains(duaID) {
			state.HabitCompletions[i].CompletedDuaIDs = append(c.CompletedDuaIDs, duaID)
			recorded = true
		}
		break
	}
	if !found {
		state.HabitCompletions = append(state.HabitCompletions, models.HabitCompletion{
			Day:             day,
			CompletedDuaIDs: []int{duaID},
		})
		recorded = true
	}

	if !recorded {
		return false, nil
	}

	progress := state.DuaProgress[duaID]
	progress.CompletedCount++
	progress.LastCompletedDay = day
	state.DuaProgress[duaID] = progress
	state.LastUpdated = time.Now().UTC()

	if err := t.store.SaveState(state); err != nil {
		return false, fmt.Errorf("failed to save completion: %w", err)
	}

	t.syncCompletion(ctx, duaID, xpAwarded, day)
	return true, nil
}

// syncCompletion pushes the completion to the remote recorder in the
// background. Anonymous mode (no user id) skips the write entirely.
func (t *Tracker) syncCompletion(ctx context.Context, duaID, xpAwarded int, day string) {
	if t.recorder == nil || t.userID == "" {
		return
	}

	t.pending.Add(1)
	go func() {
		defer t.pending.Done()

		syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		profile, err := t.recorder.RecordCompletion(syncCtx, t.userID, duaID, xpAwarded, day)
		if err != nil {
			logger.Warn("Remote completion sync failed, local record kept",
				"dua", duaID, "day", day, "error", err)
			return
		}
		logger.Debug("Synced completion",
			"dua", duaID, "day", day, "totalXP", profile.TotalXP, "streak", profile.CurrentStreak)
	}()
}

// Subscribe adds a journey to the active list. Order is preserved; it
// determines which journey wins when two journeys share a dua. Subscribing
// twice is a no-op.
func (t *Tracker) Subscribe(journeyID string) error {
	if journeyID == "" {
		return fmt.Errorf("journey id cannot be empty")
	}

	return t.mutate(func(state *models.UserHabitsStorage) error {
		for _, id := range state.ActiveJourneyIDs {
			if id == journeyID {
				return nil
			}
		}
		state.ActiveJourneyIDs = append(state.ActiveJourneyIDs, journeyID)
		return nil
	})
}

// Unsubscribe removes a journey from the active list. Completion history for
// its duas is retained.
func (t *Tracker) Unsubscribe(journeyID string) error {
	return t.mutate(func(state *models.UserHabitsStorage) error {
		kept := state.ActiveJourneyIDs[:0]
		removed := false
		for _, id := range state.ActiveJourneyIDs {
			if id == journeyID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		if !removed {
			return fmt.Errorf("not subscribed to journey %q", journeyID)
		}
		state.ActiveJourneyIDs = kept
		return nil
	})
}

// AddCustomHabit appends a dua to the user's custom habits in the given
// slot. The same dua cannot be added as a custom habit twice.
func (t *Tracker) AddCustomHabit(duaID int, slot models.TimeSlot) (models.UserHabit, error) {
	if !slot.Valid() {
		return models.UserHabit{}, fmt.Errorf("invalid time slot: %q", slot)
	}

	habit := models.UserHabit{
		ID:       uuid.NewString(),
		DuaID:    duaID,
		TimeSlot: slot,
		Source:   models.SourceCustom,
		AddedAt:  time.Now().UTC(),
	}

	err := t.mutate(func(state *models.UserHabitsStorage) error {
		maxOrder := -1
		for _, h := range state.CustomHabits {
			if h.DuaID == duaID {
				return fmt.Errorf("dua %d is already a custom habit", duaID)
			}
			if h.SortOrder > maxOrder {
				maxOrder = h.SortOrder
			}
		}
		habit.SortOrder = maxOrder + 1
		state.CustomHabits = append(state.CustomHabits, habit)
		return nil
	})
	if err != nil {
		return models.UserHabit{}, err
	}
	return habit, nil
}

// RemoveCustomHabit removes a custom habit by its dua id.
func (t *Tracker) RemoveCustomHabit(duaID int) error {
	return t.mutate(func(state *models.UserHabitsStorage) error {
		kept := state.CustomHabits[:0]
		removed := false
		for _, h := range state.CustomHabits {
			if h.DuaID == duaID {
				removed = true
				continue
			}
			kept = append(kept, h)
		}
		if !removed {
			return fmt.Errorf("no custom habit for dua %d", duaID)
		}
		state.CustomHabits = kept
		return nil
	})
}

// mutate runs fn against the current state under the write lock and persists
// the result when fn succeeds.
func (t *Tracker) mutate(fn func(*models.UserHabitsStorage) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.store.State()
	if err != nil {
		return err
	}
	if err := fn(&state); err != nil {
		return err
	}
	state.LastUpdated = time.Now().UTC()
	return t.store.SaveState(state)
}
