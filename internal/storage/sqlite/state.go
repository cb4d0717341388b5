package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/rizqapp/rizq/internal/models"
)

// State reads the whole user state as an immutable snapshot.
func (s *Store) State() (models.UserHabitsStorage, error) {
	if s.db == nil {
		return models.UserHabitsStorage{}, fmt.Errorf("storage not loaded")
	}

	st := models.NewUserHabitsStorage()

	rows, err := s.db.Query(`SELECT journey_id FROM active_journeys ORDER BY position`)
	if err != nil {
		return models.UserHabitsStorage{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return models.UserHabitsStorage{}, err
		}
		st.ActiveJourneyIDs = append(st.ActiveJourneyIDs, id)
	}
	if err := rows.Err(); err != nil {
		return models.UserHabitsStorage{}, err
	}

	habitRows, err := s.db.Query(`
		SELECT id, dua_id, time_slot, sort_order, added_at
		FROM custom_habits ORDER BY sort_order, added_at`)
	if err != nil {
		return models.UserHabitsStorage{}, err
	}
	defer habitRows.Close()
	for habitRows.Next() {
		var h models.UserHabit
		var addedAt string
		if err := habitRows.Scan(&h.ID, &h.DuaID, &h.TimeSlot, &h.SortOrder, &addedAt); err != nil {
			return models.UserHabitsStorage{}, err
		}
		h.AddedAt, err = time.Parse(time.RFC3339, addedAt)
		if err != nil {
			return models.UserHabitsStorage{}, fmt.Errorf("failed to parse added_at for habit %s: %w", h.ID, err)
		}
		h.Source = models.SourceCustom
		st.CustomHabits = append(st.CustomHabits, h)
	}
	if err := habitRows.Err(); err != nil {
		return models.UserHabitsStorage{}, err
	}

	compRows, err := s.db.Query(`SELECT day, dua_id FROM completions ORDER BY day, recorded_at`)
	if err != nil {
		return models.UserHabitsStorage{}, err
	}
	defer compRows.Close()
	byDay := make(map[string]*models.HabitCompletion)
	for compRows.Next() {
		var day string
		var duaID int
		if err := compRows.Scan(&day, &duaID); err != nil {
			return models.UserHabitsStorage{}, err
		}
		c, ok := byDay[day]
		if !ok {
			c = &models.HabitCompletion{Day: day}
			byDay[day] = c
		}
		c.CompletedDuaIDs = append(c.CompletedDuaIDs, duaID)
	}
	if err := compRows.Err(); err != nil {
		return models.UserHabitsStorage{}, err
	}
	for _, c := range byDay {
		st.HabitCompletions = append(st.HabitCompletions, *c)
	}
	sort.Slice(st.HabitCompletions, func(i, j int) bool {
		return st.HabitCompletions[i].Day < st.HabitCompletions[j].Day
	})

	progRows, err := s.db.Query(`SELECT dua_id, completed_count, last_completed_day FROM dua_progress`)
	if err != nil {
		return models.UserHabitsStorage{}, err
	}
	defer progRows.Close()
	for progRows.Next() {
		var duaID, count int
		var lastDay sql.NullString
		if err := progRows.Scan(&duaID, &count, &lastDay); err != nil {
			return models.UserHabitsStorage{}, err
		}
		st.DuaProgress[duaID] = models.DuaProgress{
			CompletedCount:   count,
			LastCompletedDay: lastDay.String,
		}
	}
	if err := progRows.Err(); err != nil {
		return models.UserHabitsStorage{}, err
	}

	var lastUpdated sql.NullString
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_updated'`).Scan(&lastUpdated)
	if err != nil && err != sql.ErrNoRows {
		return models.UserHabitsStorage{}, err
	}
	if lastUpdated.Valid {
		if t, err := time.Parse(time.RFC3339, lastUpdated.String); err == nil {
			st.LastUpdated = t
		}
	}

	return st, nil
}

// SaveState replaces the persisted user state with the given snapshot in a
// single transaction.
func (s *Store) SaveState(st models.UserHabitsStorage) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"active_journeys", "custom_habits", "completions", "dua_progress"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, id := range st.ActiveJourneyIDs {
		if _, err := tx.Exec(
			`INSERT INTO active_journeys (journey_id, position) VALUES (?, ?)`,
			id, pos); err != nil {
			return err
		}
	}

	for _, h := range st.CustomHabits {
		if _, err := tx.Exec(`
			INSERT INTO custom_habits (id, dua_id, time_slot, sort_order, added_at)
			VALUES (?, ?, ?, ?, ?)`,
			h.ID, h.DuaID, string(h.TimeSlot), h.SortOrder, h.AddedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range st.HabitCompletions {
		for _, duaID := range c.CompletedDuaIDs {
			if _, err := tx.Exec(`
				INSERT INTO completions (day, dua_id, recorded_at)
				VALUES (?, ?, ?)
				ON CONFLICT(day, dua_id) DO NOTHING`,
				c.Day, duaID, now); err != nil {
				return err
			}
		}
	}

	for duaID, p := range st.DuaProgress {
		var lastDay sql.NullString
		if p.LastCompletedDay != "" {
			lastDay = sql.NullString{String: p.LastCompletedDay, Valid: true}
		}
		if _, err := tx.Exec(`
			INSERT INTO dua_progress (dua_id, completed_count, last_completed_day)
			VALUES (?, ?, ?)`,
			duaID, p.CompletedCount, lastDay); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_updated', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, now); err != nil {
		return err
	}

	return tx.Commit()
}
