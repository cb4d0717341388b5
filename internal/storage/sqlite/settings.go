package sqlite

import (
	"fmt"
	"strconv"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/models"
)

// Settings live in a key-value table so new settings never need a schema
// migration.

func (s *Store) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCacheTTLMin:
			if n, err := strconv.Atoi(value); err == nil {
				settings.CacheTTLMin = n
			}
		case constants.SettingLogDays:
			if n, err := strconv.Atoi(value); err == nil {
				settings.LogDays = n
			}
		case constants.SettingShowArabic:
			settings.ShowArabic = value == "true"
		case constants.SettingShowBenefits:
			settings.ShowBenefits = value == "true"
		}
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	pairs := map[string]string{
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingCacheTTLMin:  strconv.Itoa(settings.CacheTTLMin),
		constants.SettingLogDays:      strconv.Itoa(settings.LogDays),
		constants.SettingShowArabic:   strconv.FormatBool(settings.ShowArabic),
		constants.SettingShowBenefits: strconv.FormatBool(settings.ShowBenefits),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range pairs {
		if _, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}
