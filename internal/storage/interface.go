package storage

import "github.com/rizqapp/rizq/internal/models"

// Provider is the persistent habit store: durable storage for the user's
// subscriptions, custom habits, daily completion log, and settings. Pure
// storage, no business logic. State hands out deep-copy snapshots; all
// mutation goes through the tracker, which calls SaveState.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// User state
	State() (models.UserHabitsStorage, error)
	SaveState(models.UserHabitsStorage) error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
