package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/models"
)

type document struct {
	Version  int                      `json:"version"`
	Settings models.Settings          `json:"settings"`
	State    models.UserHabitsStorage `json:"state"`
}

// JSONStore persists the whole user document as a single JSON file. It is
// the default backend.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:  1,
		Settings: models.DefaultSettings(),
		State:    models.NewUserHabitsStorage(),
	}

	return s.save()
}

// Load reads the document from disk. A corrupt document degrades to the
// empty default state with a warning rather than failing: local habit data
// must never make the app unusable.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'rizq init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		logger.Warn("Stored document is corrupt, falling back to empty state", "path", s.path, "error", err)
		s.doc = &document{
			Version:  1,
			Settings: models.DefaultSettings(),
			State:    models.NewUserHabitsStorage(),
		}
		return nil
	}

	// Upgrade the legacy single-journey field and fill nil collections.
	s.doc.State = s.doc.State.Migrate()
	if s.doc.Settings.Timezone == "" {
		s.doc.Settings = models.DefaultSettings()
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) State() (models.UserHabitsStorage, error) {
	if s.doc == nil {
		return models.UserHabitsStorage{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.State.Clone(), nil
}

func (s *JSONStore) SaveState(state models.UserHabitsStorage) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.State = state.Clone()
	return s.save()
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
