package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/babysteps/babysteps/internal/errors"
	"github.com/babysteps/babysteps/internal/models"
)

type document struct {
	Version        int            `json:"version"`
	Token          string         `json:"token,omitempty"`
	FiredReminders []string       `json:"fired_reminders"`
	Settings       Settings       `json:"settings"`
	HabitSnapshot  []models.Habit `json:"habit_snapshot,omitempty"`
}

// JSONStore keeps all client state in a single JSON document. It is the
// default provider and the direct equivalent of browser local storage.
// The watcher persists the fired log and the habit snapshot from separate
// goroutines, so every access to the document is serialized by mu.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Load reads the state file, creating it with defaults when missing. Unlike
// a server database there is no separate init step; first use initializes.
func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initialize()
		}
		return fmt.Errorf("failed to read state: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}

	if s.doc.FiredReminders == nil {
		s.doc.FiredReminders = []string{}
	}

	return nil
}

// initialize and save expect mu to be held by the caller.
func (s *JSONStore) initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.doc = &document{
		Version:        1,
		FiredReminders: []string{},
		Settings:       DefaultSettings(),
	}

	return s.save()
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

func (s *JSONStore) GetToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return "", fmt.Errorf("state not loaded")
	}
	if s.doc.Token == "" {
		return "", errors.ErrNotFound
	}
	return s.doc.Token, nil
}

func (s *JSONStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("state not loaded")
	}
	s.doc.Token = token
	return s.save()
}

func (s *JSONStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("state not loaded")
	}
	s.doc.Token = ""
	return s.save()
}

func (s *JSONStore) GetFiredReminders() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, fmt.Errorf("state not loaded")
	}
	ids := make([]string, len(s.doc.FiredReminders))
	copy(ids, s.doc.FiredReminders)
	return ids, nil
}

func (s *JSONStore) SaveFiredReminders(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("state not loaded")
	}
	s.doc.FiredReminders = append([]string{}, ids...)
	return s.save()
}

func (s *JSONStore) GetSettings() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return Settings{}, fmt.Errorf("state not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("state not loaded")
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetHabitSnapshot() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, fmt.Errorf("state not loaded")
	}
	habits := make([]models.Habit, len(s.doc.HabitSnapshot))
	copy(habits, s.doc.HabitSnapshot)
	return habits, nil
}

func (s *JSONStore) SaveHabitSnapshot(habits []models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("state not loaded")
	}
	s.doc.HabitSnapshot = append([]models.Habit{}, habits...)
	return s.save()
}

func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = &document{
		Version:        1,
		FiredReminders: []string{},
		Settings:       DefaultSettings(),
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
