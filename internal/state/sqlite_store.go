package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/babysteps/babysteps/internal/errors"
	"github.com/babysteps/babysteps/internal/models"
)

const (
	kvKeyToken          = "token"
	kvKeyFiredReminders = "fired_reminders"
	kvKeySettings       = "settings"
	kvKeyHabitSnapshot  = "habit_snapshot"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore persists client state in a single-file SQLite database.
// Selected when the configured state path ends in ".db".
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Load() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Seed default settings on first open
	if _, err := s.getValue(kvKeySettings); errors.Is(err, errors.ErrNotFound) {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) getValue(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("state not loaded")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) setValue(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("state not loaded")
	}

	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) deleteValue(key string) error {
	if s.db == nil {
		return fmt.Errorf("state not loaded")
	}

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) getJSON(key string, out any) error {
	value, err := s.getValue(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return s.setValue(key, string(data))
}

func (s *SQLiteStore) GetToken() (string, error) {
	return s.getValue(kvKeyToken)
}

func (s *SQLiteStore) SetToken(token string) error {
	return s.setValue(kvKeyToken, token)
}

func (s *SQLiteStore) ClearToken() error {
	return s.deleteValue(kvKeyToken)
}

func (s *SQLiteStore) GetFiredReminders() ([]string, error) {
	var ids []string
	err := s.getJSON(kvKeyFiredReminders, &ids)
	if errors.Is(err, errors.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SQLiteStore) SaveFiredReminders(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.setJSON(kvKeyFiredReminders, ids)
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	var settings Settings
	err := s.getJSON(kvKeySettings, &settings)
	if errors.Is(err, errors.ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	return s.setJSON(kvKeySettings, settings)
}

func (s *SQLiteStore) GetHabitSnapshot() ([]models.Habit, error) {
	var habits []models.Habit
	err := s.getJSON(kvKeyHabitSnapshot, &habits)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *SQLiteStore) SaveHabitSnapshot(habits []models.Habit) error {
	return s.setJSON(kvKeyHabitSnapshot, habits)
}

func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return fmt.Errorf("state not loaded")
	}
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return s.SaveSettings(DefaultSettings())
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
