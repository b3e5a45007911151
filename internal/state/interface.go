package state

import "github.com/babysteps/babysteps/internal/models"

// Settings holds client-local preferences. They never leave the device.
type Settings struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	TickIntervalSec      int  `json:"tick_interval_sec"`
	// FirstSession is set on registration so the next dashboard view can
	// greet a brand-new user differently.
	FirstSession bool `json:"first_session"`
}

// DefaultSettings returns the settings a fresh state store starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		TickIntervalSec:      15,
	}
}

// Provider is the client's local persistence surface: the credential token
// fallback, the fired-reminder log, settings, and the last-known habit
// snapshot. Values survive restarts but not an explicit Clear.
type Provider interface {
	// Lifecycle
	Load() error
	Close() error

	// Credential token (fallback backend when the OS keyring is unavailable)
	GetToken() (string, error)
	SetToken(token string) error
	ClearToken() error

	// Fired-reminder log: ordered habit ids already notified today
	GetFiredReminders() ([]string, error)
	SaveFiredReminders(ids []string) error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Habit snapshot: last successful refresh, shown while stale
	GetHabitSnapshot() ([]models.Habit, error)
	SaveHabitSnapshot([]models.Habit) error

	// Clear wipes all persisted client state (logout / account deletion)
	Clear() error

	// Utils
	GetConfigPath() string
}
