package constants

import "time"

// Period represents the goal period of a habit
type Period string

const (
	AppName           = "babysteps"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/babysteps/state.json"
	DefaultAPIURL     = "http://localhost:4000/api"

	// DefaultKeyringUser is the keyring account the API token is stored under
	DefaultKeyringUser = "api-token"

	// AuthHeader carries the raw credential token on every authenticated request
	AuthHeader      = "x-auth-token"
	RequestIDHeader = "X-Request-Id"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MidnightMinute marks the day boundary at which the fired-reminder log resets
	MidnightMinute = "00:00"

	// TickInterval is the reminder scheduler's check period. It bounds
	// worst-case notification latency after a reminder minute begins.
	TickInterval = 15 * time.Second

	// SessionReloadDelay is how long the gateway waits after an unauthorized
	// response before restarting the session, so the notice can be observed.
	SessionReloadDelay = 1500 * time.Millisecond

	// MinPasswordLength mirrors the server-side password policy
	MinPasswordLength = 6

	// Notify constants
	NotifierLockfileName   = "babysteps-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.babysteps.tray"
	TrayExecutablePrefix   = "babysteps-tray"

	// Period constants
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)
