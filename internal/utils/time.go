package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/babysteps/babysteps/internal/constants"
)

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// MinuteString formats a wall-clock instant as HH:MM in 24-hour form,
// truncated to minute resolution. This is the granularity at which
// reminders match.
func MinuteString(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
