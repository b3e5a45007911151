package utils

import (
	"testing"
	"time"
)

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		timeStr string
		want    bool
	}{
		{"00:00", true},
		{"09:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00am", false},
		{"", false},
		{"0900", false},
	}

	for _, tt := range tests {
		t.Run(tt.timeStr, func(t *testing.T) {
			if got := ValidateTimeFormat(tt.timeStr); got != tt.want {
				t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.timeStr, got, tt.want)
			}
		})
	}
}

func TestMinuteString(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 5, 42, 0, time.Local)
	if got := MinuteString(at); got != "09:05" {
		t.Errorf("MinuteString() = %q, want %q", got, "09:05")
	}

	midnight := time.Date(2026, 3, 14, 0, 0, 59, 0, time.Local)
	if got := MinuteString(midnight); got != "00:00" {
		t.Errorf("MinuteString() = %q, want %q", got, "00:00")
	}
}
