package models

import (
	"fmt"
	"time"

	"github.com/babysteps/babysteps/internal/constants"
)

// Habit is a read-through mirror of a server-side habit record. The client
// never mutates these fields locally; state changes happen on the server and
// land here through a full cache refresh.
type Habit struct {
	ID        string           `json:"id,omitempty"`
	MongoID   string           `json:"_id,omitempty"`
	Name      string           `json:"name"`
	GoalCount int              `json:"goal"`
	Period    constants.Period `json:"period"`
	Reminder  string           `json:"reminder,omitempty"` // HH:MM format, empty = no reminder
	Progress  int              `json:"progress"`
}

// Key returns the canonical identifier for the habit. Some server builds
// expose a Mongo-style `_id` instead of `id`; both are accepted.
func (h *Habit) Key() string {
	if h.ID != "" {
		return h.ID
	}
	return h.MongoID
}

// HasReminder reports whether the habit has a reminder time configured.
func (h *Habit) HasReminder() bool {
	return h.Reminder != ""
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	if h.GoalCount < 1 {
		return fmt.Errorf("goal must be at least 1")
	}

	switch h.Period {
	case constants.PeriodDay, constants.PeriodWeek, constants.PeriodMonth:
	default:
		return fmt.Errorf("invalid period %q (expected day, week, or month)", h.Period)
	}

	// Validate reminder format (HH:MM) when set
	if h.Reminder != "" {
		if _, err := time.Parse(constants.TimeFormat, h.Reminder); err != nil {
			return fmt.Errorf("invalid reminder format (expected HH:MM): %w", err)
		}
	}

	return nil
}

// FormatGoal returns a human-readable description of the habit's goal.
func (h *Habit) FormatGoal() string {
	if h.GoalCount == 1 {
		return fmt.Sprintf("once per %s", h.Period)
	}
	return fmt.Sprintf("%d times per %s", h.GoalCount, h.Period)
}
