package models

import (
	"testing"

	"github.com/babysteps/babysteps/internal/constants"
)

func TestHabit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   Habit
		wantErr bool
	}{
		{
			name: "valid daily habit with reminder",
			habit: Habit{
				ID:        "h1",
				Name:      "Drink water",
				GoalCount: 8,
				Period:    constants.PeriodDay,
				Reminder:  "09:00",
			},
			wantErr: false,
		},
		{
			name: "valid weekly habit without reminder",
			habit: Habit{
				ID:        "h2",
				Name:      "Long run",
				GoalCount: 1,
				Period:    constants.PeriodWeek,
			},
			wantErr: false,
		},
		{
			name: "empty name",
			habit: Habit{
				ID:        "h3",
				GoalCount: 1,
				Period:    constants.PeriodDay,
			},
			wantErr: true,
		},
		{
			name: "zero goal",
			habit: Habit{
				ID:     "h4",
				Name:   "Read",
				Period: constants.PeriodMonth,
			},
			wantErr: true,
		},
		{
			name: "invalid period",
			habit: Habit{
				ID:        "h5",
				Name:      "Read",
				GoalCount: 2,
				Period:    "fortnight",
			},
			wantErr: true,
		},
		{
			name: "invalid reminder format",
			habit: Habit{
				ID:        "h6",
				Name:      "Read",
				GoalCount: 2,
				Period:    constants.PeriodDay,
				Reminder:  "25:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHabit_Key(t *testing.T) {
	h := Habit{ID: "plain", MongoID: "mongo"}
	if got := h.Key(); got != "plain" {
		t.Errorf("Key() = %q, want %q", got, "plain")
	}

	h = Habit{MongoID: "mongo"}
	if got := h.Key(); got != "mongo" {
		t.Errorf("Key() = %q, want %q", got, "mongo")
	}
}

func TestHabit_HasReminder(t *testing.T) {
	h := Habit{Reminder: "07:30"}
	if !h.HasReminder() {
		t.Error("expected HasReminder() = true")
	}

	h.Reminder = ""
	if h.HasReminder() {
		t.Error("expected HasReminder() = false")
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	i := Identity{Username: "sam", FirstName: "Sam", LastName: "Iker"}
	if got := i.DisplayName(); got != "Sam Iker" {
		t.Errorf("DisplayName() = %q, want %q", got, "Sam Iker")
	}

	i = Identity{Username: "sam"}
	if got := i.DisplayName(); got != "sam" {
		t.Errorf("DisplayName() = %q, want %q", got, "sam")
	}
}
