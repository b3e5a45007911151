package models

import (
	"testing"

	"github.com/babysteps/babysteps/internal/constants"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name          string
		habits        []Habit
		total         int
		finished      int
		percent       float64
		dailyComplete bool
	}{
		{
			name: "no habits",
		},
		{
			name: "mixed progress",
			habits: []Habit{
				{ID: "h1", Name: "Stretch", GoalCount: 2, Period: constants.PeriodDay, Progress: 2},
				{ID: "h2", Name: "Read", GoalCount: 4, Period: constants.PeriodWeek, Progress: 1},
			},
			total:         2,
			finished:      1,
			percent:       62.5, // (100 + 25) / 2
			dailyComplete: true,
		},
		{
			name: "unfinished daily habit",
			habits: []Habit{
				{ID: "h1", Name: "Stretch", GoalCount: 2, Period: constants.PeriodDay, Progress: 2},
				{ID: "h2", Name: "Walk", GoalCount: 3, Period: constants.PeriodDay, Progress: 1},
			},
			total:         2,
			finished:      1,
			percent:       (100 + 100.0/3) / 2,
			dailyComplete: false,
		},
		{
			name: "no daily habits means no daily indicator",
			habits: []Habit{
				{ID: "h1", Name: "Read", GoalCount: 1, Period: constants.PeriodWeek, Progress: 1},
			},
			total:         1,
			finished:      1,
			percent:       100,
			dailyComplete: false,
		},
		{
			name: "overshooting counts above 100",
			habits: []Habit{
				{ID: "h1", Name: "Stretch", GoalCount: 1, Period: constants.PeriodDay, Progress: 3},
			},
			total:         1,
			finished:      1,
			percent:       300,
			dailyComplete: true,
		},
		{
			name: "zero goal contributes nothing",
			habits: []Habit{
				{ID: "h1", Name: "Stretch", GoalCount: 0, Period: constants.PeriodDay, Progress: 0},
				{ID: "h2", Name: "Read", GoalCount: 2, Period: constants.PeriodWeek, Progress: 2},
			},
			total:         2,
			finished:      2,
			percent:       50,
			dailyComplete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.habits)
			if got.Total != tt.total {
				t.Errorf("Total = %d, want %d", got.Total, tt.total)
			}
			if got.Finished != tt.finished {
				t.Errorf("Finished = %d, want %d", got.Finished, tt.finished)
			}
			if diff := got.OverallPercent - tt.percent; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("OverallPercent = %v, want %v", got.OverallPercent, tt.percent)
			}
			if got.DailyComplete != tt.dailyComplete {
				t.Errorf("DailyComplete = %v, want %v", got.DailyComplete, tt.dailyComplete)
			}
		})
	}
}
