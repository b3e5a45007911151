package models

import "github.com/babysteps/babysteps/internal/constants"

// Stats aggregates progress across a set of habits.
type Stats struct {
	Total    int
	Finished int
	// OverallPercent is the mean of per-habit completion percentages.
	// Habits past their goal count above 100, matching how each habit
	// reports its own progress.
	OverallPercent float64
	// DailyComplete is true when at least one daily habit exists and every
	// daily habit has reached its goal.
	DailyComplete bool
}

func ComputeStats(habits []Habit) Stats {
	stats := Stats{Total: len(habits)}
	if stats.Total == 0 {
		return stats
	}

	dailyCount := 0
	dailyFinished := 0
	sum := 0.0
	for _, habit := range habits {
		if habit.Progress >= habit.GoalCount {
			stats.Finished++
		}
		if habit.GoalCount > 0 {
			sum += float64(habit.Progress) / float64(habit.GoalCount) * 100
		}
		if habit.Period == constants.PeriodDay {
			dailyCount++
			if habit.Progress >= habit.GoalCount {
				dailyFinished++
			}
		}
	}

	stats.OverallPercent = sum / float64(stats.Total)
	stats.DailyComplete = dailyCount > 0 && dailyFinished == dailyCount
	return stats
}
