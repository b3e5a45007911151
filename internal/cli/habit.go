package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/models"
	"github.com/babysteps/babysteps/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Log    HabitLogCmd    `cmd:"" help:"Log progress on a habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Reset  HabitResetCmd  `cmd:"" help:"Delete all habits."`
	Stats  HabitStatsCmd  `cmd:"" help:"Show aggregate progress."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Goal     int    `help:"Target count per period." default:"1"`
	Period   string `help:"Goal period: day, week, or month." default:"day" enum:"day,week,month"`
	Reminder string `help:"Daily reminder time (HH:MM). Empty disables the reminder." default:""`
}

func (c *HabitAddCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	habit := models.Habit{
		Name:      c.Name,
		GoalCount: c.Goal,
		Period:    constants.Period(c.Period),
		Reminder:  c.Reminder,
	}
	if err := habit.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	created, err := appCtx.API.CreateHabit(ctx, api.HabitRequest{
		Name:     habit.Name,
		Goal:     habit.GoalCount,
		Period:   habit.Period,
		Reminder: habit.Reminder,
	})
	if err != nil {
		return fmt.Errorf("could not save habit: %w", err)
	}

	appCtx.RefreshCache(ctx, identity)
	Success("New habit saved: %s (%s)", created.Name, created.FormatGoal())
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	ctx := context.Background()
	appCtx.RefreshCache(ctx, identity)

	// One-time greeting for freshly registered accounts.
	if settings, err := appCtx.State.GetSettings(); err == nil && settings.FirstSession {
		Notice("Welcome to babysteps, %s! Start small and stay consistent.", identity.FirstName)
		settings.FirstSession = false
		_ = appCtx.State.SaveSettings(settings)
	}

	habits := appCtx.Cache.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'babysteps habit add'.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Habits for %s", identity.DisplayName())))
	for _, habit := range habits {
		line := fmt.Sprintf("%s — %s, %d/%d done", habit.Name, habit.FormatGoal(), habit.Progress, habit.GoalCount)
		if habit.HasReminder() {
			line += mutedStyle.Render(fmt.Sprintf("  (reminds at %s)", habit.Reminder))
		}
		fmt.Println(line)
	}
	return nil
}

type HabitStatsCmd struct{}

func (c *HabitStatsCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	ctx := context.Background()
	appCtx.RefreshCache(ctx, identity)

	habits := appCtx.Cache.Habits()
	stats := models.ComputeStats(habits)

	fmt.Println(headerStyle.Render("Today's Summary"))
	fmt.Printf("Finished habits: %d/%d (%d%%)\n", stats.Finished, stats.Total, int(math.Round(stats.OverallPercent)))
	if stats.DailyComplete {
		Success("All daily habits complete!")
	}

	if len(habits) == 0 {
		fmt.Println(mutedStyle.Render("No habits to track yet."))
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Detailed Breakdown"))
	for _, habit := range habits {
		fmt.Printf("%s: [%d/%d]\n", habit.Name, habit.Progress, habit.GoalCount)
	}
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitLogCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	ctx := context.Background()
	habit, err := appCtx.FindHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	updated, err := appCtx.API.LogProgress(ctx, habit.Key())
	if err != nil {
		return fmt.Errorf("could not log progress: %w", err)
	}

	appCtx.RefreshCache(ctx, identity)
	Success("Logged %s: %d/%d this %s", updated.Name, updated.Progress, updated.GoalCount, updated.Period)
	return nil
}

type HabitEditCmd struct {
	Habit    string `arg:"" help:"Habit id or name."`
	Name     string `help:"New name." optional:""`
	Goal     int    `help:"New target count." optional:""`
	Period   string `help:"New period: day, week, or month." optional:"" enum:",day,week,month"`
	Reminder string `help:"New reminder time (HH:MM), or 'none' to remove it." optional:""`
}

func (c *HabitEditCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	ctx := context.Background()
	habit, err := appCtx.FindHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	// Start from the server record, overlay the requested changes
	next := *habit
	if c.Name != "" {
		next.Name = c.Name
	}
	if c.Goal > 0 {
		next.GoalCount = c.Goal
	}
	if c.Period != "" {
		next.Period = constants.Period(c.Period)
	}
	switch {
	case strings.EqualFold(c.Reminder, "none"):
		next.Reminder = ""
	case c.Reminder != "":
		if !utils.ValidateTimeFormat(c.Reminder) {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", c.Reminder)
		}
		next.Reminder = c.Reminder
	}
	if err := next.Validate(); err != nil {
		return err
	}

	updated, err := appCtx.API.UpdateHabit(ctx, habit.Key(), api.HabitRequest{
		Name:     next.Name,
		Goal:     next.GoalCount,
		Period:   next.Period,
		Reminder: next.Reminder,
	})
	if err != nil {
		return fmt.Errorf("could not update habit: %w", err)
	}

	appCtx.RefreshCache(ctx, identity)
	Success("Updated habit: %s", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	ctx := context.Background()
	habit, err := appCtx.FindHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		prompt := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete habit %q? This cannot be undone.", habit.Name)).
				Value(&confirmed),
		))
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := appCtx.API.DeleteHabit(ctx, habit.Key()); err != nil {
		return fmt.Errorf("could not delete habit: %w", err)
	}

	appCtx.RefreshCache(ctx, identity)
	Success("Deleted habit: %s", habit.Name)
	return nil
}

type HabitResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *HabitResetCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		prompt := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure you want to delete all your habits? This cannot be undone.").
				Value(&confirmed),
		))
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx := context.Background()
	if err := appCtx.API.ResetHabits(ctx); err != nil {
		return fmt.Errorf("could not reset habits: %w", err)
	}

	appCtx.RefreshCache(ctx, identity)
	Success("All habits have been reset.")
	return nil
}
