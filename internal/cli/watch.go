package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/notifier"
	"github.com/babysteps/babysteps/internal/scheduler"
	"github.com/babysteps/babysteps/internal/session"
	"github.com/babysteps/babysteps/internal/state"
	"github.com/babysteps/babysteps/internal/tui"
)

type WatchCmd struct {
	NoUI     bool          `help:"Run headless; print reminders to the terminal instead of the live view."`
	Interval time.Duration `help:"Reminder check interval. Overrides the saved setting for this run." optional:""`
}

func (c *WatchCmd) Run(appCtx *Context) error {
	settings, err := appCtx.State.GetSettings()
	if err != nil {
		return err
	}

	interval := resolveTickInterval(c.Interval, settings)

	sched := scheduler.New(scheduler.Config{
		Interval: interval,
		Habits:   appCtx.Cache.Habits,
		Log:      scheduler.LoadFiredLog(appCtx.State),
	})

	ctrl := session.NewController(session.Config{
		Credentials: appCtx.Creds,
		API:         appCtx.API,
		Cache:       appCtx.Cache,
		State:       appCtx.State,
		Scheduler:   sched,
		Notices: func(text string) {
			Notice("%s", text)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl.Start(ctx)
	defer ctrl.Close()

	if c.NoUI {
		return c.runHeadless(ctx, sched, settings.NotificationsEnabled)
	}

	model := tui.NewWatchModel(ctrl, appCtx.Cache, sched.Events(), settings.NotificationsEnabled)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && err != tea.ErrProgramKilled {
		return err
	}
	return nil
}

// resolveTickInterval picks the scheduler interval: the flag overrides the
// saved setting for this run, otherwise the saved tick interval applies.
func resolveTickInterval(flag time.Duration, settings state.Settings) time.Duration {
	if flag > 0 {
		return flag
	}
	if settings.TickIntervalSec > 0 {
		return time.Duration(settings.TickIntervalSec) * time.Second
	}
	return constants.TickInterval
}

func (c *WatchCmd) runHeadless(ctx context.Context, sched *scheduler.Scheduler, desktopNotify bool) error {
	n := notifier.New()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-sched.Events():
			logger.Info("Reminder fired", "habit", event.HabitName)
			if desktopNotify {
				if err := n.Notify(event.Message); err != nil {
					logger.Debug("Desktop notification unavailable", "error", err)
					Notice("🔔 %s", event.Message)
				}
				continue
			}
			Notice("🔔 %s", event.Message)
		}
	}
}
