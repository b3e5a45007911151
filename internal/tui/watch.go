package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/notifier"
	"github.com/babysteps/babysteps/internal/scheduler"
	"github.com/babysteps/babysteps/internal/session"
)

const maxToasts = 5

// ReminderMsg carries a scheduler event into the bubbletea loop.
type ReminderMsg scheduler.Event

type redrawMsg time.Time

type toast struct {
	message string
	at      time.Time
}

// WatchModel is the live view for watch mode: session identity, the cached
// habit list, and the most recent reminder toasts. The scheduler does the
// actual work; this model only consumes its event stream.
type WatchModel struct {
	controller *session.Controller
	cache      *session.Cache
	events     <-chan scheduler.Event

	desktopNotify bool
	notifier      *notifier.Notifier

	spinner  spinner.Model
	toasts   []toast
	quitting bool
}

func NewWatchModel(controller *session.Controller, cache *session.Cache, events <-chan scheduler.Event, desktopNotify bool) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return WatchModel{
		controller:    controller,
		cache:         cache,
		events:        events,
		desktopNotify: desktopNotify,
		notifier:      notifier.New(),
		spinner:       sp,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent(), redrawTick())
}

// waitForEvent blocks on the scheduler's event channel from inside the tea
// runtime, so reminders surface as messages.
func (m WatchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return ReminderMsg(event)
	}
}

func redrawTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return redrawMsg(t)
	})
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case ReminderMsg:
		m.toasts = append(m.toasts, toast{message: msg.Message, at: time.Now()})
		if len(m.toasts) > maxToasts {
			m.toasts = m.toasts[len(m.toasts)-maxToasts:]
		}

		cmds := []tea.Cmd{m.waitForEvent()}
		if m.desktopNotify {
			text := msg.Message
			cmds = append(cmds, func() tea.Msg {
				if err := m.notifier.Notify(text); err != nil {
					logger.Debug("Desktop notification unavailable", "error", err)
				}
				return nil
			})
		}
		return m, tea.Batch(cmds...)

	case redrawMsg:
		// Habit list and identity are re-read from the cache on render
		return m, redrawTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	identity := m.controller.Identity()
	if identity == nil {
		b.WriteString(titleStyle.Render("babysteps") + "\n\n")
		b.WriteString("Not logged in. Run 'babysteps login' in another terminal.\n")
		b.WriteString(statusStyle.Render("\nq to quit"))
		return docStyle.Render(b.String())
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("babysteps — %s", identity.DisplayName())) + "\n\n")

	habits := m.cache.Habits()
	if len(habits) == 0 {
		b.WriteString("No habits yet.\n")
	}
	for _, habit := range habits {
		line := habitStyle.Render(fmt.Sprintf("• %s  %d/%d", habit.Name, habit.Progress, habit.GoalCount))
		if habit.HasReminder() {
			line += reminderStyle.Render(fmt.Sprintf("  reminds at %s", habit.Reminder))
		}
		b.WriteString(line + "\n")
	}

	if len(m.toasts) > 0 {
		b.WriteString("\n")
		for _, tst := range m.toasts {
			b.WriteString(toastStyle.Render(fmt.Sprintf("🔔 %s", tst.message)))
			b.WriteString(statusStyle.Render(fmt.Sprintf("  %s", tst.at.Format("15:04:05"))))
			b.WriteString("\n")
		}
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("\n%s watching reminders — q to quit", m.spinner.View())))
	return docStyle.Render(b.String())
}
