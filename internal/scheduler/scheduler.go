package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/models"
	"github.com/babysteps/babysteps/internal/utils"
)

// Event is a reminder notification emitted by the scheduler. The scheduler
// never renders anything itself; a sink (watch view, notifier) consumes
// these.
type Event struct {
	HabitID   string
	HabitName string
	Message   string
}

// Scheduler runs the recurring reminder check: every tick it compares each
// cached habit's reminder time against the wall clock at minute resolution
// and fires at most once per habit per calendar day. Fired state lives in
// the FiredLog, which persists across restarts; a reminder minute that
// passes while the process is down is skipped for the day, never caught up.
type Scheduler struct {
	interval time.Duration
	now      func() time.Time
	habits   func() []models.Habit
	log      *FiredLog

	events chan Event

	stop     chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

type Config struct {
	// Interval between ticks. Defaults to constants.TickInterval, which
	// bounds notification latency to one interval past the target minute.
	Interval time.Duration

	// Now is the clock source; defaults to time.Now. Injectable for tests.
	Now func() time.Time

	// Habits returns the current cache contents at tick time.
	Habits func() []models.Habit

	Log *FiredLog
}

func New(cfg Config) *Scheduler {
	s := &Scheduler{
		interval: cfg.Interval,
		now:      cfg.Now,
		habits:   cfg.Habits,
		log:      cfg.Log,
		events:   make(chan Event, 16),
		stop:     make(chan struct{}),
	}
	if s.interval == 0 {
		s.interval = constants.TickInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Events is the notification stream. The channel is buffered; if no sink
// keeps up, events are dropped rather than stalling the tick loop.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Start launches the tick loop: one immediate check, then one per interval.
// Starting twice is a no-op; re-subscription after Stop needs a new
// Scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	// Check immediately on subscription, not a full interval later
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// Stop tears the loop down. Safe to call multiple times; only the first
// has an effect, so a remounted owner can never leave two loops running.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// tick is one pass of the reminder state machine. Ordering matters: the
// midnight reset happens before any firing checks, so a habit with a
// "00:00" reminder re-arms and fires in the same tick.
func (s *Scheduler) tick() {
	minute := utils.MinuteString(s.now())

	if minute == constants.MidnightMinute {
		logger.Debug("Midnight reset of fired-reminder log")
		s.log.Reset()
	}

	for _, habit := range s.habits() {
		if !habit.HasReminder() || habit.Reminder != minute {
			continue
		}

		id := habit.Key()
		if s.log.Contains(id) {
			continue
		}

		s.emit(Event{
			HabitID:   id,
			HabitName: habit.Name,
			Message:   fmt.Sprintf("Time for your habit: %s", habit.Name),
		})
		s.log.Add(id)
	}
}

func (s *Scheduler) emit(event Event) {
	select {
	case s.events <- event:
	default:
		logger.Warn("Dropping reminder event, no consumer", "habit", event.HabitName)
	}
}
