package scheduler

import (
	"sync"

	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/state"
)

// FiredLog tracks which habits have already produced a reminder today. It
// is an ordered, grow-only set within a day: ids are added as reminders
// fire and the whole log clears at the first tick that observes midnight.
// The log persists across restarts, so reopening the app inside the same
// day cannot re-fire a reminder.
type FiredLog struct {
	mu    sync.Mutex
	state state.Provider
	ids   []string
	seen  map[string]struct{}
}

// LoadFiredLog restores the log from the state store. A read failure
// degrades to an empty log; worst case a reminder fires a second time
// after losing local state, which beats never firing.
func LoadFiredLog(st state.Provider) *FiredLog {
	l := &FiredLog{
		state: st,
		seen:  make(map[string]struct{}),
	}

	ids, err := st.GetFiredReminders()
	if err != nil {
		logger.Warn("Failed to restore fired-reminder log", "error", err)
		return l
	}

	l.ids = ids
	for _, id := range ids {
		l.seen[id] = struct{}{}
	}
	return l
}

// Contains reports whether the habit has already fired today.
func (l *FiredLog) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

// Add records a firing and persists the log. Adding an id twice is a no-op.
func (l *FiredLog) Add(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; ok {
		return
	}
	l.seen[id] = struct{}{}
	l.ids = append(l.ids, id)
	l.persist()
}

// Reset clears the log for the new day. Ids of habits deleted since they
// fired are dropped here along with everything else, which is the only
// garbage collection the log needs.
func (l *FiredLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ids = []string{}
	l.seen = make(map[string]struct{})
	l.persist()
}

// IDs returns the fired ids in firing order.
func (l *FiredLog) IDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, len(l.ids))
	copy(ids, l.ids)
	return ids
}

func (l *FiredLog) persist() {
	if err := l.state.SaveFiredReminders(l.ids); err != nil {
		logger.Warn("Failed to persist fired-reminder log", "error", err)
	}
}
