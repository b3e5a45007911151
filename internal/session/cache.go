package session

import (
	"context"
	"sync"

	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/models"
	"github.com/babysteps/babysteps/internal/state"
)

// Cache is an in-memory ordered mirror of the server's habit collection.
// It never mutates habit fields locally: contents only change by wholesale
// replacement after a successful server round-trip, so the cache can never
// diverge from server state for more than one request.
type Cache struct {
	api   *api.Client
	state state.Provider

	mu     sync.RWMutex
	habits []models.Habit

	// gen guards against a stale in-flight refresh applying its result
	// after the identity has changed.
	gen uint64
}

func NewCache(client *api.Client, st state.Provider) *Cache {
	return &Cache{
		api:   client,
		state: st,
	}
}

// Habits returns a copy of the cached collection in server order.
func (c *Cache) Habits() []models.Habit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	habits := make([]models.Habit, len(c.habits))
	copy(habits, c.habits)
	return habits
}

// Len returns the number of cached habits.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.habits)
}

// Refresh reloads the cache for the given identity. A nil identity empties
// the cache synchronously without issuing a request. On transport or server
// failure the prior contents (possibly stale) are kept and the failure is
// only logged; stale data beats an error page.
func (c *Cache) Refresh(ctx context.Context, identity *models.Identity) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if identity == nil {
		c.apply(gen, []models.Habit{})
		return
	}

	habits, err := c.api.ListHabits(ctx)
	if err != nil {
		logger.Warn("Habit refresh failed, keeping cached data", "error", err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}

	c.apply(gen, habits)
}

// RestoreSnapshot seeds the cache from the last persisted snapshot so a
// fresh session has something to show before the first round-trip.
func (c *Cache) RestoreSnapshot() {
	habits, err := c.state.GetHabitSnapshot()
	if err != nil {
		logger.Debug("No habit snapshot to restore", "error", err)
		return
	}
	if len(habits) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.habits = habits
}

// apply installs a refresh result unless a newer refresh has started since.
func (c *Cache) apply(gen uint64, habits []models.Habit) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		logger.Debug("Discarding stale habit refresh", "gen", gen)
		return
	}
	c.habits = habits
	c.mu.Unlock()

	if err := c.state.SaveHabitSnapshot(habits); err != nil {
		logger.Warn("Failed to persist habit snapshot", "error", err)
	}
}

// Clear empties the cache immediately.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.gen++
	c.habits = nil
	c.mu.Unlock()
}
