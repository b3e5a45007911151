package session

import (
	"context"
	"sync"
	"time"

	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/credential"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/models"
	"github.com/babysteps/babysteps/internal/scheduler"
	"github.com/babysteps/babysteps/internal/state"
)

// Controller owns the client session: it derives the identity from the
// stored credential, keeps the habit cache in step with identity changes,
// and runs the reminder scheduler for the session's lifetime.
type Controller struct {
	creds *credential.Store
	api   *api.Client
	cache *Cache
	state state.Provider
	sched *scheduler.Scheduler

	notices     func(text string)
	reloadDelay time.Duration

	mu       sync.Mutex
	identity *models.Identity
	ctx      context.Context
	reload   *time.Timer
}

type Config struct {
	Credentials *credential.Store
	API         *api.Client
	Cache       *Cache
	State       state.Provider
	Scheduler   *scheduler.Scheduler

	// Notices receives user-visible session messages ("session expired").
	// Optional; defaults to the log.
	Notices func(text string)

	// ReloadDelay is the pause between an unauthorized notice and the
	// session restart, so the notice can be observed.
	ReloadDelay time.Duration
}

func NewController(cfg Config) *Controller {
	c := &Controller{
		creds:       cfg.Credentials,
		api:         cfg.API,
		cache:       cfg.Cache,
		state:       cfg.State,
		sched:       cfg.Scheduler,
		notices:     cfg.Notices,
		reloadDelay: cfg.ReloadDelay,
	}
	if c.reloadDelay == 0 {
		c.reloadDelay = constants.SessionReloadDelay
	}
	if c.notices == nil {
		c.notices = func(text string) { logger.Info(text) }
	}

	// The gateway tells us when the server rejects the credential
	c.api.SetUnauthorizedHook(c.handleUnauthorized)

	return c
}

// Start restores the session from local state and brings the cache and
// scheduler up. Safe to call exactly once per controller.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.api.ResetUnauthorized()

	identity := c.restoreIdentity()
	if identity != nil {
		// Show the last-known habits while the first refresh is in flight
		c.cache.RestoreSnapshot()
	}
	c.SetIdentity(ctx, identity)

	if c.sched != nil {
		c.sched.Start(ctx)
	}
}

// restoreIdentity reads and decodes the persisted credential. A malformed
// credential is treated identically to "no session": clear it, log out.
func (c *Controller) restoreIdentity() *models.Identity {
	token, ok := c.creds.Token()
	if !ok {
		return nil
	}

	identity, err := credential.DecodeIdentity(token)
	if err != nil {
		logger.Warn("Stored credential is malformed, logging out", "error", err)
		if clearErr := c.creds.Clear(); clearErr != nil {
			logger.Warn("Failed to clear malformed credential", "error", clearErr)
		}
		return nil
	}
	return &identity
}

// Identity returns the current session identity, or nil when logged out.
func (c *Controller) Identity() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}

// SetIdentity applies an identity transition: a new or changed user
// triggers a cache refresh, a transition to logged-out empties the cache.
func (c *Controller) SetIdentity(ctx context.Context, identity *models.Identity) {
	c.mu.Lock()
	prev := c.identity
	c.identity = identity
	c.mu.Unlock()

	switch {
	case identity == nil && prev == nil:
		// Still logged out; make sure the cache agrees
		c.cache.Clear()
	case identity == nil:
		logger.Info("Session ended", "user", prev.Username)
		c.cache.Clear()
	case prev == nil || !prev.Equal(*identity):
		logger.Info("Session started", "user", identity.Username)
		c.cache.Refresh(ctx, identity)
	}
}

// handleUnauthorized reacts to the gateway clearing the credential: surface
// a notice, then restart the session after a short delay so the notice can
// be seen. The cache is untouched here; it empties when the restart finds
// no identity.
func (c *Controller) handleUnauthorized() {
	c.notices("Session expired. Please log in again.")

	c.mu.Lock()
	if c.reload != nil {
		c.reload.Stop()
	}
	c.reload = time.AfterFunc(c.reloadDelay, c.Restart)
	c.mu.Unlock()
}

// Restart re-derives the session from persisted state, the client-side
// analog of a page reload. The scheduler keeps running; it just sees
// whatever the cache holds.
func (c *Controller) Restart() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("Restarting session")
	c.api.ResetUnauthorized()
	c.SetIdentity(ctx, c.restoreIdentity())
}

// Close tears the session down: the scheduler stops exactly once and the
// state store is released.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.reload != nil {
		c.reload.Stop()
		c.reload = nil
	}
	c.mu.Unlock()

	if c.sched != nil {
		c.sched.Stop()
	}
	if err := c.state.Close(); err != nil {
		logger.Warn("Failed to close state store", "error", err)
	}
}
