package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/credential"
	"github.com/babysteps/babysteps/internal/errors"
	"github.com/babysteps/babysteps/internal/models"
	"github.com/babysteps/babysteps/internal/session"
	"github.com/babysteps/babysteps/internal/state"
)

type Context struct {
	State state.Provider
	Creds *credential.Store
	API   *api.Client
	Cache *session.Cache
}

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Success prints a confirmation line.
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Notice prints a warning-colored line for non-fatal conditions such as
// session expiry.
func Notice(format string, args ...interface{}) {
	fmt.Println(noticeStyle.Render(fmt.Sprintf(format, args...)))
}

// RequireIdentity decodes the stored credential or fails the command with a
// login hint. A malformed credential is cleared on the way out.
func (c *Context) RequireIdentity() (*models.Identity, error) {
	token, ok := c.Creds.Token()
	if !ok {
		return nil, fmt.Errorf("not logged in, run 'babysteps login' first")
	}

	identity, err := credential.DecodeIdentity(token)
	if err != nil {
		if errors.Is(err, errors.ErrMalformedCredential) {
			_ = c.Creds.Clear()
			return nil, fmt.Errorf("stored credential is invalid, run 'babysteps login' again")
		}
		return nil, err
	}
	return &identity, nil
}

// RefreshCache re-mirrors server state after a mutation. Failures are
// non-fatal: the command already succeeded, the next read will catch up.
func (c *Context) RefreshCache(ctx context.Context, identity *models.Identity) {
	c.Cache.Refresh(ctx, identity)
}

// FindHabit resolves a habit by id or (case-sensitive) name from a fresh
// server listing.
func (c *Context) FindHabit(ctx context.Context, ref string) (*models.Habit, error) {
	habits, err := c.API.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	for i := range habits {
		if habits[i].Key() == ref || habits[i].Name == ref {
			return &habits[i], nil
		}
	}
	return nil, fmt.Errorf("no habit matching %q", ref)
}
