package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/credential"
	"github.com/babysteps/babysteps/internal/logger"
)

type LoginCmd struct {
	Username string `help:"Account username (email)." optional:""`
	Password string `help:"Account password. Prompted when omitted." optional:""`
}

func (c *LoginCmd) Run(appCtx *Context) error {
	if c.Username == "" || c.Password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&c.Username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&c.Password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	token, err := appCtx.API.Login(ctx, c.Username, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := appCtx.Creds.SetToken(token); err != nil {
		return err
	}

	identity, err := credential.DecodeIdentity(token)
	if err != nil {
		// The server handed us something we cannot read; do not keep it
		_ = appCtx.Creds.Clear()
		return fmt.Errorf("server returned an unreadable credential: %w", err)
	}

	appCtx.RefreshCache(ctx, &identity)
	logger.Info("Logged in", "user", identity.Username)
	Success("Welcome back, %s!", identity.DisplayName())
	return nil
}

type RegisterCmd struct {
	FirstName string `help:"First name." optional:""`
	LastName  string `help:"Last name." optional:""`
	Username  string `help:"Username (email)." optional:""`
	Password  string `help:"Password. Prompted when omitted." optional:""`
}

func (c *RegisterCmd) Run(appCtx *Context) error {
	if c.Username == "" || c.Password == "" || c.FirstName == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("First name").
					Value(&c.FirstName),
				huh.NewInput().
					Title("Last name").
					Value(&c.LastName),
				huh.NewInput().
					Title("Username").
					Value(&c.Username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&c.Password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if len(c.Password) < constants.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", constants.MinPasswordLength)
	}

	ctx := context.Background()
	token, err := appCtx.API.Register(ctx, c.FirstName, c.LastName, c.Username, c.Password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := appCtx.Creds.SetToken(token); err != nil {
		return err
	}

	identity, err := credential.DecodeIdentity(token)
	if err != nil {
		_ = appCtx.Creds.Clear()
		return fmt.Errorf("server returned an unreadable credential: %w", err)
	}

	// Next session greets the brand-new user differently
	if settings, err := appCtx.State.GetSettings(); err == nil {
		settings.FirstSession = true
		if err := appCtx.State.SaveSettings(settings); err != nil {
			logger.Warn("Failed to save first-session flag", "error", err)
		}
	}

	appCtx.RefreshCache(ctx, &identity)
	logger.Info("Registered", "user", identity.Username)
	Success("Welcome, %s!", identity.DisplayName())
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(appCtx *Context) error {
	if err := appCtx.Creds.Clear(); err != nil {
		return err
	}
	// Local state does not survive logout
	if err := appCtx.State.Clear(); err != nil {
		return err
	}
	appCtx.Cache.Clear()
	Success("Logged out.")
	return nil
}
