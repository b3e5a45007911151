package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/babysteps/babysteps/internal/constants"
)

type AccountCmd struct {
	Profile  ProfileCmd       `cmd:"" help:"Update your name."`
	Password PasswordCmd      `cmd:"" help:"Change your password."`
	Delete   AccountDeleteCmd `cmd:"" help:"Permanently delete your account."`
}

type ProfileCmd struct {
	FirstName string `help:"New first name." optional:""`
	LastName  string `help:"New last name." optional:""`
}

func (c *ProfileCmd) Run(appCtx *Context) error {
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	if c.FirstName == "" && c.LastName == "" {
		c.FirstName = identity.FirstName
		c.LastName = identity.LastName
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("First name").Value(&c.FirstName),
			huh.NewInput().Title("Last name").Value(&c.LastName),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	updated, err := appCtx.API.UpdateProfile(context.Background(), c.FirstName, c.LastName)
	if err != nil {
		return fmt.Errorf("could not update profile: %w", err)
	}

	Success("Profile updated successfully: %s", updated.DisplayName())
	return nil
}

type PasswordCmd struct{}

func (c *PasswordCmd) Run(appCtx *Context) error {
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}

	var current, next string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(&current),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&next),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if len(next) < constants.MinPasswordLength {
		return fmt.Errorf("new password must be at least %d characters long", constants.MinPasswordLength)
	}

	msg, err := appCtx.API.ChangePassword(context.Background(), current, next)
	if err != nil {
		return fmt.Errorf("could not change password: %w", err)
	}

	if msg == "" {
		msg = "Password changed."
	}
	Success("%s", msg)
	return nil
}

type AccountDeleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *AccountDeleteCmd) Run(appCtx *Context) error {
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		prompt := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("ARE YOU ABSOLUTELY SURE? This will permanently delete your account and all habits.").
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

	if err := appCtx.API.DeleteAccount(context.Background()); err != nil {
		return fmt.Errorf("could not delete account: %w", err)
	}

	// Account is gone; so is every piece of local state
	_ = appCtx.Creds.Clear()
	_ = appCtx.State.Clear()
	appCtx.Cache.Clear()

	Success("Account deleted successfully.")
	return nil
}
