package cli

import "fmt"

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show client settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change client settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(appCtx *Context) error {
	settings, err := appCtx.State.GetSettings()
	if err != nil {
		return err
	}

	onOff := "off"
	if settings.NotificationsEnabled {
		onOff = "on"
	}
	fmt.Printf("notifications: %s\n", onOff)
	fmt.Printf("tick interval: %ds\n", settings.TickIntervalSec)
	return nil
}

type SettingsSetCmd struct {
	Notifications string `help:"Desktop notifications: on or off." enum:",on,off" optional:""`
	Interval      int    `help:"Reminder check interval in seconds." optional:""`
}

func (c *SettingsSetCmd) Run(appCtx *Context) error {
	settings, err := appCtx.State.GetSettings()
	if err != nil {
		return err
	}

	changed := false
	if c.Notifications != "" {
		settings.NotificationsEnabled = c.Notifications == "on"
		changed = true
	}
	if c.Interval > 0 {
		settings.TickIntervalSec = c.Interval
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change, pass --notifications or --interval")
	}

	if err := appCtx.State.SaveSettings(settings); err != nil {
		return err
	}
	Success("Settings saved.")
	return nil
}
