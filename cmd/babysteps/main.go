package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/cli"
	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/credential"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/session"
	"github.com/babysteps/babysteps/internal/state"
	"github.com/babysteps/babysteps/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"State file path. A .db suffix selects the SQLite backend." type:"string" default:"~/.config/babysteps/state.json"`
	APIURL  string `name:"api-url" help:"Base URL of the habit service." env:"BABYSTEPS_API_URL" default:"http://localhost:4000/api"`
	Debug   bool   `help:"Enable debug logging."`

	Login    cli.LoginCmd    `cmd:"" help:"Log in to the habit service."`
	Register cli.RegisterCmd `cmd:"" help:"Create a new account."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out and clear local state."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Account  cli.AccountCmd  `cmd:"" help:"Manage your account."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change client settings."`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the reminder watcher." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("babysteps"),
		kong.Description("Terminal companion for the BabySteps habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := utils.ExpandPath(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Pick the state backend based on the config path, SQLite for .db
	var store state.Provider
	if strings.HasSuffix(configPath, ".db") {
		store = state.NewSQLiteStore(configPath)
	} else {
		store = state.NewJSONStore(configPath)
	}

	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	creds := credential.NewStore(store)
	client := api.NewClient(api.Config{
		BaseURL:     CLI.APIURL,
		Credentials: creds,
		// One-shot commands get a plain notice; watch mode installs the
		// session controller's full reload handling instead.
		OnUnauthorized: func() {
			cli.Notice("Session expired. Please log in again.")
		},
	})

	appCtx := &cli.Context{
		State: store,
		Creds: creds,
		API:   client,
		Cache: session.NewCache(client, store),
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close state store", "error", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
