package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mgurlek/hybit/internal/cli"
	"github.com/mgurlek/hybit/internal/cli/backups"
	"github.com/mgurlek/hybit/internal/cli/export"
	"github.com/mgurlek/hybit/internal/cli/habits"
	"github.com/mgurlek/hybit/internal/cli/profile"
	"github.com/mgurlek/hybit/internal/cli/reminders"
	"github.com/mgurlek/hybit/internal/cli/settings"
	"github.com/mgurlek/hybit/internal/cli/system"
	"github.com/mgurlek/hybit/internal/cli/widget"
	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/errors"
	"github.com/mgurlek/hybit/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path, PostgreSQL connection string, or 'postgres' to read the connection string from HYBIT_DB_CONNECTION or the OS keyring. PostgreSQL connection strings must NOT embed a password." type:"string" default:"${default_config}" env:"HYBIT_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr." env:"HYBIT_DEBUG"`

	Init     system.InitCmd        `cmd:"" help:"Initialize hybit storage."`
	Migrate  system.MigrateCmd     `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    habits.HabitCmd       `cmd:"" help:"Manage habits and habit tracking."`
	Widget   widget.WidgetCmd      `cmd:"" help:"Compact view of today's habits."`
	Reminder reminders.ReminderCmd `cmd:"" help:"Show today's reminders."`
	Backup   backups.BackupCmd     `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Profile  profile.ProfileCmd    `cmd:"" help:"Manage your profile."`
	Export   export.ExportCmd      `cmd:"" help:"Export habits and history as JSON or YAML."`
	Keyring  system.KeyringCmd     `cmd:"" help:"Manage database credentials in the OS keyring."`
	Notify   system.NotifyCmd      `cmd:"" hidden:"" help:"Send due reminders (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily habit tracker with streaks and a 4 AM day cutoff"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cli.ConfigDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	command := ctx.Command()
	appCtx := cli.NewContext(nil)

	// Keyring commands manage the credentials a store would need.
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		// init and doctor handle their own loading.
		if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	if err := ctx.Run(appCtx); errors.Report(os.Stderr, err) {
		// Deferred cleanup does not run after os.Exit.
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		os.Exit(1)
	}
}
