package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Storage  string `help:"Storage target: a .db or .json file path, a postgres:// or redis:// URL, or 'keyring'."`
	Config   string `help:"Config file path." type:"path"`
	Timezone string `help:"IANA timezone used for calendar days, or 'Local'."`
	Debug    bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitual storage and write a default config file."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its tracking data."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits." default:"1"`
		Show   cli.HabitShowCmd   `cmd:"" help:"Show details and statistics for a habit."`
	} `cmd:"" help:"Manage habits."`

	Toggle   cli.ToggleCmd   `cmd:"" help:"Toggle completion of a habit for a day."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habits."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show statistics across all habits."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a habit's month calendar."`

	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether a connection string is stored."`
	} `cmd:"" help:"Manage the connection string kept in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily and weekly habits from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	overrides := config.Overrides{
		ConfigFile: CLI.Config,
		Storage:    CLI.Storage,
		Timezone:   CLI.Timezone,
		Debug:      CLI.Debug,
	}
	// Keyring commands must work before a keyring target exists.
	if strings.HasPrefix(kctx.Command(), "keyring") {
		overrides.Storage = constants.DefaultStoragePath
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	open := storage.Open
	if cfg.FromKeyring {
		open = storage.OpenTrusted
	}
	store, err := open(cfg.Storage)
	if err != nil {
		errors.Fatal(err)
	}

	err = kctx.Run(cli.NewContext(cfg, store))
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}
