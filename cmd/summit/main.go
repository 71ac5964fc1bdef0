package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/summit/internal/cli"
	"github.com/julianstephens/summit/internal/config"
	"github.com/julianstephens/summit/internal/constants"
	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `help:"Config file path." type:"path" default:"${config_file}" env:"SUMMIT_CONFIG"`
	Storage    string `help:"Storage location: SQLite path, *.json path, postgres:// URL, 'postgres' or 'memory'. Overrides the config file."`
	Timezone   string `help:"IANA timezone for day boundaries. Overrides the config file."`
	Ephemeral  bool   `help:"Keep everything in memory for this run."`
	Debug      bool   `help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize summit storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Progress cli.ProgressCmd `cmd:"" help:"Show goal totals, weekly adherence and streak."`
	Week     cli.WeekCmd     `cmd:"" help:"Show this week's habit grid."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks on storage and data."`
	Goal     struct {
		Add    cli.GoalAddCmd    `cmd:"" help:"Add a new goal and focus it."`
		List   cli.GoalListCmd   `cmd:"" help:"List goals, newest first."`
		Edit   cli.GoalEditCmd   `cmd:"" help:"Edit a goal."`
		Done   cli.GoalDoneCmd   `cmd:"" help:"Toggle a goal's completed state."`
		Delete cli.GoalDeleteCmd `cmd:"" help:"Delete a goal with its habits and routines."`
		Focus  cli.GoalFocusCmd  `cmd:"" help:"Show, set or clear the focused goal."`
	} `cmd:"" help:"Manage goals."`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit to a goal."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits with this week's count."`
		Mark   cli.HabitMarkCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		Log    cli.HabitLogCmd    `cmd:"" help:"Show recent completion history."`
	} `cmd:"" help:"Manage habits."`
	Routine struct {
		Add    cli.RoutineAddCmd    `cmd:"" help:"Add a routine to a goal."`
		List   cli.RoutineListCmd   `cmd:"" help:"List routines and their steps."`
		Done   cli.RoutineDoneCmd   `cmd:"" help:"Mark a routine completed now."`
		Delete cli.RoutineDeleteCmd `cmd:"" help:"Delete a routine."`
	} `cmd:"" help:"Manage routines."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage snapshot backups."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    cli.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage PostgreSQL credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track long-horizon goals with weekly habits and routines"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Storage != "" {
		cfg.Storage.Location = config.ExpandPath(CLI.Storage)
	}
	if CLI.Ephemeral {
		cfg.Storage.Location = storage.LocationMemory
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		apperrors.Fatal(err)
	}

	appCtx, err := cli.New(cfg, CLI.ConfigFile)
	if err != nil {
		apperrors.Fatal(err)
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}
