package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/cli/account"
	"github.com/julianstephens/dayquest/internal/cli/achievements"
	"github.com/julianstephens/dayquest/internal/cli/appointments"
	"github.com/julianstephens/dayquest/internal/cli/backups"
	"github.com/julianstephens/dayquest/internal/cli/expenses"
	"github.com/julianstephens/dayquest/internal/cli/settings"
	"github.com/julianstephens/dayquest/internal/cli/system"
	"github.com/julianstephens/dayquest/internal/cli/tasks"
	"github.com/julianstephens/dayquest/internal/config"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/errors"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	EnvFile []string `help:"Extra .env files to load." type:"path" name:"env-file"`
	Remote  string   `help:"PostgreSQL connection string for the remote store. Credentials must NOT be embedded; use .pgpass or the OS keyring instead."`
	Offline bool     `help:"Skip the remote store and work from the local cache only."`
	Debug   bool     `help:"Log at debug level."`

	Init    system.InitCmd          `cmd:"" help:"Initialize the local cache."`
	Status  system.StatusCmd        `cmd:"" help:"Show profile, level and streak." default:"1"`
	Login   account.LoginCmd        `cmd:"" help:"Sign in and sync with the remote store."`
	Logout  account.LogoutCmd       `cmd:"" help:"Sign out. Local data is kept."`
	Sync    account.SyncCmd         `cmd:"" help:"Reconcile local data with the remote store now."`
	Checkin achievements.CheckinCmd `cmd:"" help:"Record today's visit and advance your streak."`
	Task    struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Complete a task and earn XP."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
	} `cmd:"" help:"Manage tasks."`
	Expense struct {
		Add    expenses.ExpenseAddCmd    `cmd:"" help:"Record an expense."`
		Delete expenses.ExpenseDeleteCmd `cmd:"" help:"Delete an expense."`
		List   expenses.ExpenseListCmd   `cmd:"" help:"List expenses by month." default:"1"`
	} `cmd:"" help:"Track expenses."`
	Appointment struct {
		Add    appointments.AppointmentAddCmd    `cmd:"" help:"Add an appointment."`
		Delete appointments.AppointmentDeleteCmd `cmd:"" help:"Delete an appointment."`
		List   appointments.AppointmentListCmd   `cmd:"" help:"List upcoming appointments." default:"1"`
	} `cmd:"" help:"Manage appointments."`
	Rewards  achievements.RewardsCmd  `cmd:"" help:"Show unlocked and locked rewards."`
	Trophies achievements.TrophiesCmd `cmd:"" help:"Show streak trophies."`
	Profile  struct {
		Edit settings.ProfileEditCmd `cmd:"" help:"Edit name and avatar." default:"1"`
	} `cmd:"" help:"Manage your profile."`
	Theme struct {
		Set  settings.ThemeSetCmd  `cmd:"" help:"Choose a theme."`
		List settings.ThemeListCmd `cmd:"" help:"List themes." default:"1"`
	} `cmd:"" help:"Manage the color theme."`
	Backup  backups.BackupCmd  `cmd:"" help:"Export your data to a JSON file."`
	Restore backups.RestoreCmd `cmd:"" help:"Upload a backup file to the remote store."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the remote connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified daily tracker: tasks, expenses and appointments with XP, streaks and rewards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg := config.Load(CLI.EnvFile...)
	cachePath, err := utils.ExpandPath(cfg.CachePath)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(cachePath),
		Level:     cfg.LogLevel,
	}); err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:  cfg,
		DSN:     CLI.Remote,
		Offline: CLI.Offline,
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		errors.Fatal(err)
	}
}
