package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/cli/backups"
	"github.com/julianstephens/momentum/internal/cli/checkin"
	"github.com/julianstephens/momentum/internal/cli/coach"
	"github.com/julianstephens/momentum/internal/cli/goals"
	"github.com/julianstephens/momentum/internal/cli/insights"
	"github.com/julianstephens/momentum/internal/cli/journal"
	"github.com/julianstephens/momentum/internal/cli/messages"
	"github.com/julianstephens/momentum/internal/cli/settings"
	"github.com/julianstephens/momentum/internal/cli/system"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/errors"
	"github.com/julianstephens/momentum/internal/keyring"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/notifier"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/postgres"
	"github.com/julianstephens/momentum/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string (default: keyring connection, then ${default_config}). Credentials must NOT be embedded in the connection string; use .pgpass or the OS keyring instead." env:"MOMENTUM_CONFIG"`
	Verbose bool   `name:"debug" help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize momentum storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Goal     goals.GoalCmd        `cmd:"" help:"Manage goals and log progress."`
	Journal  journal.JournalCmd   `cmd:"" help:"Write and read journal entries."`
	CheckIn  checkin.CheckInCmd   `cmd:"" name:"checkin" help:"Record how you feel today."`
	Insights insights.InsightsCmd `cmd:"" help:"Show progress statistics."`
	Coach    coach.CoachCmd       `cmd:"" help:"Ask the AI coach for motivation and reflection."`
	Messages messages.MessagesCmd `cmd:"" help:"Read your conversations."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Export   system.ExportCmd     `cmd:"" help:"Export all data as YAML or JSON."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send streak reminders (meant for cron)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Goal tracking with streaks, journaling and an AI coach"),
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

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Verbose, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting", logger.KeyVersion, constants.Version, logger.KeyCommand, ctx.Command())

	appCtx := &cli.Context{
		Store:    store,
		Notifier: notifier.New(),
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// openStore picks the storage backend. Without --config a connection string
// from the keyring wins over the default SQLite path. Keyring strings may
// carry a password since the keyring itself is encrypted.
func openStore(config string) (storage.Provider, string, error) {
	if config == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return postgres.New(connStr), defaultConfigDir(), nil
		}
		config = constants.DefaultConfigPath
	}

	store, err := system.OpenStore(config)
	if err != nil {
		return nil, "", err
	}
	if postgres.IsConnString(config) {
		return store, defaultConfigDir(), nil
	}
	return store, filepath.Dir(utils.ExpandHome(config)), nil
}

func defaultConfigDir() string {
	return filepath.Dir(utils.ExpandHome(constants.DefaultConfigPath))
}
