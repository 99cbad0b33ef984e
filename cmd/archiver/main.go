package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/archiver/internal/cli"
	"github.com/julianstephens/archiver/internal/constants"
	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/logger"
	"github.com/julianstephens/archiver/internal/storage"
)

var CLI struct {
	Version              kong.VersionFlag
	Config               string `help:"Archive file path." type:"string" default:"${config}" env:"${env_config}"`
	SchemaDir            string `help:"Directory with external schema scripts (NNN_name.sql)." env:"${env_schema_dir}"`
	Debug                bool   `help:"Log debug output to stderr." env:"${env_debug}"`
	CascadeDeleteDefault bool   `help:"Deleting a day also deletes its entries."`

	Init    cli.InitCmd    `cmd:"" help:"Create the archive if it is missing."`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply pending schema migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Days    cli.DaysCmd    `cmd:"" help:"List registered days."`
	Day     cli.DayCmd     `cmd:"" help:"Manage days."`
	Entry   cli.EntryCmd   `cmd:"" help:"Manage entries."`
	Search  cli.SearchCmd  `cmd:"" help:"Search entries across all days."`
	Backup  cli.BackupCmd  `cmd:"" help:"Manage archive backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Day-indexed note archive"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"config":         constants.DefaultConfigPath,
			"env_config":     constants.EnvConfig,
			"env_schema_dir": constants.EnvSchemaDir,
			"env_debug":      constants.EnvDebug,
		},
	)

	cfg := cli.Config{
		Path:          expandHome(CLI.Config),
		SchemaDir:     expandHome(CLI.SchemaDir),
		Debug:         CLI.Debug,
		CascadeDelete: CLI.CascadeDeleteDefault,
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(cfg.Path),
		Quiet:     ctx.Command() == "tui",
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := storage.Open(runCtx, storage.Config{
		Path:      cfg.Path,
		SchemaDir: cfg.SchemaDir,
		Progress: func(msg string) {
			logger.Info(msg)
		},
	})
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Ctx:    runCtx,
		Store:  store,
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close archive", "error", cerr)
	}
	if err != nil {
		stop()
		apperrors.Fatal(err)
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
