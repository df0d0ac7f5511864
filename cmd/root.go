package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/cardvault/internal/application"
	"github.com/inovacc/cardvault/internal/config"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/inovacc/cardvault/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dataDirFlag string
	backendFlag string
	verbose     bool
)

// app holds what PersistentPreRunE builds for the running command
var app struct {
	cfg    model.Config
	logger *slog.Logger
	store  store.Store
	repo   *core.Repository
}

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A personal archive of character cards",
	Long: `Cardvault keeps a local archive of character cards: a name, an optional
photo, descriptive attributes and free-form tags.

Cards can be searched, filtered by tag, sorted, exported to a JSON archive
and merged back from one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsSetup(cmd) {
			return nil
		}

		return setup(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
// Cobra prints the error as "Error: ..." on stderr.
func Execute() {
	err := rootCmd.Execute()
	teardown()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default <data-dir>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding the archive")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: bolt, sqlite, json or memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

// skipsSetup reports whether cmd runs without a store (help and completion)
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}

	return false
}

func setup(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	s, err := store.Open(cfg)
	if err != nil {
		return err
	}

	logger.Debug("store opened", "backend", cfg.Backend, "path", cfg.DatabasePath())

	app.cfg = cfg
	app.logger = logger
	app.store = s
	app.repo = core.New(s, cfg).WithLogger(logger)

	return nil
}

// resolveConfig layers command-line flags over config.Load.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	path := cfgFile
	if path == "" && dataDirFlag != "" {
		path = config.DefaultFilePath(dataDirFlag)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("data-dir") {
		cfg.DataDir = dataDirFlag
	}

	if flags.Changed("backend") {
		cfg.Backend = model.Backend(backendFlag)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(level string, debug bool) (*slog.Logger, error) {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if debug {
		lvl = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func teardown() {
	if app.store == nil {
		return
	}

	if err := app.store.Close(); err != nil {
		app.logger.Warn("closing store", "error", err)
	}

	app.store = nil
}
