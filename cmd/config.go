package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/inovacc/cardvault/internal/config"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/spf13/cobra"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after applying, in order, the defaults, the
config file, CARDVAULT_* environment variables and command-line flags.

With --save the effective configuration is written to the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath(app.cfg)

		if configSave {
			if err := config.SaveFile(path, app.cfg); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)

			return nil
		}

		printConfig(cmd.OutOrStdout(), app.cfg, path)

		return nil
	},
}

func configFilePath(cfg model.Config) string {
	if cfgFile != "" {
		return cfgFile
	}

	return config.DefaultFilePath(cfg.DataDir)
}

func printConfig(out io.Writer, cfg model.Config, path string) {
	database := cfg.DatabasePath()
	if database == "" {
		database = "(in memory)"
	}

	items := map[string]string{
		"Config file": path,
		"Data dir":    cfg.DataDir,
		"Backend":     string(cfg.Backend),
		"Database":    database,
		"Storage key": cfg.StorageKey,
		"Export dir":  cfg.ExportDir,
		"Locale":      cfg.Locale,
		"Log level":   cfg.LogLevel,
		"Photo size":  fmt.Sprintf("%dx%d", cfg.MaxWidth, cfg.MaxHeight),
		"Quality":     strconv.Itoa(cfg.Quality),
	}

	order := []string{"Config file", "Data dir", "Backend", "Database", "Storage key",
		"Export dir", "Locale", "Log level", "Photo size", "Quality"}

	printInfoBox(out, "Cardvault Configuration", items, order)
}

func init() {
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}
