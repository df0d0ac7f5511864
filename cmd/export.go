package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/cardvault/internal/core"
	"github.com/spf13/cobra"
)

var (
	exportDir    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to a JSON file",
	Long: `Write every card to archive_vault_<epoch-ms>.json in the export
directory (the configured export_dir unless --dir is given).

The file is a pretty-printed JSON array that "import" reads back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportStdout {
			text, err := app.repo.Export(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)

			return nil
		}

		return runExport(cmd.Context(), app.repo, exportDir, cmd.OutOrStdout())
	},
}

func runExport(ctx context.Context, repo *core.Repository, dir string, out io.Writer) error {
	if dir != "" {
		abs, err := expandPath(dir)
		if err != nil {
			return err
		}

		dir = abs
	}

	path, err := repo.ExportToDir(ctx, dir)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Exported to %s\n", path)

	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory for the export file")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Print the archive instead of writing a file")
	rootCmd.AddCommand(exportCmd)
}
