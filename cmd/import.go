package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/cardvault/internal/archive"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/spf13/cobra"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge cards from an exported JSON file",
	Long: `Read a JSON archive and write its cards by ID. Cards with an ID already
in the archive are overwritten, new ones are added and every other card is
kept.

With --replace, cards absent from the file are deleted afterwards.

A file that is not a JSON array of cards is rejected and nothing changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := archive.ModeMerge
		if importReplace {
			mode = archive.ModeReplace
		}

		return runImport(cmd.Context(), app.repo, args[0], mode, cmd.OutOrStdout())
	},
}

func runImport(ctx context.Context, repo *core.Repository, file string, mode archive.Mode, out io.Writer) error {
	path, err := expandPath(file)
	if err != nil {
		return err
	}

	res, err := repo.ImportFile(ctx, path, mode)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Imported %d cards (%s): %d added, %d updated", res.Received, res.Mode, res.Added, res.Updated)

	if res.Mode == archive.ModeReplace {
		_, _ = fmt.Fprintf(out, ", %d removed", res.Deleted)
	}

	_, _ = fmt.Fprintln(out)

	return nil
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete cards missing from the file")
	rootCmd.AddCommand(importCmd)
}
