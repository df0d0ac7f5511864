package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/cardvault/internal/core"
	"github.com/spf13/cobra"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a card from the archive",
	Long: `Remove a card from the archive. The card may be named by its full ID or
by an unambiguous prefix. You are asked to confirm unless -y is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd.Context(), app.repo, args[0], removeYes, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runRemove(ctx context.Context, repo *core.Repository, ref string, yes bool, in io.Reader, out io.Writer) error {
	card, err := repo.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	if !yes && !promptConfirm(in, out, fmt.Sprintf("Remove card %q (%s)? [y/N]: ", card.Name, card.ShortID())) {
		_, _ = fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if err := repo.Remove(ctx, card.ID); err != nil {
		return fmt.Errorf("failed to remove card: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Removed %s (%s)\n", card.Name, card.ID)

	return nil
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}
