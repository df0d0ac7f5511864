package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	editFlags       cardFlags
	editInteractive bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a character card",
	Long: `Edit an existing card. The card may be named by its full ID or by an
unambiguous prefix such as the short ID shown by "list --view name-only".

Only the flags given are changed; every other field keeps its value.
The creation time never changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editInteractive {
			card, err := app.repo.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return runCardForm("Edit "+card.Name, card.Fields(), func(f model.Fields) error {
				_, err := app.repo.Update(cmd.Context(), card.ID, f)
				return err
			})
		}

		return runEdit(cmd.Context(), app.repo, args[0], cmd.Flags(), &editFlags, cmd.OutOrStdout())
	},
}

func runEdit(ctx context.Context, repo *core.Repository, ref string, fs *pflag.FlagSet, flags *cardFlags, out io.Writer) error {
	card, err := repo.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	fields, err := flags.apply(fs, card.Fields())
	if err != nil {
		return err
	}

	updated, err := repo.Update(ctx, card.ID, fields)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Updated %s (%s)\n", updated.Name, updated.ID)

	return nil
}

func init() {
	editFlags.register(editCmd.Flags())
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "Edit the card with a form")
	rootCmd.AddCommand(editCmd)
}
