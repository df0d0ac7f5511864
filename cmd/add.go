package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/cardvault/internal/cli"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/spf13/cobra"
)

var (
	addFlags       cardFlags
	addInteractive bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a character card",
	Long: `Add a new card to the archive. A name is required; every other field is
optional.

The photo may be an image URL, kept as is, or a local image file. Local
images are downscaled to fit the configured bounds and embedded as JPEG.

Examples:
  cardvault add --name "Aria" --tags "mage, elf" --photo ./aria.png
  cardvault add -i`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addInteractive {
			return runCardForm("New card", model.Fields{}, func(f model.Fields) error {
				card, err := app.repo.Create(cmd.Context(), f)
				if err == nil {
					app.logger.Debug("created from form", "id", card.ID)
				}

				return err
			})
		}

		fields, err := addFlags.apply(cmd.Flags(), model.Fields{})
		if err != nil {
			return err
		}

		return runAdd(cmd.Context(), app.repo, fields, cmd.OutOrStdout())
	},
}

func runAdd(ctx context.Context, repo *core.Repository, fields model.Fields, out io.Writer) error {
	card, err := repo.Create(ctx, fields)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Added %s (%s)\n", card.Name, card.ID)

	return nil
}

// runCardForm runs the card form until it is saved or cancelled
func runCardForm(title string, initial model.Fields, save func(model.Fields) error) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("interactive mode requires a terminal")
	}

	form := cli.NewCardForm(title, initial, save)

	if _, err := tea.NewProgram(form).Run(); err != nil {
		return err
	}

	if !form.Saved {
		_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
	}

	return nil
}

func init() {
	addFlags.register(addCmd.Flags())
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Fill in the card with a form")
	rootCmd.AddCommand(addCmd)
}
