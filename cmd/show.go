package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := app.repo.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printCard(cmd.OutOrStdout(), card)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
