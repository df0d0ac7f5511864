package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := app.repo.DistinctTags(cmd.Context())
		if err != nil {
			return err
		}

		for _, tag := range tags {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tag)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
