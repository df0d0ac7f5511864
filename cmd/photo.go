package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/cardvault/internal/cli"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/spf13/cobra"
)

var photoCmd = &cobra.Command{
	Use:   "photo <id> <image-file>",
	Short: "Attach an image file as the photo of a card",
	Long: `Downscale an image (JPEG, PNG, GIF or WebP) to the configured bounds,
re-encode it as JPEG and embed it in the card. An unreadable image leaves
the card unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhoto(cmd.Context(), app.repo, args[0], args[1], cmd.OutOrStdout())
	},
}

func runPhoto(ctx context.Context, repo *core.Repository, ref, file string, out io.Writer) error {
	card, err := repo.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	path, err := expandPath(file)
	if err != nil {
		return err
	}

	card, err = repo.AttachPhotoFile(ctx, card.ID, path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s: %s\n", card.Name, cli.PhotoSummary(card.Photo))

	return nil
}

func init() {
	rootCmd.AddCommand(photoCmd)
}
