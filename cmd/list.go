package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/cardvault/internal/application"
	"github.com/inovacc/cardvault/internal/cli"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/spf13/cobra"
)

var (
	listQuery       string
	listTag         string
	listSort        string
	listView        string
	listInteractive bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "search"},
	Short:   "List and search cards",
	Long: `List the cards in the archive, newest first by default.

--query matches part of the name or of any tag, ignoring case. --tag keeps
only cards carrying that exact tag. --sort alpha orders names using the
configured locale.

With --interactive and a terminal, the list opens in a filterable view
where "v" switches between the name-only and name-photo views and enter
shows the selected card.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, mode, err := parseListOptions(listQuery, listTag, listSort, listView)
		if err != nil {
			return err
		}

		cards, err := app.repo.Search(cmd.Context(), q)
		if err != nil {
			return err
		}

		if listInteractive {
			if isTerminal(os.Stdout) {
				return runInteractiveList(cards, mode, cmd.OutOrStdout())
			}

			app.logger.Debug("stdout is not a terminal, printing plain list")
		}

		printCardList(cmd.OutOrStdout(), cards, mode)

		return nil
	},
}

func parseListOptions(query, tag, sortKey, view string) (core.Query, model.ViewMode, error) {
	key, err := core.ParseSortKey(sortKey)
	if err != nil {
		return core.Query{}, "", err
	}

	mode, err := model.ParseViewMode(view)
	if err != nil {
		return core.Query{}, "", err
	}

	return core.Query{Text: query, Tag: tag, Sort: key}, mode, nil
}

func printCardList(out io.Writer, cards []model.CharacterCard, mode model.ViewMode) {
	if len(cards) == 0 {
		printEmptyResult(out, "cards", application.AppName+" add --name <name>")
		return
	}

	for _, card := range cards {
		printCardLine(out, card, mode)
	}
}

func runInteractiveList(cards []model.CharacterCard, mode model.ViewMode, out io.Writer) error {
	p := tea.NewProgram(cli.NewCardList(cards, mode), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	listModel, ok := finalModel.(cli.CardListModel)
	if !ok {
		return nil
	}

	if selected := listModel.Selected(); selected != nil {
		printCard(out, *selected)
	}

	return nil
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Match part of the name or a tag")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only cards with this exact tag")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", string(core.SortNewest), "Order: newest, oldest or alpha")
	listCmd.Flags().StringVar(&listView, "view", string(model.ViewNamePhoto), "View: name-only or name-photo")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Open the interactive list when attached to a terminal")
	rootCmd.AddCommand(listCmd)
}
