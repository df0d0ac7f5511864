package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/cardvault/internal/imaging"
	"github.com/inovacc/cardvault/internal/model"
)

var (
	docStyle          = lipgloss.NewStyle().Margin(1, 2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	shortIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var toggleViewKey = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle view"))

func viewToggleHelp() []key.Binding {
	return []key.Binding{toggleViewKey}
}

type cardItem struct {
	card model.CharacterCard
}

func (i cardItem) Title() string {
	return i.card.Name
}

func (i cardItem) Description() string {
	parts := []string{PhotoSummary(i.card.Photo)}

	if len(i.card.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(i.card.Tags, ", "))
	}

	parts = append(parts, "Created: "+i.card.Created().Format("2006-01-02 15:04"))

	return strings.Join(parts, " | ")
}

func (i cardItem) FilterValue() string {
	return i.card.Name + " " + strings.Join(i.card.Tags, " ")
}

// PhotoSummary describes a photo field in one short phrase.
func PhotoSummary(photo string) string {
	switch {
	case photo == "":
		return "No photo"
	case imaging.IsRemote(photo):
		return "Photo: " + imaging.RedactURL(photo)
	case imaging.IsEmbedded(photo):
		desc, err := imaging.Describe(photo)
		if err != nil {
			return "Photo: embedded"
		}

		return "Photo: " + desc
	}

	return "Photo: " + photo
}

// compactDelegate renders one line per card: "[abcd] Name".
type compactDelegate struct{}

func (d compactDelegate) Height() int                             { return 1 }
func (d compactDelegate) Spacing() int                            { return 0 }
func (d compactDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d compactDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(cardItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%s %s", shortIDStyle.Render("["+i.card.ShortID()+"]"), i.card.Name)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

func delegateFor(mode model.ViewMode) list.ItemDelegate {
	if mode == model.ViewNameOnly {
		return compactDelegate{}
	}

	return list.NewDefaultDelegate()
}

// CardListModel is an interactive, filterable list of cards.
type CardListModel struct {
	list     list.Model
	mode     model.ViewMode
	selected *model.CharacterCard
	quitting bool
}

// NewCardList builds the list in the given view mode.
func NewCardList(cards []model.CharacterCard, mode model.ViewMode) CardListModel {
	items := make([]list.Item, len(cards))
	for i, card := range cards {
		items[i] = cardItem{card: card}
	}

	l := list.New(items, delegateFor(mode), 0, 0)
	l.Title = listTitle(mode, len(cards))
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = viewToggleHelp
	l.AdditionalFullHelpKeys = viewToggleHelp

	return CardListModel{list: l, mode: mode}
}

func listTitle(mode model.ViewMode, n int) string {
	return fmt.Sprintf("Character Archive (%d) - %s", n, mode)
}

func (m CardListModel) Init() tea.Cmd {
	return nil
}

func (m CardListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		// keys belong to the filter input while typing
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "v":
			m.mode = m.mode.Toggle()
			m.list.SetDelegate(delegateFor(m.mode))
			m.list.Title = listTitle(m.mode, len(m.list.Items()))

			return m, nil

		case "enter":
			i, ok := m.list.SelectedItem().(cardItem)
			if ok {
				m.selected = &i.card
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m CardListModel) View() string {
	if m.quitting {
		return ""
	}

	return docStyle.Render(m.list.View())
}

// Selected returns the card chosen with enter, or nil.
func (m CardListModel) Selected() *model.CharacterCard {
	return m.selected
}

// Mode returns the current view mode.
func (m CardListModel) Mode() model.ViewMode {
	return m.mode
}
