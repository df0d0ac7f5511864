package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/imaging"
	"github.com/inovacc/cardvault/internal/model"
)

const fmtField = " %s\n %s\n\n"

// clearPhoto typed into the photo field removes an existing photo
const clearPhoto = "-"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	focusedButton = focusedStyle.Render("[ Save ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Save"))
)

type formField struct {
	label       string
	placeholder string
	get         func(model.Fields) string
	set         func(*model.Fields, string)
}

var cardFormFields = []formField{
	{"Name", "required", func(f model.Fields) string { return f.Name }, func(f *model.Fields, v string) { f.Name = v }},
	{"Photo", "image URL or local file", nil, nil},
	{"Gender", "", func(f model.Fields) string { return f.Gender }, func(f *model.Fields, v string) { f.Gender = v }},
	{"Birthday", "", func(f model.Fields) string { return f.Birthday }, func(f *model.Fields, v string) { f.Birthday = v }},
	{"Height", "", func(f model.Fields) string { return f.Height }, func(f *model.Fields, v string) { f.Height = v }},
	{"Weight", "", func(f model.Fields) string { return f.Weight }, func(f *model.Fields, v string) { f.Weight = v }},
	{"Eye color", "", func(f model.Fields) string { return f.EyeColor }, func(f *model.Fields, v string) { f.EyeColor = v }},
	{"Hair style", "", func(f model.Fields) string { return f.HairStyle }, func(f *model.Fields, v string) { f.HairStyle = v }},
	{"Tags", "comma separated", func(f model.Fields) string { return core.FormatTags(f.Tags) }, func(f *model.Fields, v string) { f.Tags = core.ParseTags(v) }},
	{"Personality", "", func(f model.Fields) string { return f.Personality }, func(f *model.Fields, v string) { f.Personality = v }},
	{"Hobbies", "", func(f model.Fields) string { return f.Hobbies }, func(f *model.Fields, v string) { f.Hobbies = v }},
	{"Others", "", func(f model.Fields) string { return f.Others }, func(f *model.Fields, v string) { f.Others = v }},
}

const photoField = 1

// CardFormModel edits the fields of one card and hands them to a save func.
type CardFormModel struct {
	title      string
	focusIndex int
	inputs     []textinput.Model
	initial    model.Fields
	save       func(model.Fields) error
	message    string
	Saved      bool
	Err        error
}

// NewCardForm creates a form prefilled with initial. An embedded photo is
// not shown; leaving the photo field empty keeps it.
func NewCardForm(title string, initial model.Fields, save func(model.Fields) error) *CardFormModel {
	m := &CardFormModel{
		title:   title,
		inputs:  make([]textinput.Model, len(cardFormFields)),
		initial: initial,
		save:    save,
	}

	for i, field := range cardFormFields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 2048
		t.Placeholder = field.placeholder

		if field.get != nil {
			t.SetValue(field.get(initial))
		}

		if i == photoField {
			if imaging.IsEmbedded(initial.Photo) {
				t.Placeholder = "embedded photo kept, enter a path or URL to replace, - to clear"
			} else {
				t.SetValue(initial.Photo)
			}
		}

		if i == 0 {
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		}

		m.inputs[i] = t
	}

	return m
}

func (m *CardFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CardFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		// stay open so the input can be corrected
		m.message = msg.err.Error()
		m.Err = msg.err

		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.submit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.refocus()
		}
	}

	return m, m.updateInputs(msg)
}

func (m *CardFormModel) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}

		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *CardFormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// only the focused input reacts to keys
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *CardFormModel) View() string {
	if m.Saved {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render("\n  ✓ Card saved\n\n")
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title) + "\n")
	b.WriteString(blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n")

	for i, field := range cardFormFields {
		_, _ = fmt.Fprintf(&b, fmtField, blurredStyle.Render(field.label+":"), m.inputs[i].View())
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}

	_, _ = fmt.Fprintf(&b, "\n %s\n\n", *button)

	if m.message != "" {
		b.WriteString(errorStyle.Render(" ✗ "+m.message) + "\n\n")
	}

	b.WriteString(blurredStyle.Render(" tab/shift+tab: navigate • enter: save • esc: cancel"))

	return b.String()
}

// Fields returns the form content as card fields.
func (m *CardFormModel) Fields() model.Fields {
	f := m.initial
	f.PhotoPath = ""

	for i, field := range cardFormFields {
		if field.set != nil {
			field.set(&f, strings.TrimSpace(m.inputs[i].Value()))
		}
	}

	photo := strings.TrimSpace(m.inputs[photoField].Value())

	switch {
	case photo == clearPhoto:
		f.Photo = ""
	case photo == "" && imaging.IsEmbedded(m.initial.Photo):
		f.Photo = m.initial.Photo
	case photo == "" || imaging.IsRemote(photo) || imaging.IsEmbedded(photo):
		f.Photo = photo
	default:
		f.Photo = ""
		f.PhotoPath = photo
	}

	return f
}

func (m *CardFormModel) submit() tea.Msg {
	if err := m.save(m.Fields()); err != nil {
		return errMsg{err}
	}

	return successMsg{}
}

type successMsg struct{}
type errMsg struct{ err error }
