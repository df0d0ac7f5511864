package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/cardvault/internal/cli"
	"github.com/inovacc/cardvault/internal/model"
	"golang.org/x/term"
)

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Remove this card? [y/N]: ")
func promptConfirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)

	return response == "y" || response == "Y" || strings.EqualFold(response, "yes")
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(out io.Writer, resourceType, createCmd string) {
	_, _ = fmt.Fprintf(out, "No %s found.\n", resourceType)
	_, _ = fmt.Fprintf(out, "Create one with: %s\n", createCmd)
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}

	padding := (width - w) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-w-padding, "")
}

// truncateString truncates a string to the specified number of runes with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printBoxHeader prints the top border of an info box with a title
func printBoxHeader(out io.Writer, title string) {
	_, _ = fmt.Fprintln(out, "╔"+strings.Repeat("═", boxWidth-2)+"╗")
	_, _ = fmt.Fprintf(out, "║%s║\n", centerString(truncateString(title, boxWidth-2), boxWidth-2))
	_, _ = fmt.Fprintln(out, "╠"+strings.Repeat("═", boxWidth-2)+"╣")
}

// printBoxLine prints a line inside an info box with label and value.
// Values longer than the box are truncated; embedded newlines are flattened.
func printBoxLine(out io.Writer, label, value string) {
	value = strings.Join(strings.Fields(value), " ")
	content := truncateString(fmt.Sprintf("  %s: %s", label, value), boxWidth-2)

	padding := boxWidth - 2 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	_, _ = fmt.Fprintf(out, "║%s%*s║\n", content, padding, "")
}

// printBoxFooter prints the bottom border of an info box
func printBoxFooter(out io.Writer) {
	_, _ = fmt.Fprintln(out, "╚"+strings.Repeat("═", boxWidth-2)+"╝")
}

// printInfoBox prints a complete info box with title and key-value pairs
func printInfoBox(out io.Writer, title string, items map[string]string, order []string) {
	printBoxHeader(out, title)

	for _, key := range order {
		if val, ok := items[key]; ok {
			printBoxLine(out, key, val)
		}
	}

	printBoxFooter(out)
}

// printCard prints every field of a card in an info box
func printCard(out io.Writer, card model.CharacterCard) {
	items := map[string]string{
		"ID":          card.ID,
		"Photo":       cli.PhotoSummary(card.Photo),
		"Gender":      card.Gender,
		"Birthday":    card.Birthday,
		"Height":      card.Height,
		"Weight":      card.Weight,
		"Eye color":   card.EyeColor,
		"Hair style":  card.HairStyle,
		"Tags":        strings.Join(card.Tags, ", "),
		"Personality": card.Personality,
		"Hobbies":     card.Hobbies,
		"Others":      card.Others,
		"Created":     card.Created().Format("2006-01-02 15:04:05"),
	}

	order := []string{"ID", "Photo", "Gender", "Birthday", "Height", "Weight",
		"Eye color", "Hair style", "Tags", "Personality", "Hobbies", "Others", "Created"}

	// empty optional attributes are skipped
	for _, key := range order {
		if items[key] == "" {
			delete(items, key)
		}
	}

	printInfoBox(out, card.Name, items, order)
}

// printCardLine prints one card in the given view mode
func printCardLine(out io.Writer, card model.CharacterCard, mode model.ViewMode) {
	if mode == model.ViewNameOnly {
		_, _ = fmt.Fprintf(out, "[%s] %s\n", card.ShortID(), card.Name)
		return
	}

	line := fmt.Sprintf("%-36s  %s  %s", card.ID, card.Name, cli.PhotoSummary(card.Photo))
	if len(card.Tags) > 0 {
		line += "  #" + strings.Join(card.Tags, " #")
	}

	_, _ = fmt.Fprintln(out, line)
}
