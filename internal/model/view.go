package model

import "fmt"

// ViewMode selects how a list of cards is rendered
type ViewMode string

const (
	// ViewNameOnly renders compact labels with the short ID
	ViewNameOnly ViewMode = "name-only"

	// ViewNamePhoto renders a file-style entry including photo information
	ViewNamePhoto ViewMode = "name-photo"
)

// ParseViewMode converts a string to a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewNameOnly:
		return ViewNameOnly, nil
	case ViewNamePhoto, "":
		return ViewNamePhoto, nil
	}

	return "", fmt.Errorf("unknown view mode %q (want %s or %s)", s, ViewNameOnly, ViewNamePhoto)
}

// Toggle returns the other view mode.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewNameOnly {
		return ViewNamePhoto
	}

	return ViewNameOnly
}
