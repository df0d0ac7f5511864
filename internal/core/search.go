package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inovacc/cardvault/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the order of search results
type SortKey string

const (
	// SortNewest orders by creation time, most recent first (default)
	SortNewest SortKey = "newest"

	// SortOldest orders by creation time, oldest first
	SortOldest SortKey = "oldest"

	// SortAlpha orders by locale-aware collation of the name
	SortAlpha SortKey = "alpha"
)

// ParseSortKey converts a string to a SortKey. An empty string is SortNewest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortNewest, "":
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	case SortAlpha:
		return SortAlpha, nil
	}

	return "", &ValidationError{
		Field:  "sort",
		Reason: fmt.Sprintf("unknown order %q (want %s, %s or %s)", s, SortNewest, SortOldest, SortAlpha),
	}
}

// Query describes a search over the archive
type Query struct {
	// Text matches a case-insensitive substring of the name or any tag
	Text string

	// Tag restricts results to cards carrying this exact tag
	Tag string

	Sort SortKey
}

// SearchCards filters and orders cards without modifying the input slice.
func SearchCards(cards []model.CharacterCard, q Query, locale language.Tag) []model.CharacterCard {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Text))

	result := make([]model.CharacterCard, 0, len(cards))

	for _, card := range cards {
		if q.Tag != "" && !card.HasTag(q.Tag) {
			continue
		}

		if needle != "" && !matchesText(fold, card, needle) {
			continue
		}

		result = append(result, card)
	}

	sortCards(result, q.Sort, locale)

	return result
}

func matchesText(fold cases.Caser, card model.CharacterCard, needle string) bool {
	if strings.Contains(fold.String(card.Name), needle) {
		return true
	}

	for _, tag := range card.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}

	return false
}

func sortCards(cards []model.CharacterCard, key SortKey, locale language.Tag) {
	collator := collate.New(locale)

	byName := func(a, b model.CharacterCard) int {
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]

		switch key {
		case SortAlpha:
			return byName(a, b) < 0
		case SortOldest:
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt < b.CreatedAt
			}
		default:
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
		}

		return byName(a, b) < 0
	})
}

// DistinctTagsOf returns every tag used by cards, de-duplicated and collated.
func DistinctTagsOf(cards []model.CharacterCard, locale language.Tag) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)

	for _, card := range cards {
		for _, tag := range card.Tags {
			if seen[tag] {
				continue
			}

			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	collator := collate.New(locale)
	collator.SortStrings(tags)

	return tags
}
