package core

import "strings"

// ParseTags splits free text into tags.
//
// Both the ASCII comma and the full-width comma separate tags. Parts are
// trimmed, empty parts dropped and duplicates dropped keeping the first
// occurrence. The result is never nil.
func ParseTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，'
	})

	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}

		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

// FormatTags joins tags the way ParseTags reads them back.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
