package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/inovacc/cardvault/internal/encoding"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/inovacc/cardvault/internal/store"
)

// Mode selects how an import treats stored cards missing from the file
type Mode int

const (
	// ModeMerge overwrites cards sharing an ID and adds new ones (default)
	ModeMerge Mode = iota

	// ModeReplace additionally deletes stored cards absent from the file
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	default:
		return "merge"
	}
}

// FilePrefix starts every export file name
const FilePrefix = "archive_vault_"

// Result summarizes an import
type Result struct {
	Added    int
	Updated  int
	Deleted  int
	Mode     Mode
	Received int
}

// Codec serializes a store to the archive format and merges archives back.
type Codec struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewCodec creates a codec bound to s.
func NewCodec(s store.Store) *Codec {
	return &Codec{
		store:  s,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// WithLogger sets the logger for the codec
func (c *Codec) WithLogger(logger *slog.Logger) *Codec {
	c.logger = logger
	return c
}

// WithClock overrides the clock used for export file names
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Export returns the full record set as a pretty-printed JSON array.
// Cards are ordered by creation time, then ID, so repeated exports of the
// same data are identical.
func (c *Codec) Export(ctx context.Context) (string, error) {
	cards, err := c.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	if cards == nil {
		cards = []model.CharacterCard{}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].CreatedAt != cards[j].CreatedAt {
			return cards[i].CreatedAt < cards[j].CreatedAt
		}

		return cards[i].ID < cards[j].ID
	})

	data, err := encoding.ToJSONIndent(cards)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	return string(data), nil
}

// Parse decodes archive text without touching any store.
func Parse(text string) ([]model.CharacterCard, error) {
	var elements []json.RawMessage

	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		var probe any
		if jsonErr := json.Unmarshal([]byte(text), &probe); jsonErr != nil {
			return nil, &FormatError{Index: -1, Reason: "malformed JSON", Err: jsonErr}
		}

		return nil, &FormatError{Index: -1, Reason: fmt.Sprintf("top-level value is %s, want array", jsonKind(probe))}
	}

	if elements == nil {
		return nil, &FormatError{Index: -1, Reason: "top-level value is null, want array"}
	}

	cards := make([]model.CharacterCard, 0, len(elements))

	for i, raw := range elements {
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, &FormatError{Index: i, Reason: "not a card object"}
		}

		var card model.CharacterCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, &FormatError{Index: i, Reason: "invalid card", Err: err}
		}

		if card.ID == "" {
			return nil, &FormatError{Index: i, Reason: "card has no id"}
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// Import parses text and writes every card by ID. A format error or a
// persistence failure leaves the store as it was.
func (c *Codec) Import(ctx context.Context, text string, mode Mode) (Result, error) {
	res := Result{Mode: mode}

	cards, err := Parse(text)
	if err != nil {
		return res, err
	}

	res.Received = len(cards)

	existing, err := c.store.List(ctx)
	if err != nil {
		return res, fmt.Errorf("import: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, card := range existing {
		known[card.ID] = true
	}

	incoming := make(map[string]bool, len(cards))

	for _, card := range cards {
		if incoming[card.ID] {
			// later duplicates win, count the id once
			continue
		}

		incoming[card.ID] = true

		if known[card.ID] {
			res.Updated++
		} else {
			res.Added++
		}
	}

	if len(cards) > 0 {
		if err := c.store.PutAll(ctx, cards); err != nil {
			return Result{Mode: mode}, fmt.Errorf("import: %w", err)
		}
	}

	if mode == ModeReplace {
		for _, card := range existing {
			if incoming[card.ID] {
				continue
			}

			if err := c.store.Delete(ctx, card.ID); err != nil {
				return res, fmt.Errorf("import: removing %s: %w", card.ID, err)
			}

			res.Deleted++
		}
	}

	c.logger.Info("archive imported",
		"mode", mode.String(),
		"received", res.Received,
		"added", res.Added,
		"updated", res.Updated,
		"deleted", res.Deleted)

	return res, nil
}

// ExportFileName returns the export file name for t: archive_vault_<epoch-ms>.json.
func ExportFileName(t time.Time) string {
	return FilePrefix + strconv.FormatInt(t.UnixMilli(), 10) + ".json"
}

// WriteExport exports the store into a timestamped file inside dir and
// returns the file path.
func (c *Codec) WriteExport(ctx context.Context, dir string) (string, error) {
	text, err := c.Export(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName(c.now()))

	if err := encoding.WriteFileAtomic(path, []byte(text), 0600); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	c.logger.Info("archive exported", "path", path)

	return path, nil
}

// ReadImportFile reads an archive file from disk.
func ReadImportFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read import file %s: %w", path, err)
	}

	return string(data), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
