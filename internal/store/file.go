package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/inovacc/cardvault/internal/encoding"
	"github.com/inovacc/cardvault/internal/model"
)

// File keeps the whole card set as one serialized blob under a fixed key
// inside a JSON document. Every mutation rewrites the document atomically;
// other keys in the document are preserved.
type File struct {
	mu    sync.RWMutex
	path  string
	key   string
	cards map[string]model.CharacterCard
}

// NewFile loads the blob stored under key in the document at path.
// A missing document starts an empty store.
func NewFile(path, key string) (*File, error) {
	if key == "" {
		return nil, persistenceError(model.BackendJSON, "open", errors.New("storage key is required"))
	}

	f := &File{path: path, key: key, cards: make(map[string]model.CharacterCard)}

	doc, err := f.readDocument()
	if err != nil {
		return nil, persistenceError(model.BackendJSON, "open", err)
	}

	if raw, ok := doc[key]; ok {
		var cards []model.CharacterCard
		if err := json.Unmarshal(raw, &cards); err != nil {
			return nil, persistenceError(model.BackendJSON, "open",
				fmt.Errorf("decoding %q in %s: %w", key, path, err))
		}

		for _, card := range cards {
			f.cards[card.ID] = card
		}
	}

	return f, nil
}

func (f *File) readDocument() (map[string]json.RawMessage, error) {
	doc, err := encoding.LoadJSON[map[string]json.RawMessage](f.path)
	if err != nil {
		return nil, err
	}

	if doc == nil || *doc == nil {
		return make(map[string]json.RawMessage), nil
	}

	return *doc, nil
}

// flush writes next as the new blob. Callers hold f.mu.
func (f *File) flush(next map[string]model.CharacterCard) error {
	doc, err := f.readDocument()
	if err != nil {
		return err
	}

	cards := make([]model.CharacterCard, 0, len(next))
	for _, card := range next {
		cards = append(cards, card)
	}

	raw, err := json.Marshal(cards)
	if err != nil {
		return err
	}

	doc[f.key] = raw

	return encoding.SaveJSON(f.path, doc)
}

func (f *File) Ping() error {
	if err := encoding.EnsureParentDir(f.path); err != nil {
		return persistenceError(model.BackendJSON, "ping", err)
	}

	return nil
}

func (f *File) List(ctx context.Context) ([]model.CharacterCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.CharacterCard, 0, len(f.cards))
	for _, card := range f.cards {
		out = append(out, cloneCard(card))
	}

	return out, nil
}

func (f *File) Get(ctx context.Context, id string) (model.CharacterCard, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.CharacterCard{}, false, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	card, ok := f.cards[id]
	if !ok {
		return model.CharacterCard{}, false, nil
	}

	return cloneCard(card), true, nil
}

func (f *File) Put(ctx context.Context, card model.CharacterCard) error {
	return f.PutAll(ctx, []model.CharacterCard{card})
}

func (f *File) PutAll(ctx context.Context, cards []model.CharacterCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateCards(model.BackendJSON, "put", cards...); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.copyCards()
	for _, card := range cards {
		next[card.ID] = cloneCard(card)
	}

	// in-memory state only changes once the file is written
	if err := f.flush(next); err != nil {
		return persistenceError(model.BackendJSON, "put", err)
	}

	f.cards = next

	return nil
}

func (f *File) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.cards[id]; !ok {
		return nil
	}

	next := f.copyCards()
	delete(next, id)

	if err := f.flush(next); err != nil {
		return persistenceError(model.BackendJSON, "delete", err)
	}

	f.cards = next

	return nil
}

func (f *File) Close() error {
	return nil
}

func (f *File) copyCards() map[string]model.CharacterCard {
	next := make(map[string]model.CharacterCard, len(f.cards))
	for id, card := range f.cards {
		next[id] = card
	}

	return next
}
