package store

import (
	"context"
	"fmt"

	"github.com/inovacc/cardvault/internal/model"
)

// Store defines the card persistence operations used by the app.
type Store interface {
	// Ping checks that the backend is usable.
	Ping() error

	// List returns every stored card in no particular order.
	List(ctx context.Context) ([]model.CharacterCard, error)

	// Get returns the card with id. A missing card is reported with
	// ok == false, not an error.
	Get(ctx context.Context, id string) (card model.CharacterCard, ok bool, err error)

	// Put inserts or replaces the card keyed by card.ID.
	Put(ctx context.Context, card model.CharacterCard) error

	// PutAll writes several cards atomically: all of them or none.
	PutAll(ctx context.Context, cards []model.CharacterCard) error

	// Delete removes the card with id. Deleting a missing card is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases the backend.
	Close() error
}

// Open builds the Store selected by cfg.Backend.
func Open(cfg model.Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	switch cfg.Backend {
	case model.BackendMemory:
		return NewMemory(), nil
	case model.BackendJSON:
		return NewFile(cfg.DatabasePath(), cfg.StorageKey)
	case model.BackendSQLite:
		return NewSQLite(cfg.DatabasePath(), cfg.StorageKey)
	default:
		return NewBolt(cfg.DatabasePath(), cfg.StorageKey)
	}
}

func validateCards(backend model.Backend, op string, cards ...model.CharacterCard) error {
	for _, card := range cards {
		if card.ID == "" {
			return persistenceError(backend, op, errEmptyID)
		}
	}

	return nil
}

func cloneCard(card model.CharacterCard) model.CharacterCard {
	if card.Tags != nil {
		card.Tags = append(make([]string, 0, len(card.Tags)), card.Tags...)
	}

	return card
}
