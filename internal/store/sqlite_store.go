package store

import (
	"context"

	"github.com/inovacc/cardvault/internal/model"
	"github.com/inovacc/cardvault/internal/store/sqlite"
)

// SQLite wraps the sqlite.Store to implement the Store interface.
type SQLite struct {
	store *sqlite.Store
}

// NewSQLite opens the SQLite database at path; collection scopes the cards.
func NewSQLite(path, collection string) (*SQLite, error) {
	s, err := sqlite.New(path, collection)
	if err != nil {
		return nil, persistenceError(model.BackendSQLite, "open", err)
	}

	return &SQLite{store: s}, nil
}

func (w *SQLite) Ping() error {
	return persistenceError(model.BackendSQLite, "ping", w.store.Ping())
}

func (w *SQLite) List(ctx context.Context) ([]model.CharacterCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards, err := w.store.ListCards(ctx)
	if err != nil {
		return nil, persistenceError(model.BackendSQLite, "list", err)
	}

	return cards, nil
}

func (w *SQLite) Get(ctx context.Context, id string) (model.CharacterCard, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.CharacterCard{}, false, err
	}

	card, ok, err := w.store.GetCard(ctx, id)
	if err != nil {
		return model.CharacterCard{}, false, persistenceError(model.BackendSQLite, "get", err)
	}

	return card, ok, nil
}

func (w *SQLite) Put(ctx context.Context, card model.CharacterCard) error {
	return w.PutAll(ctx, []model.CharacterCard{card})
}

func (w *SQLite) PutAll(ctx context.Context, cards []model.CharacterCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateCards(model.BackendSQLite, "put", cards...); err != nil {
		return err
	}

	return persistenceError(model.BackendSQLite, "put", w.store.SaveCards(ctx, cards...))
}

func (w *SQLite) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return persistenceError(model.BackendSQLite, "delete", w.store.DeleteCard(ctx, id))
}

func (w *SQLite) Close() error {
	return w.store.Close()
}
