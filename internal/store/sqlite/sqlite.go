// Package sqlite provides SQLite card storage for cardvault.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inovacc/cardvault/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const cardColumns = `id, name, photo, gender, birthday, height, weight, eye_color, hair_style,
	tags, personality, hobbies, others, created_at`

const upsertCard = `
	INSERT INTO cards (collection, id, name, photo, gender, birthday, height, weight, eye_color,
		hair_style, tags, personality, hobbies, others, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(collection, id) DO UPDATE SET
		name = excluded.name,
		photo = excluded.photo,
		gender = excluded.gender,
		birthday = excluded.birthday,
		height = excluded.height,
		weight = excluded.weight,
		eye_color = excluded.eye_color,
		hair_style = excluded.hair_style,
		tags = excluded.tags,
		personality = excluded.personality,
		hobbies = excluded.hobbies,
		others = excluded.others,
		created_at = excluded.created_at`

// Store keeps cards in a SQLite table. Every card belongs to a collection,
// so several independent archives can share one database file.
type Store struct {
	db         *sql.DB
	collection string
	mu         sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates it.
// collection names the set of cards this Store reads and writes.
func New(dbPath, collection string) (*Store, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	migrator := NewMigrator(db)
	if err := migrator.MigrateUp(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, collection: collection}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// ListCards returns every card of the collection.
func (s *Store) ListCards(ctx context.Context) ([]model.CharacterCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE collection = ? ORDER BY created_at DESC`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var cards []model.CharacterCard

	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	return cards, nil
}

// GetCard returns the card with id; ok is false when it does not exist.
func (s *Store) GetCard(ctx context.Context, id string) (model.CharacterCard, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE collection = ? AND id = ?`, s.collection, id)

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return model.CharacterCard{}, false, nil
	}

	if err != nil {
		return model.CharacterCard{}, false, err
	}

	return card, true, nil
}

// SaveCards inserts or replaces the cards in a single transaction.
func (s *Store) SaveCards(ctx context.Context, cards ...model.CharacterCard) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertCard)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}

	defer func() { _ = stmt.Close() }()

	for _, card := range cards {
		tags, mErr := json.Marshal(card.Tags)
		if mErr != nil {
			return fmt.Errorf("encoding tags of %s: %w", card.ID, mErr)
		}

		if _, err = stmt.ExecContext(ctx, s.collection, card.ID, card.Name, card.Photo, card.Gender,
			card.Birthday, card.Height, card.Weight, card.EyeColor, card.HairStyle, string(tags),
			card.Personality, card.Hobbies, card.Others, card.CreatedAt); err != nil {
			return fmt.Errorf("saving card %s: %w", card.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteCard removes the card with id. Missing cards are ignored.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE collection = ? AND id = ?`, s.collection, id); err != nil {
		return fmt.Errorf("deleting card %s: %w", id, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (model.CharacterCard, error) {
	var (
		card model.CharacterCard
		tags string
	)

	err := row.Scan(&card.ID, &card.Name, &card.Photo, &card.Gender, &card.Birthday, &card.Height,
		&card.Weight, &card.EyeColor, &card.HairStyle, &tags, &card.Personality, &card.Hobbies,
		&card.Others, &card.CreatedAt)
	if err == sql.ErrNoRows {
		return card, err
	}

	if err != nil {
		return card, fmt.Errorf("scanning card: %w", err)
	}

	// "null" leaves Tags nil, "[]" yields an empty slice
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &card.Tags); err != nil {
			return card, fmt.Errorf("decoding tags of %s: %w", card.ID, err)
		}
	}

	return card, nil
}
