package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/inovacc/cardvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCase struct {
	name string
	open func(t *testing.T, dir string) Store
}

func backends() []backendCase {
	return []backendCase{
		{"memory", func(t *testing.T, _ string) Store {
			return NewMemory()
		}},
		{"json", func(t *testing.T, dir string) Store {
			s, err := NewFile(filepath.Join(dir, "cards.json"), "cards")
			require.NoError(t, err)
			return s
		}},
		{"bolt", func(t *testing.T, dir string) Store {
			s, err := NewBolt(filepath.Join(dir, "cards.bolt"), "cards")
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T, dir string) Store {
			s, err := NewSQLite(filepath.Join(dir, "cards.db"), "cards")
			require.NoError(t, err)
			return s
		}},
	}
}

func setupStores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			s := bc.open(t, t.TempDir())

			t.Cleanup(func() {
				if err := s.Close(); err != nil {
					t.Logf("failed to close store: %v", err)
				}
			})

			fn(t, s)
		})
	}
}

func sampleCard(id, name string, createdAt int64) model.CharacterCard {
	return model.CharacterCard{
		ID:          id,
		Name:        name,
		Photo:       "https://example.com/" + id + ".jpg",
		Gender:      "f",
		Birthday:    "03-14",
		Height:      "165cm",
		Weight:      "50kg",
		EyeColor:    "amber",
		HairStyle:   "braid",
		Tags:        []string{"hero", "mage"},
		Personality: "calm\nkind",
		Hobbies:     "chess",
		Others:      "",
		CreatedAt:   createdAt,
	}
}

func sortedIDs(cards []model.CharacterCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	sort.Strings(ids)

	return ids
}

func TestStore_PutThenGet(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Ping())

		card := sampleCard("a1", "Amy", 200)
		require.NoError(t, s.Put(ctx, card))

		got, ok, err := s.Get(ctx, "a1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, card, got)
	})
}

func TestStore_GetMissing(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		got, ok, err := s.Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, model.CharacterCard{}, got)
	})
}

func TestStore_PutReplacesAndIsIdempotent(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		card := sampleCard("a1", "Amy", 200)
		require.NoError(t, s.Put(ctx, card))

		card.Name = "Amelia"
		card.Tags = nil
		require.NoError(t, s.Put(ctx, card))
		require.NoError(t, s.Put(ctx, card))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, card, cards[0])
	})
}

func TestStore_DeleteMissingLeavesOthers(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, sampleCard("a1", "Amy", 200)))
		require.NoError(t, s.Put(ctx, sampleCard("z1", "Zara", 100)))

		require.NoError(t, s.Delete(ctx, "missing"))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "z1"}, sortedIDs(cards))

		require.NoError(t, s.Delete(ctx, "a1"))

		cards, err = s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"z1"}, sortedIDs(cards))
	})
}

func TestStore_PutAll(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, sampleCard("a1", "Amy", 200)))

		batch := []model.CharacterCard{
			sampleCard("a1", "Amy v2", 200),
			sampleCard("b1", "Bea", 300),
		}
		require.NoError(t, s.PutAll(ctx, batch))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "b1"}, sortedIDs(cards))

		got, _, err := s.Get(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "Amy v2", got.Name)
	})
}

func TestStore_RejectsEmptyID(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		err := s.PutAll(ctx, []model.CharacterCard{sampleCard("ok", "Ok", 1), sampleCard("", "NoID", 2)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPersistence)

		cards, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, cards, "a rejected batch writes nothing")
	})
}

func TestStore_ReturnedCardsAreCopies(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		card := sampleCard("a1", "Amy", 200)
		require.NoError(t, s.Put(ctx, card))

		card.Tags[0] = "changed-after-put"

		got, _, err := s.Get(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "hero", got.Tags[0])
	})
}

func TestStore_CanceledContext(t *testing.T) {
	setupStores(t, func(t *testing.T, s Store) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Put(ctx, sampleCard("a1", "Amy", 1))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_Durability(t *testing.T) {
	for _, bc := range backends() {
		if bc.name == "memory" {
			continue
		}

		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			s := bc.open(t, dir)
			require.NoError(t, s.Put(ctx, sampleCard("a1", "Amy", 200)))
			require.NoError(t, s.Close())

			reopened := bc.open(t, dir)

			defer func() { _ = reopened.Close() }()

			got, ok, err := reopened.Get(ctx, "a1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, sampleCard("a1", "Amy", 200), got)
		})
	}
}

func TestFile_PreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"settings":{"theme":"dark"}}`), 0600))

	s, err := NewFile(path, "cards")
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, sampleCard("a1", "Amy", 1)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
	assert.Contains(t, string(data), `"cards"`)
}

func TestFile_WriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vault")

	s, err := NewFile(filepath.Join(dir, "cards.json"), "cards")
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, sampleCard("a1", "Amy", 1)))

	// replace the directory by a regular file so every rewrite fails
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0600))

	err = s.Put(ctx, sampleCard("b1", "Bea", 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, model.BackendJSON, pe.Backend)
	assert.Equal(t, "put", pe.Op)

	cards, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, sortedIDs(cards))
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cards": 12}`), 0600))

	_, err := NewFile(path, "cards")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestBolt_LockedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.bolt")

	first, err := NewBolt(path, "cards")
	require.NoError(t, err)

	defer func() { _ = first.Close() }()

	_, err = NewBolt(path, "cards")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend model.Backend
		want    any
	}{
		{model.BackendMemory, &Memory{}},
		{model.BackendJSON, &File{}},
		{model.BackendBolt, &Bolt{}},
		{model.BackendSQLite, &SQLite{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := model.DefaultConfig()
			cfg.DataDir = t.TempDir()
			cfg.Backend = tt.backend

			s, err := Open(cfg)
			require.NoError(t, err)

			defer func() { _ = s.Close() }()

			assert.IsType(t, tt.want, s)
		})
	}

	cfg := model.DefaultConfig()
	cfg.Backend = "tape"

	_, err := Open(cfg)
	require.Error(t, err)
}

func TestPersistenceError(t *testing.T) {
	inner := errors.New("disk full")
	err := persistenceError(model.BackendBolt, "put", inner)

	assert.Equal(t, "bolt store: put failed: disk full", err.Error())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, inner)
	assert.Nil(t, persistenceError(model.BackendBolt, "put", nil))
	assert.Same(t, err, persistenceError(model.BackendSQLite, "get", err), "already wrapped errors pass through")
}
