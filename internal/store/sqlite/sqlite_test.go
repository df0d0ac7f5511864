package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inovacc/cardvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, path, collection string) *Store {
	t.Helper()

	s, err := New(path, collection)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return s
}

func TestNew_RequiresCollection(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.db"), "")
	require.Error(t, err)
}

func TestStore_SaveGetList(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t, filepath.Join(t.TempDir(), "cards.db"), "cards")

	require.NoError(t, s.Ping())

	older := model.CharacterCard{ID: "a", Name: "Zara", Tags: []string{"x", "y"}, CreatedAt: 100}
	newer := model.CharacterCard{ID: "b", Name: "Amy", EyeColor: "blue", CreatedAt: 200}

	require.NoError(t, s.SaveCards(ctx, older, newer))

	got, ok, err := s.GetCard(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, older, got)

	got, ok, err = s.GetCard(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Tags, "nil tags survive the round trip")

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "b", cards[0].ID, "newest first")
}

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t, filepath.Join(t.TempDir(), "cards.db"), "cards")

	card := model.CharacterCard{ID: "a", Name: "Before", CreatedAt: 1}
	require.NoError(t, s.SaveCards(ctx, card))

	card.Name = "After"
	card.Tags = []string{}
	require.NoError(t, s.SaveCards(ctx, card))

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card, cards[0])
}

func TestStore_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t, filepath.Join(t.TempDir(), "cards.db"), "cards")

	require.NoError(t, s.SaveCards(ctx, model.CharacterCard{ID: "keep", Name: "Keep"}))
	require.NoError(t, s.DeleteCard(ctx, "missing"))

	_, ok, err := s.GetCard(ctx, "keep")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	first := setupTestStore(t, path, "first")
	require.NoError(t, first.SaveCards(ctx, model.CharacterCard{ID: "a", Name: "A"}))
	require.NoError(t, first.Close())

	second, err := New(path, "second")
	require.NoError(t, err)

	defer func() { _ = second.Close() }()

	cards, err := second.ListCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestMigrator(t *testing.T) {
	s := setupTestStore(t, filepath.Join(t.TempDir(), "m.db"), "cards")
	m := NewMigrator(s.db)

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	last := migrations[len(migrations)-1].Version

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, last, version)

	pending, err := m.PendingMigrations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	applied, err := m.AppliedMigrations()
	require.NoError(t, err)
	assert.Len(t, applied, len(migrations))

	require.NoError(t, m.MigrateDown())

	version, err = m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, last-1, version)

	require.NoError(t, m.MigrateUp())

	version, err = m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, last, version)
}
