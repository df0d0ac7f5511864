package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/cardvault/internal/archive"
	"github.com/inovacc/cardvault/internal/core"
	"github.com/inovacc/cardvault/internal/model"
	"github.com/inovacc/cardvault/internal/store"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *core.Repository {
	t.Helper()

	cfg := model.DefaultConfig()
	cfg.Backend = model.BackendMemory
	cfg.ExportDir = t.TempDir()

	seq := 0

	return core.New(store.NewMemory(), cfg).WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("card-%04d", seq)
	})
}

func parseCardFlags(t *testing.T, args ...string) (*pflag.FlagSet, *cardFlags) {
	t.Helper()

	var flags cardFlags

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.register(fs)
	require.NoError(t, fs.Parse(args))

	return fs, &flags
}

func TestCardFlags_ApplyOnlyChanged(t *testing.T) {
	fs, flags := parseCardFlags(t, "--name", "Aria II", "--tags", "a，b, a")

	base := model.Fields{Name: "Aria", Gender: "F", Tags: []string{"old"}, Photo: "https://x/p.png"}

	got, err := flags.apply(fs, base)
	require.NoError(t, err)

	assert.Equal(t, "Aria II", got.Name)
	assert.Equal(t, "F", got.Gender)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, "https://x/p.png", got.Photo)
}

func TestCardFlags_Photo(t *testing.T) {
	fs, flags := parseCardFlags(t, "--photo", "https://example.com/a.png")
	got, err := flags.apply(fs, model.Fields{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", got.Photo)
	assert.Empty(t, got.PhotoPath)

	fs, flags = parseCardFlags(t, "--photo", "face.png")
	got, err = flags.apply(fs, model.Fields{Photo: "https://old"})
	require.NoError(t, err)
	assert.Empty(t, got.Photo)
	assert.True(t, filepath.IsAbs(got.PhotoPath))

	fs, flags = parseCardFlags(t, "--photo", "")
	got, err = flags.apply(fs, model.Fields{Photo: "https://old"})
	require.NoError(t, err)
	assert.Empty(t, got.Photo)
}

func TestRunAddAndEdit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var out bytes.Buffer

	require.NoError(t, runAdd(ctx, repo, model.Fields{Name: "Aria", Hobbies: "chess"}, &out))
	assert.Equal(t, "Added Aria (card-0001)\n", out.String())

	err := runAdd(ctx, repo, model.Fields{Name: "  "}, &out)
	assert.ErrorIs(t, err, core.ErrValidation)

	fs, flags := parseCardFlags(t, "--gender", "F")

	out.Reset()
	require.NoError(t, runEdit(ctx, repo, "card-0001", fs, flags, &out))
	assert.Equal(t, "Updated Aria (card-0001)\n", out.String())

	card, err := repo.Get(ctx, "card-0001")
	require.NoError(t, err)
	assert.Equal(t, "F", card.Gender)
	assert.Equal(t, "chess", card.Hobbies, "unset flags keep their value")

	err = runEdit(ctx, repo, "nope", fs, flags, &out)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRunRemove(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, model.Fields{Name: "Aria"})
	require.NoError(t, err)

	var out bytes.Buffer

	require.NoError(t, runRemove(ctx, repo, "card-0001", false, strings.NewReader("n\n"), &out))
	assert.Contains(t, out.String(), "Cancelled.")

	_, err = repo.Get(ctx, "card-0001")
	require.NoError(t, err, "declined removal keeps the card")

	out.Reset()
	require.NoError(t, runRemove(ctx, repo, "card-0001", false, strings.NewReader("y\n"), &out))
	assert.Contains(t, out.String(), "Removed Aria")

	_, err = repo.Get(ctx, "card-0001")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRunExportImport(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, model.Fields{Name: "Aria", Tags: []string{"mage"}})
	require.NoError(t, err)

	dir := t.TempDir()

	var out bytes.Buffer

	require.NoError(t, runExport(ctx, repo, dir, &out))

	matches, err := filepath.Glob(filepath.Join(dir, archive.FilePrefix+"*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	other := newTestRepo(t)

	out.Reset()
	require.NoError(t, runImport(ctx, other, matches[0], archive.ModeMerge, &out))
	assert.Equal(t, "Imported 1 cards (merge): 1 added, 0 updated\n", out.String())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":"x"}`), 0600))

	err = runImport(ctx, other, bad, archive.ModeMerge, &out)
	assert.ErrorIs(t, err, archive.ErrFormat)

	cards, err := other.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestRunPhoto_DecodeError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	card, err := repo.Create(ctx, model.Fields{Name: "Aria"})
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0600))

	var out bytes.Buffer

	err = runPhoto(ctx, repo, card.ID, bad, &out)
	require.Error(t, err)

	got, err := repo.Get(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Photo)
}

func TestParseListOptions(t *testing.T) {
	q, mode, err := parseListOptions("ar", "mage", "alpha", "name-only")
	require.NoError(t, err)
	assert.Equal(t, core.Query{Text: "ar", Tag: "mage", Sort: core.SortAlpha}, q)
	assert.Equal(t, model.ViewNameOnly, mode)

	_, _, err = parseListOptions("", "", "sideways", "")
	assert.Error(t, err)

	_, _, err = parseListOptions("", "", "", "thumbnails")
	assert.Error(t, err)
}

func TestPrintCardList(t *testing.T) {
	var out bytes.Buffer

	printCardList(&out, nil, model.ViewNamePhoto)
	assert.Contains(t, out.String(), "No cards found.")

	out.Reset()
	printCardList(&out, []model.CharacterCard{{ID: "abcdef", Name: "Aria"}, {ID: "bcdefg", Name: "Bram"}}, model.ViewNameOnly)
	assert.Equal(t, "[abcd] Aria\n[bcde] Bram\n", out.String())
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("info", false)
	require.NoError(t, err)

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestPrintConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Backend = model.BackendMemory

	var out bytes.Buffer

	printConfig(&out, cfg, "/tmp/cardvault.ini")
	assert.Contains(t, out.String(), "(in memory)")
	assert.Contains(t, out.String(), "1000x1200")
}
