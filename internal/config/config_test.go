package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/cardvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("CARDVAULT_BACKEND", "sqlite")
	t.Setenv("CARDVAULT_QUALITY", "65")

	cfg := model.DefaultConfig()
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, model.BackendSQLite, cfg.Backend)
	assert.Equal(t, 65, cfg.Quality)
	assert.Equal(t, 1000, cfg.MaxWidth, "unset variables keep their value")
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("CARDVAULT_MAX_WIDTH", "wide")

	cfg := model.DefaultConfig()

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), "got %v", err)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := model.DefaultConfig()
	before := cfg

	require.NoError(t, LoadFile(filepath.Join(t.TempDir(), "absent.ini"), &cfg))
	assert.Equal(t, before, cfg)
}

func TestLoadFile_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "[vault]\nbackend = json\nlocale = fr\n\n[image]\nmax_width = 640\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := model.DefaultConfig()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, model.BackendJSON, cfg.Backend)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, 640, cfg.MaxWidth)
	assert.Equal(t, 1200, cfg.MaxHeight)
	assert.Equal(t, "cards", cfg.StorageKey)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := model.DefaultConfig()
	cfg.DataDir = "/srv/vault"
	cfg.Backend = model.BackendSQLite
	cfg.Quality = 90

	require.NoError(t, SaveFile(path, cfg))

	loaded := model.DefaultConfig()
	require.NoError(t, LoadFile(path, &loaded))

	assert.Equal(t, cfg.DataDir, loaded.DataDir)
	assert.Equal(t, cfg.Backend, loaded.Backend)
	assert.Equal(t, cfg.Quality, loaded.Quality)
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CARDVAULT_DATA_DIR", dir)
	t.Setenv("CARDVAULT_QUALITY", "70")

	content := "[vault]\nbackend = memory\n\n[image]\nquality = 50\n"
	require.NoError(t, os.WriteFile(DefaultFilePath(dir), []byte(content), 0600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, model.BackendMemory, cfg.Backend, "file overrides defaults")
	assert.Equal(t, 70, cfg.Quality, "env overrides file")
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CARDVAULT_DATA_DIR", t.TempDir())
	t.Setenv("CARDVAULT_BACKEND", "cassandra")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
