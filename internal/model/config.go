package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/cardvault/internal/application"
)

// Backend names a Record Store implementation
type Backend string

const (
	// BackendBolt stores cards in a bbolt bucket keyed by ID
	BackendBolt Backend = "bolt"

	// BackendSQLite stores cards in a SQLite table keyed by ID
	BackendSQLite Backend = "sqlite"

	// BackendJSON stores all cards as one JSON blob under a fixed key
	BackendJSON Backend = "json"

	// BackendMemory keeps cards in process memory only
	BackendMemory Backend = "memory"
)

// Config holds the application configuration
type Config struct {
	// DataDir is the directory holding the database file
	DataDir string `json:"data_dir" ini:"data_dir" env:"DATA_DIR"`

	// Backend selects the Record Store implementation
	Backend Backend `json:"backend" ini:"backend" env:"BACKEND"`

	// StorageKey is the bucket, table or blob key holding the cards
	StorageKey string `json:"storage_key" ini:"storage_key" env:"STORAGE_KEY"`

	// ExportDir is where export files are written by default
	ExportDir string `json:"export_dir" ini:"export_dir" env:"EXPORT_DIR"`

	// Locale is the BCP 47 tag used for alphabetical ordering
	Locale string `json:"locale" ini:"locale" env:"LOCALE"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level" ini:"log_level" env:"LOG_LEVEL"`

	// MaxWidth and MaxHeight bound normalized photos in pixels
	MaxWidth  int `json:"max_width" ini:"max_width" env:"MAX_WIDTH"`
	MaxHeight int `json:"max_height" ini:"max_height" env:"MAX_HEIGHT"`

	// Quality is the JPEG quality (1-100) of normalized photos
	Quality int `json:"quality" ini:"quality" env:"QUALITY"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	dataDir, err := application.GetApplicationDirectory()
	if err != nil {
		dataDir = filepath.Join(".", "."+application.AppName)
	}

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}

	return Config{
		DataDir:    dataDir,
		Backend:    BackendBolt,
		StorageKey: "cards",
		ExportDir:  exportDir,
		Locale:     "und",
		LogLevel:   "warn",
		MaxWidth:   1000,
		MaxHeight:  1200,
		Quality:    80,
	}
}

// DatabasePath returns the database file for the configured backend.
// The memory backend has no file and returns an empty string.
func (c Config) DatabasePath() string {
	switch c.Backend {
	case BackendBolt:
		return filepath.Join(c.DataDir, application.AppName+".bolt")
	case BackendSQLite:
		return filepath.Join(c.DataDir, application.AppName+".db")
	case BackendJSON:
		return filepath.Join(c.DataDir, c.StorageKey+".json")
	}

	return ""
}

// Validate checks the configuration for values no component can work with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendBolt, BackendSQLite, BackendJSON, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.StorageKey == "" {
		return fmt.Errorf("storage key is required")
	}

	if c.Backend != BackendMemory && c.DataDir == "" {
		return fmt.Errorf("data directory is required for backend %q", c.Backend)
	}

	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("photo bounds must be positive, got %dx%d", c.MaxWidth, c.MaxHeight)
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}

	return nil
}
