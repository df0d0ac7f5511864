package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/cardvault/internal/application"
	"github.com/inovacc/cardvault/internal/encoding"
	"github.com/inovacc/cardvault/internal/model"
	"gopkg.in/ini.v1"
)

const (
	sectionVault = "vault"
	sectionImage = "image"
)

type vaultSection struct {
	DataDir    string `ini:"data_dir"`
	Backend    string `ini:"backend"`
	StorageKey string `ini:"storage_key"`
	ExportDir  string `ini:"export_dir"`
	Locale     string `ini:"locale"`
	LogLevel   string `ini:"log_level"`
}

type imageSection struct {
	MaxWidth  int `ini:"max_width"`
	MaxHeight int `ini:"max_height"`
	Quality   int `ini:"quality"`
}

// FileName is the name of the configuration file inside the data directory
const FileName = application.AppName + ".ini"

// DefaultFilePath returns the configuration file path inside dataDir.
func DefaultFilePath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// LoadFile overlays the INI file at path onto cfg.
// A missing file is not an error; keys absent from the file keep their value.
func LoadFile(path string, cfg *model.Config) error {
	if !encoding.FileExists(path) {
		return nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	vault := vaultSection{
		DataDir:    cfg.DataDir,
		Backend:    string(cfg.Backend),
		StorageKey: cfg.StorageKey,
		ExportDir:  cfg.ExportDir,
		Locale:     cfg.Locale,
		LogLevel:   cfg.LogLevel,
	}

	if err := file.Section(sectionVault).MapTo(&vault); err != nil {
		return fmt.Errorf("invalid [%s] section in %s: %w", sectionVault, path, err)
	}

	image := imageSection{
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		Quality:   cfg.Quality,
	}

	if err := file.Section(sectionImage).MapTo(&image); err != nil {
		return fmt.Errorf("invalid [%s] section in %s: %w", sectionImage, path, err)
	}

	cfg.DataDir = vault.DataDir
	cfg.Backend = model.Backend(vault.Backend)
	cfg.StorageKey = vault.StorageKey
	cfg.ExportDir = vault.ExportDir
	cfg.Locale = vault.Locale
	cfg.LogLevel = vault.LogLevel
	cfg.MaxWidth = image.MaxWidth
	cfg.MaxHeight = image.MaxHeight
	cfg.Quality = image.Quality

	return nil
}

// SaveFile writes cfg as an INI file at path, creating parent directories.
func SaveFile(path string, cfg model.Config) error {
	file := ini.Empty()

	vault := vaultSection{
		DataDir:    cfg.DataDir,
		Backend:    string(cfg.Backend),
		StorageKey: cfg.StorageKey,
		ExportDir:  cfg.ExportDir,
		Locale:     cfg.Locale,
		LogLevel:   cfg.LogLevel,
	}

	if err := file.Section(sectionVault).ReflectFrom(&vault); err != nil {
		return fmt.Errorf("failed to encode [%s]: %w", sectionVault, err)
	}

	image := imageSection{
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		Quality:   cfg.Quality,
	}

	if err := file.Section(sectionImage).ReflectFrom(&image); err != nil {
		return fmt.Errorf("failed to encode [%s]: %w", sectionImage, err)
	}

	if err := encoding.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	if _, err := file.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return f.Close()
}
