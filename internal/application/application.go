package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "cardvault"

	// AppExeName is the executable name (without extension)
	AppExeName = "cardvault"

	// EnvPrefix prefixes every environment variable the application reads
	EnvPrefix = "CARDVAULT_"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the cardvault data directory path.
// Linux: ~/.config/cardvault (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\cardvault (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
