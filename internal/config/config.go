package config

import (
	"github.com/inovacc/cardvault/internal/model"
)

// Load resolves the configuration from defaults, the INI file and the
// environment. An empty path selects the file inside the data directory,
// honouring CARDVAULT_DATA_DIR when it is set.
func Load(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	if path == "" {
		// the data dir decides where the file lives, so resolve it first
		probe := cfg
		if err := ParseEnv(&probe); err != nil {
			return cfg, err
		}

		path = DefaultFilePath(probe.DataDir)
	}

	if err := LoadFile(path, &cfg); err != nil {
		return cfg, err
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}
