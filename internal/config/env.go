package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/inovacc/cardvault/internal/application"
)

// ParseEnv loads CARDVAULT_* environment variables into target.
// Fields without a matching variable keep their current value.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: application.EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}
