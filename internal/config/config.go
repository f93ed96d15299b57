package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds the few knobs the app reads from the environment.
// Everything has a sensible default so a plain double-click launch works.
type Settings struct {
	// LockfilePath overrides the default Riot Client lockfile location.
	LockfilePath string `env:"HAUNT_LOCKFILE_PATH"`
	// CatalogDBPath overrides where the reference-catalog cache lives.
	CatalogDBPath string `env:"HAUNT_CATALOG_DB"`
	LogLevel      string `env:"HAUNT_LOG_LEVEL" envDefault:"info"`
}

// Load reads settings from the environment. A .env file next to the
// binary is honored when present but is entirely optional.
func Load() (Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
