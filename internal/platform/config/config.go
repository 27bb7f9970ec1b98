// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Port the HTTP server listens on.
	Port string
	// DatabaseURL is the Postgres DSN. Required.
	DatabaseURL string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogJSON switches log output to JSON.
	LogJSON bool
	// DBMaxConns caps the pgx pool size; 0 keeps the pgx default.
	DBMaxConns int32
}

// Load reads the environment and fails fast on missing required settings.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(".", env.Opt{}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{
		Port:     "8080",
		LogLevel: "info",
	}
	if v := k.String("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.DatabaseURL = k.String("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if v := k.String("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogJSON = k.Bool("LOG_JSON")
	cfg.DBMaxConns = int32(k.Int("DB_MAX_CONNS"))
	return cfg, nil
}
