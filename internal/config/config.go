package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	DBPath      string     `env:"DB_PATH" envDefault:"data/mirror.db"`
	CatalogPath string     `env:"CATALOG_PATH" envDefault:"catalog.yaml"`

	AttemptsPerQuestion int     `env:"ATTEMPTS_PER_Q" envDefault:"3"`
	HintPenalty         float64 `env:"HINT_PENALTY" envDefault:"0.5"`
	UseGeofence         bool    `env:"USE_GEOFENCE" envDefault:"false"`

	AdminIDs          []string `env:"ADMIN_IDS" envSeparator:","`
	AdminPasswordHash string   `env:"ADMIN_PASSWORD_HASH"`

	SyncQueueSize int `env:"SYNC_QUEUE_SIZE" envDefault:"256"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AttemptsPerQuestion < 1 {
		return fmt.Errorf("ATTEMPTS_PER_Q must be at least 1, got %d", c.AttemptsPerQuestion)
	}
	if c.HintPenalty < 0 || c.HintPenalty > 1 {
		return fmt.Errorf("HINT_PENALTY must be in [0,1], got %g", c.HintPenalty)
	}
	if c.SyncQueueSize < 1 {
		return fmt.Errorf("SYNC_QUEUE_SIZE must be positive, got %d", c.SyncQueueSize)
	}
	return nil
}
