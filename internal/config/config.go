package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	HistoryCapacity int    `envconfig:"HISTORY_CAPACITY" default:"30"`
	StorageDriver   string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	StoragePath     string `envconfig:"STORAGE_PATH" default:"tiermaker.db"`
	ShareBaseURL    string `envconfig:"SHARE_BASE_URL" default:"http://localhost:3000"`
	Version         string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.HistoryCapacity < 1 {
		return nil, fmt.Errorf("HISTORY_CAPACITY must be at least 1, got %d", cfg.HistoryCapacity)
	}
	switch cfg.StorageDriver {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be one of \"memory\", \"sqlite\", got %q", cfg.StorageDriver)
	}
	return &cfg, nil
}
