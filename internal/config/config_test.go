package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/tiermaker/internal/config"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "HISTORY_CAPACITY", "STORAGE_DRIVER", "STORAGE_PATH", "SHARE_BASE_URL", "VERSION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.HistoryCapacity)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "tiermaker.db", cfg.StoragePath)
	assert.Equal(t, "http://localhost:3000", cfg.ShareBaseURL)
	assert.Equal(t, "dev", cfg.Version)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		assertFn func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "custom log level",
			envVars: map[string]string{"LOG_LEVEL": "debug"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:    "custom history capacity",
			envVars: map[string]string{"HISTORY_CAPACITY": "5"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 5, cfg.HistoryCapacity)
			},
		},
		{
			name:    "memory storage",
			envVars: map[string]string{"STORAGE_DRIVER": "memory"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "memory", cfg.StorageDriver)
			},
		},
		{
			name: "all overrides at once",
			envVars: map[string]string{
				"LOG_LEVEL":        "error",
				"HISTORY_CAPACITY": "100",
				"STORAGE_DRIVER":   "sqlite",
				"STORAGE_PATH":     "/tmp/lists.db",
				"SHARE_BASE_URL":   "https://tiers.example.com/",
				"VERSION":          "2.0.0",
			},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "error", cfg.LogLevel)
				assert.Equal(t, 100, cfg.HistoryCapacity)
				assert.Equal(t, "sqlite", cfg.StorageDriver)
				assert.Equal(t, "/tmp/lists.db", cfg.StoragePath)
				assert.Equal(t, "https://tiers.example.com/", cfg.ShareBaseURL)
				assert.Equal(t, "2.0.0", cfg.Version)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()

			require.NoError(t, err)
			tt.assertFn(t, cfg)
		})
	}
}

func TestLoad_InvalidHistoryCapacity(t *testing.T) {
	for _, v := range []string{"not-a-number", "0", "-3"} {
		t.Run(v, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("HISTORY_CAPACITY", v)

			cfg, err := config.Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_UnknownStorageDriver(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	cfg, err := config.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
