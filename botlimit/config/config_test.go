package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-harden/botlimit/botlimit/limit"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			original := &Config{
				Version:        "0.1.0",
				InitializedAt:  time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
				PreserveGuides: true,
				Limits:         &limit.Limits{BotName: 12, ProjectDescription: -1},
				Service:        &ServiceConfig{ListenAddr: "127.0.0.1:9999", HistorySize: 10},
			}

			require.NoError(t, original.Save(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, original.Version, loaded.Version)
			assert.Equal(t, original.InitializedAt.UTC(), loaded.InitializedAt.UTC())
			assert.Equal(t, original.PreserveGuides, loaded.PreserveGuides)
			assert.Equal(t, original.Limits, loaded.Limits)
			assert.Equal(t, original.Service, loaded.Service)
		})
	}
}

func TestLoadNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.json")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadInvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFieldNames(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		raw := `{"version":"0.1.0","limits":{"botName":10,"onboardingSuggestion":20},"service":{"listen_addr":"localhost:1234"}}`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Limits)
		assert.Equal(t, 10, cfg.Limits.BotName)
		assert.Equal(t, 20, cfg.Limits.OnboardingSuggestion)
		assert.Equal(t, "localhost:1234", cfg.GetService().ListenAddr)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		raw := "version: 0.1.0\nlimits:\n  botName: 7\n  onboarding: 40\n"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Limits)
		assert.Equal(t, 7, cfg.Limits.BotName)
		assert.Equal(t, 40, cfg.Limits.Onboarding)
	})
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		errPart string
	}{
		{"negative_limit", `{"limits":{"botName":-3}}`, "botName"},
		{"negative_history", `{"service":{"history_size":-1}}`, "history_size"},
		{"bad_listen_addr", `{"service":{"listen_addr":"nohostport"}}`, "listen_addr"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.raw), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestGetLimits(t *testing.T) {
	t.Parallel()

	t.Run("nil_limits_use_defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, DefaultLimits(), cfg.GetLimits())
	})

	t.Run("merges_over_defaults", func(t *testing.T) {
		cfg := &Config{Limits: &limit.Limits{BotName: 5, ProjectName: -1}}
		merged := cfg.GetLimits()

		v, ok := merged.Get(limit.BotName)
		require.True(t, ok)
		assert.Equal(t, 5, v)

		_, ok = merged.Get(limit.ProjectName)
		assert.False(t, ok)

		v, ok = merged.Get(limit.Onboarding)
		require.True(t, ok)
		assert.Equal(t, DefaultLimits().Onboarding, v)
	})
}

func TestGetService(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ServiceDefaults(), (&Config{}).GetService())

	cfg := &Config{Service: &ServiceConfig{HistorySize: 3}}
	svc := cfg.GetService()
	assert.Equal(t, 3, svc.HistorySize)
	assert.Equal(t, DefaultListenAddr, svc.ListenAddr)
}

func TestLoadOrDefaultConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates_new_config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")

		cfg, err := LoadOrDefaultConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Version, cfg.Version)
		assert.Nil(t, cfg.Limits)
	})

	t.Run("loads_existing_config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")

		existing := &Config{
			Version:        "0.1.0",
			PreserveGuides: true,
			Limits:         &limit.Limits{BotName: 33},
		}
		require.NoError(t, existing.Save(path))

		cfg, err := LoadOrDefaultConfig(path)
		require.NoError(t, err)
		assert.True(t, cfg.PreserveGuides)
		assert.Equal(t, 33, cfg.GetLimits().BotName)
	})

	t.Run("error_on_invalid_JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("invalid"), 0644))

		_, err := LoadOrDefaultConfig(path)
		assert.Error(t, err)
	})
}

func TestSaveNil(t *testing.T) {
	t.Parallel()

	var cfg *Config
	assert.Error(t, cfg.Save(filepath.Join(t.TempDir(), "config.json")))
}
