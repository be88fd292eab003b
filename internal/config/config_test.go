package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("MinimalConfigGetsDefaults", func(t *testing.T) {
		path := writeConfig(t, `
storage:
  path: "data/test.db"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "daybook", cfg.App.Name)
		assert.Equal(t, 8080, cfg.API.Port)
		assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "IQD", cfg.Currency.Code)
		assert.Equal(t, 300, cfg.Plans.TTLSeconds)
		assert.Equal(t, "exports", cfg.Exports.Path)
		assert.NotEmpty(t, cfg.Labels.Title)
		assert.NotEmpty(t, cfg.Labels.RemainingLabel)
	})

	t.Run("ExplicitValuesWin", func(t *testing.T) {
		path := writeConfig(t, `
app:
  name: "farmbook"
api:
  port: 9999
storage:
  backend: "file"
  path: "/tmp/collections"
currency:
  code: "USD"
labels:
  title: "Booking confirmed"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "farmbook", cfg.App.Name)
		assert.Equal(t, 9999, cfg.API.Port)
		assert.Equal(t, "file", cfg.Storage.Backend)
		assert.Equal(t, "USD", cfg.Currency.Code)
		assert.Equal(t, "Booking confirmed", cfg.Labels.Title)
		// Unset labels still fall back to the defaults.
		assert.NotEmpty(t, cfg.Labels.PaidLabel)
	})

	t.Run("EnvironmentExpansion", func(t *testing.T) {
		t.Setenv("TEST_DB_PATH", "/var/lib/daybook.db")
		path := writeConfig(t, `
storage:
  path: "${TEST_DB_PATH}"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/daybook.db", cfg.Storage.Path)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, "storage: [not a map")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("UnknownBackend", func(t *testing.T) {
		path := writeConfig(t, `
storage:
  backend: "mongo"
  path: "x"
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "backend")
	})

	t.Run("AuthEnabledWithoutKeys", func(t *testing.T) {
		path := writeConfig(t, `
storage:
  path: "x"
api:
  auth:
    enabled: true
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "api keys")
	})
}
