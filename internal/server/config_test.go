package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/odds"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem-odds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	require.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

engine {
  iterations       = 25000
  cost             = 10
  refresh_interval = "500ms"
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "0.0.0.0:9090", config.ListenAddress())
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, 25000, config.Engine.Iterations)
	assert.Equal(t, 10.0, config.Engine.Cost)

	refresh, err := config.RefreshInterval()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, refresh)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server {
  port = 9191
}

engine {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", config.Server.Address)
	assert.Equal(t, 9191, config.Server.Port)
	assert.Equal(t, "info", config.Server.LogLevel)
	assert.Equal(t, odds.DefaultIterations, config.Engine.Iterations)
	assert.Equal(t, odds.DefaultCost, config.Engine.Cost)
}

func TestLoadConfigInvalidHCL(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"negative iterations", func(c *Config) { c.Engine.Iterations = -5 }},
		{"negative cost", func(c *Config) { c.Engine.Cost = -1 }},
		{"bad interval", func(c *Config) { c.Engine.RefreshInterval = "soon" }},
		{"negative interval", func(c *Config) { c.Engine.RefreshInterval = "-1s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}
