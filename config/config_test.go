package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "topturnier.db", cfg.Database.Path)
	assert.Equal(t, 8, cfg.Ingest.Workers)
	assert.False(t, cfg.Ingest.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
database:
  path: "/var/lib/topturnier/results.db"
ingest:
  workers: 2
  strict: true
log:
  level: debug
  format: json
`)
	t.Setenv("TOPTURNIER_WORKERS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/topturnier/results.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Ingest.Workers)
	assert.True(t, cfg.Ingest.Strict)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, "log:\n  format: json\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Path: "x.db"},
		Ingest:   IngestConfig{Workers: 1},
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty database path", mutate: func(c *Config) { c.Database.Path = " " }},
		{name: "no workers", mutate: func(c *Config) { c.Ingest.Workers = 0 }},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
