// Package config loads the settings of the topturnier command.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"TOPTURNIER_DB_PATH" env-default:"topturnier.db"`
}

// IngestConfig controls how competition directories are processed.
type IngestConfig struct {
	Workers int `yaml:"workers" env:"TOPTURNIER_WORKERS" env-default:"8"`
	// Strict turns a round-trip mismatch into an error instead of a warning.
	Strict bool `yaml:"strict" env:"TOPTURNIER_STRICT" env-default:"false"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"TOPTURNIER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"TOPTURNIER_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables, the
// environment taking priority. The file is path, or CONFIG_PATH when path is
// empty; without either only the environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values the struct tags cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("ingest.workers must be > 0 (got %d)", c.Ingest.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
