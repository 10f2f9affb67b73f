// Package config loads the leitner configuration from an optional YAML file
// and LEITNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/leitner/internal/llm"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Seed    SeedConfig    `yaml:"seed"`
	LLM     llm.Config    `yaml:"llm"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`             // e.g. ":3001"
	AllowOrigin     string        `yaml:"allow_origin"`     // CORS Access-Control-Allow-Origin
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // e.g. "10s"
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // e.g. "30s"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // e.g. "5s"
}

// StoreConfig configures persistence.
type StoreConfig struct {
	// Path is the SQLite file. Empty resolves to LEITNER_DB or the XDG data
	// directory. ":memory:" keeps everything in memory.
	Path string `yaml:"path"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// SeedConfig controls the cards loaded into an empty deck.
type SeedConfig struct {
	// File is a YAML deck file; empty uses the built-in starter cards.
	File string `yaml:"file"`
	// Disabled starts an empty deck with no cards at all.
	Disabled bool `yaml:"disabled"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3001",
			AllowOrigin:     "*",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "leitner",
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load reads path on top of the defaults, then applies the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LEITNER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LEITNER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LEITNER_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LEITNER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LEITNER_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LEITNER_SEED_FILE"); v != "" {
		c.Seed.File = v
	}
	c.LLM.ApplyEnv()
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr must not be empty")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server shutdown_timeout cannot be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be one of: text, json)", c.Log.Format)
	}

	if c.Seed.Disabled && c.Seed.File != "" {
		return errors.New("seed file is set but seeding is disabled")
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}
