// Package config loads service configuration by layering defaults, an
// optional YAML file, and environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `koanf:"database_url"`

	// RedisURL holds the checkpoint and event stream connection.
	RedisURL string `koanf:"redis_url"`

	// APIPort and WSPort are the REST and websocket listen ports.
	APIPort string `koanf:"api_port"`
	WSPort  string `koanf:"ws_port"`

	// BaseURL is the scrape source site root.
	BaseURL string `koanf:"base_url"`

	// Workers bounds the per-season game fetch fan-out.
	Workers int `koanf:"workers"`

	// UseBrowser switches fetching to a headless browser for sources that
	// block plain HTTP clients.
	UseBrowser bool `koanf:"use_browser"`

	// ScheduleEnabled turns on the daily incremental scrape, which fires
	// at ScrapeHour local time.
	ScheduleEnabled bool `koanf:"schedule_enabled"`
	ScrapeHour      int  `koanf:"scrape_hour"`

	// TeamAliasFile is the historical-to-current franchise name CSV.
	TeamAliasFile string `koanf:"team_alias_file"`

	// DataDir receives the feature pipeline's stage files.
	DataDir string `koanf:"data_dir"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		DatabaseURL:   "postgres://localhost/gridiron?sslmode=disable",
		RedisURL:      "redis://localhost:6379/0",
		APIPort:       "8080",
		WSPort:        "8081",
		BaseURL:       "https://www.footballdb.com",
		Workers:       8,
		ScrapeHour:    3,
		TeamAliasFile: "historical-nfl-team-names.csv",
		DataDir:       "data",
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GRIDIRON_CONFIG is set
//  3. env (prefix GRIDIRON_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GRIDIRON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: GRIDIRON_DATABASE_URL, GRIDIRON_WORKERS, ...
	envProvider := env.Provider("GRIDIRON_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridiron_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database_url must not be empty")
	}
	return &cfg, nil
}
