// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `env:"REPOCRAWL_ADDR" envDefault:":8000"`

	// GitHubBaseURL overrides the GitHub API endpoint.
	GitHubBaseURL string `env:"REPOCRAWL_GITHUB_URL" envDefault:"https://api.github.com"`

	// GitHubToken authenticates API requests when set, raising the
	// rate limit.
	GitHubToken string `env:"GITHUB_TOKEN"`

	// CachePath is the SQLite file holding cached repository listings.
	CachePath string `env:"REPOCRAWL_CACHE_PATH" envDefault:"repocrawl-cache.db"`

	// CacheTTL is how long a cached listing stays fresh.
	CacheTTL time.Duration `env:"REPOCRAWL_CACHE_TTL" envDefault:"15m"`

	// ReadmeWorkers sizes the parallel README fetch pool.
	ReadmeWorkers int `env:"REPOCRAWL_README_WORKERS" envDefault:"4"`

	// MapRetries bounds map regeneration after failed connectivity
	// validation.
	MapRetries int `env:"REPOCRAWL_MAP_RETRIES" envDefault:"10"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
