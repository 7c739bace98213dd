// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"time"
)

// Aggregate scopes.
const (
	ScopeMatch  = "match"
	ScopeSeason = "season"
)

// DefaultProviderBaseURL is the StatsBomb open-data tree on GitHub.
const DefaultProviderBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	ProviderBaseURL    string  `koanf:"provider_base_url"`
	ProviderTimeoutMS  int     `koanf:"provider_timeout_ms"`
	ProviderRatePerSec float64 `koanf:"provider_rate_per_sec"`
	ProviderUserAgent  string  `koanf:"provider_user_agent"`

	// AggregateScope decides whether top passer and goals/shots cover the
	// selected match or every match of the season.
	AggregateScope string `koanf:"aggregate_scope"`

	// MaxSeasonMatches caps the season scope fetch.
	MaxSeasonMatches int `koanf:"max_season_matches"`

	NotableLimit    int `koanf:"notable_limit"`
	CSVCacheEntries int `koanf:"csv_cache_entries"`

	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		ProviderBaseURL:    DefaultProviderBaseURL,
		ProviderTimeoutMS:  15_000,
		ProviderRatePerSec: 5,
		ProviderUserAgent:  "matchscope/1.0",
		AggregateScope:     ScopeMatch,
		MaxSeasonMatches:   64,
		NotableLimit:       5,
		CSVCacheEntries:    128,
		ChartWidth:         900,
		ChartHeight:        600,
	}
}

// ProviderTimeout returns the per-request provider timeout.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutMS) * time.Millisecond
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ProviderBaseURL == "" {
		return fmt.Errorf("%w: provider_base_url must not be empty", ErrInvalidConfig)
	}
	if c.AggregateScope != ScopeMatch && c.AggregateScope != ScopeSeason {
		return fmt.Errorf("%w: aggregate_scope must be %q or %q, got %q", ErrInvalidConfig, ScopeMatch, ScopeSeason, c.AggregateScope)
	}
	if c.ProviderRatePerSec < 0 {
		return fmt.Errorf("%w: provider_rate_per_sec must not be negative", ErrInvalidConfig)
	}
	return nil
}
