// Package config provides configuration for ccxport. Configuration is an
// explicit value object built once at startup and passed into component
// constructors; there is no ambient global state.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "ccxport.yaml"
	// DefaultDatabasePath is the SQLite file used when none is configured.
	DefaultDatabasePath = "ccxport.db"
	// DefaultDaysBack is the lookback window when none is configured.
	DefaultDaysBack = 7
)

// Config holds the extraction job configuration.
type Config struct {
	// BaseURL is the data-center API URL (e.g., "https://api.wxcc-us1.cisco.com").
	BaseURL string `yaml:"base_url"`

	// AccessToken is the OAuth2 bearer token for the Search API.
	AccessToken string `yaml:"access_token"`

	// OrgID is the organization id. When empty it is derived from the
	// access token suffix. Never sent on the wire by the current queries.
	OrgID string `yaml:"org_id,omitempty"`

	// DatabasePath is the SQLite file path, or a postgres:// DSN.
	DatabasePath string `yaml:"database_path"`

	// DaysBack is the lookback window length in days.
	DaysBack int `yaml:"days_back"`
}

// Load reads a config file. A missing file is not an error: defaults are
// returned and flag/env resolution fills in the rest.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// Default returns a config with defaults applied.
func Default() *Config {
	return &Config{
		DatabasePath: DefaultDatabasePath,
		DaysBack:     DefaultDaysBack,
	}
}

// ApplyDefaults fills zero-valued fields with their defaults and derives
// the org id from the token when unset.
func (c *Config) ApplyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.DaysBack <= 0 {
		c.DaysBack = DefaultDaysBack
	}
	if c.OrgID == "" {
		c.OrgID = DeriveOrgID(c.AccessToken)
	}
}

// Validate checks that the config is usable for an extraction run.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("access token is required")
	}
	if c.DaysBack <= 0 {
		return fmt.Errorf("days back must be positive, got %d", c.DaysBack)
	}
	return nil
}

// DeriveOrgID extracts the organization id from an access token by
// convention: the segment after the last underscore.
func DeriveOrgID(token string) string {
	if token == "" {
		return ""
	}
	parts := strings.Split(token, "_")
	return parts[len(parts)-1]
}
