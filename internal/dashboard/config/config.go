package config

import (
	collectorconfig "reputation-scryper/internal/collector/config"
	"reputation-scryper/pkg/config"
)

// Auth holds the JWT verification settings.
type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Dashboard holds analytics settings.
type Dashboard struct {
	DefaultPeriodDays int `mapstructure:"default_period_days"`
	DefaultPageLimit  int `mapstructure:"default_page_limit"`
	MaxPageLimit      int `mapstructure:"max_page_limit"`
	SampleSize        int `mapstructure:"sample_size"`
}

// Config holds the full configuration for the API service. It embeds the
// collector configuration because the API triggers refreshes in-process.
type Config struct {
	collectorconfig.Config `mapstructure:",squash"`

	API       config.API `mapstructure:"api"`
	Auth      Auth       `mapstructure:"auth"`
	Dashboard Dashboard  `mapstructure:"dashboard"`
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values for both the collector and the dashboard settings.
func (c *Config) ApplyDefaults() {
	c.Config.ApplyDefaults()
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Dashboard.DefaultPeriodDays <= 0 {
		c.Dashboard.DefaultPeriodDays = 30
	}
	if c.Dashboard.DefaultPageLimit <= 0 {
		c.Dashboard.DefaultPageLimit = 10
	}
	if c.Dashboard.MaxPageLimit <= 0 {
		c.Dashboard.MaxPageLimit = 100
	}
	if c.Dashboard.SampleSize <= 0 {
		c.Dashboard.SampleSize = 10
	}
}
