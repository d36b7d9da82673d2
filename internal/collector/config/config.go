package config

import (
	"time"

	"reputation-scryper/pkg/config"
)

// Collector holds ingestion-specific configuration.
type Collector struct {
	Strategy         string `mapstructure:"strategy"`
	FallbackStrategy string `mapstructure:"fallback_strategy"`
	DefaultPeriod    string `mapstructure:"default_period"`
	ExtractTopics    bool   `mapstructure:"extract_topics"`

	// Refresh guard
	RefreshLockTTL  time.Duration `mapstructure:"refresh_lock_ttl"`
	RefreshCooldown time.Duration `mapstructure:"refresh_cooldown"`

	// Scheduled refresh
	Schedule             string        `mapstructure:"schedule"`
	RefreshTimeout       time.Duration `mapstructure:"refresh_timeout"`
	StreamReadBlock      time.Duration `mapstructure:"stream_read_block"`
	StreamRetryInterval  time.Duration `mapstructure:"stream_retry_interval"`
	StreamMaxIdle        time.Duration `mapstructure:"stream_max_idle"`
	NotificationInterval time.Duration `mapstructure:"notification_interval"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string  `mapstructure:"api_key"`
	Model               string  `mapstructure:"model"`
	Temperature         float32 `mapstructure:"temperature"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int     `mapstructure:"max_token_per_minute"`
}

// Browser holds the configuration for the headless browser search channel.
type Browser struct {
	ExecPath           string        `mapstructure:"exec_path"`
	UserAgent          string        `mapstructure:"user_agent"`
	SearchURL          string        `mapstructure:"search_url"`
	QueryTemplate      string        `mapstructure:"query_template"`
	NavigationTimeout  time.Duration `mapstructure:"navigation_timeout"`
	WaitTimeout        time.Duration `mapstructure:"wait_timeout"`
	BlockedURLPrefixes []string      `mapstructure:"blocked_url_prefixes"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
}

// NewsFeed holds the configuration for the news RSS channel.
type NewsFeed struct {
	BaseURL  string        `mapstructure:"base_url"`
	Locale   string        `mapstructure:"locale"`
	MaxItems int           `mapstructure:"max_items"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Config holds the full configuration for the collector.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	Telegram  config.Telegram `mapstructure:"telegram"`
	Collector Collector       `mapstructure:"collector"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Browser   Browser         `mapstructure:"browser"`
	NewsFeed  NewsFeed        `mapstructure:"news_feed"`
}

// Load loads the collector configuration from the given path and fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with working defaults.
func (c *Config) ApplyDefaults() {
	if c.Collector.Strategy == "" {
		c.Collector.Strategy = "ai_search"
	}
	if c.Collector.DefaultPeriod == "" {
		c.Collector.DefaultPeriod = "last_30_days"
	}
	if c.Collector.RefreshLockTTL == 0 {
		c.Collector.RefreshLockTTL = 10 * time.Minute
	}
	if c.Collector.RefreshTimeout == 0 {
		c.Collector.RefreshTimeout = 5 * time.Minute
	}
	if c.Collector.StreamReadBlock == 0 {
		c.Collector.StreamReadBlock = 2 * time.Second
	}
	if c.Collector.StreamRetryInterval == 0 {
		c.Collector.StreamRetryInterval = time.Minute
	}
	if c.Collector.StreamMaxIdle == 0 {
		c.Collector.StreamMaxIdle = 2 * c.Collector.RefreshTimeout
	}
	if c.Collector.NotificationInterval == 0 {
		c.Collector.NotificationInterval = 100 * time.Millisecond
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxRequestPerMinute <= 0 {
		c.Gemini.MaxRequestPerMinute = 10
	}
	if c.Browser.SearchURL == "" {
		c.Browser.SearchURL = "https://www.bing.com/search"
	}
	if c.Browser.QueryTemplate == "" {
		c.Browser.QueryTemplate = "{company} reclamações OR avaliações"
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
	}
	if c.Browser.NavigationTimeout == 0 {
		c.Browser.NavigationTimeout = 60 * time.Second
	}
	if c.Browser.WaitTimeout == 0 {
		c.Browser.WaitTimeout = 10 * time.Second
	}
	if len(c.Browser.BlockedURLPrefixes) == 0 {
		c.Browser.BlockedURLPrefixes = []string{
			"http://go.microsoft.com",
			"https://go.microsoft.com",
			"https://www.bing.com/aclick",
			"https://www.bing.com/ck/a",
		}
	}
	if c.Browser.CacheTTL == 0 {
		c.Browser.CacheTTL = 5 * time.Minute
	}
	if c.NewsFeed.BaseURL == "" {
		c.NewsFeed.BaseURL = "https://news.google.com/rss/search"
	}
	if c.NewsFeed.Locale == "" {
		c.NewsFeed.Locale = "hl=pt-BR&gl=BR&ceid=BR:pt-419"
	}
	if c.NewsFeed.MaxItems <= 0 {
		c.NewsFeed.MaxItems = 20
	}
	if c.NewsFeed.Timeout == 0 {
		c.NewsFeed.Timeout = 30 * time.Second
	}
}
