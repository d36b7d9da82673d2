package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collector.yaml")
	yaml := `
app:
  name: reputation-collector
collector:
  strategy: browser_search
  fallback_strategy: news_feed
  refresh_cooldown: 15m
gemini:
  model: gemini-2.0-flash
browser:
  wait_timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "reputation-collector", cfg.App.Name)
	assert.Equal(t, "browser_search", cfg.Collector.Strategy)
	assert.Equal(t, "news_feed", cfg.Collector.FallbackStrategy)
	assert.Equal(t, 15*time.Minute, cfg.Collector.RefreshCooldown)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 3*time.Second, cfg.Browser.WaitTimeout)

	// defaults
	assert.Equal(t, "last_30_days", cfg.Collector.DefaultPeriod)
	assert.Equal(t, 10*time.Minute, cfg.Collector.RefreshLockTTL)
	assert.Equal(t, "https://www.bing.com/search", cfg.Browser.SearchURL)
	assert.Contains(t, cfg.Browser.BlockedURLPrefixes, "http://go.microsoft.com")
	assert.Equal(t, 20, cfg.NewsFeed.MaxItems)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Gemini.MaxRequestPerMinute = 3
	cfg.NewsFeed.MaxItems = 5
	cfg.ApplyDefaults()

	assert.Equal(t, 3, cfg.Gemini.MaxRequestPerMinute)
	assert.Equal(t, 5, cfg.NewsFeed.MaxItems)
	assert.Equal(t, "ai_search", cfg.Collector.Strategy)
}
