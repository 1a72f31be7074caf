package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func couponLookup(cfg *Config, code string) float64 {
	for k, v := range cfg.Store.Coupons {
		if strings.EqualFold(k, code) {
			return v
		}
	}
	return -1
}

func TestLoadConfigDefaults(t *testing.T) {
	// No config file anywhere near the cwd: defaults apply.
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Store.DataDir)
	assert.Equal(t, 5, cfg.Store.LowStockThreshold)

	// viper lowercases map keys, so compare codes case-insensitively.
	assert.InDelta(t, 0.10, couponLookup(cfg, "SAVE10"), 1e-9)
	assert.InDelta(t, 0.20, couponLookup(cfg, "SAVE20"), 1e-9)

	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
	assert.Equal(t, "OPENWEATHER_API_KEY", cfg.Weather.APIKeyEnv)
	assert.Equal(t, "metric", cfg.Weather.Units)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)

	assert.Equal(t, 20, cfg.News.Limit)
	require.Len(t, cfg.News.Feeds, 4)
	assert.Equal(t, "World", cfg.News.Feeds[0].Name)
	assert.Contains(t, cfg.News.Feeds[0].URL, "bbci.co.uk")
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `store:
  data_dir: /var/lib/storefront
  low_stock_threshold: 3
  coupons:
    WELCOME5: 0.05
weather:
  api_key: abc123
news:
  limit: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/storefront", cfg.Store.DataDir)
	assert.Equal(t, 3, cfg.Store.LowStockThreshold)
	assert.InDelta(t, 0.05, couponLookup(cfg, "WELCOME5"), 1e-9)
	assert.Equal(t, "abc123", cfg.Weather.APIKey)
	assert.Equal(t, 7, cfg.News.Limit)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n\t- broken"), 0o644))
	chdir(t, dir)

	_, err := LoadConfig()
	assert.Error(t, err)
}
