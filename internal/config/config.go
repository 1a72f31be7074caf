package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Weather WeatherConfig `mapstructure:"weather"`
	News    NewsConfig    `mapstructure:"news"`
}

type StoreConfig struct {
	DataDir           string             `mapstructure:"data_dir"`
	LowStockThreshold int                `mapstructure:"low_stock_threshold"`
	Coupons           map[string]float64 `mapstructure:"coupons"`
}

type WeatherConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Units     string        `mapstructure:"units"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type NewsConfig struct {
	Feeds   []FeedConfig  `mapstructure:"feeds"`
	Limit   int           `mapstructure:"limit"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FeedConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is not an error: every key has a default so the shop
// command works out of the box.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.storefront/")
	v.AddConfigPath("/etc/storefront/")

	// Enable environment variable override with STOREFRONT_ prefix
	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if present
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.data_dir", ".")
	v.SetDefault("store.low_stock_threshold", 5)
	v.SetDefault("store.coupons", map[string]float64{
		"SAVE10": 0.10,
		"SAVE20": 0.20,
	})

	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.api_key_env", "OPENWEATHER_API_KEY")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.timeout", 10*time.Second)

	v.SetDefault("news.limit", 20)
	v.SetDefault("news.timeout", 10*time.Second)
	v.SetDefault("news.feeds", []map[string]any{
		{"name": "World", "url": "http://feeds.bbci.co.uk/news/world/rss.xml"},
		{"name": "Sport", "url": "http://feeds.bbci.co.uk/sport/rss.xml"},
		{"name": "Technology", "url": "http://feeds.bbci.co.uk/news/technology/rss.xml"},
		{"name": "Business", "url": "http://feeds.bbci.co.uk/news/business/rss.xml"},
	})
}
