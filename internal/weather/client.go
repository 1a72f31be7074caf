package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/matthieukhl/storefront/internal/config"
)

// Client talks to an OpenWeatherMap-compatible API. Requests are one-shot:
// no retries, no caching; a failed call is reported and the prompt loop
// moves on.
type Client struct {
	baseURL string
	apiKey  string
	units   string
	client  *http.Client
}

// Current is the decoded current-conditions answer for a city.
type Current struct {
	City      string
	Country   string
	Temp      float64
	FeelsLike float64
	Condition string
	Humidity  int
	WindSpeed float64
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	Timestamp time.Time
	Temp      float64
	Condition string
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// NewClient builds a Client from config. The API key comes from the config
// file directly or from the configured environment variable.
func NewClient(cfg config.WeatherConfig) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" && cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in config or environment variable %s", cfg.APIKeyEnv)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	units := cfg.Units
	if units == "" {
		units = "metric"
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  apiKey,
		units:   units,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Current fetches current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (*Current, error) {
	var resp currentResponse
	if err := c.get(ctx, "/weather", city, &resp); err != nil {
		return nil, err
	}

	out := &Current{
		City:      resp.Name,
		Country:   resp.Sys.Country,
		Temp:      resp.Main.Temp,
		FeelsLike: resp.Main.FeelsLike,
		Humidity:  resp.Main.Humidity,
		WindSpeed: resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		out.Condition = resp.Weather[0].Description
	}
	return out, nil
}

// Forecast fetches the 5-day / 3-hour-interval forecast for a city.
func (c *Client) Forecast(ctx context.Context, city string) ([]ForecastEntry, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", city, &resp); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(resp.List))
	for _, item := range resp.List {
		ts, err := time.Parse("2006-01-02 15:04:05", item.DtTxt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse forecast timestamp %q: %w", item.DtTxt, err)
		}
		entry := ForecastEntry{Timestamp: ts, Temp: item.Main.Temp}
		if len(item.Weather) > 0 {
			entry.Condition = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, path, city string, out any) error {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("weather API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
