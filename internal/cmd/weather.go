package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/weather"
	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Look up current weather and a 5-day forecast",
	Long: `Look up current conditions and the 5-day / 3-hour forecast for a
city via the OpenWeatherMap API.

The API key is read from the config file or from the environment
variable named by weather.api_key_env (default OPENWEATHER_API_KEY).`,
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("        ⛅ Storefront Weather        ")
	fmt.Println(strings.Repeat("=", 50))

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := weather.NewClient(cfg.Weather)
	if err != nil {
		return fmt.Errorf("failed to create weather client: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		city, ok := prompt(scanner, "\nEnter city name (or 'exit' to quit): ")
		if !ok || strings.EqualFold(city, "exit") {
			fmt.Println("👋 Goodbye!")
			return nil
		}
		if city == "" {
			fmt.Println("Please enter a valid city name.")
			continue
		}

		// One-shot requests: a failure is reported and the prompt
		// comes back, nothing is retried.
		current, err := client.Current(cmd.Context(), city)
		if err != nil {
			fmt.Println("❌ City not found or API error!")
			continue
		}
		weather.RenderCurrent(os.Stdout, current)

		forecast, err := client.Forecast(cmd.Context(), city)
		if err != nil {
			fmt.Println("❌ Forecast data not found or API error!")
			continue
		}
		weather.RenderForecast(os.Stdout, current.City, forecast)

		fmt.Println("\n" + strings.Repeat("=", 50))
	}
}
