package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - CSV-backed shop, weather and news tools",
	Long: `Storefront bundles three small interactive console tools:

a CSV-backed store inventory and sales tracker with customer accounts,
coupons and admin reports; a weather lookup against the OpenWeatherMap
API; and a BBC News RSS headline reader with keyword filtering.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
