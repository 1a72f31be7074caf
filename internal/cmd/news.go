package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/news"
	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Read BBC News headlines by category",
	Long: `Fetch BBC News RSS headlines by category (World, Sport,
Technology, Business), optionally filtered by keyword, with a simple
word-frequency analysis and CSV/TXT export.`,
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)
}

func runNews(cmd *cobra.Command, args []string) error {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("   📰 Storefront News Reader   ")
	fmt.Println(strings.Repeat("=", 50))

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.News.Feeds) == 0 {
		return fmt.Errorf("no news feeds configured")
	}

	client := news.NewClient(cfg.News.Timeout, cfg.News.Limit)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nChoose a news category:")
		for i, feed := range cfg.News.Feeds {
			fmt.Printf("%d. %s\n", i+1, feed.Name)
		}
		fmt.Println("0. Exit")

		choice, ok := prompt(scanner, fmt.Sprintf("Enter choice (0-%d): ", len(cfg.News.Feeds)))
		if !ok || choice == "0" {
			fmt.Println("👋 Exiting. Goodbye!")
			return nil
		}

		feed, found := pickFeed(cfg.News.Feeds, choice)
		if !found {
			fmt.Println("❌ Invalid choice. Try again.")
			continue
		}

		keyword, ok := prompt(scanner, "Enter keyword to filter (press Enter for all): ")
		if !ok {
			return nil
		}

		headlines, err := client.Fetch(cmd.Context(), feed.URL, keyword)
		if err != nil {
			fmt.Printf("❌ Failed to fetch headlines: %v\n", err)
			continue
		}
		if len(headlines) == 0 {
			fmt.Println("❌ No headlines found.")
			continue
		}

		filtered := ""
		if keyword != "" {
			filtered = " (filtered)"
		}
		fmt.Printf("\nTop %d Headlines from BBC %s%s:\n\n", len(headlines), feed.Name, filtered)
		for i, h := range headlines {
			fmt.Printf("%d. %s\n   Link: %s\n\n", i+1, h.Title, h.Link)
		}

		saveHeadlines(scanner, feed.Name, headlines)

		analysis := news.Analyze(headlines, keyword)
		fmt.Println("\n📊 Headline Analysis:")
		fmt.Printf("Total Headlines: %d\n", analysis.Total)
		if keyword != "" {
			fmt.Printf("Keyword %q appeared in %d headlines.\n", keyword, analysis.KeywordCount)
		}
		fmt.Println("Top 5 Common Words (excluding short words):")
		for _, wc := range analysis.TopWords {
			fmt.Printf("  %s: %d\n", wc.Word, wc.Count)
		}
		fmt.Println(strings.Repeat("-", 40))

		fmt.Println("\n✅ Done. Returning to main menu...")
	}
}

func pickFeed(feeds []config.FeedConfig, choice string) (config.FeedConfig, bool) {
	for i, feed := range feeds {
		if choice == fmt.Sprintf("%d", i+1) {
			return feed, true
		}
	}
	return config.FeedConfig{}, false
}

func saveHeadlines(scanner *bufio.Scanner, category string, headlines []news.Headline) {
	choice, ok := prompt(scanner, "Save results? (csv/txt/skip): ")
	if !ok {
		return
	}

	base := fmt.Sprintf("bbc_%s_headlines", strings.ToLower(category))
	var err error
	var path string
	switch strings.ToLower(choice) {
	case "csv":
		path = base + ".csv"
		err = news.SaveCSV(path, headlines)
	case "txt":
		path = base + ".txt"
		err = news.SaveTXT(path, headlines)
	default:
		return
	}

	if err != nil {
		fmt.Printf("❌ Failed to save file: %v\n", err)
		return
	}
	fmt.Printf("✅ Saved results to %s\n", path)
}
