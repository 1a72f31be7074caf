package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// DefaultLimit caps how many headlines one fetch emits.
const DefaultLimit = 20

// Headline is one feed item reduced to what the CLI shows.
type Headline struct {
	Title string
	Link  string
}

// Client fetches RSS headlines. Parsing goes through gofeed first; when
// that fails the raw bytes are re-parsed with encoding/xml so a slightly
// malformed feed still yields results.
type Client struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	limit      int
}

// fallbackRSS is the minimal RSS shape the fallback parser needs.
type fallbackRSS struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
			Link  string `xml:"link"`
		} `xml:"item"`
	} `xml:"channel"`
}

// NewClient builds a feed client. A non-positive limit falls back to
// DefaultLimit.
func NewClient(timeout time.Duration, limit int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
		limit:      limit,
	}
}

// Fetch downloads a feed and returns at most the configured number of
// headlines. A non-empty keyword keeps only titles containing it,
// case-insensitively, applied before the limit is taken.
func (c *Client) Fetch(ctx context.Context, feedURL, keyword string) ([]Headline, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed error %d from %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	headlines, err := c.parsePrimary(body)
	if err != nil {
		logger.Warn().Err(err).Str("url", feedURL).Msg("primary feed parse failed, using fallback parser")
		headlines, err = parseFallback(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse feed: %w", err)
		}
	}

	return c.filter(headlines, keyword), nil
}

func (c *Client) parsePrimary(body []byte) ([]Headline, error) {
	feed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, err
	}

	headlines := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		headlines = append(headlines, Headline{
			Title: strings.TrimSpace(item.Title),
			Link:  NormalizeLink(strings.TrimSpace(item.Link)),
		})
	}
	return headlines, nil
}

func parseFallback(body []byte) ([]Headline, error) {
	var rss fallbackRSS
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, err
	}

	headlines := make([]Headline, 0, len(rss.Channel.Items))
	for _, item := range rss.Channel.Items {
		headlines = append(headlines, Headline{
			Title: strings.TrimSpace(item.Title),
			Link:  NormalizeLink(strings.TrimSpace(item.Link)),
		})
	}
	return headlines, nil
}

func (c *Client) filter(headlines []Headline, keyword string) []Headline {
	out := make([]Headline, 0, c.limit)
	for _, h := range headlines {
		if keyword != "" && !strings.Contains(strings.ToLower(h.Title), strings.ToLower(keyword)) {
			continue
		}
		out = append(out, h)
		if len(out) == c.limit {
			break
		}
	}
	return out
}

// NormalizeLink turns a relative feed link into a full URL.
func NormalizeLink(link string) string {
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return "https://www.bbc.com" + link
}
