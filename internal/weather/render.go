package weather

import (
	"fmt"
	"io"
	"strings"
)

// DaySummary holds the min/max temperatures observed across one day's
// forecast slots.
type DaySummary struct {
	Date string
	Min  float64
	Max  float64
}

// SummarizeDays folds forecast entries into per-day min/max summaries,
// ordered by first appearance.
func SummarizeDays(entries []ForecastEntry) []DaySummary {
	byDate := make(map[string]*DaySummary)
	var order []string

	for _, e := range entries {
		date := e.Timestamp.Format("2006-01-02")
		s, ok := byDate[date]
		if !ok {
			s = &DaySummary{Date: date, Min: e.Temp, Max: e.Temp}
			byDate[date] = s
			order = append(order, date)
			continue
		}
		if e.Temp < s.Min {
			s.Min = e.Temp
		}
		if e.Temp > s.Max {
			s.Max = e.Temp
		}
	}

	out := make([]DaySummary, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out
}

// TrendBar scales a temperature onto a 40-character bar relative to the
// observed min/max. The +0.1 keeps a flat series from dividing by zero.
func TrendBar(temp, min, max float64) string {
	n := int((temp - min) / (max - min + 0.1) * 40)
	return strings.Repeat("█", n)
}

// RenderCurrent prints current conditions the way the weather prompt shows
// them.
func RenderCurrent(w io.Writer, c *Current) {
	fmt.Fprintf(w, "\n🌍 Current Weather in %s (%s)\n", c.City, c.Country)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Temperature : %.1f°C\n", c.Temp)
	fmt.Fprintf(w, "Feels Like  : %.1f°C\n", c.FeelsLike)
	fmt.Fprintf(w, "Condition   : %s\n", titleCase(c.Condition))
	fmt.Fprintf(w, "Humidity    : %d%%\n", c.Humidity)
	fmt.Fprintf(w, "Wind Speed  : %.1f m/s\n", c.WindSpeed)
}

// RenderForecast prints the 3-hour entries grouped by day, the daily
// min/max summary, and the relative temperature trend.
func RenderForecast(w io.Writer, city string, entries []ForecastEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "❌ No forecast data available.")
		return
	}

	fmt.Fprintf(w, "\n📅 5-Day Forecast for %s (Every 3 Hours)\n", city)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	lastDate := ""
	min, max := entries[0].Temp, entries[0].Temp
	for _, e := range entries {
		date := e.Timestamp.Format("2006-01-02")
		if date != lastDate {
			fmt.Fprintf(w, "\n=== %s ===\n", date)
			lastDate = date
		}
		fmt.Fprintf(w, "%s | Temp: %.1f°C | %s\n", e.Timestamp.Format("15:04:05"), e.Temp, titleCase(e.Condition))

		if e.Temp < min {
			min = e.Temp
		}
		if e.Temp > max {
			max = e.Temp
		}
	}

	fmt.Fprintln(w, "\n📊 Daily Min/Max Summary:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, day := range SummarizeDays(entries) {
		fmt.Fprintf(w, "%s | Min: %.1f°C | Max: %.1f°C\n", day.Date, day.Min, day.Max)
	}

	fmt.Fprintln(w, "\n🌡️ Temperature Trend (relative scale):")
	for _, e := range entries {
		fmt.Fprintf(w, "%5.1f°C | %s\n", e.Temp, TrendBar(e.Temp, min, max))
	}
}

// titleCase capitalizes the first letter of each word of a condition
// description ("scattered clouds" -> "Scattered Clouds").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
