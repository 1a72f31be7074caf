package news

import (
	"encoding/csv"
	"fmt"
	"os"
)

// SaveCSV writes headlines as a two-column CSV with a header row.
func SaveCSV(path string, headlines []Headline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Headline", "URL"}); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, h := range headlines {
		if err := w.Write([]string{h.Title, h.Link}); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// SaveTXT writes headlines as title/link pairs separated by blank lines.
func SaveTXT(path string, headlines []Headline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	for _, h := range headlines {
		if _, err := fmt.Fprintf(f, "%s\n%s\n\n", h.Title, h.Link); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
