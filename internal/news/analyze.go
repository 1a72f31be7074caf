package news

import (
	"regexp"
	"sort"
	"strings"
)

var wordRegex = regexp.MustCompile(`\b\w+\b`)

// WordCount is one entry of the frequency table.
type WordCount struct {
	Word  string
	Count int
}

// Analysis is a simple text summary over a batch of headlines.
type Analysis struct {
	Total        int
	KeywordCount int
	TopWords     []WordCount
}

// Analyze counts headlines, keyword hits, and the most common words. Top
// words are taken from the 15 most frequent, skipping words of 3 letters or
// fewer, and at most 5 are kept. Equal counts are ordered alphabetically so
// the result is deterministic.
func Analyze(headlines []Headline, keyword string) Analysis {
	analysis := Analysis{Total: len(headlines)}

	freq := make(map[string]int)
	for _, h := range headlines {
		lower := strings.ToLower(h.Title)
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			analysis.KeywordCount++
		}
		for _, word := range wordRegex.FindAllString(lower, -1) {
			freq[word]++
		}
	}

	counts := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		counts = append(counts, WordCount{Word: word, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if len(counts) > 15 {
		counts = counts[:15]
	}
	for _, wc := range counts {
		if len(wc.Word) <= 3 {
			continue
		}
		analysis.TopWords = append(analysis.TopWords, wc)
		if len(analysis.TopWords) == 5 {
			break
		}
	}

	return analysis
}
