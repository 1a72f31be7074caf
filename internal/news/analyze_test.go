package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	headlines := []Headline{
		{Title: "Election results expected today"},
		{Title: "Election officials count votes"},
		{Title: "Votes counted as election night ends"},
	}

	analysis := Analyze(headlines, "election")
	assert.Equal(t, 3, analysis.Total)
	assert.Equal(t, 3, analysis.KeywordCount)

	require.NotEmpty(t, analysis.TopWords)
	assert.Equal(t, "election", analysis.TopWords[0].Word)
	assert.Equal(t, 3, analysis.TopWords[0].Count)
}

func TestAnalyzeSkipsShortWords(t *testing.T) {
	headlines := []Headline{
		{Title: "the and but cat sat mat longword longword"},
	}

	analysis := Analyze(headlines, "")
	for _, wc := range analysis.TopWords {
		assert.Greater(t, len(wc.Word), 3)
	}
	require.NotEmpty(t, analysis.TopWords)
	assert.Equal(t, "longword", analysis.TopWords[0].Word)
	assert.Equal(t, 2, analysis.TopWords[0].Count)
}

func TestAnalyzeCapsTopWordsAtFive(t *testing.T) {
	headlines := []Headline{
		{Title: "alpha bravo charlie delta echofour foxtrot golfball hotel"},
	}

	analysis := Analyze(headlines, "")
	assert.LessOrEqual(t, len(analysis.TopWords), 5)
}

func TestAnalyzeDeterministicOrder(t *testing.T) {
	headlines := []Headline{
		{Title: "zebra apple zebra apple mango"},
	}

	analysis := Analyze(headlines, "")
	require.Len(t, analysis.TopWords, 3)

	// Equal counts fall back to alphabetical order.
	assert.Equal(t, "apple", analysis.TopWords[0].Word)
	assert.Equal(t, "zebra", analysis.TopWords[1].Word)
	assert.Equal(t, "mango", analysis.TopWords[2].Word)
}

func TestAnalyzeEmpty(t *testing.T) {
	analysis := Analyze(nil, "anything")
	assert.Equal(t, 0, analysis.Total)
	assert.Equal(t, 0, analysis.KeywordCount)
	assert.Empty(t, analysis.TopWords)
}
