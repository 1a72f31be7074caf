package news

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headlines.csv")
	headlines := []Headline{
		{Title: "First, with a comma", Link: "https://www.bbc.com/1"},
		{Title: "Second", Link: "https://www.bbc.com/2"},
	}

	require.NoError(t, SaveCSV(path, headlines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Headline,URL")
	assert.Contains(t, out, `"First, with a comma"`)
	assert.Contains(t, out, "https://www.bbc.com/2")
}

func TestSaveTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headlines.txt")
	headlines := []Headline{
		{Title: "Only one", Link: "https://www.bbc.com/only"},
	}

	require.NoError(t, SaveTXT(path, headlines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Only one\nhttps://www.bbc.com/only\n\n", string(data))
}
