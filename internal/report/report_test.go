package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/newsscrape/internal/scrape"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scrape_log.csv")
	rows := []Row{
		FromResult(scrape.Result{ID: "1", URL: "https://a.example", Title: "Hello, \"world\"", Status: scrape.StatusSuccess}),
		FromResult(scrape.Result{ID: "2", URL: "https://b.example", Title: "ERROR: Network/HTTP Issue - 404 Not Found for url: https://b.example", Status: scrape.StatusNetwork, Detail: "404 Not Found for url: https://b.example"}),
		FromResult(scrape.Result{ID: "3", URL: "https://c.example", Title: "Heading", Status: scrape.StatusContentMissing}),
	}
	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"1", "https://a.example", "Hello, \"world\"", "Success"}, records[1])
	assert.Equal(t, "Failed: Network/HTTP Error - 404 Not Found for url: https://b.example", records[2][3])
	assert.Equal(t, "Failed: Content Missing", records[3][3])
}

func TestWriteCSV_ReplacesPreviousLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrape_log.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,log\n"), 0o644))
	require.NoError(t, WriteCSV(path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "URL_ID,URL,Title,Status\n", string(b))
}
