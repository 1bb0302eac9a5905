// Package report writes the per-URL scrape log.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperifyio/newsscrape/internal/scrape"
)

// Header is the column order of the log file.
var Header = []string{"URL_ID", "URL", "Title", "Status"}

// Row is one log line.
type Row struct {
	ID     string
	URL    string
	Title  string
	Status string
}

// FromResult converts a scrape result into a log row.
func FromResult(r scrape.Result) Row {
	return Row{ID: r.ID, URL: r.URL, Title: r.Title, Status: r.StatusText()}
}

// WriteCSV writes header and rows to path, replacing any previous log. The
// file is written to a temp name first so a crash never leaves half a log.
func WriteCSV(path string, rows []Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".scrape-log-*.tmp")
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.ID, r.URL, r.Title, r.Status}); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
