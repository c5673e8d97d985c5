package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

// CSVWriter writes table snapshots as CSV files into one directory.
type CSVWriter struct {
	dir              string
	includeTimestamp bool
}

// NewCSVWriter prepares the output directory, expanding a leading ~ and
// creating it if missing.
func NewCSVWriter(dir string, includeTimestamp bool) (*CSVWriter, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &CSVWriter{
		dir:              dir,
		includeTimestamp: includeTimestamp,
	}, nil
}

// fileName derives the CSV name from the table title: "Daily Scores"
// becomes mlb_daily_scores[_timestamp].csv.
func (w *CSVWriter) fileName(t Table, now time.Time) string {
	base := "mlb_" + strings.ReplaceAll(strings.ToLower(t.Title), " ", "_")
	if w.includeTimestamp {
		return fmt.Sprintf("%s_%s.csv", base, now.Format("20060102_150405"))
	}
	return base + ".csv"
}

// WriteTable writes one table and returns the file path. Empty tables
// are skipped with an empty path and no error.
func (w *CSVWriter) WriteTable(t Table, now time.Time) (string, error) {
	if t.Empty() {
		logger.Debug("Skipping empty CSV table", logger.Fields{"table": t.Title})
		return "", nil
	}

	path := filepath.Join(w.dir, w.fileName(t, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Headers); err != nil {
		return "", fmt.Errorf("writing headers to %s: %w", path, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return "", fmt.Errorf("writing rows to %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}

	logger.Info("Wrote CSV file", logger.Fields{
		"path": path,
		"rows": len(t.Rows),
	})
	return path, nil
}
