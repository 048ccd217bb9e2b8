// Package export writes record batches to timestamped CSV and JSON
// artifacts in a per-family output directory.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Timestamp returns the run timestamp used in artifact filenames.
func Timestamp() string {
	return time.Now().Format("20060102_150405")
}

// Path joins an output directory with a stem, timestamp and extension,
// e.g. parsed_http_logs_20240101_120000.csv.
func Path(dir, stem, timestamp, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", stem, timestamp, ext))
}

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// WriteCSV writes a header row and data rows to a CSV file.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteJSON writes a value as a pretty-printed JSON array with the given
// indent width.
func WriteJSON(path string, v interface{}, indent int) error {
	data, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
