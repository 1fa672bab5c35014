package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"instascan/pkg/errors"
)

// field is one named cell of a tabular record. Rendering rows through
// ordered fields keeps the CSV column order deterministic and lets the
// writer detect heterogeneous record shapes.
type field struct {
	name  string
	value string
}

// writeFileAtomic writes data to path through a temporary file and an
// atomic rename, so a failure mid-write never leaves a partial
// artifact behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tempFile := path + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = out.Write(data)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write artifact data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// writeTable renders rows as CSV and writes the artifact atomically.
// The field set is fixed by the first row: extra fields on later rows
// are silently dropped, a missing field is an export error naming the
// artifact.
func writeTable(path string, rows [][]field) error {
	if len(rows) == 0 {
		return errors.Newf(errors.ErrorTypeExport, "%s: no rows to write", filepath.Base(path))
	}

	header := make([]string, len(rows[0]))
	for i, f := range rows[0] {
		header[i] = f.name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, row := range rows {
		byName := make(map[string]string, len(row))
		for _, f := range row {
			byName[f.name] = f.value
		}

		record := make([]string, len(header))
		for col, name := range header {
			value, ok := byName[name]
			if !ok {
				return errors.Newf(errors.ErrorTypeExport,
					"%s: row %d is missing field %q", filepath.Base(path), i, name)
			}
			record[col] = value
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV data: %w", err)
	}

	return writeFileAtomic(path, buf.Bytes())
}
