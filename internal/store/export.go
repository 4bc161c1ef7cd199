package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ExportCSV writes every row of a catalog table to path as UTF-8 CSV with a
// header line. The file is published through a temp-file and rename in the
// destination directory, so a failed export never clobbers an existing
// file. NULL values become empty fields. Returns the number of data rows
// written.
func (s *Store) ExportCSV(table, path string) (int, error) {
	if !IsCatalogTable(table) {
		return 0, fmt.Errorf("exporting %s: %w", table, ErrUnknownTable)
	}

	rs, err := s.Select([]string{table}, nil, nil)
	if err != nil {
		return 0, err
	}
	defer rs.Close()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := csv.NewWriter(tmp)
	columns := rs.Columns()
	if err := w.Write(columns); err != nil {
		discard()
		return 0, fmt.Errorf("writing header: %w", err)
	}

	written := 0
	line := make([]string, len(columns))
	for rs.Next() {
		rec, err := rs.Record()
		if err != nil {
			discard()
			return 0, err
		}
		for i, col := range columns {
			line[i] = FormatValue(rec.Value(col))
		}
		if err := w.Write(line); err != nil {
			discard()
			return 0, fmt.Errorf("writing row %d: %w", written+1, err)
		}
		written++
	}
	if err := rs.Err(); err != nil {
		discard()
		return 0, fmt.Errorf("iterating %s: %w", table, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		discard()
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		discard()
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("replacing %s: %w", path, err)
	}

	s.log.Info("exported table", "table", table, "path", path, "rows", written)
	return written, nil
}
