package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
)

// Importer bulk-loads delimited files into catalog tables through the
// store's insert path, one statement per row. Import runs are correlated in
// the log by a generated run id.
type Importer struct {
	store *Store
}

// NewImporter returns an Importer bound to st.
func NewImporter(st *Store) *Importer {
	return &Importer{store: st}
}

// ImportCSV streams the file at path into table. Input is UTF-8,
// comma-delimited, first line = source column headers. fieldMap maps
// destination column to source column; an empty source string means the
// source column carries the destination's own name, and only the map's
// destination keys are inserted. An empty or nil map inserts every source
// column under its own name. Rows are inserted in file order with no
// batching or wrapping transaction, so a mid-stream failure leaves earlier
// rows committed. Returns the number of rows inserted.
func (imp *Importer) ImportCSV(table, path string, fieldMap map[string]string) (int, error) {
	if _, err := imp.store.handle(); err != nil {
		return 0, err
	}
	if !IsCatalogTable(table) {
		return 0, fmt.Errorf("importing into %s: %w", table, ErrUnknownTable)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, ErrImportSource)
	}
	if !fi.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", path, ErrImportSource)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	log := imp.store.log.With("run_id", uuid.NewString(), "table", table)
	log.Info("starting import", "path", path)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		log.Warn("import source has no header row", "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading header of %s: %w", path, err)
	}

	// Source column index by name; a duplicated header name keeps its last
	// occurrence.
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	fields, sources := importPlan(header, fieldMap)

	inserted := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("reading row %d of %s: %w", inserted+1, path, err)
		}

		values := make([]any, len(fields))
		for i, src := range sources {
			idx, ok := index[src]
			if !ok || idx >= len(row) {
				// Absent source column inserts NULL.
				continue
			}
			values[i] = row[idx]
		}

		if _, err := imp.store.Insert(table, fields, values); err != nil {
			return inserted, fmt.Errorf("row %d: %w", inserted+1, err)
		}
		inserted++
		log.Debug("imported row", "row", inserted)
	}

	log.Info("import finished", "rows", inserted)
	return inserted, nil
}

// importPlan resolves the insert field list and the source column feeding
// each field. With a field map only its destination keys are inserted,
// sorted for a stable statement shape; an empty source entry falls back to
// the destination name. Without one the header maps onto itself, each name
// once.
func importPlan(header []string, fieldMap map[string]string) (fields, sources []string) {
	if len(fieldMap) == 0 {
		seen := make(map[string]bool, len(header))
		for _, name := range header {
			if seen[name] {
				continue
			}
			seen[name] = true
			fields = append(fields, name)
			sources = append(sources, name)
		}
		return fields, sources
	}

	fields = make([]string, 0, len(fieldMap))
	for dest := range fieldMap {
		fields = append(fields, dest)
	}
	sort.Strings(fields)

	sources = make([]string, len(fields))
	for i, dest := range fields {
		src := fieldMap[dest]
		if src == "" {
			src = dest
		}
		sources[i] = src
	}
	return fields, sources
}
