package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// driverName selects the pure-Go SQLite driver.
const driverName = "sqlite"

// Store owns at most one connection to a conference datafile. A handle moves
// from unopened through Create or Open to Close, and may be reused after a
// Close. The mutex guards lifecycle transitions; query traffic is expected
// from a single goroutine.
type Store struct {
	mu   sync.Mutex
	open bool
	path string
	db   *sql.DB
	log  *slog.Logger
}

// New returns an unopened store handle. A nil logger discards diagnostics;
// pass a sink to observe lifecycle, validation, and import activity.
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{log: log}
}

// Create makes a fresh datafile at path. Any existing file is removed first;
// a failed removal is logged and creation proceeds against whatever is left.
// Every catalog table is created inside a single transaction. Any statement
// failure aborts the call, closes the connection, and leaves the handle
// unopened.
func (s *Store) Create(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("creating %s: %w", path, ErrStoreOpen)
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			s.log.Warn("could not remove existing datafile", "path", path, "error", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("opening engine for %s: %w", path, err)
	}
	// One engine connection per handle: keeps the foreign-key pragma bound
	// to the session and matches the single-writer model.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	for _, t := range catalogDDL {
		if _, err := tx.Exec(t.ddl); err != nil {
			tx.Rollback()
			db.Close()
			return fmt.Errorf("creating table %s: %w", t.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		db.Close()
		return fmt.Errorf("committing schema: %w", err)
	}

	s.db = db
	s.path = path
	s.open = true
	s.log.Info("created datafile", "path", path, "tables", len(catalogDDL))
	return nil
}

// Open connects to an existing datafile and validates it against the
// catalog. A missing file is only a warning: the engine lazily creates an
// empty file, which then fails validation like any other non-conforming
// store. On validation failure the connection is closed before
// ErrStoreInvalid is returned; the handle stays unopened.
func (s *Store) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("opening %s: %w", path, ErrStoreOpen)
	}

	if _, err := os.Stat(path); err != nil {
		s.log.Warn("datafile does not exist", "path", path)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("opening engine for %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s: %w", path, err)
	}

	if err := s.validate(db); err != nil {
		db.Close()
		return fmt.Errorf("validating %s: %w", path, err)
	}

	s.db = db
	s.path = path
	s.open = true
	s.log.Info("opened datafile", "path", path)
	return nil
}

// validate compares every catalog table's stored definition against the
// canonical DDL, whitespace-normalized. Engine internals (sqlite_*) are
// skipped; extra user tables are tolerated but unchecked.
func (s *Store) validate(db *sql.DB) error {
	rows, err := db.Query(
		"SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'",
	)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]string)
	for rows.Next() {
		var name string
		var ddl sql.NullString
		if err := rows.Scan(&name, &ddl); err != nil {
			return fmt.Errorf("scanning schema row: %w", err)
		}
		stored[name] = ddl.String
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating schema rows: %w", err)
	}
	rows.Close()

	var invalid []string
	for _, t := range catalogDDL {
		ddl, ok := stored[t.name]
		if !ok {
			s.log.Error("catalog table missing from datafile", "table", t.name)
			invalid = append(invalid, t.name)
			continue
		}
		if normalizeSQL(ddl) != normalizeSQL(t.ddl) {
			s.log.Error("catalog table definition differs", "table", t.name)
			invalid = append(invalid, t.name)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: %s", ErrStoreInvalid, strings.Join(invalid, ", "))
	}
	return nil
}

// Close releases the connection. Closing an unopened or already-closed
// handle is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}

	s.log.Info("closed datafile", "path", s.path)
	s.db = nil
	s.path = ""
	s.open = false
	return nil
}

// Path returns the file path of the open datafile, or "" when closed.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// handle returns the live engine handle, or ErrStoreNotOpen.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrStoreNotOpen
	}
	return s.db, nil
}

// TableCount pairs a catalog table with its row count.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Info is the read-only diagnostic summary of an open datafile: the full
// Metadata set plus a row count for every non-Metadata catalog table, in
// catalog order.
type Info struct {
	Path     string            `json:"path"`
	Metadata map[string]string `json:"metadata"`
	Counts   []TableCount      `json:"counts"`
}

// Info collects the diagnostic summary without mutating store state.
func (s *Store) Info() (*Info, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	info := &Info{Path: s.Path(), Metadata: make(map[string]string)}

	rows, err := db.Query("SELECT Name, Value FROM Metadata ORDER BY Name")
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		info.Metadata[name] = value.String
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}
	// Release the cursor before the count queries; the pool holds a single
	// connection.
	rows.Close()

	for _, t := range catalogDDL {
		if t.name == TableMetadata {
			continue
		}
		var n int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)
		if err := db.QueryRow(query).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", t.name, err)
		}
		info.Counts = append(info.Counts, TableCount{Table: t.name, Rows: n})
	}

	return info, nil
}

// String renders the summary as aligned text, metadata sorted by name and
// counts in catalog order.
func (i *Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Datafile: %s\n", i.Path)

	b.WriteString("Metadata:\n")
	names := make([]string, 0, len(i.Metadata))
	for name := range i.Metadata {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s\n", name, i.Metadata[name])
	}

	b.WriteString("Rows:\n")
	for _, c := range i.Counts {
		fmt.Fprintf(&b, "  %-16s %d\n", c.Table, c.Rows)
	}
	return b.String()
}
