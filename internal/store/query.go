package store

import (
	"errors"
	"fmt"
	"strings"
)

// Select composes and runs a SELECT over one or more tables, returning a
// forward-only cursor. Multiple tables are comma-joined in the FROM clause,
// an implicit cross join constrained through where. An empty fields list
// selects all columns. Multiple where clauses are conjoined with AND. Fields
// and where clauses are raw statement text: qualify ambiguous column names
// across joined tables and alias duplicate ones, since unaliased duplicate
// labels silently overwrite each other in the resulting records.
func (s *Store) Select(tables, fields, where []string) (*Rows, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, errors.New("selecting: at least one table required")
	}

	projection := "*"
	if len(fields) > 0 {
		projection = strings.Join(fields, ", ")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", projection, strings.Join(tables, ", "))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	s.log.Debug("select", "query", query)

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", strings.Join(tables, ", "), err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("reading result columns: %w", err)
	}
	return &Rows{rows: rows, columns: cols}, nil
}

// SelectAll runs the same query as Select and materializes every row, in
// result order.
func (s *Store) SelectAll(tables, fields, where []string) ([]Record, error) {
	rs, err := s.Select(tables, fields, where)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var records []Record
	for rs.Next() {
		rec, err := rs.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}

// Insert adds one row to table. values[i] is bound to fields[i] through a
// parameterized statement, so values never become statement text. Returns
// the new row's identifier.
func (s *Store) Insert(table string, fields []string, values []any) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 || len(fields) != len(values) {
		return 0, fmt.Errorf("inserting into %s (%d fields, %d values): %w",
			table, len(fields), len(values), ErrFieldCount)
	}

	marks := make([]string, len(values))
	for i := range marks {
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(fields, ", "), strings.Join(marks, ", "))

	s.log.Debug("insert", "table", table, "fields", strings.Join(fields, ","))

	res, err := db.Exec(query, values...)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new %s row id: %w", table, err)
	}
	return id, nil
}
