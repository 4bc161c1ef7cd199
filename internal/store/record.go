package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one query result row: a mapping from column label (after any
// aliasing) to value. Iteration follows the projection's column order;
// lookup is by name. When a projection yields duplicate unaliased labels the
// later column's value wins and the label is listed once, at its first
// position. Alias duplicate columns in the field list to keep both.
type Record struct {
	columns []string
	values  map[string]any
}

// newRecord pairs projected column labels with one scanned row.
func newRecord(columns []string, values []any) Record {
	r := Record{
		columns: make([]string, 0, len(columns)),
		values:  make(map[string]any, len(columns)),
	}
	for i, col := range columns {
		if _, seen := r.values[col]; !seen {
			r.columns = append(r.columns, col)
		}
		r.values[col] = values[i]
	}
	return r
}

// Columns returns the record's column labels in projection order.
// The slice is a copy.
func (r Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Value returns the value stored under the column label, or nil when the
// label is not part of the projection.
func (r Record) Value(name string) any {
	return r.values[name]
}

// Has reports whether the projection produced the column label.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of distinct column labels.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON renders the record as a JSON object whose keys keep the
// projection's column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, fmt.Errorf("marshaling column %s: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(jsonValue(r.values[col]))
		if err != nil {
			return nil, fmt.Errorf("marshaling value of %s: %w", col, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue keeps text-affinity blobs readable instead of base64-encoded.
func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// FormatValue renders a record value for text and CSV output. NULL becomes
// the empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Rows is a forward-only cursor over a select's result set. Callers must
// Close it; SelectAll drains and closes internally.
type Rows struct {
	rows    *sql.Rows
	columns []string
}

// Next advances the cursor to the next row.
func (rs *Rows) Next() bool {
	return rs.rows.Next()
}

// Record maps the current row into a Record.
func (rs *Rows) Record() (Record, error) {
	vals := make([]any, len(rs.columns))
	ptrs := make([]any, len(rs.columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rs.rows.Scan(ptrs...); err != nil {
		return Record{}, fmt.Errorf("scanning row: %w", err)
	}
	return newRecord(rs.columns, vals), nil
}

// Columns returns the projection's column labels, duplicates included.
func (rs *Rows) Columns() []string {
	return append([]string(nil), rs.columns...)
}

// Err returns the first error encountered while iterating.
func (rs *Rows) Err() error {
	return rs.rows.Err()
}

// Close releases the cursor.
func (rs *Rows) Close() error {
	return rs.rows.Close()
}
