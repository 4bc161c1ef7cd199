// Shared helpers for marquee CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/stagefront/marquee/internal/store"
)

// validTablesStr is a comma-separated list of table names for error output.
var validTablesStr = strings.Join(store.TableNames(), ", ")

// openStore opens the resolved datafile for a subcommand. The caller must
// defer st.Close().
func openStore() (*store.Store, error) {
	st := store.New(appLog)
	if err := st.Open(dbPath); err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	return st, nil
}

// requireTable rejects names outside the schema catalog before they reach
// the engine, so the user sees the valid set.
func requireTable(name string) error {
	if !store.IsCatalogTable(name) {
		return fmt.Errorf("unknown table %q (valid: %s)", name, validTablesStr)
	}
	return nil
}

// splitList splits a comma-separated argument into trimmed parts.
func splitList(arg string) []string {
	parts := strings.Split(arg, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseFieldValues turns Field=Value arguments into parallel field and value
// slices for an insert. Values are passed through as text; the engine applies
// column affinity.
func parseFieldValues(args []string) ([]string, []any, error) {
	fields := make([]string, 0, len(args))
	values := make([]any, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, nil, fmt.Errorf("invalid field %q (expected Field=Value)", arg)
		}
		fields = append(fields, parts[0])
		values = append(values, parts[1])
	}
	return fields, values, nil
}

// parseMapFlags turns dest=source pairs into the field map an import expects.
// A pair without a source keeps the destination's own name.
func parseMapFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if parts[0] == "" {
			return nil, fmt.Errorf("invalid map entry %q (expected dest or dest=source)", pair)
		}
		if len(parts) == 1 {
			m[parts[0]] = ""
			continue
		}
		m[parts[0]] = parts[1]
	}
	return m, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// renderRecords writes records as an aligned text table, one line per record
// under a header of column labels.
func renderRecords(w io.Writer, recs []store.Record) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	cols := recs[0].Columns()
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, rec := range recs {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = store.FormatValue(rec.Value(c))
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
	return tw.Flush()
}

// printRecords renders recs as JSON when --json is set, as text otherwise.
func printRecords(w io.Writer, recs []store.Record) error {
	if flagJSON {
		if recs == nil {
			recs = []store.Record{}
		}
		return printJSON(w, recs)
	}
	return renderRecords(w, recs)
}
