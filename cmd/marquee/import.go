// Import command bulk-loads a CSV file into a table.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/internal/store"
)

var flagFieldMap []string

var importCmd = &cobra.Command{
	Use:   "import <table> <file.csv>",
	Short: "Import CSV rows into a table",
	Long: `Import reads a comma-delimited file whose first line names its columns
and inserts one row per line. Without --map every source column loads into
the same-named table column. With --map only the mapped destination columns
load: "dest=source" renames, a bare "dest" reads the same-named source
column.

Rows are inserted one by one; on failure the rows already inserted stay.

Valid table names: ` + validTablesStr + `

Example:
  marquee import Equipment eq.csv
  marquee import Equipment eq.csv --map Name --map ShortName --map Description=d`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringArrayVar(&flagFieldMap, "map", nil, "destination column as dest or dest=source (repeatable)")
}

func runImport(cmd *cobra.Command, args []string) error {
	table, path := args[0], args[1]
	if err := requireTable(table); err != nil {
		return err
	}

	fieldMap, err := parseMapFlags(flagFieldMap)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := store.NewImporter(st).ImportCSV(table, path, fieldMap)
	if err != nil {
		return fmt.Errorf("import %s into %s (%d rows in): %w", path, table, n, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s\n", n, table)
	return nil
}
