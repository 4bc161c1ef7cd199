// Export command writes a table out as CSV.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <table> <file.csv>",
	Short: "Export a table to a CSV file",
	Long: `Export writes every row of the table to a comma-delimited file, headed
by the column names. NULL values become empty fields. The file is replaced
atomically.

Valid table names: ` + validTablesStr + `

Example:
  marquee export Equipment eq.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	table, path := args[0], args[1]
	if err := requireTable(table); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ExportCSV(table, path)
	if err != nil {
		return fmt.Errorf("export %s to %s: %w", table, path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", n, path)
	return nil
}
