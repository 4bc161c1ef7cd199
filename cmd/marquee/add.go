// Add command inserts a single row.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <table> <Field=Value>...",
	Short: "Insert a row into a table",
	Long: `Add inserts one row, taking column values from Field=Value arguments.
Values are text; the engine converts them per column type. The new row id
is printed on success.

Valid table names: ` + validTablesStr + `

Example:
  marquee add Site "Name=Site A" "Location=?"
  marquee add Room "Name=Room 1" "RoomGroup=Hall A" Site=1`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	table := args[0]
	if err := requireTable(table); err != nil {
		return err
	}

	fields, values, err := parseFieldValues(args[1:])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Insert(table, fields, values)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
