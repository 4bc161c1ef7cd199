// Get command queries one or more tables.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagFields []string
	flagWhere  []string
)

var getCmd = &cobra.Command{
	Use:   "get <table>[,<table>...]",
	Short: "Query rows from the datafile",
	Long: `Get selects rows from the listed tables. Multiple tables produce their
cross product; --where conditions (ANDed together) cut it down to the join
you mean. --fields picks the projected columns, with AS aliases as needed.

Valid table names: ` + validTablesStr + `

Example:
  marquee get Site
  marquee get Equipment --fields Name,ShortName --where "ShortName='T'"
  marquee get Event,Room,Site --fields "Site.Name AS Site,Event.Name" \
      --where Room.Site=Site.id --where Event.Room=Room.id`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringSliceVar(&flagFields, "fields", nil, "projected columns (default: all)")
	getCmd.Flags().StringArrayVar(&flagWhere, "where", nil, "filter condition (repeatable, ANDed)")
}

func runGet(cmd *cobra.Command, args []string) error {
	tables := splitList(args[0])
	for _, tbl := range tables {
		if err := requireTable(tbl); err != nil {
			return err
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.SelectAll(tables, flagFields, flagWhere)
	if err != nil {
		return fmt.Errorf("query %s: %w", args[0], err)
	}

	return printRecords(cmd.OutOrStdout(), recs)
}
