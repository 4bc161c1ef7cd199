// Info command summarizes a datafile.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show datafile metadata and row counts",
	Long: `Info prints the datafile path, its metadata rows, and a row count for
every catalog table.

Example:
  marquee info
  marquee info --db conf.db --json`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	info, err := st.Info()
	if err != nil {
		return fmt.Errorf("inspect datafile: %w", err)
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), info)
	}
	fmt.Fprint(cmd.OutOrStdout(), info)
	return nil
}
