// Report command runs canned queries.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run a canned report",
	Long: `Report runs one of the built-in queries against the datafile. Without
a name it lists the available reports.

Example:
  marquee report
  marquee report schedule
  marquee report equipment --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, strings.Join(report.Names(), "\n"))
		return nil
	}

	r, err := report.New(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := r.Run(st)
	if err != nil {
		return fmt.Errorf("run report %s: %w", args[0], err)
	}

	if !flagJSON {
		fmt.Fprintf(out, "%s\n\n", r.Title())
	}
	return printRecords(out, recs)
}
