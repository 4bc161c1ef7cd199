// Seed command loads the demonstration conference.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration data into the datafile",
	Long: `Seed inserts a small demonstration conference: one site and room, two
people, a few pieces of equipment, and an event with staff and equipment
assigned. Useful for trying out queries and reports on a fresh datafile.

Example:
  marquee new --db demo.db
  marquee seed --db demo.db
  marquee report schedule --db demo.db`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := store.Seed(st); err != nil {
		return fmt.Errorf("seed datafile: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "seeded", dbPath)
	return nil
}
