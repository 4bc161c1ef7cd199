// New command creates a fresh conference datafile.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/internal/store"
)

var flagMeta []string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new conference datafile",
	Long: `New creates the datafile with the standard schema catalog, replacing
any file already at the path. The datafile is stamped with a DatabaseID and
CreatedAt metadata row; --meta adds further rows.

Example:
  marquee new
  marquee new --db conf.db --meta "Name=Some Conference 2016" --meta "Location=Somewhere"`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringArrayVar(&flagMeta, "meta", nil, "metadata row as Name=Value (repeatable)")
}

func runNew(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	st := store.New(appLog)
	if err := st.Create(dbPath); err != nil {
		return fmt.Errorf("create %s: %w", dbPath, err)
	}
	defer st.Close()

	stamps := [][2]string{
		{"DatabaseID", uuid.NewString()},
		{"CreatedAt", time.Now().UTC().Format(time.RFC3339)},
	}
	for _, s := range stamps {
		if _, err := st.Insert(store.TableMetadata, []string{"Name", "Value"}, []any{s[0], s[1]}); err != nil {
			return fmt.Errorf("stamp metadata: %w", err)
		}
	}

	names, values, err := parseFieldValues(flagMeta)
	if err != nil {
		return err
	}
	for i, name := range names {
		_, err := st.Insert(store.TableMetadata, []string{"Name", "Value"}, []any{name, values[i]})
		if err != nil {
			return fmt.Errorf("add metadata %s: %w", name, err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "created", dbPath)
	return nil
}
