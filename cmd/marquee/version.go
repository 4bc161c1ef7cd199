// Version command for the marquee CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/pkg/marquee"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the marquee version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "marquee", marquee.Version)
	},
}
