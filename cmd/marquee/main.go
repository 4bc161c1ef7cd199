// Package main provides the marquee CLI, a front end for conference
// logistics datafiles.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marquee:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode classifies an error for the shell: filesystem trouble is a system
// error, everything else the user can fix.
func exitCode(err error) int {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return exitSysError
	}
	return exitUserError
}
