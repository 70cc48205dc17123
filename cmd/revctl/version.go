package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version and commit are set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print revctl's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("revctl %s (%s)\n", version, commit)
		return nil
	},
}
