package main

import (
	"github.com/spf13/cobra"
)

var basesReal bool

var basesCmd = &cobra.Command{
	Use:   "bases",
	Short: "List the base revisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}
		if basesReal {
			printRevisionIDs(m.RealBases())
		} else {
			printRevisionIDs(m.Bases())
		}
		return nil
	},
}

func init() {
	basesCmd.Flags().BoolVar(&basesReal, "real", false, "list real bases (no predecessor of any kind) instead of versioned bases")
}
