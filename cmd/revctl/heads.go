package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headsBranch string
	headsReal   bool
)

var headsCmd = &cobra.Command{
	Use:   "heads",
	Short: "List the current head revisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}
		var ids []string
		if headsReal {
			ids = m.RealHeads()
		} else if headsBranch == "" {
			ids = m.Heads()
		} else {
			ids = m.FilteredHeads(headsBranch)
		}
		printRevisionIDs(ids)
		return nil
	},
}

func init() {
	headsCmd.Flags().StringVar(&headsBranch, "branch", "", "restrict to heads carrying this branch label")
	headsCmd.Flags().BoolVar(&headsReal, "real", false, "list real heads (no successor of any kind) instead of versioned heads")
}

func printRevisionIDs(ids []string) {
	green := color.New(color.FgGreen).SprintFunc()
	for _, id := range ids {
		fmt.Println(green(id))
	}
}
