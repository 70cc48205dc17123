package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

var (
	downgradeInclusive    bool
	downgradeImplicitBase bool
	downgradeAsGraph      bool
)

var downgradeCmd = &cobra.Command{
	Use:   "downgrade UPPER TARGET",
	Short: "Print the ordered revisions to revert between UPPER and TARGET",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}
		upper, err := revgraph.ParseIdentifier(args[0])
		if err != nil {
			return err
		}
		target, err := revgraph.ParseIdentifier(args[1])
		if err != nil {
			return err
		}

		plan, err := revgraph.Downgrade(m, upper, target, nil, revgraph.PlanOptions{
			Inclusive:    downgradeInclusive,
			ImplicitBase: downgradeImplicitBase,
		})
		if err != nil {
			return err
		}

		if downgradeAsGraph {
			return renderPlanGraph(m, plan)
		}
		for _, id := range plan {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	downgradeCmd.Flags().BoolVar(&downgradeInclusive, "inclusive", false, "include TARGET itself in the plan")
	downgradeCmd.Flags().BoolVar(&downgradeImplicitBase, "implicit-base", false, "also drop every active revision not under the retained subtree")
	downgradeCmd.Flags().BoolVar(&downgradeAsGraph, "graph", false, "render the plan as a boxed ASCII graph instead of one id per line")
}
