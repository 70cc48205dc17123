package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

var (
	upgradeInclusive    bool
	upgradeImplicitBase bool
	upgradeAsGraph      bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade LOWER UPPER",
	Short: "Print the ordered revisions to apply between LOWER and UPPER",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}
		lower, err := revgraph.ParseIdentifier(args[0])
		if err != nil {
			return err
		}
		upper, err := revgraph.ParseIdentifier(args[1])
		if err != nil {
			return err
		}

		plan, err := revgraph.Upgrade(m, lower, upper, nil, revgraph.PlanOptions{
			Inclusive:    upgradeInclusive,
			ImplicitBase: upgradeImplicitBase,
		})
		if err != nil {
			return err
		}

		if upgradeAsGraph {
			return renderPlanGraph(m, plan)
		}
		for _, id := range plan {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeInclusive, "inclusive", false, "include LOWER itself in the plan")
	upgradeCmd.Flags().BoolVar(&upgradeImplicitBase, "implicit-base", false, "do not restrict the plan to descendants of LOWER")
	upgradeCmd.Flags().BoolVar(&upgradeAsGraph, "graph", false, "render the plan as a boxed ASCII graph instead of one id per line")
}
