package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

var graphBranch string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the revision graph (or one branch's lineage) as ASCII boxes",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}

		ids := allRevisionIDs(m)
		if graphBranch != "" {
			var filtered []string
			for _, id := range ids {
				rev, _ := m.ByID(id)
				for _, l := range rev.EffectiveLabels() {
					if l == graphBranch {
						filtered = append(filtered, id)
						break
					}
				}
			}
			ids = filtered
		}

		layout := computeLayout(m, ids)
		renderGraph(layout)
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphBranch, "branch", "", "restrict the rendered graph to one branch's lineage")
}

func allRevisionIDs(m *revgraph.Map) []string {
	seen := map[string]bool{}
	var out []string
	var walkAll func(id string)
	walkAll = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		rev, ok := m.ByID(id)
		if !ok {
			return
		}
		for _, n := range rev.NextRev() {
			walkAll(n)
		}
	}
	for _, h := range m.Bases() {
		walkAll(h)
	}
	return out
}

// graphNode and graphLayout mirror this codebase's layered-DAG layout
// representation, generalized from per-issue dependency trees to
// down-revision chains: Layer is assigned by an iterative fixed-point
// pass so a node's layer is always one more than the deepest of its
// predecessors.
type graphNode struct {
	id    string
	layer int
}

type graphLayout struct {
	nodes    map[string]*graphNode
	layers   [][]string
	maxLayer int
}

func computeLayout(m *revgraph.Map, ids []string) *graphLayout {
	layout := &graphLayout{nodes: make(map[string]*graphNode)}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	predecessorsOf := make(map[string][]string, len(ids))
	for _, id := range ids {
		rev, ok := m.ByID(id)
		if !ok {
			continue
		}
		for _, p := range rev.Down() {
			if idSet[p] {
				predecessorsOf[id] = append(predecessorsOf[id], p)
			}
		}
		layout.nodes[id] = &graphNode{id: id, layer: -1}
	}

	changed := true
	for changed {
		changed = false
		for id, node := range layout.nodes {
			if node.layer >= 0 {
				continue
			}
			preds := predecessorsOf[id]
			if len(preds) == 0 {
				node.layer = 0
				changed = true
				continue
			}
			maxPredLayer := -1
			allAssigned := true
			for _, p := range preds {
				pn := layout.nodes[p]
				if pn == nil || pn.layer < 0 {
					allAssigned = false
					break
				}
				if pn.layer > maxPredLayer {
					maxPredLayer = pn.layer
				}
			}
			if allAssigned {
				node.layer = maxPredLayer + 1
				changed = true
			}
		}
	}
	for _, node := range layout.nodes {
		if node.layer < 0 {
			node.layer = 0
		}
		if node.layer > layout.maxLayer {
			layout.maxLayer = node.layer
		}
	}

	layout.layers = make([][]string, layout.maxLayer+1)
	for id, node := range layout.nodes {
		layout.layers[node.layer] = append(layout.layers[node.layer], id)
	}
	for i := range layout.layers {
		sort.Strings(layout.layers[i])
	}
	return layout
}

func renderGraph(layout *graphLayout) {
	if len(layout.nodes) == 0 {
		fmt.Println("empty graph")
		return
	}

	maxIDLen := 0
	for id := range layout.nodes {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}
	width := maxIDLen + 2

	for layerIdx, layer := range layout.layers {
		fmt.Printf("Layer %d", layerIdx)
		if layerIdx == 0 {
			fmt.Print(" (bases)")
		}
		fmt.Println()
		for _, id := range layer {
			fmt.Println(renderNodeBox(id, width))
		}
		if layerIdx < len(layout.layers)-1 {
			fmt.Println("  |")
			fmt.Println("  v")
		}
		fmt.Println()
	}
	fmt.Printf("Total: %d revisions across %d layers\n", len(layout.nodes), len(layout.layers))
}

func renderNodeBox(id string, width int) string {
	cyan := color.New(color.FgCyan).SprintFunc()
	top := "  +" + strings.Repeat("-", width) + "+"
	middle := fmt.Sprintf("  | %s |", cyan(padRight(id, width-2)))
	bottom := "  +" + strings.Repeat("-", width) + "+"
	return top + "\n" + middle + "\n" + bottom
}

func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func renderPlanGraph(m *revgraph.Map, plan []string) error {
	layout := computeLayout(m, plan)
	renderGraph(layout)
	return nil
}
