package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve IDENTIFIER",
	Short: "Resolve a revision identifier to a concrete revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}

		parsed, err := revgraph.ParseIdentifier(args[0])
		if err != nil {
			return err
		}

		resolver := revgraph.NewResolver(m)
		var rev *revgraph.Revision

		if parsed.Relative != nil {
			anchor, err := resolver.ResolveAnchor(parsed.Relative, nil)
			if err != nil {
				return err
			}
			rev, err = revgraph.ResolveRelative(m, anchor, parsed.Relative.Offset)
			if err != nil {
				return err
			}
		} else {
			revs, err := resolver.Resolve(parsed, nil)
			if err != nil {
				var re *revgraph.Error
				if errors.As(err, &re) && re.IsResolutionError() && len(re.Candidates) > 1 && isInteractive() {
					chosen, perr := promptDisambiguate(re.Candidates)
					if perr != nil {
						return perr
					}
					rev, _ = m.ByID(chosen)
				} else {
					return err
				}
			} else if len(revs) == 1 {
				rev = revs[0]
			} else if len(revs) == 0 {
				fmt.Println("(no revision)")
				return nil
			} else {
				for _, r := range revs {
					fmt.Println(r.ID())
				}
				return nil
			}
		}

		fmt.Println(rev.ID())
		return nil
	},
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func promptDisambiguate(candidates []string) (string, error) {
	var choice string
	options := make([]huh.Option[string], 0, len(candidates))
	for _, c := range candidates {
		options = append(options, huh.NewOption(c, c))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Multiple revisions match; choose one").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
