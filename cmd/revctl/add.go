package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

var (
	addDown   []string
	addDeps   []string
	addLabels []string
	addDoc    string
)

var addCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Create a new revision manifest and fold it into the map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if err := os.MkdirAll(manifestDir, 0o755); err != nil {
			return fmt.Errorf("creating manifest directory: %w", err)
		}

		lock := flock.New(filepath.Join(manifestDir, ".revctl.lock"))
		ctx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
		defer cancel()
		locked, err := lock.TryLockContext(ctx, 200*time.Millisecond)
		if err != nil {
			return fmt.Errorf("acquiring manifest directory lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("manifest directory %s is locked by another revctl invocation", manifestDir)
		}
		defer lock.Unlock()

		m, err := buildMap(rootCtx)
		if err != nil {
			return err
		}

		in := revgraph.RevisionInput{
			ID:           id,
			Down:         addDown,
			Deps:         addDeps,
			BranchLabels: addLabels,
			Doc:          addDoc,
		}

		if err := writeManifestFile(manifestDir, in); err != nil {
			return err
		}
		if err := revgraph.AddRevision(m, in, revgraph.AddRevisionOptions{}); err != nil {
			// Roll back the file so a rejected AddRevision does not leave
			// an orphaned manifest behind for the next build.
			_ = os.Remove(filepath.Join(manifestDir, id+".toml"))
			return err
		}

		fmt.Println(id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringSliceVar(&addDown, "down", nil, "versioned predecessor revisions")
	addCmd.Flags().StringSliceVar(&addDeps, "dep", nil, "cross-branch dependency revisions")
	addCmd.Flags().StringSliceVar(&addLabels, "label", nil, "branch labels to declare on this revision")
	addCmd.Flags().StringVar(&addDoc, "doc", "", "free-text summary for this revision")
}

type manifestFile struct {
	ID           string   `toml:"id"`
	Down         []string `toml:"down,omitempty"`
	Deps         []string `toml:"deps,omitempty"`
	BranchLabels []string `toml:"branch_labels,omitempty"`
	Doc          string   `toml:"doc,omitempty"`
}

func writeManifestFile(dir string, in revgraph.RevisionInput) error {
	path := filepath.Join(dir, in.ID+".toml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("manifest %s already exists", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(manifestFile{
		ID:           in.ID,
		Down:         in.Down,
		Deps:         in.Deps,
		BranchLabels: in.BranchLabels,
		Doc:          in.Doc,
	})
}
