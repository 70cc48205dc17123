// Package manifest is a concrete revgraph.Provider: it reads a
// directory of TOML or YAML revision files and turns them into the
// RevisionInput batch the engine's builder consumes.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/revgraph-dev/revgraph/internal/obslog"
	"github.com/revgraph-dev/revgraph/internal/revgraph"
)

// file is the on-disk shape of a single revision manifest, shared by
// both the TOML and YAML encodings.
type file struct {
	ID           string   `toml:"id" yaml:"id"`
	Down         []string `toml:"down" yaml:"down"`
	Deps         []string `toml:"deps" yaml:"deps"`
	BranchLabels []string `toml:"branch_labels" yaml:"branch_labels"`
	Doc          string   `toml:"doc" yaml:"doc"`
}

func (f file) toInput() revgraph.RevisionInput {
	return revgraph.RevisionInput{
		ID:           f.ID,
		Down:         f.Down,
		Deps:         f.Deps,
		BranchLabels: f.BranchLabels,
		Doc:          f.Doc,
	}
}

// ParseError attributes a manifest parse failure to its source path,
// distinct from the engine's own Error kinds since it names a location
// the engine has no concept of.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads every *.toml/*.yml/*.yaml file directly under dir,
// concurrently, bounded by GOMAXPROCS via errgroup, and returns the full
// RevisionInput batch plus every per-file parse error encountered
// (rather than stopping at the first one), matching the engine's own
// "warn and continue" posture toward malformed input.
func Load(ctx context.Context, dir string) ([]revgraph.RevisionInput, []error) {
	paths, err := listManifests(dir)
	if err != nil {
		return nil, []error{err}
	}

	results := make([]revgraph.RevisionInput, len(paths))
	errs := make([]error, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			in, err := parseFile(p)
			if err != nil {
				errs[i] = &ParseError{Path: p, Err: err}
				return nil
			}
			results[i] = in
			return nil
		})
	}
	_ = g.Wait() // errors are collected per-file above, never aborts the batch

	var inputs []revgraph.RevisionInput
	var failures []error
	for i, in := range results {
		if errs[i] != nil {
			failures = append(failures, errs[i])
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, failures
}

// LoadWithRetry retries a stat of dir with a short bounded exponential
// backoff until the directory is reachable, then runs Load once:
// manifest directories in this tool's deployment model are frequently
// synced filesystems, where a transient ENOENT or EBUSY during a sync
// window should not fail a watch-triggered rebuild. A failure of Load's
// own directory listing is returned in the error list and not retried.
func LoadWithRetry(ctx context.Context, dir string) ([]revgraph.RevisionInput, []error) {
	var inputs []revgraph.RevisionInput
	var failures []error

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	err := backoff.Retry(func() error {
		if _, statErr := os.Stat(dir); statErr != nil {
			return statErr
		}
		inputs, failures = Load(ctx, dir)
		return nil
	}, policy)
	if err != nil {
		return nil, []error{fmt.Errorf("manifest directory %s unavailable: %w", dir, err)}
	}
	return inputs, failures
}

// Provider returns a revgraph.Provider bound to dir. Parse failures
// collected by Load are logged as warnings and the surviving revisions
// are still handed to the builder, matching the distinction spec.md
// draws between fatal structural errors and warned-only input defects.
func Provider(ctx context.Context, dir string) revgraph.Provider {
	return func() ([]revgraph.RevisionInput, error) {
		inputs, failures := LoadWithRetry(ctx, dir)
		for _, f := range failures {
			obslog.Warn("skipping malformed manifest", "error", f)
		}
		return inputs, nil
	}
}

func listManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".toml", ".yml", ".yaml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func parseFile(path string) (revgraph.RevisionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return revgraph.RevisionInput{}, err
	}

	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return revgraph.RevisionInput{}, err
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return revgraph.RevisionInput{}, err
		}
	default:
		return revgraph.RevisionInput{}, fmt.Errorf("unrecognized manifest extension")
	}

	if f.ID == "" {
		return revgraph.RevisionInput{}, fmt.Errorf("manifest is missing required field \"id\"")
	}
	return f.toInput(), nil
}

// debounceInterval folds bursts of filesystem events (editors that
// write-then-rename, syncers that touch several files at once) into a
// single rebuild.
const debounceInterval = 200 * time.Millisecond
