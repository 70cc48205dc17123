package revgraph

import (
	"sort"
	"strings"
)

// illegalIDChars are forbidden in a revision id because they are used by
// the identifier grammar as syntactic separators (branch@body, and the
// +N/-N relative suffix).
const illegalIDChars = "@+-"

// RevisionInput is the constructor contract a Provider yields: the raw,
// unresolved fields a revision declares about itself. down, deps, and
// branch_labels may be left nil for "no entries".
type RevisionInput struct {
	ID           string
	Down         []string
	Deps         []string
	BranchLabels []string
	Doc          string
}

func validateID(id string) error {
	if id == "" {
		return newRevisionErr("revision id must not be empty")
	}
	if strings.ContainsAny(id, illegalIDChars) {
		return newRevisionErr("revision id %q contains illegal characters (%s)", id, illegalIDChars)
	}
	return nil
}

// validate checks the fatal-at-construction rules from the data model:
// illegal id characters and self-referential down/deps entries. Dangling
// references (ids naming revisions absent from the map) are a build-time
// concern, not a construction-time one, and are left to the builder.
func (in RevisionInput) validate() error {
	if err := validateID(in.ID); err != nil {
		return err
	}
	for _, d := range in.Down {
		if d == in.ID {
			return newLoopErr(in.ID)
		}
	}
	for _, d := range in.Deps {
		if d == in.ID {
			return newDependencyLoopErr(in.ID)
		}
	}
	return nil
}

// Revision is one node of the built map. All derived fields are
// populated once, by the builder (or by AddRevision for an incrementally
// inserted node), and are read-only to every other caller.
type Revision struct {
	id           string
	down         []string
	deps         []string
	branchLabels map[string]struct{}
	doc          string

	// derived at build time
	resolvedDeps    []string
	normalizedDeps  []string
	nextRev         map[string]struct{}
	allNextRev      map[string]struct{}
	effectiveLabels map[string]struct{}
}

func newRevision(in RevisionInput) *Revision {
	labels := make(map[string]struct{}, len(in.BranchLabels))
	for _, l := range in.BranchLabels {
		labels[l] = struct{}{}
	}
	return &Revision{
		id:              in.ID,
		down:            append([]string(nil), in.Down...),
		deps:            append([]string(nil), in.Deps...),
		branchLabels:    labels,
		doc:             in.Doc,
		nextRev:         make(map[string]struct{}),
		allNextRev:      make(map[string]struct{}),
		effectiveLabels: make(map[string]struct{}),
	}
}

func (r *Revision) ID() string       { return r.id }
func (r *Revision) Doc() string      { return r.doc }
func (r *Revision) Down() []string   { return append([]string(nil), r.down...) }
func (r *Revision) Deps() []string   { return append([]string(nil), r.deps...) }
func (r *Revision) ResolvedDeps() []string   { return append([]string(nil), r.resolvedDeps...) }
func (r *Revision) NormalizedDeps() []string { return append([]string(nil), r.normalizedDeps...) }

func (r *Revision) BranchLabels() []string {
	return sortedKeys(r.branchLabels)
}

func (r *Revision) EffectiveLabels() []string {
	return sortedKeys(r.effectiveLabels)
}

func (r *Revision) NextRev() []string    { return sortedKeys(r.nextRev) }
func (r *Revision) AllNextRev() []string { return sortedKeys(r.allNextRev) }

func (r *Revision) IsBase() bool     { return len(r.down) == 0 }
func (r *Revision) IsRealBase() bool { return len(r.down) == 0 && len(r.deps) == 0 }
func (r *Revision) IsHead() bool     { return len(r.nextRev) == 0 }
func (r *Revision) IsRealHead() bool { return len(r.allNextRev) == 0 }

func (r *Revision) IsBranchPoint() bool     { return len(r.nextRev) > 1 }
func (r *Revision) IsRealBranchPoint() bool { return len(r.allNextRev) > 1 }
func (r *Revision) IsMergePoint() bool      { return len(r.down) > 1 }

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
