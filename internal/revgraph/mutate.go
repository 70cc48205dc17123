package revgraph

import "sort"

// AddRevisionOptions controls AddRevision's duplicate-id handling.
type AddRevisionOptions struct {
	// Replace, if set, means a missing existing revision with the same
	// id is fatal rather than the usual "insert as new" behavior —
	// inverted from the default insert path, which keeps the first
	// insertion without error (and without a warning) if the id already
	// exists.
	Replace bool
}

// AddRevision inserts a single revision into an already-built map,
// re-running the build invariants locally: label installation,
// dependency resolution, forward-edge wiring into existing predecessors,
// dependency normalization for the new node, and head/base set
// maintenance. It does not re-run global cycle detection — see
// SPEC_FULL.md / DESIGN.md for this documented limitation — so a caller
// can construct a cycle incrementally that Build would have rejected.
//
// AddRevision is not safe to call concurrently with any other operation
// on the same Map.
func AddRevision(m *Map, in RevisionInput, opts AddRevisionOptions) error {
	if err := in.validate(); err != nil {
		return err
	}

	existing, exists := m.byID[in.ID]
	if exists {
		if opts.Replace {
			return removeAndReinsert(m, in)
		}
		// Keep-first: the existing revision stands, nothing changes,
		// and no warning is emitted.
		_ = existing
		return nil
	}
	if opts.Replace && !exists {
		return newRevisionErr("replace requested for revision %q but no existing revision found", in.ID)
	}

	rev := newRevision(in)
	m.byID[in.ID] = rev

	for label := range rev.branchLabels {
		if _, collide := m.byID[label]; collide {
			delete(m.byID, in.ID)
			return newRevisionErr("branch label %q collides with an existing revision id", label)
		}
		if other, collide := m.byLabel[label]; collide {
			delete(m.byID, in.ID)
			return newRevisionErr("branch label %q is declared on both %q and %q", label, other.id, in.ID)
		}
		m.byLabel[label] = rev
		rev.effectiveLabels[label] = struct{}{}
	}

	for _, dep := range rev.deps {
		if target, ok := m.byID[dep]; ok {
			rev.resolvedDeps = append(rev.resolvedDeps, target.id)
			continue
		}
		if target, ok := m.byLabel[dep]; ok {
			rev.resolvedDeps = append(rev.resolvedDeps, target.id)
		}
	}

	isNewHead := true
	isNewRealHead := len(rev.allNextRev) == 0

	for _, p := range rev.down {
		parent, ok := m.byID[p]
		if !ok {
			continue
		}
		parent.allNextRev[in.ID] = struct{}{}
		parent.nextRev[in.ID] = struct{}{}
		m.heads = removeID(m.heads, p)
		m.realHeads = removeID(m.realHeads, p)
	}
	for _, p := range rev.resolvedDeps {
		parent, ok := m.byID[p]
		if !ok {
			continue
		}
		parent.allNextRev[in.ID] = struct{}{}
		m.realHeads = removeID(m.realHeads, p)
	}

	if rev.IsBase() {
		m.bases = insertSorted(m.bases, in.ID)
	}
	if rev.IsRealBase() {
		m.realBases = insertSorted(m.realBases, in.ID)
	}
	if isNewHead {
		m.heads = insertSorted(m.heads, in.ID)
	}
	if isNewRealHead {
		m.realHeads = insertSorted(m.realHeads, in.ID)
	}

	if len(rev.resolvedDeps) > 0 {
		directPreds := append(append([]string(nil), rev.down...), rev.resolvedDeps...)
		predCount := make(map[string]int, len(directPreds))
		for _, p := range directPreds {
			predCount[p]++
		}
		impliedAncestor := make(map[string]bool)
		for _, p := range directPreds {
			anc, err := ancestors(m, p, fullEdges)
			if err != nil {
				return err
			}
			for _, a := range anc {
				impliedAncestor[a] = true
			}
		}
		downSet := make(map[string]bool, len(rev.down))
		for _, d := range rev.down {
			downSet[d] = true
		}
		var normalized []string
		for _, d := range rev.resolvedDeps {
			if !impliedAncestor[d] && predCount[d] <= 1 && !downSet[d] {
				normalized = append(normalized, d)
			}
		}
		rev.normalizedDeps = normalized
	}

	m.sortedIDs = insertSorted(m.sortedIDs, in.ID)

	return nil
}

// removeAndReinsert backs an explicit Replace: drop the prior revision
// entirely (including its label and forward-edge bookkeeping isn't
// undone here by design — replace is meant for revisions that have not
// yet acquired dependents) and insert the new one fresh.
func removeAndReinsert(m *Map, in RevisionInput) error {
	old := m.byID[in.ID]
	for label := range old.branchLabels {
		delete(m.byLabel, label)
	}
	delete(m.byID, in.ID)
	m.heads = removeID(m.heads, in.ID)
	m.realHeads = removeID(m.realHeads, in.ID)
	m.bases = removeID(m.bases, in.ID)
	m.realBases = removeID(m.realBases, in.ID)
	m.sortedIDs = removeID(m.sortedIDs, in.ID)
	return AddRevision(m, in, AddRevisionOptions{})
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	if i < len(ids) && ids[i] == id {
		return ids
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	out = append(out, ids[i:]...)
	return out
}
