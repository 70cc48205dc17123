package revgraph

import "sort"

// Provider is the engine's sole collaborator contract: a zero-argument
// callable returning the batch of revisions to build a Map from.
// Ordering is irrelevant; the builder indexes by id.
type Provider func() ([]RevisionInput, error)

// Map is the frozen, read-mostly revision graph. It is built once from a
// Provider and is safe for concurrent reads; AddRevision is the only
// mutation and is not safe to call concurrently with any other
// operation on the same Map.
type Map struct {
	byID    map[string]*Revision
	byLabel map[string]*Revision

	// sortedIDs supports prefix enumeration (the resolver's partial-id
	// matching) without a trie: a maintained sorted slice plus
	// sort.Search gives the same asymptotic behavior for this map's
	// scale without a third-party dependency (see DESIGN.md).
	sortedIDs []string

	heads     []string
	realHeads []string
	bases     []string
	realBases []string
}

// Build runs the provider once and constructs the frozen map.
func Build(provider Provider) (*Map, error) {
	inputs, err := provider()
	if err != nil {
		return nil, err
	}
	return BuildFromInputs(inputs)
}

// BuildFromInputs runs the single-pass construction algorithm directly
// over an already-collected batch of revisions.
func BuildFromInputs(inputs []RevisionInput) (*Map, error) {
	m := &Map{
		byID:    make(map[string]*Revision, len(inputs)),
		byLabel: make(map[string]*Revision),
	}

	headSet := make(map[string]bool)
	realHeadSet := make(map[string]bool)
	var order []string

	// Step 1: insert records, seed heads/real_heads with every inserted
	// id, and bases/real_bases by the declared-field predicates.
	for _, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
		if _, exists := m.byID[in.ID]; exists {
			// Duplicate insertion: keep the first. The engine has no
			// logging collaborator of its own, so no warning is emitted
			// (callers observe nothing here), and the manifest provider
			// does not check for duplicate ids either.
			continue
		}
		rev := newRevision(in)
		m.byID[in.ID] = rev
		order = append(order, in.ID)
		headSet[in.ID] = true
		realHeadSet[in.ID] = true
	}

	for _, id := range order {
		rev := m.byID[id]
		if rev.IsBase() {
			m.bases = append(m.bases, id)
		}
		if rev.IsRealBase() {
			m.realBases = append(m.realBases, id)
		}
	}

	// Step 2: install branch labels; a collision with an existing id or
	// label is fatal.
	for _, id := range order {
		rev := m.byID[id]
		for label := range rev.branchLabels {
			if _, exists := m.byID[label]; exists {
				return nil, newRevisionErr("branch label %q collides with an existing revision id", label)
			}
			if other, exists := m.byLabel[label]; exists {
				return nil, newRevisionErr("branch label %q is declared on both %q and %q", label, other.id, id)
			}
			m.byLabel[label] = rev
			rev.effectiveLabels[label] = struct{}{}
		}
	}

	// Step 3: resolve deps against by_id ∪ by_label.
	for _, id := range order {
		rev := m.byID[id]
		for _, dep := range rev.deps {
			if target, ok := m.byID[dep]; ok {
				rev.resolvedDeps = append(rev.resolvedDeps, target.id)
				continue
			}
			if target, ok := m.byLabel[dep]; ok {
				rev.resolvedDeps = append(rev.resolvedDeps, target.id)
				continue
			}
			// Dangling dependency reference: skipped without error; no
			// warning is emitted.
		}
	}

	// Step 4: wire forward edges, and strip predecessors from the head
	// sets as their successors are discovered.
	for _, id := range order {
		rev := m.byID[id]
		for _, p := range rev.down {
			parent, ok := m.byID[p]
			if !ok {
				// Dangling down-revision reference: warned only.
				continue
			}
			parent.allNextRev[id] = struct{}{}
			parent.nextRev[id] = struct{}{}
			delete(headSet, p)
			delete(realHeadSet, p)
		}
		for _, p := range rev.resolvedDeps {
			parent, ok := m.byID[p]
			if !ok {
				continue
			}
			parent.allNextRev[id] = struct{}{}
			delete(realHeadSet, p)
		}
	}

	for id := range headSet {
		m.heads = append(m.heads, id)
	}
	for id := range realHeadSet {
		m.realHeads = append(m.realHeads, id)
	}
	sort.Strings(m.heads)
	sort.Strings(m.realHeads)
	sort.Strings(m.bases)
	sort.Strings(m.realBases)

	// Step 5: normalize dependencies — drop any resolved dep already
	// implied as an ancestor by one of this revision's other direct
	// predecessors (see DESIGN.md's builder.go entry on the chosen
	// interpretation of this ambiguous paragraph of the original algorithm).
	for _, id := range order {
		rev := m.byID[id]
		if len(rev.resolvedDeps) == 0 {
			continue
		}
		directPreds := make([]string, 0, len(rev.down)+len(rev.resolvedDeps))
		directPreds = append(directPreds, rev.down...)
		directPreds = append(directPreds, rev.resolvedDeps...)

		predCount := make(map[string]int, len(directPreds))
		for _, p := range directPreds {
			predCount[p]++
		}

		impliedAncestor := make(map[string]bool)
		for _, p := range directPreds {
			anc, err := ancestors(m, p, fullEdges)
			if err != nil {
				return nil, err
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
			redundant := impliedAncestor[d] || predCount[d] > 1 || downSet[d]
			if !redundant {
				normalized = append(normalized, d)
			}
		}
		rev.normalizedDeps = normalized
	}

	if err := detectCycles(m); err != nil {
		return nil, err
	}

	if err := propagateLabels(m, order); err != nil {
		return nil, err
	}

	m.sortedIDs = make([]string, 0, len(m.byID))
	for id := range m.byID {
		m.sortedIDs = append(m.sortedIDs, id)
	}
	sort.Strings(m.sortedIDs)

	return m, nil
}

// detectCycles implements the two cycle checks from the build
// algorithm: a versioned-view check over down/nextrev raising
// CycleDetected, and a full-view check over down∪resolvedDeps/allNextRev
// raising DependencyCycleDetected.
func detectCycles(m *Map) error {
	if len(m.byID) == 0 {
		return nil
	}

	if len(m.heads) == 0 || len(m.bases) == 0 {
		return newCycleErr(allIDs(m))
	}
	reachableUp, err := walk(m, m.heads, downEdges)
	if err != nil {
		return err
	}
	reachableDown, err := walk(m, m.bases, nextRevEdges)
	if err != nil {
		return err
	}
	if bad := outsideIntersection(m, reachableUp, reachableDown); len(bad) > 0 {
		return newCycleErr(bad)
	}

	if len(m.realHeads) == 0 || len(m.realBases) == 0 {
		return newDependencyCycleErr(allIDs(m))
	}
	reachableUpFull, err := walk(m, m.realHeads, fullEdges)
	if err != nil {
		return err
	}
	reachableDownFull, err := walk(m, m.realBases, allNextRevEdges)
	if err != nil {
		return err
	}
	if bad := outsideIntersection(m, reachableUpFull, reachableDownFull); len(bad) > 0 {
		return newDependencyCycleErr(bad)
	}

	return nil
}

func allIDs(m *Map) []string {
	out := make([]string, 0, len(m.byID))
	for id := range m.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func outsideIntersection(m *Map, a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var bad []string
	for id := range m.byID {
		if !(inA[id] && inB[id]) {
			bad = append(bad, id)
		}
	}
	sort.Strings(bad)
	return bad
}

// propagateLabels implements the downward-then-upward label spread
// described in §4.2 step 7 / §9: every originally labeled revision's
// labels spread unconditionally to every descendant, and then spread
// further upward from each reached leaf along down edges only through
// nodes that are neither a real branch point nor a merge point.
func propagateLabels(m *Map, order []string) error {
	for _, id := range order {
		rev := m.byID[id]
		if len(rev.branchLabels) == 0 {
			continue
		}
		labels := make([]string, 0, len(rev.branchLabels))
		for l := range rev.branchLabels {
			labels = append(labels, l)
		}

		// Walk from rev itself so the full descendant set (including rev)
		// is available for finding leaves, without re-adding rev's own
		// labels (already seeded in step 2).
		full, err := walk(m, []string{id}, allNextRevEdges)
		if err != nil {
			return err
		}
		for _, d := range full {
			if d == id {
				continue
			}
			target := m.byID[d]
			for _, l := range labels {
				target.effectiveLabels[l] = struct{}{}
			}
		}

		leaves := leavesOf(m, full)
		for _, leaf := range leaves {
			cur := leaf
			visited := make(map[string]bool)
			for {
				if visited[cur] {
					break
				}
				visited[cur] = true
				node := m.byID[cur]
				if node.IsRealBranchPoint() || node.IsMergePoint() {
					break
				}
				for _, l := range labels {
					node.effectiveLabels[l] = struct{}{}
				}
				if len(node.down) != 1 {
					break
				}
				cur = node.down[0]
			}
		}
	}
	return nil
}

// leavesOf returns the ids among a descendant-closure set that have no
// further forward edges of their own — the deepest points reached by a
// downward label spread.
func leavesOf(m *Map, ids []string) []string {
	var out []string
	for _, id := range ids {
		if len(m.byID[id].allNextRev) == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (m *Map) ByID(id string) (*Revision, bool) {
	r, ok := m.byID[id]
	return r, ok
}

func (m *Map) ByLabel(label string) (*Revision, bool) {
	r, ok := m.byLabel[label]
	return r, ok
}

func (m *Map) Len() int { return len(m.byID) }

func (m *Map) Heads() []string     { return append([]string(nil), m.heads...) }
func (m *Map) RealHeads() []string { return append([]string(nil), m.realHeads...) }
func (m *Map) Bases() []string     { return append([]string(nil), m.bases...) }
func (m *Map) RealBases() []string { return append([]string(nil), m.realBases...) }

// FilteredHeads returns the real heads carrying the given branch label,
// or RealHeads() when label is empty.
func (m *Map) FilteredHeads(label string) []string {
	if label == "" {
		return m.RealHeads()
	}
	var out []string
	for _, id := range m.realHeads {
		if _, ok := m.byID[id].effectiveLabels[label]; ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
