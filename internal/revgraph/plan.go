package revgraph

import "sort"

// PlanOptions controls the inclusive/implicit-base flags shared by both
// planners.
type PlanOptions struct {
	Inclusive    bool
	ImplicitBase bool
}

// Upgrade computes the topologically ordered sequence of revision ids to
// apply in order to move from lower to upper.
//
// upper may be any identifier form; a relative upper is resolved by
// walking up from lower (which must then name exactly one revision,
// unless the relative form carries its own anchor symbol).
func Upgrade(m *Map, lower, upper *ParsedIdentifier, lowerStamps []string, opts PlanOptions) ([]string, error) {
	r := NewResolver(m)

	targets, err := resolveSide(m, r, upper, lowerStamps)
	if err != nil {
		return nil, err
	}

	if upper != nil && upper.Absolute != nil && upper.Absolute.Branch != "" {
		label := upper.Absolute.Branch
		targets = filterByLabel(targets, label)
	}

	lowerRevs, err := resolveSide(m, r, lower, lowerStamps)
	if err != nil {
		return nil, err
	}
	lowerIDs := idsOf(lowerRevs)

	// Ancestry queries walk the normalized view so a dependency already
	// implied by another predecessor isn't counted as a separate reason
	// to revisit a revision.
	required, err := closure(m, idsOf(targets), normalizedEdges)
	if err != nil {
		return nil, err
	}
	current, err := closure(m, lowerIDs, normalizedEdges)
	if err != nil {
		return nil, err
	}

	needs := setMinus(required, current)
	if opts.Inclusive {
		needs = setUnion(needs, lowerIDs)
	}
	if len(lowerIDs) > 0 && !opts.ImplicitBase {
		desc, err := closure(m, lowerIDs, nextRevEdges)
		if err != nil {
			return nil, err
		}
		needs = setIntersect(needs, desc)
	}

	return topologicalSort(m, mapKeys(needs))
}

// Downgrade computes the reverse-topologically ordered sequence of
// revision ids to revert in order to move from upper down to target.
func Downgrade(m *Map, upper, target *ParsedIdentifier, upperStamps []string, opts PlanOptions) ([]string, error) {
	r := NewResolver(m)

	upperRevs, err := resolveSide(m, r, upper, upperStamps)
	if err != nil {
		return nil, err
	}
	upperIDs := idsOf(upperRevs)

	targetRevs, targetIsBase, err := resolveTarget(m, r, target, upperStamps)
	if err != nil {
		return nil, err
	}

	var roots []string
	switch {
	case targetIsBase:
		roots = m.RealBases()
	case opts.Inclusive:
		roots = idsOf(targetRevs)
	default:
		for _, t := range targetRevs {
			roots = append(roots, t.NextRev()...)
		}
	}

	if target != nil && target.Absolute != nil && target.Absolute.Branch != "" && len(targetRevs) > 0 {
		branchRev, err := r.branchRevision(target.Absolute.Branch)
		if err == nil {
			lineage, lerr := closure(m, []string{branchRev.id}, normalizedEdges)
			if lerr == nil {
				roots = setIntersectSlice(roots, append(mapKeys(lineage), branchRev.id))
			}
		}
	}

	descFull, err := closure(m, roots, allNextRevEdges)
	if err != nil {
		return nil, err
	}
	ancFull, err := closure(m, upperIDs, normalizedEdges)
	if err != nil {
		return nil, err
	}
	drop := setIntersect(descFull, ancFull)
	if len(drop) == 0 {
		lowerName, upperName := "", ""
		if len(targetRevs) > 0 {
			lowerName = targetRevs[0].id
		}
		if len(upperRevs) > 0 {
			upperName = upperRevs[0].id
		}
		return nil, newRangeErr(lowerName, upperName)
	}

	if opts.ImplicitBase {
		upperSet := make(map[string]bool, len(upperIDs))
		for _, id := range upperIDs {
			upperSet[id] = true
		}
		kept, err := closure(m, mapKeys(setMinus(upperSet, drop)), normalizedEdges)
		if err != nil {
			return nil, err
		}
		for id := range m.byID {
			if !kept[id] && !drop[id] {
				drop[id] = true
			}
		}
	}

	ordered, err := topologicalSort(m, mapKeys(drop))
	if err != nil {
		return nil, err
	}
	reverse(ordered)
	return ordered, nil
}

// resolveSide resolves one side of a plan request: an absolute
// identifier resolves directly; a relative one is anchored against the
// stamp context and walked.
func resolveSide(m *Map, r *Resolver, p *ParsedIdentifier, stamps []string) ([]*Revision, error) {
	if p == nil {
		var out []*Revision
		for _, s := range stamps {
			if rev, ok := m.byID[s]; ok {
				out = append(out, rev)
			}
		}
		return out, nil
	}
	if p.Relative != nil {
		anchor, err := r.ResolveAnchor(p.Relative, stamps)
		if err != nil {
			return nil, err
		}
		rev, err := ResolveRelative(m, anchor, p.Relative.Offset)
		if err != nil {
			return nil, err
		}
		return []*Revision{rev}, nil
	}
	return r.Resolve(p, stamps)
}

// resolveTarget is resolveSide specialized for the downgrade target,
// which additionally recognizes the bare "base" token as dropping every
// real base rather than resolving to zero revisions.
func resolveTarget(m *Map, r *Resolver, p *ParsedIdentifier, stamps []string) ([]*Revision, bool, error) {
	if p != nil && p.Absolute != nil && p.Absolute.Token == "base" {
		return nil, true, nil
	}
	revs, err := resolveSide(m, r, p, stamps)
	return revs, false, err
}

func idsOf(revs []*Revision) []string {
	out := make([]string, 0, len(revs))
	for _, r := range revs {
		out = append(out, r.id)
	}
	return out
}

func filterByLabel(revs []*Revision, label string) []*Revision {
	var out []*Revision
	for _, r := range revs {
		if _, ok := r.effectiveLabels[label]; ok {
			out = append(out, r)
		}
	}
	return out
}

// closure returns the set of ids in starts together with everything
// reachable from them via edges.
func closure(m *Map, starts []string, edges EdgeSelector) (map[string]bool, error) {
	reached, err := walk(m, starts, edges)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(reached))
	for _, id := range reached {
		out[id] = true
	}
	return out, nil
}

func setMinus(a map[string]bool, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a))
	for id := range a {
		if !b[id] {
			out[id] = true
		}
	}
	return out
}

func setUnion(a map[string]bool, ids []string) map[string]bool {
	out := make(map[string]bool, len(a)+len(ids))
	for id := range a {
		out[id] = true
	}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func setIntersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for id := range a {
		if b[id] {
			out[id] = true
		}
	}
	return out
}

func setIntersectSlice(ids []string, allowed []string) []string {
	allow := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allow[id] = true
	}
	var out []string
	for _, id := range ids {
		if allow[id] {
			out = append(out, id)
		}
	}
	return out
}

func mapKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
