package revgraph

import "sort"

// EdgeSelector maps a revision to the ids reachable from it along one
// particular edge set. walk and topologicalSort are both parameterized
// by one of these so the same traversal code drives every view of the
// graph the engine exposes.
type EdgeSelector func(r *Revision) []string

func downEdges(r *Revision) []string { return r.down }

func fullEdges(r *Revision) []string {
	out := make([]string, 0, len(r.down)+len(r.resolvedDeps))
	out = append(out, r.down...)
	out = append(out, r.resolvedDeps...)
	return out
}

func normalizedEdges(r *Revision) []string {
	out := make([]string, 0, len(r.down)+len(r.normalizedDeps))
	out = append(out, r.down...)
	out = append(out, r.normalizedDeps...)
	return out
}

func nextRevEdges(r *Revision) []string    { return sortedKeys(r.nextRev) }
func allNextRevEdges(r *Revision) []string { return sortedKeys(r.allNextRev) }

// walk performs an iterative DFS from starts following edges, visiting
// each reachable revision exactly once. It fails with a RevisionError if
// edges names an id absent from the map ("broken map").
func walk(m *Map, starts []string, edges EdgeSelector) ([]string, error) {
	visited := make(map[string]bool, len(m.byID))
	order := make([]string, 0, len(m.byID))

	for _, s := range starts {
		if visited[s] {
			continue
		}
		stack := []string{s}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true
			order = append(order, id)

			rev, ok := m.byID[id]
			if !ok {
				return nil, newRevisionErr("broken map: revision %q referenced but not present", id)
			}
			next := append([]string(nil), edges(rev)...)
			sort.Sort(sort.Reverse(sort.StringSlice(next)))
			for _, n := range next {
				if !visited[n] {
					stack = append(stack, n)
				}
			}
		}
	}
	return order, nil
}

// walkChecked behaves like walk but additionally reports a RevisionError
// if two distinct starting revisions' reachability sets overlap on any
// non-start node — an ambiguous-range check over a union of
// independently-walked starts. Upgrade and Downgrade do not call it.
func walkChecked(m *Map, starts []string, edges EdgeSelector) ([]string, error) {
	startSet := make(map[string]bool, len(starts))
	for _, s := range starts {
		startSet[s] = true
	}

	seenBy := make(map[string]string)
	var all []string
	for _, s := range starts {
		reached, err := walk(m, []string{s}, edges)
		if err != nil {
			return nil, err
		}
		for _, id := range reached {
			if owner, ok := seenBy[id]; ok && owner != s && !startSet[id] {
				return nil, newRevisionErr("ambiguous range: revision %q is reachable from both %q and %q", id, owner, s)
			}
			if _, ok := seenBy[id]; !ok {
				seenBy[id] = s
				all = append(all, id)
			}
		}
	}
	return all, nil
}

// ancestors returns every revision reachable from start via edges,
// excluding start itself.
func ancestors(m *Map, start string, edges EdgeSelector) ([]string, error) {
	rev, ok := m.byID[start]
	if !ok {
		return nil, newRevisionErr("broken map: revision %q referenced but not present", start)
	}
	reached, err := walk(m, edges(rev), edges)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(reached))
	for _, id := range reached {
		if id != start {
			out = append(out, id)
		}
	}
	return out, nil
}

// ancestorsOfSet unions ancestors(start, edges) ∪ {start} over every id
// in starts.
func ancestorsOfSet(m *Map, starts []string, edges EdgeSelector) ([]string, error) {
	reached, err := walk(m, starts, edges)
	if err != nil {
		return nil, err
	}
	return reached, nil
}

// topologicalSort returns a deterministic Kahn-style ordering of ids,
// respecting down ∪ resolvedDeps edges restricted to the given id set;
// ties are broken lexicographically. Edges that leave the set are
// ignored, since planners call this on a frontier of "needed" ids whose
// ancestors outside the set are assumed already applied.
func topologicalSort(m *Map, ids []string) ([]string, error) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	inDegree := make(map[string]int, len(ids))
	successors := make(map[string][]string, len(ids))
	for _, id := range ids {
		inDegree[id] = 0
	}
	for _, id := range ids {
		rev, ok := m.byID[id]
		if !ok {
			return nil, newRevisionErr("broken map: revision %q referenced but not present", id)
		}
		for _, p := range fullEdges(rev) {
			if idSet[p] {
				successors[p] = append(successors[p], id)
				inDegree[id]++
			}
		}
	}

	ready := make([]string, 0, len(ids))
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	result := make([]string, 0, len(ids))
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		result = append(result, next)

		succs := append([]string(nil), successors[next]...)
		sort.Strings(succs)
		for _, s := range succs {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if len(result) != len(ids) {
		return nil, newRevisionErr("cycle detected while computing topological order")
	}
	return result, nil
}
