package revgraph

import "sort"

// Resolver maps a parsed identifier, plus the caller's current stamp
// context, to concrete revisions.
type Resolver struct {
	m *Map
}

func NewResolver(m *Map) *Resolver {
	return &Resolver{m: m}
}

// Resolve handles every absolute-form identifier. Relative-form
// identifiers are not resolvable in isolation — they require a walk
// anchored at a starting point — and are instead handled by the
// planners via ResolveRelative.
func (r *Resolver) Resolve(p *ParsedIdentifier, current []string) ([]*Revision, error) {
	if p == nil {
		return nil, nil
	}
	if p.Relative != nil {
		return nil, newRevisionErr("relative identifiers must be resolved against an anchor, not via Resolve")
	}
	abs := p.Absolute

	switch abs.Token {
	case "", "base", "null":
		return nil, nil

	case "head":
		heads := r.m.FilteredHeads(abs.Branch)
		if len(heads) == 0 {
			return nil, nil
		}
		if len(heads) > 1 {
			return nil, newMultipleHeadsErr(heads, "head")
		}
		return []*Revision{r.m.byID[heads[0]]}, nil

	case "heads":
		heads := r.m.FilteredHeads(abs.Branch)
		out := make([]*Revision, 0, len(heads))
		for _, h := range heads {
			out = append(out, r.m.byID[h])
		}
		return out, nil

	case "current":
		out := make([]*Revision, 0, len(current))
		for _, id := range current {
			rev, ok := r.m.byID[id]
			if !ok {
				return nil, newResolutionErr(id, "current stamp %q does not name a known revision", id)
			}
			out = append(out, rev)
		}
		return out, nil

	default:
		rev, err := r.resolveToken(abs.Token)
		if err != nil {
			return nil, err
		}
		if abs.Branch != "" {
			branchRev, err := r.branchRevision(abs.Branch)
			if err != nil {
				return nil, err
			}
			if !r.m.shareLineage(rev.id, branchRev.id) {
				return nil, newResolutionErr(abs.Token, "revision %q is not a member of branch %q", rev.id, abs.Branch)
			}
		}
		return []*Revision{rev}, nil
	}
}

func (r *Resolver) branchRevision(label string) (*Revision, error) {
	if rev, ok := r.m.byLabel[label]; ok {
		return rev, nil
	}
	if rev, ok := r.m.byID[label]; ok {
		return rev, nil
	}
	return nil, newResolutionErr(label, "unknown branch label %q", label)
}

// resolveToken looks up an id exactly, then as a unique prefix of at
// least four characters.
func (r *Resolver) resolveToken(token string) (*Revision, error) {
	if rev, ok := r.m.byID[token]; ok {
		return rev, nil
	}
	if rev, ok := r.m.byLabel[token]; ok {
		return rev, nil
	}
	if len(token) < 4 {
		return nil, newResolutionErr(token, "partial revision identifier %q must have at least four characters", token)
	}

	matches := r.m.prefixMatches(token)
	switch len(matches) {
	case 0:
		return nil, newResolutionErr(token, "no revision found matching %q", token)
	case 1:
		return r.m.byID[matches[0]], nil
	default:
		return nil, newAmbiguousErr(token, matches)
	}
}

// prefixMatches returns every known id starting with prefix, using the
// maintained sorted id index (sort.Search over a sorted slice) rather
// than a linear scan or a trie library.
func (m *Map) prefixMatches(prefix string) []string {
	lo := sort.SearchStrings(m.sortedIDs, prefix)
	var out []string
	for i := lo; i < len(m.sortedIDs); i++ {
		if !hasPrefix(m.sortedIDs[i], prefix) {
			break
		}
		out = append(out, m.sortedIDs[i])
	}
	return out
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// shareLineage reports whether a and b are the same revision or one is
// an ancestor/descendant of the other under the full view.
func (m *Map) shareLineage(a, b string) bool {
	if a == b {
		return true
	}
	anc, err := walk(m, []string{a}, fullEdges)
	if err == nil {
		for _, id := range anc {
			if id == b {
				return true
			}
		}
	}
	desc, err := walk(m, []string{a}, allNextRevEdges)
	if err == nil {
		for _, id := range desc {
			if id == b {
				return true
			}
		}
	}
	return false
}

// ResolveRelative resolves a relative-form identifier against an anchor
// revision id, walking Offset steps up (Offset > 0, via nextrev edges) or
// down (Offset < 0, via down edges). Walking up across a branch point
// or down across a merge point is fatal, as is walking past either end
// of the graph.
func ResolveRelative(m *Map, anchor string, offset int) (*Revision, error) {
	cur := anchor
	if offset > 0 {
		for i := 0; i < offset; i++ {
			rev, ok := m.byID[cur]
			if !ok {
				return nil, newRevisionErr("broken map: revision %q referenced but not present", cur)
			}
			if rev.IsBranchPoint() {
				return nil, newRevisionErr("cannot walk up across branch point %q", cur)
			}
			next := rev.NextRev()
			if len(next) == 0 {
				return nil, newRevisionErr("walked too far: %q has no further revisions to walk up to", cur)
			}
			cur = next[0]
		}
	} else if offset < 0 {
		for i := 0; i < -offset; i++ {
			rev, ok := m.byID[cur]
			if !ok {
				return nil, newRevisionErr("broken map: revision %q referenced but not present", cur)
			}
			if rev.IsMergePoint() {
				return nil, newRevisionErr("cannot walk down across merge point %q", cur)
			}
			if len(rev.down) == 0 {
				return nil, newRevisionErr("walked too far: %q has no further revisions to walk down to", cur)
			}
			cur = rev.down[0]
		}
	}
	rev, ok := m.byID[cur]
	if !ok {
		return nil, newRevisionErr("broken map: revision %q referenced but not present", cur)
	}
	return rev, nil
}

// ResolveAnchor picks the starting point for a relative walk: the named
// symbol if present, resolved via Resolve against current context;
// otherwise the single element of current (fatal if current does not
// hold exactly one revision, since a relative offset with no symbol
// needs an unambiguous starting point).
func (r *Resolver) ResolveAnchor(rel *RelativeOffset, current []string) (string, error) {
	if rel.Symbol != "" {
		parsed, err := ParseIdentifier(rel.Symbol)
		if err != nil {
			return "", err
		}
		if rel.Branch != "" && parsed.Absolute != nil {
			parsed.Absolute.Branch = rel.Branch
		}
		revs, err := r.Resolve(parsed, current)
		if err != nil {
			return "", err
		}
		if len(revs) != 1 {
			return "", newRevisionErr("relative identifier anchor %q does not resolve to a single revision", rel.Symbol)
		}
		return revs[0].id, nil
	}
	if len(current) != 1 {
		return "", newRevisionErr("ambiguous relative offset: no anchor symbol and context holds %d revisions, not 1", len(current))
	}
	return current[0], nil
}
