package revgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePartialPrefix(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "abcdef"},
		{ID: "abcxyz"},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("ab")
	require.NoError(t, err)
	_, err = r.Resolve(p, nil)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsResolutionError())

	p, err = ParseIdentifier("abcd")
	require.NoError(t, err)
	revs, err := r.Resolve(p, nil)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "abcdef", revs[0].ID())
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "abcd1111"},
		{ID: "abcd2222"},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("abcd")
	require.NoError(t, err)
	_, err = r.Resolve(p, nil)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsResolutionError())
	assert.ElementsMatch(t, []string{"abcd1111", "abcd2222"}, re.Candidates)
}

func TestResolveBranchQualifiedAmbiguousPrefixDoesNotNarrow(t *testing.T) {
	// abcd1111 carries branch label featA; abcd2222 sits on an unrelated
	// base and shares no lineage with it. Per spec.md §4.3, ambiguity is
	// raised on the bare prefix match before the branch-lineage check
	// ever runs, so qualifying the query with @featA does not narrow the
	// prefix match down to the single in-lineage candidate.
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "z"},
		{ID: "abcd1111", Down: []string{"z"}, BranchLabels: []string{"featA"}},
		{ID: "abcd2222"},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("featA@abcd")
	require.NoError(t, err)
	require.NotNil(t, p.Absolute)
	assert.Equal(t, "featA", p.Absolute.Branch)
	assert.Equal(t, "abcd", p.Absolute.Token)

	_, err = r.Resolve(p, nil)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsResolutionError())
	assert.ElementsMatch(t, []string{"abcd1111", "abcd2222"}, re.Candidates)
}

func TestResolveHeadSingular(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "a"},
		{ID: "b", Down: []string{"a"}},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("head")
	require.NoError(t, err)
	revs, err := r.Resolve(p, nil)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "b", revs[0].ID())
}

func TestResolveHeadMultipleHeadsError(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "a"},
		{ID: "b", Down: []string{"a"}},
		{ID: "c", Down: []string{"a"}},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("head")
	require.NoError(t, err)
	_, err = r.Resolve(p, nil)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsMultipleHeads())
	assert.ElementsMatch(t, []string{"b", "c"}, re.Heads)
}

func TestResolveRelativeWalksDown(t *testing.T) {
	// label points into a 3-node chain h <- m <- t; head-2 should land on h.
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "h", BranchLabels: []string{"label"}},
		{ID: "m", Down: []string{"h"}},
		{ID: "t", Down: []string{"m"}},
	})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("label@head-2")
	require.NoError(t, err)
	require.NotNil(t, p.Relative)

	anchor, err := r.ResolveAnchor(p.Relative, nil)
	require.NoError(t, err)
	assert.Equal(t, "t", anchor)

	rev, err := ResolveRelative(m, anchor, p.Relative.Offset)
	require.NoError(t, err)
	assert.Equal(t, "h", rev.ID())
}

func TestResolveBase(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{{ID: "a"}})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("base")
	require.NoError(t, err)
	revs, err := r.Resolve(p, nil)
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func TestResolveCurrentToken(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{{ID: "a"}, {ID: "b", Down: []string{"a"}}})
	require.NoError(t, err)
	r := NewResolver(m)

	p, err := ParseIdentifier("current")
	require.NoError(t, err)
	revs, err := r.Resolve(p, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, revs, 2)
}
