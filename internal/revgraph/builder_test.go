package revgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioInputs builds the worked example from the engine's testable
// properties: A(root) <- B <- C, B <- D, a side chain E(root) <- F, and
// D declaring a dependency on F.
func scenarioInputs() []RevisionInput {
	return []RevisionInput{
		{ID: "a"},
		{ID: "b", Down: []string{"a"}},
		{ID: "c", Down: []string{"b"}},
		{ID: "d", Down: []string{"b"}, Deps: []string{"f"}},
		{ID: "e"},
		{ID: "f", Down: []string{"e"}},
	}
}

func TestBuildScenarioHeadsAndBases(t *testing.T) {
	m, err := BuildFromInputs(scenarioInputs())
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d"}, m.Heads())
	assert.Equal(t, []string{"c", "d"}, m.RealHeads())
	assert.Equal(t, []string{"a", "e"}, m.Bases())
	assert.Equal(t, []string{"a", "e"}, m.RealBases())

	d, ok := m.ByID("d")
	require.True(t, ok)
	assert.Equal(t, []string{"f"}, d.NormalizedDeps())
}

func TestBuildDuplicateIDKeepsFirst(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "a", Doc: "first"},
		{ID: "a", Doc: "second"},
	})
	require.NoError(t, err)
	rev, ok := m.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "first", rev.Doc())
}

func TestBuildBranchLabelCollision(t *testing.T) {
	_, err := BuildFromInputs([]RevisionInput{
		{ID: "a"},
		{ID: "b", BranchLabels: []string{"a"}},
	})
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindRevisionError, re.Kind)
}

func TestBuildSelfLoopFatal(t *testing.T) {
	_, err := BuildFromInputs([]RevisionInput{
		{ID: "x", Down: []string{"x"}},
	})
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsLoopDetected())
	assert.Equal(t, []string{"x"}, re.IDs)
}

func TestBuildCycleDetected(t *testing.T) {
	_, err := BuildFromInputs([]RevisionInput{
		{ID: "x", Down: []string{"y"}},
		{ID: "y", Down: []string{"x"}},
	})
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsCycleDetected())
	assert.ElementsMatch(t, []string{"x", "y"}, re.IDs)
}

func TestBuildDependencyCycleDetected(t *testing.T) {
	_, err := BuildFromInputs([]RevisionInput{
		{ID: "x"},
		{ID: "y", Deps: []string{"x"}},
		{ID: "z", Down: []string{"y"}, Deps: []string{"x"}},
	})
	require.NoError(t, err)

	_, err = BuildFromInputs([]RevisionInput{
		{ID: "x", Deps: []string{"y"}},
		{ID: "y", Deps: []string{"x"}},
	})
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsDependencyCycleDetected())
}

func TestBuildDanglingReferenceWarnedNotFatal(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "a", Down: []string{"missing"}},
	})
	require.NoError(t, err)
	a, ok := m.ByID("a")
	require.True(t, ok)
	assert.True(t, a.IsBase() == false || len(a.Down()) == 1)
}

func TestLabelPropagationDownwardAndUpward(t *testing.T) {
	// h <- m <- t, label "label" declared on h; propagation should reach
	// every descendant, and the upward leak from the deepest leaf should
	// re-touch the unbranched chain back up to h.
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "h", BranchLabels: []string{"label"}},
		{ID: "m", Down: []string{"h"}},
		{ID: "t", Down: []string{"m"}},
	})
	require.NoError(t, err)

	for _, id := range []string{"h", "m", "t"} {
		rev, ok := m.ByID(id)
		require.True(t, ok)
		assert.Contains(t, rev.EffectiveLabels(), "label", "revision %q should carry propagated label", id)
	}
}

func TestLabelPropagationReachesEveryChildOfBranchPoint(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "root", BranchLabels: []string{"label"}},
		{ID: "left", Down: []string{"root"}},
		{ID: "right", Down: []string{"root"}},
	})
	require.NoError(t, err)

	root, _ := m.ByID("root")
	left, _ := m.ByID("left")
	right, _ := m.ByID("right")

	assert.Contains(t, root.EffectiveLabels(), "label")
	assert.Contains(t, left.EffectiveLabels(), "label")
	assert.Contains(t, right.EffectiveLabels(), "label")
}
