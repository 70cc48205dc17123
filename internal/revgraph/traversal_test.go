package revgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologicalSortOrdersAncestorsFirst(t *testing.T) {
	m, err := BuildFromInputs(scenarioInputs())
	require.NoError(t, err)

	ids := []string{"a", "b", "c", "d", "e", "f"}
	order, err := topologicalSort(m, ids)
	require.NoError(t, err)
	require.Len(t, order, len(ids))

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
	assert.Less(t, pos["b"], pos["d"])
	assert.Less(t, pos["e"], pos["f"])
	assert.Less(t, pos["f"], pos["d"])
}

func TestTopologicalSortIsDeterministic(t *testing.T) {
	m, err := BuildFromInputs(scenarioInputs())
	require.NoError(t, err)

	first, err := topologicalSort(m, []string{"a", "e", "b", "f", "c", "d"})
	require.NoError(t, err)
	second, err := topologicalSort(m, []string{"f", "e", "d", "c", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWalkReturnsEachNodeOnce(t *testing.T) {
	m, err := BuildFromInputs(scenarioInputs())
	require.NoError(t, err)

	reached, err := walk(m, []string{"c", "d"}, fullEdges)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f"}, reached)
}

func TestWalkBrokenMapError(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{{ID: "a"}})
	require.NoError(t, err)

	_, err = walk(m, []string{"missing"}, downEdges)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsRevisionError())
}
