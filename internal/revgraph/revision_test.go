package revgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      RevisionInput
		wantErr ErrorKind
		ok      bool
	}{
		{name: "valid", in: RevisionInput{ID: "abc123"}, ok: true},
		{name: "empty id", in: RevisionInput{ID: ""}, wantErr: KindRevisionError},
		{name: "illegal char at", in: RevisionInput{ID: "a@b"}, wantErr: KindRevisionError},
		{name: "illegal char dash", in: RevisionInput{ID: "a-b"}, wantErr: KindRevisionError},
		{name: "illegal char plus", in: RevisionInput{ID: "a+b"}, wantErr: KindRevisionError},
		{name: "self down loop", in: RevisionInput{ID: "x", Down: []string{"x"}}, wantErr: KindLoopDetected},
		{name: "self dep loop", in: RevisionInput{ID: "x", Deps: []string{"x"}}, wantErr: KindDependencyLoopDetected},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.validate()
			if c.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var re *Error
			require.ErrorAs(t, err, &re)
			assert.Equal(t, c.wantErr, re.Kind)
		})
	}
}

func TestRevisionPredicates(t *testing.T) {
	m, err := BuildFromInputs([]RevisionInput{
		{ID: "a"},
		{ID: "b", Down: []string{"a"}},
		{ID: "c", Down: []string{"a"}},
	})
	require.NoError(t, err)

	a, _ := m.ByID("a")
	b, _ := m.ByID("b")

	assert.True(t, a.IsBase())
	assert.True(t, a.IsRealBase())
	assert.False(t, a.IsHead())
	assert.True(t, a.IsBranchPoint())
	assert.True(t, a.IsRealBranchPoint())

	assert.False(t, b.IsBase())
	assert.True(t, b.IsHead())
	assert.True(t, b.IsRealHead())
	assert.False(t, b.IsMergePoint())
}
