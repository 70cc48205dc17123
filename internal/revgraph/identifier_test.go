package revgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifierAbsolute(t *testing.T) {
	cases := []struct {
		in, wantBranch, wantToken string
	}{
		{"head", "", "head"},
		{"heads", "", "heads"},
		{"base", "", "base"},
		{"current", "", "current"},
		{"abc123", "", "abc123"},
		{"mybranch@abc123", "mybranch", "abc123"},
		{"mybranch@head", "mybranch", "head"},
	}
	for _, c := range cases {
		p, err := ParseIdentifier(c.in)
		require.NoError(t, err)
		require.NotNil(t, p.Absolute)
		assert.Equal(t, c.wantBranch, p.Absolute.Branch)
		assert.Equal(t, c.wantToken, p.Absolute.Token)
	}
}

func TestParseIdentifierRelative(t *testing.T) {
	cases := []struct {
		in         string
		wantSymbol string
		wantOffset int
		wantBranch string
	}{
		{"head-2", "head", -2, ""},
		{"+1", "", 1, ""},
		{"-3", "", -3, ""},
		{"mybranch@head-2", "head", -2, "mybranch"},
		{"current+1", "current", 1, ""},
	}
	for _, c := range cases {
		p, err := ParseIdentifier(c.in)
		require.NoError(t, err)
		require.NotNil(t, p.Relative)
		assert.Equal(t, c.wantSymbol, p.Relative.Symbol)
		assert.Equal(t, c.wantOffset, p.Relative.Offset)
		assert.Equal(t, c.wantBranch, p.Relative.Branch)
	}
}

func TestParseIdentifiersShapes(t *testing.T) {
	p, err := ParseIdentifiers(nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParseIdentifiers("abc123")
	require.NoError(t, err)
	require.Len(t, p, 1)

	p, err = ParseIdentifiers([]string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, p, 2)

	_, err = ParseIdentifiers(42)
	require.Error(t, err)
	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindRevisionError, re.Kind)
}
