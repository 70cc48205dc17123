package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadParsesTomlAndYaml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", `id = "a"`+"\n")
	writeFile(t, dir, "b.yaml", "id: b\ndown: [a]\n")

	inputs, failures := Load(context.Background(), dir)
	assert.Empty(t, failures)
	require.Len(t, inputs, 2)

	byID := map[string]bool{}
	for _, in := range inputs {
		byID[in.ID] = true
	}
	assert.True(t, byID["a"])
	assert.True(t, byID["b"])
}

func TestLoadCollectsErrorsWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.toml", `id = "good"`+"\n")
	writeFile(t, dir, "bad.toml", `not valid toml {{{`)

	inputs, failures := Load(context.Background(), dir)
	require.Len(t, inputs, 1)
	assert.Equal(t, "good", inputs[0].ID)
	require.Len(t, failures, 1)

	var perr *ParseError
	require.ErrorAs(t, failures[0], &perr)
	assert.Contains(t, perr.Path, "bad.toml")
}

func TestLoadIgnoresNonManifestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", `id = "a"`+"\n")
	writeFile(t, dir, "README.md", "not a manifest")

	inputs, failures := Load(context.Background(), dir)
	assert.Empty(t, failures)
	require.Len(t, inputs, 1)
}

func TestLoadMissingIDIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "noid.toml", `doc = "missing id"`+"\n")

	inputs, failures := Load(context.Background(), dir)
	assert.Empty(t, inputs)
	require.Len(t, failures, 1)
}
