package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
}

func TestCasesGlobsRootAndSubdirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "lmrtest.yml"))
	touch(t, filepath.Join(root, "cone20", "lmrtest.yml"))
	touch(t, filepath.Join(root, "convex-corner", "lmrtest.yaml"))
	touch(t, filepath.Join(root, "convex-corner", "notes.txt"))

	paths, err := Cases(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("cone20", "lmrtest.yml"),
		filepath.Join("convex-corner", "lmrtest.yaml"),
		"lmrtest.yml",
	}, paths)
}

func TestCasesNoneFound(t *testing.T) {
	_, err := Cases(t.TempDir(), nil)
	require.ErrorIs(t, err, ErrNoCases)
}

func TestCasesExplicitOrderPreserved(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "lmrtest.yml"))
	touch(t, filepath.Join(root, "b", "lmrtest.yml"))

	paths, err := Cases(root, []string{
		filepath.Join("b", "lmrtest.yml"),
		filepath.Join("a", "lmrtest.yml"),
		filepath.Join("b", "lmrtest.yml"), // duplicate collapsed
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("b", "lmrtest.yml"),
		filepath.Join("a", "lmrtest.yml"),
	}, paths)
}

func TestCasesExplicitDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "cone20", "lmrtest.yml"))

	paths, err := Cases(root, []string{"cone20"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("cone20", "lmrtest.yml")}, paths)
}

func TestCasesExplicitMissing(t *testing.T) {
	_, err := Cases(t.TempDir(), []string{"ghost/lmrtest.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCasesExplicitDirectoryWithoutCaseFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	_, err := Cases(root, []string{"empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no lmrtest.yml")
}
