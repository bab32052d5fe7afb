package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtosync/VirtoLang/source"
)

func TestLoader_ResolveStringPathRelativeToImportingDir(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "helpers.vlang")
	require.NoError(t, os.WriteFile(lib, []byte("x = 1"), 0o644))

	l := New(source.NewFileSet())
	path, err := l.Resolve("./helpers.vlang", true, dir)
	require.NoError(t, err)
	assert.Equal(t, lib, path)
}

func TestLoader_ResolveBareNameViaSearchPaths(t *testing.T) {
	libRoot := t.TempDir()
	modPath := filepath.Join(libRoot, "mathx.vlang")
	require.NoError(t, os.WriteFile(modPath, []byte("pi = 3"), 0o644))

	importingDir := t.TempDir()
	l := New(source.NewFileSet(), libRoot)
	path, err := l.Resolve("mathx", false, importingDir)
	require.NoError(t, err)
	assert.Equal(t, modPath, path)
}

func TestLoader_ResolveMissingModuleErrors(t *testing.T) {
	l := New(source.NewFileSet())
	_, err := l.Resolve("nope", false, t.TempDir())
	assert.Error(t, err)
}

func TestLoader_ParseRejectsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.vlang")
	require.NoError(t, os.WriteFile(bad, []byte("def ("), 0o644))

	l := New(source.NewFileSet())
	_, _, err := l.Parse(bad)
	assert.Error(t, err)
}

func TestLoader_BeginCachesAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.vlang")

	l := New(source.NewFileSet())
	frame1, cached1 := l.Begin(path, nil)
	require.False(t, cached1)
	l.Finish(path, nil)

	frame2, cached2 := l.Begin(path, nil)
	assert.True(t, cached2)
	assert.Same(t, frame1, frame2)
}

func TestLoader_BeginToleratesCircularImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cyclic.vlang")

	l := New(source.NewFileSet())
	frame, cached := l.Begin(path, nil)
	require.False(t, cached)
	// A second Begin before Finish simulates module B importing back into
	// still-loading module A: it must return the same (partial) frame
	// rather than erroring or deadlocking.
	again, cached2 := l.Begin(path, nil)
	assert.True(t, cached2)
	assert.Same(t, frame, again)
}
