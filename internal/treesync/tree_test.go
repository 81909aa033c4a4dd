package treesync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTree_CopyDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	writeFile(t, filepath.Join(src, "a.md"), "new a")
	writeFile(t, filepath.Join(src, "nested", "b.md"), "b")
	writeFile(t, filepath.Join(dst, "a.md"), "old a")
	writeFile(t, filepath.Join(dst, "local.md"), "keep me")

	tree := New(filesystem.NewOSFileSystem())
	copied, err := tree.CopyDirectory(src, dst)
	require.NoError(t, err)
	assert.True(t, copied)

	assert.Equal(t, "new a", readFile(t, filepath.Join(dst, "a.md")))
	assert.Equal(t, "b", readFile(t, filepath.Join(dst, "nested", "b.md")))
	assert.Equal(t, "keep me", readFile(t, filepath.Join(dst, "local.md")), "copy is additive")
}

func TestTree_CopyDirectoryMissingSource(t *testing.T) {
	dir := t.TempDir()
	tree := New(filesystem.NewOSFileSystem())

	copied, err := tree.CopyDirectory(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.NoError(t, err)
	assert.False(t, copied)
	assert.NoDirExists(t, filepath.Join(dir, "dst"))
}

func TestTree_CopyDirectoryIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "x", "y.md"), "y")

	tree := New(filesystem.NewOSFileSystem())
	_, err := tree.CopyDirectory(src, dst)
	require.NoError(t, err)
	_, err = tree.CopyDirectory(src, dst)
	require.NoError(t, err)

	assert.Equal(t, "y", readFile(t, filepath.Join(dst, "x", "y.md")))
	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTree_CopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "CLAUDE.en.md")
	dst := filepath.Join(dir, "deep", "path", "CLAUDE.md")
	writeFile(t, src, "hello")

	tree := New(filesystem.NewOSFileSystem())
	copied, err := tree.CopyFile(src, dst)
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, "hello", readFile(t, dst))

	copied, err = tree.CopyFile(filepath.Join(dir, "missing.md"), dst)
	require.NoError(t, err)
	assert.False(t, copied)
	assert.Equal(t, "hello", readFile(t, dst))
}

func TestTree_CopyFilePreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh"), 0755))

	tree := New(filesystem.NewOSFileSystem())
	_, err := tree.CopyFile(src, filepath.Join(dir, "out", "run.sh"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "out", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestTree_CopyPathDispatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f.md"), "f")
	writeFile(t, filepath.Join(dir, "d", "g.md"), "g")

	tree := New(filesystem.NewOSFileSystem())
	_, err := tree.CopyPath(filepath.Join(dir, "f.md"), filepath.Join(dir, "out", "f.md"))
	require.NoError(t, err)
	_, err = tree.CopyPath(filepath.Join(dir, "d"), filepath.Join(dir, "out", "d"))
	require.NoError(t, err)

	assert.Equal(t, "f", readFile(t, filepath.Join(dir, "out", "f.md")))
	assert.Equal(t, "g", readFile(t, filepath.Join(dir, "out", "d", "g.md")))
}

func TestTree_RemoveDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "d", "e", "f.md"), "x")

	tree := New(filesystem.NewOSFileSystem())
	require.NoError(t, tree.RemoveDirectory(filepath.Join(dir, "d")))
	assert.NoDirExists(t, filepath.Join(dir, "d"))

	require.NoError(t, tree.RemoveDirectory(filepath.Join(dir, "d")), "second removal is a no-op")
}

func TestTree_PruneEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	writeFile(t, filepath.Join(dir, "full", "x"), "x")

	tree := New(filesystem.NewOSFileSystem())
	require.NoError(t, tree.PruneEmpty(filepath.Join(dir, "empty")))
	require.NoError(t, tree.PruneEmpty(filepath.Join(dir, "full")))
	require.NoError(t, tree.PruneEmpty(filepath.Join(dir, "absent")))

	assert.NoDirExists(t, filepath.Join(dir, "empty"))
	assert.DirExists(t, filepath.Join(dir, "full"))
}

func TestIOFailure(t *testing.T) {
	assert.NoError(t, ioFailure(nil, "copy %s", "a"))

	err := ioFailure(os.ErrPermission, "copy %s", "a")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
	assert.Contains(t, err.Error(), "copy a")
}
