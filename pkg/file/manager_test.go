package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSManager_WriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewOSManager()

	t.Run("replaces_content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Header.tsx")
		require.NoError(t, os.WriteFile(path, []byte("a much longer original body"), 0644))

		require.NoError(t, m.WriteFileAtomic(ctx, path, []byte("short"), 0644))

		got, err := m.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))
		assertNoLeftovers(t, dir, "Header.tsx")
	})

	t.Run("applies_mode", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "script.sh")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

		require.NoError(t, m.WriteFileAtomic(ctx, path, []byte("#!/bin/sh\necho hi\n"), 0755))

		info, err := m.Stat(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("cleans_up_when_rename_fails", func(t *testing.T) {
		dir := t.TempDir()
		// a non-empty directory cannot be replaced by a file rename
		target := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

		err := m.WriteFileAtomic(ctx, target, []byte("content"), 0644)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "renaming temporary file")
		assertNoLeftovers(t, dir, "target")
	})

	t.Run("writes_through_symlink", func(t *testing.T) {
		dir := t.TempDir()
		realPath := filepath.Join(dir, "real.tsx")
		link := filepath.Join(dir, "Header.tsx")
		require.NoError(t, os.WriteFile(realPath, []byte("program"), 0644))
		if err := os.Symlink("real.tsx", link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		require.NoError(t, m.WriteFileAtomic(ctx, link, []byte("iset"), 0644))

		got, err := os.ReadFile(realPath)
		require.NoError(t, err)
		assert.Equal(t, "iset", string(got))

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink, "link should still be a symlink")
		assertNoLeftovers(t, dir, "real.tsx", "Header.tsx")
	})

	t.Run("read_only_target", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can write read-only files")
		}
		dir := t.TempDir()
		path := filepath.Join(dir, "Header.tsx")
		require.NoError(t, os.WriteFile(path, []byte("program"), 0444))

		err := m.WriteFileAtomic(ctx, path, []byte("iset"), 0444)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "program", string(got))
		assertNoLeftovers(t, dir, "Header.tsx")
	})

	t.Run("missing_directory", func(t *testing.T) {
		dir := t.TempDir()
		err := m.WriteFileAtomic(ctx, filepath.Join(dir, "nope", "file.txt"), []byte("x"), 0644)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating temporary file")
	})
}

func TestOSManager_ReadFile(t *testing.T) {
	ctx := context.Background()
	m := NewOSManager()

	_, err := m.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.Stat(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func assertNoLeftovers(t *testing.T, dir string, want ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, want, names, "only the target should remain in %s", dir)
}
