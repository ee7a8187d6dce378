package adapters

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
)

// buildZip writes a zip with the given name/content entries. Names ending
// in "/" become directory markers.
func buildZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestZipAdapter(t *testing.T) {
	ctx := t.Context()
	adapter := NewZipAdapter()

	t.Run("list reports members and directory markers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.zip")
		buildZip(t, path, map[string]string{
			"docs/":          "",
			"docs/readme.md": "readme",
			"a.txt":          "alpha",
		})

		members, err := adapter.List(ctx, path)
		require.NoError(t, err)
		require.Len(t, members, 3)

		byPath := make(map[string]engine.Member, len(members))
		for _, m := range members {
			byPath[m.RelPath] = m
		}
		assert.True(t, byPath["docs"].IsDir)
		assert.False(t, byPath["docs/readme.md"].IsDir)
		assert.Equal(t, int64(len("alpha")), byPath["a.txt"].Size)
	})

	t.Run("count excludes directory markers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.zip")
		buildZip(t, path, map[string]string{
			"docs/":          "",
			"docs/readme.md": "readme",
			"a.txt":          "alpha",
		})

		n, err := adapter.Count(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("extract materializes regular files only", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "in.zip")
		buildZip(t, path, map[string]string{
			"docs/":          "",
			"docs/readme.md": "readme",
		})

		dest := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(dest, 0o755))

		written, err := adapter.Extract(ctx, path, dest)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs/readme.md"}, written)

		content, err := os.ReadFile(filepath.Join(dest, "docs", "readme.md"))
		require.NoError(t, err)
		assert.Equal(t, "readme", string(content))
	})

	t.Run("extract skips traversal entries", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "in.zip")
		buildZip(t, path, map[string]string{
			"../evil.txt": "evil",
			"safe.txt":    "safe",
		})

		dest := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(dest, 0o755))

		written, err := adapter.Extract(ctx, path, dest)
		require.NoError(t, err)
		assert.Equal(t, []string{"safe.txt"}, written)

		_, err = os.Stat(filepath.Join(dir, "evil.txt"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("write round-trips the staged files", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "staging")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "b.txt"), []byte("bravo"), 0o644))

		output := filepath.Join(dir, "out.zip")
		err := adapter.Write(ctx, output, root, []string{"a.txt", "nested/b.txt"}, engine.WriteOptions{
			Format:      engine.FormatZIP,
			Compression: engine.CompressionDeflate,
			Level:       9,
		})
		require.NoError(t, err)

		members, err := adapter.List(ctx, output)
		require.NoError(t, err)
		require.Len(t, members, 2)

		dest := filepath.Join(dir, "roundtrip")
		require.NoError(t, os.MkdirAll(dest, 0o755))
		written, err := adapter.Extract(ctx, output, dest)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.txt", "nested/b.txt"}, written)

		content, err := os.ReadFile(filepath.Join(dest, "nested", "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, "bravo", string(content))
	})

	t.Run("write fails for a missing staged file", func(t *testing.T) {
		dir := t.TempDir()
		err := adapter.Write(ctx, filepath.Join(dir, "out.zip"), dir, []string{"missing.txt"}, engine.WriteOptions{})
		require.Error(t, err)

		var writeErr *engine.WriteError
		assert.True(t, errors.As(err, &writeErr))
	})

	t.Run("list fails on a non-zip file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.zip")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

		_, err := adapter.List(ctx, path)
		require.Error(t, err)

		var unreadable *engine.UnreadableArchiveError
		assert.True(t, errors.As(err, &unreadable))
	})
}
