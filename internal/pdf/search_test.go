package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_ListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cluster5"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cache"), 0o755))

	files := map[string]int{
		"wp-cluster4.pdf":          10,
		"cluster5/wp-cluster5.pdf": 10,
		"notes.txt":                10,
		"empty.pdf":                0,
		".cache/hidden.pdf":        10,
	}
	for name, size := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o600))
	}

	finder := NewFinder(1024)

	t.Run("all files", func(t *testing.T) {
		result, err := finder.ListFiles(ListFilesRequest{Directory: dir})
		require.NoError(t, err)
		require.Equal(t, 2, result.TotalCount)
		assert.Equal(t, "wp-cluster5.pdf", result.Files[0].Name)
		assert.Equal(t, "wp-cluster4.pdf", result.Files[1].Name)
	})

	t.Run("query filters by name", func(t *testing.T) {
		result, err := finder.ListFiles(ListFilesRequest{Directory: dir, Query: "CLUSTER4"})
		require.NoError(t, err)
		require.Len(t, result.Files, 1)
		assert.Equal(t, "wp-cluster4.pdf", result.Files[0].Name)
	})

	t.Run("no matches is empty, not nil", func(t *testing.T) {
		result, err := finder.ListFiles(ListFilesRequest{Directory: dir, Query: "cluster9"})
		require.NoError(t, err)
		assert.NotNil(t, result.Files)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := finder.ListFiles(ListFilesRequest{Directory: filepath.Join(dir, "nope")})
		assert.Error(t, err)
	})

	t.Run("empty directory argument", func(t *testing.T) {
		_, err := finder.ListFiles(ListFilesRequest{})
		assert.Error(t, err)
	})
}
