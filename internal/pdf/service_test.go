package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/horizon-topics/internal/pdf/pdftest"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(1024*1024, dir)
	require.NoError(t, err)
	return svc, dir
}

func TestNewService(t *testing.T) {
	_, err := NewService(1024, "")
	assert.Error(t, err)

	svc, dir := newTestService(t)
	assert.Equal(t, int64(1024*1024), svc.MaxFileSize())
	assert.Equal(t, dir, svc.Directory())
}

func TestService_ReadText(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.Write(t, filepath.Join(dir, "wp.pdf"), []string{"HORIZON-CL6-2025-01-01: Soil health"})

	t.Run("relative path resolves inside directory", func(t *testing.T) {
		result, err := svc.ReadText(ReadTextRequest{Path: "wp.pdf"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "wp.pdf"), result.Path)
		assert.Contains(t, result.Text, "HORIZON-CL6-2025-01-01")
	})

	t.Run("absolute path", func(t *testing.T) {
		result, err := svc.ReadText(ReadTextRequest{Path: filepath.Join(dir, "wp.pdf")})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
	})

	t.Run("traversal is rejected", func(t *testing.T) {
		_, err := svc.ReadText(ReadTextRequest{Path: "../outside.pdf"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "security validation failed")
	})

	t.Run("invalid pdf", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pdf"), []byte("nope"), 0o600))
		_, err := svc.ReadText(ReadTextRequest{Path: "bad.pdf"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PDF")
	})
}

func TestService_ValidateFile(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.Write(t, filepath.Join(dir, "wp.pdf"), []string{"one"}, []string{"two"})

	result, err := svc.ValidateFile(ValidateFileRequest{Path: "wp.pdf"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Pages)

	_, err = svc.ValidateFile(ValidateFileRequest{Path: "/etc/passwd.pdf"})
	assert.Error(t, err)
}

func TestService_ListFiles(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.Write(t, filepath.Join(dir, "wp.pdf"), []string{"one"})

	result, err := svc.ListFiles(ListFilesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)

	_, err = svc.ListFiles(ListFilesRequest{Directory: filepath.Dir(dir)})
	assert.Error(t, err)
}
