package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/horizon-topics/internal/pdf/pdftest"
)

func TestReader_ReadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "work-programme.pdf")
	pdftest.Write(t, path,
		[]string{"HORIZON-CL5-2024-D1-01-01: Advanced batteries", "Call: Cluster 5"},
		[]string{"Type of Action: RIA"},
	)

	reader := NewReader(1024 * 1024)
	result, err := reader.ReadText(ReadTextRequest{Path: path})
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.Equal(t, 2, result.Pages)
	assert.Positive(t, result.Size)
	assert.False(t, result.Truncated)
	assert.Contains(t, result.Text, "HORIZON-CL5-2024-D1-01-01")
	assert.Contains(t, result.Text, "Type of Action")
	assert.NotContains(t, result.Text, "Page Break")
}

func TestReader_ReadText_Errors(t *testing.T) {
	dir := t.TempDir()

	notPDF := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("text"), 0o600))

	large := filepath.Join(dir, "large.pdf")
	pdftest.Write(t, large, []string{"HORIZON-A-01: Large"})

	blank := filepath.Join(dir, "blank.pdf")
	pdftest.Write(t, blank, []string{})

	tests := []struct {
		name    string
		path    string
		maxSize int64
		wantErr string
	}{
		{name: "empty path", path: "", maxSize: 1 << 20, wantErr: "path cannot be empty"},
		{name: "missing file", path: filepath.Join(dir, "missing.pdf"), maxSize: 1 << 20, wantErr: "does not exist"},
		{name: "directory", path: dir, maxSize: 1 << 20, wantErr: "is a directory"},
		{name: "wrong extension", path: notPDF, maxSize: 1 << 20, wantErr: "not a PDF"},
		{name: "too large", path: large, maxSize: 10, wantErr: "too large"},
		{name: "no text layer", path: blank, maxSize: 1 << 20, wantErr: "no text content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.maxSize).ReadText(ReadTextRequest{Path: tt.path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReader_ReadText_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.pdf")
	pdftest.Write(t, path,
		[]string{"HORIZON-CL5-2024-D1-01-01 first page with enough text"},
		[]string{"second page that will not fit"},
	)

	reader := NewReader(1 << 20)
	reader.maxTextSize = 12

	result, err := reader.ReadText(ReadTextRequest{Path: path})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Text, 12)
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "ascii", in: "budget", n: 3, want: "bud"},
		{name: "longer than input", in: "EUR", n: 10, want: "EUR"},
		{name: "cut inside two-byte rune", in: "café", n: 4, want: "caf"},
		{name: "cut inside euro sign", in: "5 €", n: 4, want: "5 "},
		{name: "on rune boundary", in: "été", n: 3, want: "ét"},
		{name: "zero", in: "abc", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
