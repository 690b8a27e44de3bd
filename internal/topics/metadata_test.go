package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestScanMetadata_AttributesToFollowingHeader(t *testing.T) {
	lines := []string{
		"Opening: 12 March 2024",
		"Deadline: 1 October 2024",
		"Destination: Climate",
		"HORIZON-CL5-2024-D1-01-01: Advanced batteries",
	}
	got := ScanMetadata(lines)
	require.Contains(t, got, "HORIZON-CL5-2024-D1-01-01")
	m := got["HORIZON-CL5-2024-D1-01-01"]
	assert.Equal(t, "12 March 2024", deref(m.OpeningDate))
	assert.Equal(t, "1 October 2024", deref(m.Deadline))
	assert.Equal(t, "Climate", deref(m.Destination))
}

func TestScanMetadata_IdleIgnoresEverythingButOpening(t *testing.T) {
	lines := []string{
		"Deadline: 1 October 2024",
		"Destination: Climate",
		"HORIZON-CL5-2024-D1-01-01: Before any opening",
	}
	assert.Empty(t, ScanMetadata(lines))
}

func TestScanMetadata_SnapshotSharedUntilNextOpening(t *testing.T) {
	lines := []string{
		"Opening: 12 March 2024",
		"Deadline(s): 1 October 2024",
		"HORIZON-A-01: First",
		"some body text",
		"HORIZON-A-02: Second",
		"Opening: 5 May 2025",
		"HORIZON-B-01: Third",
	}
	got := ScanMetadata(lines)
	require.Len(t, got, 3)

	assert.Equal(t, "12 March 2024", deref(got["HORIZON-A-01"].OpeningDate))
	assert.Equal(t, "12 March 2024", deref(got["HORIZON-A-02"].OpeningDate))
	assert.Equal(t, "1 October 2024", deref(got["HORIZON-A-02"].Deadline))

	third := got["HORIZON-B-01"]
	assert.Equal(t, "5 May 2025", deref(third.OpeningDate))
	assert.Nil(t, third.Deadline, "a new opening resets the deadline")
}

func TestScanMetadata_SnapshotsAreIndependent(t *testing.T) {
	lines := []string{
		"Opening: 12 March 2024",
		"Destination: Climate",
		"HORIZON-A-01: First",
		"Destination: Energy",
		"HORIZON-A-02: Second",
	}
	got := ScanMetadata(lines)
	assert.Equal(t, "Climate", deref(got["HORIZON-A-01"].Destination))
	assert.Equal(t, "Energy", deref(got["HORIZON-A-02"].Destination))
}

func TestScanMetadata_DuplicateCodeLastWriteWins(t *testing.T) {
	lines := []string{
		"Opening: 12 March 2024",
		"HORIZON-A-01: First",
		"Opening: 5 May 2025",
		"HORIZON-A-01: Repeated",
	}
	got := ScanMetadata(lines)
	require.Len(t, got, 1)
	assert.Equal(t, "5 May 2025", deref(got["HORIZON-A-01"].OpeningDate))
}

func TestScanMetadata_UnparseableDate(t *testing.T) {
	got := ScanMetadata([]string{
		"OPENING: to be announced",
		"Deadline: TBD",
		"HORIZON-A-01: First",
	})
	m := got["HORIZON-A-01"]
	assert.Nil(t, m.OpeningDate)
	assert.Nil(t, m.Deadline)
	assert.Nil(t, m.Destination)
}

func TestClassifyMetadataLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Opening: 12 March 2024", kindOpening},
		{"opening: soon", kindOpening},
		{"Opening soon", kindOther},
		{"Deadline(s): 1 October 2024", kindDeadline},
		{"DESTINATION - Climate", kindDestination},
		{"HORIZON-A-01: Title", kindHeader},
		{"HORIZON-A-01 without colon", kindOther},
		{"plain text", kindOther},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyMetadataLine(tt.line))
		})
	}
}
