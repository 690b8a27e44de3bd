package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/horizon-topics/internal/topics"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func sampleRecords() []topics.TopicRecord {
	return []topics.TopicRecord{
		{
			Code:             "HORIZON-CL5-2024-D1-01-01",
			Title:            "Advanced batteries",
			OpeningDate:      strPtr("12 March 2024"),
			Deadline:         strPtr("1 October 2024"),
			Destination:      strPtr("Climate"),
			BudgetPerProject: floatPtr(5_000_000),
			TypeOfAction:     strPtr("Research and Innovation Actions"),
			TRL:              strPtr("4-6"),
			Call:             strPtr("Cluster 5 Call 01"),
			Scope:            strPtr("Develop new <b>chemistries</b>."),
			FullText:         "HORIZON-CL5-2024-D1-01-01: Advanced batteries",
		},
		{
			Code:             "HORIZON-CL5-2024-D1-01-02",
			Title:            "Grid flexibility",
			OpeningDate:      strPtr("12 March 2024"),
			Deadline:         strPtr("to be announced"),
			Destination:      strPtr("Energy"),
			BudgetPerProject: floatPtr(12_000_000),
			TypeOfAction:     strPtr("Innovation Actions"),
			Call:             strPtr("Cluster 5 Call 01"),
			FullText:         "HORIZON-CL5-2024-D1-01-02: Grid flexibility",
		},
		{
			Code:         "HORIZON-CL6-2025-01-01",
			Title:        "Soil health",
			OpeningDate:  strPtr("5 May 2025"),
			Deadline:     strPtr("16 September 2025"),
			TypeOfAction: strPtr("Coordination and Support Actions"),
			TRL:          strPtr("3"),
			Call:         strPtr("Cluster 6 Call 01"),
			FullText:     "HORIZON-CL6-2025-01-01: Soil health",
		},
	}
}

func codes(records []topics.TopicRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Code
	}
	return out
}

func TestCatalog_LoadAndCurrent(t *testing.T) {
	c := New()
	fixed := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	_, err := c.Current()
	require.ErrorIs(t, err, ErrNoSession)

	first := c.Load("wp-2024.pdf", &topics.ExtractionResult{Records: sampleRecords()})
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
	assert.Equal(t, "wp-2024.pdf", current.Source)
	assert.Equal(t, fixed, current.LoadedAt)
	assert.Len(t, current.Records(), 3)

	second := c.Load("text", nil)
	assert.NotEqual(t, first.ID, second.ID)
	current, err = c.Current()
	require.NoError(t, err)
	assert.Equal(t, "text", current.Source)
	assert.NotNil(t, current.Records())
	assert.Empty(t, current.Records())

	c.Clear()
	_, err = c.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Load("doc", &topics.ExtractionResult{Records: sampleRecords()})
		}()
		go func() {
			defer wg.Done()
			if s, err := c.Current(); err == nil {
				_ = s.Records()
			}
		}()
	}
	wg.Wait()

	s, err := c.Current()
	require.NoError(t, err)
	assert.Len(t, s.Records(), 3)
}

func TestSearch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{name: "title", keyword: "batteries", want: []string{"HORIZON-CL5-2024-D1-01-01"}},
		{name: "case insensitive", keyword: "GRID", want: []string{"HORIZON-CL5-2024-D1-01-02"}},
		{name: "code fragment", keyword: "cl5", want: []string{"HORIZON-CL5-2024-D1-01-01", "HORIZON-CL5-2024-D1-01-02"}},
		{name: "numeric field", keyword: "12000000", want: []string{"HORIZON-CL5-2024-D1-01-02"}},
		{name: "date field", keyword: "september", want: []string{"HORIZON-CL6-2025-01-01"}},
		{name: "no match", keyword: "fusion", want: []string{}},
		{name: "empty keyword", keyword: " ", want: codes(records)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(Search(records, tt.keyword)))
		})
	}
}

func TestSearch_DeduplicatesIdenticalRecords(t *testing.T) {
	records := sampleRecords()
	records = append(records, records[0])
	got := Search(records, "batteries")
	assert.Len(t, got, 1)
}

func TestFilter(t *testing.T) {
	records := sampleRecords()
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "no criteria", criteria: Criteria{}, want: codes(records)},
		{name: "type of action", criteria: Criteria{TypesOfAction: []string{"Innovation Actions"}}, want: []string{"HORIZON-CL5-2024-D1-01-02"}},
		{name: "call set", criteria: Criteria{Calls: []string{"Cluster 6 Call 01", "Unknown"}}, want: []string{"HORIZON-CL6-2025-01-01"}},
		{name: "trl excludes missing", criteria: Criteria{TRLs: []string{"4-6", "3"}}, want: []string{"HORIZON-CL5-2024-D1-01-01", "HORIZON-CL6-2025-01-01"}},
		{name: "destination", criteria: Criteria{Destinations: []string{"Energy"}}, want: []string{"HORIZON-CL5-2024-D1-01-02"}},
		{name: "min budget drops missing budget", criteria: Criteria{MinBudget: floatPtr(1)}, want: []string{"HORIZON-CL5-2024-D1-01-01", "HORIZON-CL5-2024-D1-01-02"}},
		{name: "max budget keeps missing budget", criteria: Criteria{MaxBudget: floatPtr(6_000_000)}, want: []string{"HORIZON-CL5-2024-D1-01-01", "HORIZON-CL6-2025-01-01"}},
		{name: "budget bounds inclusive", criteria: Criteria{MinBudget: floatPtr(5_000_000), MaxBudget: floatPtr(5_000_000)}, want: []string{"HORIZON-CL5-2024-D1-01-01"}},
		{name: "opening range", criteria: Criteria{Opening: DateRange{From: date(2025, 1, 1)}}, want: []string{"HORIZON-CL6-2025-01-01"}},
		{name: "deadline range drops unparseable", criteria: Criteria{Deadline: DateRange{To: date(2025, 12, 31)}}, want: []string{"HORIZON-CL5-2024-D1-01-01", "HORIZON-CL6-2025-01-01"}},
		{name: "deadline inclusive upper bound", criteria: Criteria{Deadline: DateRange{From: date(2024, 10, 1), To: date(2024, 10, 1)}}, want: []string{"HORIZON-CL5-2024-D1-01-01"}},
		{name: "keyword combined", criteria: Criteria{Calls: []string{"Cluster 5 Call 01"}, Keyword: "chemistries"}, want: []string{"HORIZON-CL5-2024-D1-01-01"}},
		{name: "blank set values ignored", criteria: Criteria{TypesOfAction: []string{" ", ""}}, want: codes(records)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(Filter(records, tt.criteria)))
		})
	}
}

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(sampleRecords())
	assert.Equal(t, []string{"Coordination and Support Actions", "Innovation Actions", "Research and Innovation Actions"}, f.TypesOfAction)
	assert.Equal(t, []string{"Cluster 5 Call 01", "Cluster 6 Call 01"}, f.Calls)
	assert.Equal(t, []string{"3", "4-6"}, f.TRLs)
	assert.Equal(t, []string{"Climate", "Energy"}, f.Destinations)
	assert.Equal(t, 12_000_000.0, f.MaxBudget)

	empty := BuildFacets(nil)
	assert.Empty(t, empty.TypesOfAction)
	assert.Equal(t, DefaultMaxBudget, empty.MaxBudget)
}

func TestFind(t *testing.T) {
	records := sampleRecords()

	r, ok := Find(records, " horizon-cl6-2025-01-01 ")
	require.True(t, ok)
	assert.Equal(t, "Soil health", r.Title)

	_, ok = Find(records, "HORIZON-XX")
	assert.False(t, ok)
}
