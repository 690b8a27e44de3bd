package topics

// TopicHeader is a section-code header accepted by the segmenter.
type TopicHeader struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	StartLine int    `json:"start_line"`
}

// TopicBlock is the contiguous run of lines belonging to one topic.
// FullText starts with the header line and never overlaps another block.
type TopicBlock struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	FullText string `json:"full_text"`
}

// Metadata holds the call announcement that precedes one or more topic headers.
type Metadata struct {
	OpeningDate *string `json:"opening_date" yaml:"opening_date"`
	Deadline    *string `json:"deadline" yaml:"deadline"`
	Destination *string `json:"destination" yaml:"destination"`
}

// MetadataMap binds metadata snapshots to topic codes. When a code appears more
// than once in a document the last snapshot wins.
type MetadataMap map[string]Metadata

// Fields are the values pulled out of a single topic block. A nil pointer means
// the corresponding rule found nothing.
type Fields struct {
	BudgetPerProject      *float64 `json:"budget_per_project"`
	IndicativeTotalBudget *float64 `json:"indicative_total_budget"`
	TypeOfAction          *string  `json:"type_of_action"`
	ExpectedOutcome       *string  `json:"expected_outcome"`
	Scope                 *string  `json:"scope"`
	Call                  *string  `json:"call"`
	TRL                   *string  `json:"trl"`
}

// TopicRecord is the flat, final record for one topic.
type TopicRecord struct {
	Code                  string   `json:"code" yaml:"code"`
	Title                 string   `json:"title" yaml:"title"`
	OpeningDate           *string  `json:"opening_date" yaml:"opening_date"`
	Deadline              *string  `json:"deadline" yaml:"deadline"`
	Destination           *string  `json:"destination" yaml:"destination"`
	BudgetPerProject      *float64 `json:"budget_per_project" yaml:"budget_per_project"`
	IndicativeTotalBudget *float64 `json:"indicative_total_budget" yaml:"indicative_total_budget"`
	NumberOfProjects      *float64 `json:"number_of_projects" yaml:"number_of_projects"`
	TypeOfAction          *string  `json:"type_of_action" yaml:"type_of_action"`
	TRL                   *string  `json:"trl" yaml:"trl"`
	Call                  *string  `json:"call" yaml:"call"`
	ExpectedOutcome       *string  `json:"expected_outcome" yaml:"expected_outcome"`
	Scope                 *string  `json:"scope" yaml:"scope"`
	FullText              string   `json:"full_text" yaml:"full_text"`
}

// ExtractionResult is the output of one pipeline run over a document.
type ExtractionResult struct {
	Records []TopicRecord `json:"records"`

	// Metadata is the raw scan, including entries no record consumed.
	Metadata MetadataMap `json:"metadata"`

	// OrphanedMetadata lists metadata codes that belong to no record, typically
	// headers rejected by the lookahead check.
	OrphanedMetadata []string `json:"orphaned_metadata,omitempty"`

	// DuplicateCodes lists codes that head more than one block.
	DuplicateCodes []string `json:"duplicate_codes,omitempty"`

	LineCount int `json:"line_count"`
}

// StopMatch selects how section stop keywords are compared against a line.
type StopMatch string

const (
	// StopPrefix stops a section at a line that starts with a stop keyword.
	StopPrefix StopMatch = "prefix"
	// StopContains stops a section at a line that contains a stop keyword anywhere.
	StopContains StopMatch = "contains"
)

// DefaultLookahead is the number of lines after a header searched for topic markers.
const DefaultLookahead = 19

// Options tunes the heuristics of the pipeline.
type Options struct {
	Lookahead int
	StopMatch StopMatch
}

// DefaultOptions returns the options matching the reference document layout.
func DefaultOptions() Options {
	return Options{
		Lookahead: DefaultLookahead,
		StopMatch: StopPrefix,
	}
}

func (o Options) withDefaults() Options {
	if o.Lookahead <= 0 {
		o.Lookahead = DefaultLookahead
	}
	if o.StopMatch != StopContains {
		o.StopMatch = StopPrefix
	}
	return o
}

func strPtr(s string) *string {
	return &s
}
