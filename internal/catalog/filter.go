package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/a3tai/horizon-topics/internal/topics"
)

// DefaultMaxBudget is the facet budget ceiling used when no record has a budget.
const DefaultMaxBudget = 50_000_000.0

// Criteria narrows a record set. Empty sets and nil bounds do not filter.
type Criteria struct {
	TypesOfAction []string
	Calls         []string
	TRLs          []string
	Destinations  []string

	// MinBudget and MaxBudget bound the per-project budget. A record without
	// a budget counts as 0.
	MinBudget *float64
	MaxBudget *float64

	// Records whose date cannot be parsed are dropped when a range is set.
	Opening  DateRange
	Deadline DateRange

	Keyword string
}

// Facets are the distinct filter values present in a record set.
type Facets struct {
	TypesOfAction []string `json:"types_of_action" yaml:"types_of_action"`
	Calls         []string `json:"calls" yaml:"calls"`
	TRLs          []string `json:"trls" yaml:"trls"`
	Destinations  []string `json:"destinations" yaml:"destinations"`
	MaxBudget     float64  `json:"max_budget" yaml:"max_budget"`
}

// Search returns the records where any field contains keyword, ignoring case.
// Identical records are returned once. An empty keyword matches everything.
func Search(records []topics.TopicRecord, keyword string) []topics.TopicRecord {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	out := make([]topics.TopicRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if keyword != "" && !matchesKeyword(r, keyword) {
			continue
		}
		key := strings.Join(searchableFields(r), "\x00")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Filter applies every criterion in turn and keeps document order.
func Filter(records []topics.TopicRecord, c Criteria) []topics.TopicRecord {
	types := toSet(c.TypesOfAction)
	calls := toSet(c.Calls)
	trls := toSet(c.TRLs)
	destinations := toSet(c.Destinations)
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]topics.TopicRecord, 0, len(records))
	for _, r := range records {
		if !inSet(types, r.TypeOfAction) ||
			!inSet(calls, r.Call) ||
			!inSet(trls, r.TRL) ||
			!inSet(destinations, r.Destination) {
			continue
		}

		budget := value(r.BudgetPerProject)
		if c.MinBudget != nil && budget < *c.MinBudget {
			continue
		}
		if c.MaxBudget != nil && budget > *c.MaxBudget {
			continue
		}

		if c.Opening.IsSet() && !c.Opening.Contains(r.OpeningDate) {
			continue
		}
		if c.Deadline.IsSet() && !c.Deadline.Contains(r.Deadline) {
			continue
		}

		if keyword != "" && !matchesKeyword(r, keyword) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BuildFacets collects the sorted distinct values of each filterable field.
func BuildFacets(records []topics.TopicRecord) Facets {
	types := map[string]struct{}{}
	calls := map[string]struct{}{}
	trls := map[string]struct{}{}
	destinations := map[string]struct{}{}
	maxBudget := 0.0
	haveBudget := false

	for _, r := range records {
		addValue(types, r.TypeOfAction)
		addValue(calls, r.Call)
		addValue(trls, r.TRL)
		addValue(destinations, r.Destination)
		if r.BudgetPerProject != nil && (!haveBudget || *r.BudgetPerProject > maxBudget) {
			maxBudget = *r.BudgetPerProject
			haveBudget = true
		}
	}
	if !haveBudget {
		maxBudget = DefaultMaxBudget
	}

	return Facets{
		TypesOfAction: sortedKeys(types),
		Calls:         sortedKeys(calls),
		TRLs:          sortedKeys(trls),
		Destinations:  sortedKeys(destinations),
		MaxBudget:     maxBudget,
	}
}

// Find returns the first record with the given code.
func Find(records []topics.TopicRecord, code string) (topics.TopicRecord, bool) {
	code = strings.TrimSpace(code)
	for _, r := range records {
		if strings.EqualFold(r.Code, code) {
			return r, true
		}
	}
	return topics.TopicRecord{}, false
}

func matchesKeyword(r topics.TopicRecord, keyword string) bool {
	for _, field := range searchableFields(r) {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

func searchableFields(r topics.TopicRecord) []string {
	return []string{
		r.Code,
		r.Title,
		text(r.OpeningDate),
		text(r.Deadline),
		text(r.Destination),
		number(r.BudgetPerProject),
		number(r.IndicativeTotalBudget),
		number(r.NumberOfProjects),
		text(r.TypeOfAction),
		text(r.TRL),
		text(r.Call),
		text(r.ExpectedOutcome),
		text(r.Scope),
		r.FullText,
	}
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func number(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// inSet is true for an empty set; otherwise the value must be present.
func inSet(set map[string]struct{}, v *string) bool {
	if len(set) == 0 {
		return true
	}
	if v == nil {
		return false
	}
	_, ok := set[*v]
	return ok
}

func addValue(set map[string]struct{}, v *string) {
	if v != nil && *v != "" {
		set[*v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
