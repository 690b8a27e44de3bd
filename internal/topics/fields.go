package topics

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	aroundBudget  = regexp.MustCompile(`(?i)around\s+eur\s+([\d.,]+)`)
	betweenBudget = regexp.MustCompile(`(?i)between\s+eur\s+[\d.,]+(?:\s+million)?\s+and\s+(?:eur\s+)?([\d.,]+)`)
	totalBudget   = regexp.MustCompile(`(?is)indicative budget.*?eur\s?([\d.,]+)`)
	trlRange      = regexp.MustCompile(`(?i)TRL\s*(\d+)(?:[^\d\n]{0,20}?(\d+))?`)
	blankSpace    = regexp.MustCompile(`\s+`)
)

const (
	typeOfActionKeyword = "type of action"
	callKeyword         = "call:"
)

// SectionRule describes a multi-line free-text section.
type SectionRule struct {
	Start string
	Stops []string
}

var (
	expectedOutcomeRule = SectionRule{
		Start: "expected outcome",
		Stops: []string{"scope", "objective", "expected impact", "destination", "eligibility"},
	}
	scopeRule = SectionRule{
		Start: "scope",
		Stops: []string{"objective", "expected outcome", "expected impact", "destination"},
	}
)

// ExtractFields applies every field rule to one block's text. Rules are
// independent: a miss leaves that field nil and nothing else changes.
func ExtractFields(text string, opts Options) Fields {
	opts = opts.withDefaults()
	text = Normalize(text)
	return Fields{
		BudgetPerProject:      ParseBudgetPerProject(text),
		IndicativeTotalBudget: ParseTotalBudget(text),
		TypeOfAction:          ExtractKeywordLine(text, typeOfActionKeyword),
		ExpectedOutcome:       ExtractSection(text, expectedOutcomeRule, opts.StopMatch),
		Scope:                 ExtractSection(text, scopeRule, opts.StopMatch),
		Call:                  ExtractKeywordLine(text, callKeyword),
		TRL:                   ParseTRL(text),
	}
}

// ParseBudgetPerProject reads "around EUR N" or, failing that, the upper bound
// of "between EUR N and M". Amounts are in millions of euro.
func ParseBudgetPerProject(text string) *float64 {
	for _, re := range []*regexp.Regexp{aroundBudget, betweenBudget} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseMillions(m[1]); ok {
			return &v
		}
	}
	return nil
}

// ParseTotalBudget reads the first "EUR N" after "indicative budget".
func ParseTotalBudget(text string) *float64 {
	m := totalBudget.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := parseMillions(m[1])
	if !ok {
		return nil
	}
	return &v
}

// parseMillions converts a token such as "1,250.5" to euros. Commas are
// thousands separators; a trailing dot or comma is sentence punctuation.
func parseMillions(token string) (float64, bool) {
	token = strings.TrimRight(token, ".,")
	token = strings.ReplaceAll(token, ",", "")
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return math.Round(v * 1_000_000), true
}

// ParseTRL renders "TRL 3" as "3" and "TRL 3 to 5" as "3-5". The upper bound
// must follow closely on the same line.
func ParseTRL(text string) *string {
	m := trlRange.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if m[2] != "" {
		return strPtr(m[1] + "-" + m[2])
	}
	return strPtr(m[1])
}

// ExtractKeywordLine returns the value on the first line containing keyword:
// the text after the first colon, or the whole line. If the colon ends the
// line, the next non-empty line holds the value.
func ExtractKeywordLine(text, keyword string) *string {
	keyword = strings.ToLower(keyword)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), keyword) {
			continue
		}
		value := afterColon(line)
		if value != "" {
			return strPtr(value)
		}
		for _, next := range lines[i+1:] {
			if next = strings.TrimSpace(next); next != "" {
				return strPtr(next)
			}
		}
		return nil
	}
	return nil
}

// ExtractSection collects the lines from the first one containing rule.Start
// up to, not including, the first later line matching a stop keyword.
func ExtractSection(text string, rule SectionRule, match StopMatch) *string {
	start := strings.ToLower(rule.Start)
	stops := make([]string, len(rule.Stops))
	for i, s := range rule.Stops {
		stops[i] = strings.ToLower(s)
	}

	var (
		collecting bool
		section    []string
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if !collecting {
			if strings.Contains(lower, start) {
				collecting = true
				section = append(section, afterColon(line))
			}
			continue
		}
		if isStopLine(lower, stops, match) {
			break
		}
		if line != "" {
			section = append(section, line)
		}
	}
	if !collecting {
		return nil
	}
	cleaned := CleanSectionText(strings.Join(section, "\n"))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func isStopLine(lower string, stops []string, match StopMatch) bool {
	if match == StopContains {
		return containsAny(lower, stops)
	}
	return hasAnyPrefix(lower, stops)
}

// CleanSectionText collapses whitespace inside each line and drops empty lines.
func CleanSectionText(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(blankSpace.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
