package catalog

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoLayout = "2006-01-02"

var dayFirstLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"02 January 2006",
}

// ParseDate parses announcement dates such as "12 March 2024". Day-first
// layouts are tried before falling back to dateparse.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ISODate renders a date as YYYY-MM-DD, or returns the raw value when it
// cannot be parsed. A nil date renders as the empty string.
func ISODate(s *string) string {
	if s == nil {
		return ""
	}
	if t, ok := ParseDate(*s); ok {
		return t.Format(isoLayout)
	}
	return *s
}

// DateRange is an inclusive date interval. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsSet reports whether either bound is present.
func (r DateRange) IsSet() bool {
	return !r.From.IsZero() || !r.To.IsZero()
}

// Contains reports whether the raw date parses and falls inside the range.
func (r DateRange) Contains(raw *string) bool {
	if raw == nil {
		return false
	}
	t, ok := ParseDate(*raw)
	if !ok {
		return false
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}
