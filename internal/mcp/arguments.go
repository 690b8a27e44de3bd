package mcp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/a3tai/horizon-topics/internal/catalog"
)

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// listArg splits a comma-separated argument. JSON arrays are accepted too.
func listArg(args map[string]any, key string) []string {
	return splitArg(args, key, ",")
}

// splitArg splits a string argument on sep. Array items are taken whole.
func splitArg(args map[string]any, key, sep string) []string {
	var raw []string
	switch v := args[key].(type) {
	case string:
		raw = strings.Split(v, sep)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// numberArg reads a JSON number or numeric string. A missing argument is nil.
func numberArg(args map[string]any, key string) (*float64, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %q", key, v)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("%s must be a number", key)
	}
}

func dateArg(args map[string]any, key string) (time.Time, error) {
	raw := stringArg(args, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, ok := catalog.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%s is not a recognizable date: %q", key, raw)
	}
	return t, nil
}

// criteriaFromArgs builds filter criteria from tool arguments. Destinations
// are split on semicolons because destination titles contain commas.
func criteriaFromArgs(args map[string]any) (catalog.Criteria, error) {
	c := catalog.Criteria{
		TypesOfAction: listArg(args, "type_of_action"),
		Calls:         listArg(args, "call"),
		TRLs:          listArg(args, "trl"),
		Destinations:  splitArg(args, "destination", ";"),
		Keyword:       stringArg(args, "keyword"),
	}

	var err error
	if c.MinBudget, err = numberArg(args, "min_budget"); err != nil {
		return c, err
	}
	if c.MaxBudget, err = numberArg(args, "max_budget"); err != nil {
		return c, err
	}
	if c.MinBudget != nil && c.MaxBudget != nil && *c.MinBudget > *c.MaxBudget {
		return c, fmt.Errorf("min_budget cannot exceed max_budget")
	}

	dates := []struct {
		key string
		dst *time.Time
	}{
		{"opening_from", &c.Opening.From},
		{"opening_to", &c.Opening.To},
		{"deadline_from", &c.Deadline.From},
		{"deadline_to", &c.Deadline.To},
	}
	for _, d := range dates {
		if *d.dst, err = dateArg(args, d.key); err != nil {
			return c, err
		}
	}

	return c, nil
}
