package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/horizon-topics/internal/catalog"
	"github.com/a3tai/horizon-topics/internal/export"
	"github.com/a3tai/horizon-topics/internal/pdf"
	"github.com/a3tai/horizon-topics/internal/topics"
)

// ExtractAction runs the pipeline and writes the filtered records.
func ExtractAction(c *cli.Context) error {
	result, err := extract(c)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	criteria, err := criteriaFromFlags(c)
	if err != nil {
		return err
	}
	records := catalog.Filter(result.Records, criteria)

	output := c.String("output")
	if output == "-" {
		return export.Write(c.App.Writer, format, records)
	}
	if output == "" {
		output = export.FileName("", format)
	}
	if err := export.SaveFile(output, format, records); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Extracted %d topics, wrote %d to %s\n", len(result.Records), len(records), output)
	if len(result.DuplicateCodes) > 0 {
		fmt.Fprintf(c.App.ErrWriter, "Duplicate codes: %s\n", strings.Join(result.DuplicateCodes, ", "))
	}
	if len(result.OrphanedMetadata) > 0 {
		fmt.Fprintf(c.App.ErrWriter, "Metadata without a topic: %s\n", strings.Join(result.OrphanedMetadata, ", "))
	}
	return nil
}

// FacetsAction prints the facets of a document as yaml.
func FacetsAction(c *cli.Context) error {
	result, err := extract(c)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(catalog.BuildFacets(result.Records))
	if err != nil {
		return fmt.Errorf("failed to marshal facets: %w", err)
	}

	fmt.Fprint(c.App.Writer, string(out))
	return nil
}

func extract(c *cli.Context) (*topics.ExtractionResult, error) {
	stopMatch := topics.StopMatch(c.String("stopmatch"))
	if stopMatch != topics.StopPrefix && stopMatch != topics.StopContains {
		return nil, fmt.Errorf("invalid stopmatch: %s (must be 'prefix' or 'contains')", stopMatch)
	}
	if c.Int("lookahead") < 1 {
		return nil, fmt.Errorf("lookahead must be positive")
	}

	text, err := readInput(c.String("input"), c.Int64("maxfilesize"))
	if err != nil {
		return nil, err
	}

	extractor := topics.NewExtractor(topics.Options{
		Lookahead: c.Int("lookahead"),
		StopMatch: stopMatch,
	})
	return extractor.Extract(text), nil
}

// readInput returns the text of a PDF, or the contents of any other file.
func readInput(path string, maxFileSize int64) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve input: %w", err)
	}

	if !strings.EqualFold(filepath.Ext(abs), ".pdf") {
		data, err := os.ReadFile(abs)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	service, err := pdf.NewService(maxFileSize, filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	result, err := service.ReadText(pdf.ReadTextRequest{Path: abs})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func criteriaFromFlags(c *cli.Context) (catalog.Criteria, error) {
	criteria := catalog.Criteria{
		TypesOfAction: c.StringSlice("type"),
		Calls:         c.StringSlice("call"),
		TRLs:          c.StringSlice("trl"),
		Destinations:  c.StringSlice("destination"),
		Keyword:       c.String("keyword"),
	}

	if c.IsSet("min-budget") {
		v := c.Float64("min-budget")
		criteria.MinBudget = &v
	}
	if c.IsSet("max-budget") {
		v := c.Float64("max-budget")
		criteria.MaxBudget = &v
	}

	var err error
	if criteria.Deadline.From, err = dateFlag(c, "deadline-from"); err != nil {
		return criteria, err
	}
	if criteria.Deadline.To, err = dateFlag(c, "deadline-to"); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func dateFlag(c *cli.Context, name string) (time.Time, error) {
	raw := c.String(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, ok := catalog.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("--%s is not a recognizable date: %q", name, raw)
	}
	return t, nil
}
