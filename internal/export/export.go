// Package export writes topic records as spreadsheets or structured documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/horizon-topics/internal/catalog"
	"github.com/a3tai/horizon-topics/internal/topics"
)

// Format is an output file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SheetName is the worksheet that holds the records in xlsx output.
const SheetName = "Topics"

// DefaultPrefix is the file name used when no name is given.
const DefaultPrefix = "horizon_topics"

// ErrUnknownFormat is returned for formats other than xlsx, csv, json and yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// Columns are the record fields in output order.
var Columns = []string{
	"code",
	"title",
	"opening_date",
	"deadline",
	"destination",
	"budget_per_project",
	"indicative_total_budget",
	"number_of_projects",
	"type_of_action",
	"trl",
	"call",
	"expected_outcome",
	"scope",
	"full_text",
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatXLSX, FormatCSV, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name or file extension, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatXLSX, FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName builds a bare file name such as horizon_topics.xlsx. Directory
// components and a matching extension on prefix are dropped.
func FileName(prefix string, format Format) string {
	prefix = filepath.Base(strings.TrimSpace(prefix))
	if prefix == "." || prefix == string(filepath.Separator) || prefix == "" {
		prefix = DefaultPrefix
	}
	ext := "." + string(format)
	if strings.EqualFold(filepath.Ext(prefix), ext) {
		prefix = prefix[:len(prefix)-len(ext)]
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ext
}

// Write encodes records to w in the given format.
func Write(w io.Writer, format Format, records []topics.TopicRecord) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SaveFile writes records to path, replacing any existing file.
func SaveFile(path string, format Format, records []topics.TopicRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(file, format, records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// exportable returns a copy of r with dates rendered as ISO dates when parseable.
func exportable(r topics.TopicRecord) topics.TopicRecord {
	r.OpeningDate = isoDate(r.OpeningDate)
	r.Deadline = isoDate(r.Deadline)
	return r
}

func isoDate(s *string) *string {
	if s == nil {
		return nil
	}
	iso := catalog.ISODate(s)
	return &iso
}

// row flattens a record in column order. Missing values are nil.
func row(r topics.TopicRecord) []any {
	r = exportable(r)
	return []any{
		r.Code,
		r.Title,
		deref(r.OpeningDate),
		deref(r.Deadline),
		deref(r.Destination),
		derefFloat(r.BudgetPerProject),
		derefFloat(r.IndicativeTotalBudget),
		derefFloat(r.NumberOfProjects),
		deref(r.TypeOfAction),
		deref(r.TRL),
		deref(r.Call),
		deref(r.ExpectedOutcome),
		deref(r.Scope),
		r.FullText,
	}
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func writeXLSX(w io.Writer, records []topics.TopicRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, r := range records {
		if err := setRow(f, i+2, row(r)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", n, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", n, err)
	}
	return nil
}

func writeCSV(w io.Writer, records []topics.TopicRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		values := row(r)
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = csvField(v)
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func csvField(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func exportableAll(records []topics.TopicRecord) []topics.TopicRecord {
	out := make([]topics.TopicRecord, len(records))
	for i, r := range records {
		out[i] = exportable(r)
	}
	return out
}

func writeJSON(w io.Writer, records []topics.TopicRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportableAll(records)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []topics.TopicRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportableAll(records)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish yaml: %w", err)
	}
	return nil
}
