package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a3tai/horizon-topics/internal/catalog"
	"github.com/a3tai/horizon-topics/internal/pdf"
	"github.com/a3tai/horizon-topics/internal/topics"
)

const missing = "n/a"

func orMissing(s *string) string {
	if s == nil || *s == "" {
		return missing
	}
	return *s
}

func formatEUR(f *float64) string {
	if f == nil {
		return missing
	}
	if *f >= 1_000_000 {
		return "EUR " + strconv.FormatFloat(*f/1_000_000, 'f', -1, 64) + " million"
	}
	return "EUR " + strconv.FormatFloat(*f, 'f', 0, 64)
}

func formatCount(f *float64) string {
	if f == nil {
		return missing
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatSummary(session *catalog.Session) string {
	result := session.Result

	text := fmt.Sprintf("Session: %s\n", session.ID)
	text += fmt.Sprintf("Source: %s\n", session.Source)
	text += fmt.Sprintf("Lines analysed: %d\n", result.LineCount)
	text += fmt.Sprintf("Topics extracted: %d\n", len(result.Records))

	if len(result.Records) == 0 {
		text += "\nNo topic section codes were recognised in this document.\n"
		return text
	}

	if len(result.DuplicateCodes) > 0 {
		text += fmt.Sprintf("Duplicate codes: %s\n", strings.Join(result.DuplicateCodes, ", "))
	}
	if len(result.OrphanedMetadata) > 0 {
		text += fmt.Sprintf("Metadata without a topic: %s\n", strings.Join(result.OrphanedMetadata, ", "))
	}

	text += "\nUse topics_list, topics_search, topics_filter or topics_export to explore the topics.\n"
	return text
}

func formatTable(records []topics.TopicRecord) string {
	if len(records) == 0 {
		return "No topics.\n"
	}

	var b strings.Builder
	b.WriteString("\ncode | title | type of action | deadline | budget per project\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			r.Code, r.Title, orMissing(r.TypeOfAction), orMissing(r.Deadline), formatEUR(r.BudgetPerProject))
	}
	return b.String()
}

// formatDetail renders all fields of a record. When keyword is set the long
// text sections are HTML-escaped with the keyword wrapped in <mark>.
func formatDetail(r topics.TopicRecord, keyword string) string {
	section := func(s *string) string {
		if s == nil {
			return missing
		}
		if keyword == "" {
			return *s
		}
		return catalog.Highlight(*s, keyword)
	}

	text := fmt.Sprintf("%s: %s\n", r.Code, r.Title)
	text += fmt.Sprintf("Call: %s\n", orMissing(r.Call))
	text += fmt.Sprintf("Type of Action: %s\n", orMissing(r.TypeOfAction))
	text += fmt.Sprintf("TRL: %s\n", orMissing(r.TRL))
	text += fmt.Sprintf("Destination: %s\n", orMissing(r.Destination))
	text += fmt.Sprintf("Opening Date: %s\n", orMissing(r.OpeningDate))
	text += fmt.Sprintf("Deadline: %s\n", orMissing(r.Deadline))
	text += fmt.Sprintf("Budget per Project: %s\n", formatEUR(r.BudgetPerProject))
	text += fmt.Sprintf("Indicative Total Budget: %s\n", formatEUR(r.IndicativeTotalBudget))
	text += fmt.Sprintf("Number of Projects: %s\n", formatCount(r.NumberOfProjects))
	text += fmt.Sprintf("Expected Outcome:\n%s\n", section(r.ExpectedOutcome))
	text += fmt.Sprintf("Scope:\n%s\n", section(r.Scope))
	if keyword == "" {
		text += fmt.Sprintf("Full Text:\n%s\n", r.FullText)
	}
	return text
}

func formatFacets(f catalog.Facets) string {
	list := func(values []string) string {
		if len(values) == 0 {
			return missing
		}
		return strings.Join(values, "; ")
	}

	text := "Filter options\n"
	text += fmt.Sprintf("Types of Action: %s\n", list(f.TypesOfAction))
	text += fmt.Sprintf("Calls: %s\n", list(f.Calls))
	text += fmt.Sprintf("TRLs: %s\n", list(f.TRLs))
	text += fmt.Sprintf("Destinations: %s\n", list(f.Destinations))
	text += fmt.Sprintf("Budget per Project range: 0 to %s\n", strconv.FormatFloat(f.MaxBudget, 'f', 0, 64))
	return text
}

func formatFiles(result *pdf.ListFilesResult, query string) string {
	if result.TotalCount == 0 {
		text := fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if query != "" {
			text += fmt.Sprintf(" (searched for: %s)", query)
		}
		return text
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes, modified %s\n", file.Size, file.ModifiedTime)
	}
	return text
}
