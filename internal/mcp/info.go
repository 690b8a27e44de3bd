package mcp

import (
	"fmt"
	"strings"

	"github.com/a3tai/horizon-topics/internal/descriptions"
	"github.com/a3tai/horizon-topics/internal/pdf"
)

const maxListedFiles = 10

const usageGuidance = `Getting started:
1. topics_list_files to see the available work programmes
2. topics_extract_file with one of the listed paths
3. topics_facets, then topics_filter or topics_search to shortlist topics
4. topics_get for the full text of a topic
5. topics_export to save the shortlist as xlsx, csv, json or yaml`

func (s *Server) serverInfo() string {
	opts := s.extractor.Options()

	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("PDF Directory: %s\n", s.config.PDFDirectory)
	text += fmt.Sprintf("Export Directory: %s\n", s.config.ExportDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("Header lookahead: %d lines, section stop match: %s\n\n", opts.Lookahead, opts.StopMatch)

	if files, err := s.pdfService.ListFiles(pdf.ListFilesRequest{}); err == nil && files.TotalCount > 0 {
		text += fmt.Sprintf("Work programmes (%d PDF files found):\n", files.TotalCount)
		for i, file := range files.Files {
			if i >= maxListedFiles {
				text += fmt.Sprintf("   ... and %d more files\n", files.TotalCount-maxListedFiles)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Work programmes: no PDF files found in the PDF directory\n\n"
	}

	if session, err := s.catalog.Current(); err == nil {
		text += fmt.Sprintf("Loaded session: %s\n", session.ID)
		text += fmt.Sprintf("   Source: %s\n", session.Source)
		text += fmt.Sprintf("   Loaded at: %s\n", session.LoadedAt.Format("2006-01-02 15:04:05"))
		text += fmt.Sprintf("   Topics: %d\n\n", len(session.Records()))
	} else {
		text += "Loaded session: none\n\n"
	}

	text += "Available Tools:\n"
	for _, name := range descriptions.GetAllToolNames() {
		summary, _, _ := strings.Cut(descriptions.GetToolDescription(name), "\n")
		text += fmt.Sprintf("• %s: %s\n", name, summary)
	}

	text += "\n" + usageGuidance + "\n"
	return text
}
