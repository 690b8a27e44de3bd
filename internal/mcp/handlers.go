package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/a3tai/horizon-topics/internal/catalog"
	"github.com/a3tai/horizon-topics/internal/export"
	"github.com/a3tai/horizon-topics/internal/pdf"
	"github.com/a3tai/horizon-topics/internal/topics"
)

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := s.pdfService.ReadText(pdf.ReadTextRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := s.load(text.Path, text.Text)

	responseText := fmt.Sprintf("Read PDF: %s (%d pages, %d bytes)\n", text.Path, text.Pages, text.Size)
	if text.Truncated {
		responseText += "Warning: text was truncated at the size limit; later topics may be missing.\n"
	}
	responseText += formatSummary(session)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	source := stringArg(request.GetArguments(), "source")
	if source == "" {
		source = "text"
	}

	session := s.load(source, text)
	return mcp.NewToolResultText(formatSummary(session)), nil
}

// load runs the pipeline and replaces the current session.
func (s *Server) load(source, text string) *catalog.Session {
	result := s.extractor.Extract(text)
	session := s.catalog.Load(source, result)

	if s.config.IsDebug() {
		log.Printf("Extracted %d topics from %s (lines: %d, orphaned metadata: %d, duplicate codes: %d)",
			len(result.Records), source, result.LineCount, len(result.OrphanedMetadata), len(result.DuplicateCodes))
	}

	return session
}

func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := pdf.ListFilesRequest{Query: stringArg(request.GetArguments(), "query")}
	result, err := s.pdfService.ListFiles(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatFiles(result, req.Query)), nil
}

func (s *Server) records() ([]topics.TopicRecord, *catalog.Session, error) {
	session, err := s.catalog.Current()
	if err != nil {
		return nil, nil, err
	}
	return session.Records(), session, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, session, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit, err := numberArg(request.GetArguments(), "limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	shown := records
	if limit != nil && *limit >= 0 && int(*limit) < len(records) {
		shown = records[:int(*limit)]
	}

	responseText := fmt.Sprintf("Topics in %s: %d\n", session.Source, len(records))
	responseText += formatTable(shown)
	if len(shown) < len(records) {
		responseText += fmt.Sprintf("... and %d more topics\n", len(records)-len(shown))
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, _, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, ok := catalog.Find(records, code)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("topic not found: %s", code)), nil
	}

	return mcp.NewToolResultText(formatDetail(record, "")), nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, _, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	found := catalog.Search(records, keyword)

	responseText := fmt.Sprintf("Found %d topics matching %q\n", len(found), keyword)
	for _, r := range found {
		responseText += "\n" + formatDetail(r, keyword)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, _, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	criteria, err := criteriaFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filtered := catalog.Filter(records, criteria)

	responseText := fmt.Sprintf("Showing %d of %d topics\n", len(filtered), len(records))
	responseText += formatTable(filtered)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFacets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, _, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatFacets(catalog.BuildFacets(records))), nil
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, _, err := s.records()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	format, err := export.ParseFormat(stringArg(args, "format"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	criteria, err := criteriaFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filtered := catalog.Filter(records, criteria)

	path := filepath.Join(s.config.ExportDirectory, export.FileName(stringArg(args, "filename"), format))
	if err := export.SaveFile(path, format, filtered); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if s.config.IsDebug() {
		log.Printf("Exported %d topics to %s", len(filtered), path)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Exported %d of %d topics to %s", len(filtered), len(records), path)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.serverInfo()), nil
}
