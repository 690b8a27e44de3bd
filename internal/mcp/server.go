package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/horizon-topics/internal/catalog"
	"github.com/a3tai/horizon-topics/internal/config"
	"github.com/a3tai/horizon-topics/internal/descriptions"
	"github.com/a3tai/horizon-topics/internal/pdf"
	"github.com/a3tai/horizon-topics/internal/topics"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	extractor  *topics.Extractor
	catalog    *catalog.Catalog
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	// The extractor is stateless; the catalog holds the loaded document
	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		extractor:  topics.NewExtractor(cfg.ExtractorOptions()),
		catalog:    catalog.New(),
		mcpServer:  mcpServer,
	}

	// Register all tools
	s.registerTools()

	return s, nil
}

func filterParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("type_of_action", mcp.Description("Comma-separated types of action")),
		mcp.WithString("call", mcp.Description("Comma-separated call names")),
		mcp.WithString("trl", mcp.Description("Comma-separated TRL values, e.g. '4-6,5'")),
		mcp.WithString("destination", mcp.Description("Semicolon-separated destinations; titles may contain commas")),
		mcp.WithNumber("min_budget", mcp.Description("Minimum budget per project in EUR")),
		mcp.WithNumber("max_budget", mcp.Description("Maximum budget per project in EUR")),
		mcp.WithString("opening_from", mcp.Description("Earliest opening date, e.g. 2024-03-01 or '1 March 2024'")),
		mcp.WithString("opening_to", mcp.Description("Latest opening date")),
		mcp.WithString("deadline_from", mcp.Description("Earliest deadline")),
		mcp.WithString("deadline_to", mcp.Description("Latest deadline")),
		mcp.WithString("keyword", mcp.Description("Keyword that must appear in any field")),
	}
}

// registerTools registers every topics tool with the MCP server
func (s *Server) registerTools() {
	// Document loading tools
	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolExtractFile,
		mcp.WithDescription(descriptions.ExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the work programme PDF, relative to the configured directory or absolute"),
		),
	), s.handleExtractFile)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolExtractText,
		mcp.WithDescription(descriptions.ExtractTextDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Plain text of a work programme"),
		),
		mcp.WithString("source",
			mcp.Description("Label for the loaded session (defaults to 'text')"),
		),
	), s.handleExtractText)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolListFiles,
		mcp.WithDescription(descriptions.ListFilesDescription),
		mcp.WithString("query",
			mcp.Description("Optional substring of the file name"),
		),
	), s.handleListFiles)

	// Session query tools
	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolList,
		mcp.WithDescription(descriptions.ListDescription),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of topics to show (default all)"),
		),
	), s.handleList)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolGet,
		mcp.WithDescription(descriptions.GetDescription),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Topic code, e.g. HORIZON-CL5-2024-D1-01-01"),
		),
	), s.handleGet)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolSearch,
		mcp.WithDescription(descriptions.SearchDescription),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Keyword to look for"),
		),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolFilter,
		append([]mcp.ToolOption{mcp.WithDescription(descriptions.FilterDescription)}, filterParams()...)...,
	), s.handleFilter)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolFacets,
		mcp.WithDescription(descriptions.FacetsDescription),
	), s.handleFacets)

	// Export takes the same filter parameters as topics_filter
	exportOpts := []mcp.ToolOption{
		mcp.WithDescription(descriptions.ExportDescription),
		mcp.WithString("format",
			mcp.Description("xlsx (default), csv, json or yaml"),
		),
		mcp.WithString("filename",
			mcp.Description("File name without directory (default horizon_topics)"),
		),
	}
	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolExport,
		append(exportOpts, filterParams()...)...,
	), s.handleExport)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.ServerInfoDescription),
	), s.handleServerInfo)
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting topics MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP/SSE until ctx is cancelled.
func (s *Server) runServerMode(ctx context.Context) error {
	// Listen errors are returned directly from Run
	addr := s.config.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{ReadHeaderTimeout: 10 * time.Second}
	sse := server.NewSSEServer(s.mcpServer, server.WithHTTPServer(httpServer))
	httpServer.Handler = sse

	// Serve in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	log.Printf("Topics MCP server listening on %s (SSE)", listener.Addr())

	// Wait for a serve error or context cancellation
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down SSE server")
	// Give open SSE sessions a bounded time to close
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down SSE server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve SSE: %w", err)
	}
	return nil
}
