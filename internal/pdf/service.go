package pdf

import (
	"fmt"

	"github.com/a3tai/horizon-topics/internal/pdf/security"
)

// Service is the PDF text source for the topic pipeline. Every path it
// touches must lie inside the configured directory.
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	finder        *Finder
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service rooted at configuredDirectory.
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		finder:        NewFinder(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ResolvePath maps a relative path onto the configured directory and checks it.
func (s *Service) ResolvePath(path string) (string, error) {
	resolved, err := s.pathValidator.NormalizePath(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	return resolved, nil
}

// ReadText validates the file and returns its text layer.
func (s *Service) ReadText(req ReadTextRequest) (*ReadTextResult, error) {
	path, err := s.ResolvePath(req.Path)
	if err != nil {
		return nil, err
	}

	validation, err := s.validator.ValidateFile(ValidateFileRequest{Path: path})
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("invalid PDF: %s", validation.Message)
	}

	return s.reader.ReadText(ReadTextRequest{Path: path})
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	path, err := s.ResolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return s.validator.ValidateFile(ValidateFileRequest{Path: path})
}

// ListFiles lists PDFs in a directory, defaulting to the configured one.
func (s *Service) ListFiles(req ListFilesRequest) (*ListFilesResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.ConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.finder.ListFiles(req)
}

// MaxFileSize returns the maximum file size limit
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// Directory returns the configured PDF directory.
func (s *Service) Directory() string {
	return s.pathValidator.ConfiguredDirectory()
}
