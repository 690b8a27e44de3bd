package pdf

// FileInfo describes a PDF file found in the configured directory.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ReadTextRequest asks for the plain text of a PDF file.
type ReadTextRequest struct {
	Path string `json:"path"`
}

// ReadTextResult carries the text layer of a PDF, pages joined by newlines.
type ReadTextResult struct {
	Path      string `json:"path"`
	Pages     int    `json:"pages"`
	Size      int64  `json:"size"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

// ValidateFileRequest asks whether a file is a readable PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult reports validation outcome. Invalid files are not errors.
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Pages   int    `json:"pages,omitempty"`
}

// ListFilesRequest lists PDFs below a directory, optionally filtered by name.
type ListFilesRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ListFilesResult holds the matching PDF files.
type ListFilesResult struct {
	Directory  string     `json:"directory"`
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
}
