package pdf

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxTextSize caps the amount of text pulled out of a single document.
const DefaultMaxTextSize = 10 * 1024 * 1024

// Reader extracts the text layer of PDF files.
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: DefaultMaxTextSize,
	}
}

// ReadText extracts every page's plain text and joins pages with a newline.
func (r *Reader) ReadText(req ReadTextRequest) (*ReadTextResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := checkFileInfo(req.Path, fileInfo, r.maxFileSize); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, truncated := r.extractText(pdfReader)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content could be extracted from PDF: %s", req.Path)
	}

	return &ReadTextResult{
		Path:      req.Path,
		Pages:     pdfReader.NumPage(),
		Size:      fileInfo.Size(),
		Text:      text,
		Truncated: truncated,
	}, nil
}

func (r *Reader) extractText(pdfReader *pdf.Reader) (string, bool) {
	var builder strings.Builder

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable pages are skipped
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		if builder.Len()+len(content) > r.maxTextSize {
			if remaining := r.maxTextSize - builder.Len(); remaining > 0 {
				builder.WriteString(truncateRunes(content, remaining))
			}
			return builder.String(), true
		}
		builder.WriteString(content)
	}

	return builder.String(), false
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
