package topics

import (
	"regexp"
	"strings"
)

var (
	// bareCodeLine is a section code on its own line whose title wrapped onto the next line.
	bareCodeLine = regexp.MustCompile(`^HORIZON-[A-Z0-9\-]+:?$`)

	// headerLine is "<code>: <title>".
	headerLine = regexp.MustCompile(`^(HORIZON-[A-Za-z0-9\-]+):\s*(.*)$`)
)

// topicMarkers must appear in the lookahead window for a header to count as a topic.
var topicMarkers = []string{"call:", "type of action"}

// blockCutoff ends a block early; what follows is destination boilerplate.
const blockCutoff = "this destination"

// Reflow joins a bare section-code line with the line that follows it.
// The result is never longer than the input.
func Reflow(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if bareCodeLine.MatchString(lines[i]) && i+1 < len(lines) {
			out = append(out, lines[i]+" "+lines[i+1])
			i += 2
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return out
}

// parseHeader returns the code and title of a header line.
func parseHeader(line string) (code, title string, ok bool) {
	m := headerLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// FindHeaders returns the headers that pass the lookahead check, in document order.
func FindHeaders(lines []string, lookahead int) []TopicHeader {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	var headers []TopicHeader
	for i, line := range lines {
		code, title, ok := parseHeader(line)
		if !ok {
			continue
		}
		end := min(i+1+lookahead, len(lines))
		window := strings.ToLower(strings.Join(lines[i+1:end], "\n"))
		if !containsAny(window, topicMarkers) {
			continue
		}
		headers = append(headers, TopicHeader{Code: code, Title: title, StartLine: i})
	}
	return headers
}

// Segment cuts reflowed lines into topic blocks. A block runs from its header
// to the next accepted header or to an earlier "this destination" line.
// Documents without an accepted header yield an empty slice.
func Segment(lines []string, lookahead int) []TopicBlock {
	headers := FindHeaders(lines, lookahead)
	blocks := make([]TopicBlock, 0, len(headers))
	for idx, h := range headers {
		end := len(lines)
		if idx+1 < len(headers) {
			end = headers[idx+1].StartLine
		}
		for j := h.StartLine + 1; j < end; j++ {
			if strings.HasPrefix(strings.ToLower(lines[j]), blockCutoff) {
				end = j
				break
			}
		}
		blocks = append(blocks, TopicBlock{
			Code:     h.Code,
			Title:    h.Title,
			FullText: strings.TrimSpace(strings.Join(lines[h.StartLine:end], "\n")),
		})
	}
	return blocks
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
