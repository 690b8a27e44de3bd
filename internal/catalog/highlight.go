package catalog

import (
	"html"
	"regexp"
	"strings"
)

// Highlight HTML-escapes text and wraps case-insensitive matches of keyword
// in <mark> tags. Matching runs on the raw text, so a keyword never lands
// inside an entity. An empty keyword only escapes.
func Highlight(text, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return html.EscapeString(text)
	}

	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(keyword))
	if err != nil {
		return html.EscapeString(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range pattern.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:m[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(text[m[0]:m[1]]))
		b.WriteString("</mark>")
		last = m[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}
