package topics

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
	blankRun        = regexp.MustCompile(` ?\n[ \n]*`)
	lineEndings     = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ")
)

// Normalize canonicalizes raw extracted text: unified line endings, NFKC
// compatibility folding, single spaces, no blank lines and no surrounding
// whitespace. Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	text = lineEndings.Replace(text)
	// Controls go before NFKC so a stray one cannot block composition of the
	// characters around it.
	text = strings.Map(dropControl, text)
	text = norm.NFKC.String(text)
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = blankRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func dropControl(r rune) rune {
	switch r {
	case '\n', '\t', '\f', '\v':
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}

// SplitLines returns the trimmed, non-empty lines of text in order.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
