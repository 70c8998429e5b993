package segmenter

import (
	"regexp"
	"strings"
)

var (
	tabRuns     = regexp.MustCompile(`\t+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// Sanitize normalises line endings and spacing: CRLF becomes LF, the
// ideographic space becomes an ASCII space, tab runs become one space, and
// the result is trimmed.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "　", " ")
	text = tabRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitParagraphs splits sanitized text on runs of newlines.
// Paragraphs are returned untrimmed and may be blank.
func SplitParagraphs(text string) []string {
	return newlineRuns.Split(text, -1)
}
