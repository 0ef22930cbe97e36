package services

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRun = regexp.MustCompile(`[ \t]+`)
	excessNewlineRun   = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes whitespace in extracted text. It is idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = horizontalSpaceRun.ReplaceAllString(text, " ")
	text = excessNewlineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Preview returns the first limit characters of text, with "..." appended when
// something was cut.
func Preview(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
