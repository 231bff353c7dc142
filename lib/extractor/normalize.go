package extractor

import (
	"regexp"
	"strings"
)

var (
	newlinesRe = regexp.MustCompile(`\n+`)
	spacesRe   = regexp.MustCompile(`[ \t]+`)
)

// Normalize CR/CRLF -> LF, серии переводов строк -> один, серии пробелов и табов -> один пробел
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = newlinesRe.ReplaceAllString(text, "\n")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
