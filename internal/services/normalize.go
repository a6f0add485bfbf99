package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// normalizeText trims, collapses inner whitespace, and applies Unicode NFC so
// that visually identical media identities compare equal in the unique index.
func normalizeText(s string) string {
	return norm.NFC.String(whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " "))
}

// normalizeBody trims and applies NFC but keeps line structure intact.
func normalizeBody(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
