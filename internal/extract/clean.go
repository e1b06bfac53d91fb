package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/ppiankov/citeprep/internal/model"
)

// Literal escape sequences left in the dumps by the scraper, not control characters
const (
	escapedNewline = `\n`
	escapedCRLF    = `\r\n`
)

var spaceRun = regexp.MustCompile(` +`)

// CleanSentence normalizes extracted text into a single-line sentence:
// literal `\n` then `\r\n` escapes are removed and runs of U+0020 collapse
// to one space. Tabs and real newlines are left alone, and so are leading
// or trailing spaces.
func CleanSentence(s string) string {
	s = strings.ReplaceAll(s, escapedNewline, "")
	s = strings.ReplaceAll(s, escapedCRLF, "")
	return spaceRun.ReplaceAllString(s, " ")
}

// TokenCount counts the pieces of s split on single spaces.
// An empty string counts as one token.
func TokenCount(s string) int {
	return strings.Count(s, " ") + 1
}

// LabelFor maps a citations column to a label: "N/A" is negative,
// anything else (including empty) is positive.
func LabelFor(citations string) model.Label {
	if citations == "N/A" {
		return model.Negative
	}
	return model.Positive
}

// ContentHash returns the lowercase hex SHA-224 digest of the sentence
func ContentHash(sentence string) string {
	sum := sha256.Sum224([]byte(sentence))
	return hex.EncodeToString(sum[:])
}
