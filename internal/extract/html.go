// Package extract turns raw statement text into cleaned, labeled sentences.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// TextExtractor collects the text content of an HTML fragment.
//
// Extract resets the accumulator before every call, so one extractor can be
// reused across records. It is not safe for concurrent use.
type TextExtractor struct {
	buf strings.Builder
}

// NewTextExtractor creates a new text extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the concatenated text tokens of fragment in document order.
// Tags, attributes, comments and doctypes are dropped. Markup does not need
// to be well formed; the tokenizer recovers what text it can and Extract
// never fails.
func (e *TextExtractor) Extract(fragment string) string {
	e.buf.Reset()

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way keep what we have
			return e.buf.String()
		case html.TextToken:
			e.buf.Write(z.Text())
		}
	}
}

// ExtractText extracts text from fragment with a fresh extractor
func ExtractText(fragment string) string {
	return NewTextExtractor().Extract(fragment)
}
