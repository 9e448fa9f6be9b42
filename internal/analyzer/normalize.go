// Package analyzer turns raw CV and job-offer text into structured
// profiles using rule-based extraction: lexicon lookups with word
// boundaries, regex patterns and context windows. No entity
// recognition, no model inference.
package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// NormalizeText cleans raw extracted text before analysis: control
// characters are stripped (tab, newline and carriage return survive
// only long enough to be folded into spaces), whitespace runs collapse
// to a single space, and the result is trimmed.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		// C0 and C1 control ranges show up in PDF extractions.
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := whitespaceRuns.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(cleaned)
}

// capitalize upper-cases the first rune, matching how language and
// proficiency labels are presented.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
