// Package words splits free text into lowercase whitespace-delimited tokens.
//
// Only Unicode whitespace separates tokens; punctuation stays attached to the
// word it follows. Input is NFC-normalized before lowering so that composed
// and decomposed spellings of the same word produce the same token.
package words

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Split returns the lowercase tokens of s in input order.
// The result is never nil.
func Split(s string) []string {
	fields := strings.Fields(norm.NFC.String(s))
	tokens := make([]string, 0, len(fields))

	// cases.Caser is stateful and not safe for concurrent use.
	lower := cases.Lower(language.Und)
	for _, f := range fields {
		tokens = append(tokens, lower.String(f))
	}
	return tokens
}
