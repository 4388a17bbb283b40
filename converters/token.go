// SPDX-License-Identifier: MIT
// Package: kec/converters
//
// token.go - token normalization for association cues and responses.

package converters

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TokenNorm decomposes s (NFKD), strips combining marks, lowercases, turns
// every rune that is not a letter, digit, underscore or space into a space
// and collapses runs of whitespace. "Café-Au-Lait " becomes "cafe au lait".
func TokenNorm(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}
