package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord brings a word into the canonical form used everywhere in the
// engine: trimmed, NFC-composed and case-folded. Diacritics and non-Latin
// letters are kept as-is so sources in any alphabet compare consistently.
// A cases.Caser is stateful, so a fresh one is built per call.
func NormalizeWord(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// IsWord reports whether a normalized string is usable as a crossword entry:
// at least two runes, letters only.
func IsWord(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n >= 2
}

// RuneLen returns the length of a string in runes, which is the unit every
// grid and pattern length is measured in.
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
