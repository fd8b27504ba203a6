/*
Package wordsrc provides the word sources the fill engines draw candidates
from. A source answers one question: which words match a fixed-length letter
pattern, excluding a caller-supplied set.

Patterns use '?' for unknown positions and lowercase letters for fixed ones,
e.g. "f?th??" matches "father". Words are normalized (NFC, case-folded) on the
way in, so lookups are case-insensitive and diacritics are ordinary alphabet
symbols.

Concrete sources: MemorySource (patricia-trie backed, also the result of
loading word-list files and compiled binary lists), DBSource (SQLite) and
MultiSource (ordered combination).
*/
package wordsrc

import (
	"fmt"
	"unicode"
)

// Wildcard marks an unknown letter position in a pattern.
const Wildcard = '?'

// Excluder reports whether a word must be left out of lookup results.
// The engine passes the union of its blacklist and used-word set here.
type Excluder func(word string) bool

// Source is the capability every word source provides. Returned words match
// the pattern's rune length and every fixed position exactly, never include
// excluded words, and are ordered by source-defined relevance (first returned
// is tried first). An empty result means no candidate exists; only a
// malformed pattern is an error.
type Source interface {
	Lookup(pattern string, exclude Excluder) ([]string, error)
}

// InvalidPatternError reports a pattern a source cannot interpret.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("wordsrc: invalid pattern %q: %s", e.Pattern, e.Reason)
}

// parsePattern validates a pattern and returns its runes.
func parsePattern(pattern string) ([]rune, error) {
	rs := []rune(pattern)
	if len(rs) == 0 {
		return nil, &InvalidPatternError{Pattern: pattern, Reason: "empty"}
	}
	for _, r := range rs {
		if r == Wildcard {
			continue
		}
		if !unicode.IsLetter(r) {
			return nil, &InvalidPatternError{Pattern: pattern, Reason: fmt.Sprintf("bad rune %q", r)}
		}
	}
	return rs, nil
}

// knownPrefix returns the leading fixed letters of a parsed pattern, used to
// narrow trie and index scans.
func knownPrefix(rs []rune) string {
	for i, r := range rs {
		if r == Wildcard {
			return string(rs[:i])
		}
	}
	return string(rs)
}

// Match reports whether a normalized word satisfies a parsed pattern.
func Match(word string, rs []rune) bool {
	ws := []rune(word)
	if len(ws) != len(rs) {
		return false
	}
	for i, r := range rs {
		if r != Wildcard && ws[i] != r {
			return false
		}
	}
	return true
}
