package wordsrc

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/avosk/gridfill/internal/utils"
)

// WordEntry is one word with its relevance weight.
type WordEntry struct {
	Word string `msgpack:"w"`
	Freq int    `msgpack:"f"`
}

// MemorySource keeps words in one patricia trie per rune length, so a lookup
// only ever scans words that can possibly match. Results are ranked by
// frequency, then lexicographically, which keeps the order reproducible.
type MemorySource struct {
	byLen map[int]*patricia.Trie
	count int
}

// NewMemorySource returns an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{byLen: make(map[int]*patricia.Trie)}
}

// FromWords builds a source from a plain word list. Earlier words get higher
// frequency, preserving the list's own relevance order.
func FromWords(words []string) *MemorySource {
	m := NewMemorySource()
	for i, w := range words {
		m.AddWord(w, len(words)-i)
	}
	return m
}

// AddWord normalizes and inserts a word. Entries that are not usable
// crossword words (digits, punctuation, single runes) are dropped.
func (m *MemorySource) AddWord(word string, freq int) bool {
	w := utils.NormalizeWord(word)
	if !utils.IsWord(w) {
		log.Debugf("skipping unusable word %q", word)
		return false
	}
	if freq < 1 {
		freq = 1
	}
	n := utils.RuneLen(w)
	trie := m.byLen[n]
	if trie == nil {
		trie = patricia.NewTrie()
		m.byLen[n] = trie
	}
	if trie.Insert(patricia.Prefix(w), freq) {
		m.count++
	} else {
		trie.Set(patricia.Prefix(w), freq)
	}
	return true
}

// Len returns the number of distinct words held.
func (m *MemorySource) Len() int { return m.count }

// Entries returns every word with its frequency, in no particular order.
func (m *MemorySource) Entries() []WordEntry {
	entries := make([]WordEntry, 0, m.count)
	for _, trie := range m.byLen {
		trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
			entries = append(entries, WordEntry{Word: string(p), Freq: item.(int)})
			return nil
		})
	}
	return entries
}

// Lookup scans the trie for the pattern's rune length, walking only the
// subtree under the pattern's known leading letters.
func (m *MemorySource) Lookup(pattern string, exclude Excluder) ([]string, error) {
	rs, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	trie := m.byLen[len(rs)]
	if trie == nil {
		return nil, nil
	}

	var found []WordEntry
	err = trie.VisitSubtree(patricia.Prefix(knownPrefix(rs)), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if !Match(word, rs) {
			return nil
		}
		if exclude != nil && exclude(word) {
			return nil
		}
		found = append(found, WordEntry{Word: word, Freq: item.(int)})
		return nil
	})
	if err != nil {
		log.Errorf("visiting trie subtree: %v", err)
		return nil, nil
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Freq != found[j].Freq {
			return found[i].Freq > found[j].Freq
		}
		return found[i].Word < found[j].Word
	})
	words := make([]string, len(found))
	for i, e := range found {
		words[i] = e.Word
	}
	return words, nil
}
