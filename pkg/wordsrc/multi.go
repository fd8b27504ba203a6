package wordsrc

import (
	"errors"

	"github.com/charmbracelet/log"
)

// MultiSource combines several sources behind the Source interface. Results
// keep source order (first source's words first) and are deduplicated, so a
// word offered by two sources is tried once, at its best position. Individual
// sources can be toggled off without removing them.
type MultiSource struct {
	sources []Source
	active  []bool
}

// NewMultiSource builds a combined source. Order matters: earlier sources
// rank higher.
func NewMultiSource(sources ...Source) *MultiSource {
	m := &MultiSource{}
	for _, s := range sources {
		m.Add(s)
	}
	return m
}

// Add appends a source, enabled.
func (m *MultiSource) Add(s Source) {
	m.sources = append(m.sources, s)
	m.active = append(m.active, true)
}

// Len returns the number of contained sources.
func (m *MultiSource) Len() int { return len(m.sources) }

// SetActive toggles the i-th source.
func (m *MultiSource) SetActive(i int, on bool) {
	if i >= 0 && i < len(m.active) {
		m.active[i] = on
	}
}

// Lookup concatenates the active sources' results in order. A malformed
// pattern is an error for every source and propagates; any other per-source
// failure only costs that source's words.
func (m *MultiSource) Lookup(pattern string, exclude Excluder) ([]string, error) {
	var (
		words []string
		seen  = make(map[string]struct{})
	)
	for i, src := range m.sources {
		if !m.active[i] {
			continue
		}
		got, err := src.Lookup(pattern, exclude)
		if err != nil {
			var bad *InvalidPatternError
			if errors.As(err, &bad) {
				return nil, err
			}
			log.Warnf("source %d failed for %q: %v", i, pattern, err)
			continue
		}
		for _, w := range got {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words, nil
}
