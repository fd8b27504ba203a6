package wordsrc

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// LoadFile reads a word-list file into a MemorySource. Each record is a word
// optionally followed by a frequency field, separated by delim (use ' ' for
// plain "word freq" lists, ',' or ';' for CSV exports). Records with no
// frequency rank equally and therefore sort alphabetically on lookup.
func LoadFile(path string, delim rune) (*MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", path, err)
	}

	m := NewMemorySource()
	skipped := 0
	for _, rec := range records {
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		freq := 1
		if len(rec) > 1 {
			if v, err := strconv.Atoi(rec[1]); err == nil && v > 0 {
				freq = v
			}
		}
		if !m.AddWord(rec[0], freq) {
			skipped++
		}
	}
	if skipped > 0 {
		log.Warnf("word list %s: skipped %d unusable entries", path, skipped)
	}
	log.Debugf("loaded %d words from %s", m.Len(), path)
	return m, nil
}
