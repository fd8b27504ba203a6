package wordsrc

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Compiled word lists are msgpack files: a header with a magic string and the
// entry count, then one WordEntry per word. Compiling a large text list once
// makes later loads cheap.

const binaryMagic = "gridfill-words"

type binaryHeader struct {
	Magic string `msgpack:"m"`
	Count int    `msgpack:"n"`
}

// SaveBinary writes the source's words to a compiled list at path.
func SaveBinary(m *MemorySource, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create binary list: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := msgpack.NewEncoder(w)
	entries := m.Entries()
	if err := enc.Encode(binaryHeader{Magic: binaryMagic, Count: len(entries)}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write entry %q: %w", e.Word, err)
		}
	}
	return w.Flush()
}

// LoadBinary reads a compiled word list back into a MemorySource.
func LoadBinary(path string) (*MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open binary list: %w", err)
	}
	defer f.Close()

	dec := msgpack.NewDecoder(bufio.NewReader(f))
	var hdr binaryHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if hdr.Magic != binaryMagic {
		return nil, fmt.Errorf("%s is not a compiled word list", path)
	}

	m := NewMemorySource()
	for i := 0; i < hdr.Count; i++ {
		var e WordEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("read entry %d: %w", i, err)
		}
		m.AddWord(e.Word, e.Freq)
	}
	log.Debugf("loaded %d words from compiled list %s", m.Len(), path)
	return m, nil
}
