package wordsrc

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/avosk/gridfill/internal/utils"
)

// DBSource serves lookups from a SQLite word table. The pattern is pushed
// down as a SQL LIKE filter ('?' becomes '_'), then re-checked in Go because
// LIKE is only case-insensitive for ASCII and the exclude set cannot be
// expressed in SQL.
type DBSource struct {
	db *sql.DB
}

// OpenDB opens (or creates) a SQLite word database at path.
func OpenDB(path string) (*DBSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open word db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping word db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	s := &DBSource{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DBSource) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			freq INTEGER NOT NULL DEFAULT 1
		)`)
	if err != nil {
		return fmt.Errorf("init word schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *DBSource) Close() error {
	return s.db.Close()
}

// AddWord normalizes and stores a word, replacing any previous frequency.
func (s *DBSource) AddWord(word string, freq int) error {
	w := utils.NormalizeWord(word)
	if !utils.IsWord(w) {
		return fmt.Errorf("unusable word %q", word)
	}
	if freq < 1 {
		freq = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO words (word, freq) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET freq = excluded.freq`, w, freq)
	if err != nil {
		return fmt.Errorf("insert word %q: %w", w, err)
	}
	return nil
}

// Len returns the number of stored words.
func (s *DBSource) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// Lookup queries words matching the pattern, ordered by frequency then word.
func (s *DBSource) Lookup(pattern string, exclude Excluder) ([]string, error) {
	rs, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	like := strings.ReplaceAll(string(rs), string(Wildcard), "_")

	rows, err := s.db.Query(`
		SELECT word FROM words
		WHERE length(word) = ? AND word LIKE ?
		ORDER BY freq DESC, word ASC`, len(rs), like)
	if err != nil {
		log.Errorf("word db query: %v", err)
		return nil, nil
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			log.Errorf("word db scan: %v", err)
			return nil, nil
		}
		if !Match(w, rs) {
			continue
		}
		if exclude != nil && exclude(w) {
			continue
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("word db rows: %v", err)
		return nil, nil
	}
	return words, nil
}
