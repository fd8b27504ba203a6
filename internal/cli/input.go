// Package cli handles interactive pattern lookups for testing word sources
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avosk/gridfill/pkg/wordsrc"
)

// InputHandler reads patterns from stdin and prints the matching words.
// Useful for checking what a word list can offer a slot before running a
// whole generation.
type InputHandler struct {
	source       wordsrc.Source
	limit        int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(source wordsrc.Source, limit int) *InputHandler {
	return &InputHandler{
		source: source,
		limit:  limit,
	}
}

// Start begins the interface loop.
// It continuously prompts for a pattern, reads a line from stdin and prints
// the matches. Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("gridfill pattern lookup")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a pattern ('?' for any letter, e.g. c?t) and press Enter (Ctrl+C to exit):")

	for {
		log.Print("> ")
		pattern, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		h.handlePattern(pattern)
	}
}

// handlePattern runs a single lookup and prints the results.
func (h *InputHandler) handlePattern(pattern string) {
	h.requestCount++

	start := time.Now()
	words, err := h.source.Lookup(pattern, nil)
	elapsed := time.Since(start)

	if err != nil {
		var bad *wordsrc.InvalidPatternError
		if errors.As(err, &bad) {
			log.Errorf("Bad pattern: %v", bad)
			return
		}
		log.Errorf("Lookup failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for pattern '%s'", elapsed, pattern)

	if len(words) == 0 {
		log.Warnf("No matches for pattern: '%s'", pattern)
		return
	}

	shown := words
	if len(shown) > h.limit {
		shown = shown[:h.limit]
	}
	log.Printf("Found %d matches for pattern '%s':", len(words), pattern)
	for i, w := range shown {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
		log.Printf("%2d. %s", i+1, clWord)
	}
	if len(words) > len(shown) {
		log.Printf("... and %d more", len(words)-len(shown))
	}
}
