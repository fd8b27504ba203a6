package fill

import (
	"time"

	"github.com/avosk/gridfill/pkg/grid"
)

// Assignment records a word committed to a slot and which source (index into
// the Filler's source list) supplied it.
type Assignment struct {
	Slot   *grid.Slot
	Word   string
	Source int
}

// Score summarizes how good a (possibly partial) fill is. Produced by
// Evaluate; comparison is deterministic via Better.
type Score struct {
	FilledCellRatio float64
	FilledSlotRatio float64
	UniqueWords     int
}

// Better reports whether s is strictly better than o: more cells filled,
// then more slots filled, then more distinct words. Equal scores are not
// better, so the first result of a tie wins.
func (s Score) Better(o Score) bool {
	if s.FilledCellRatio != o.FilledCellRatio {
		return s.FilledCellRatio > o.FilledCellRatio
	}
	if s.FilledSlotRatio != o.FilledSlotRatio {
		return s.FilledSlotRatio > o.FilledSlotRatio
	}
	return s.UniqueWords > o.UniqueWords
}

// Evaluate scores a grid's current state. Pure: the grid is not touched.
func Evaluate(g *grid.Grid) Score {
	open, filled := g.CountCells()
	slots := g.Slots()

	done := 0
	words := make(map[string]struct{})
	for _, s := range slots {
		if g.Complete(s) {
			done++
			words[g.Pattern(s)] = struct{}{}
		}
	}

	sc := Score{UniqueWords: len(words), FilledCellRatio: 1, FilledSlotRatio: 1}
	if open > 0 {
		sc.FilledCellRatio = float64(filled) / float64(open)
	}
	if len(slots) > 0 {
		sc.FilledSlotRatio = float64(done) / float64(len(slots))
	}
	return sc
}

// Result is what a generation run hands back to the caller.
type Result struct {
	// Assignments lists the words the engine committed, in slot order.
	// Words already present in the input grid are not listed.
	Assignments []Assignment
	Score       Score
	// Complete is false when the run ended with unfilled slots, whether from
	// budget exhaustion or a genuinely unfillable pattern.
	Complete bool
	Attempts int
	Duration time.Duration
}
