package grid

import (
	"fmt"
	"unicode"
)

// Slot is a maximal run of open cells in one row or column, length >= 2.
// Slots are owned by the grid that derived them; the ID is stable for a given
// blocked layout and orders slots rows-first, columns second.
type Slot struct {
	ID    int
	Dir   Dir
	Start Coord
	Len   int
}

// Cells returns the coordinates covered by the slot, in reading order.
func (s *Slot) Cells() []Coord {
	cells := make([]Coord, s.Len)
	for i := range cells {
		if s.Dir == Across {
			cells[i] = Coord{s.Start.Row, s.Start.Col + i}
		} else {
			cells[i] = Coord{s.Start.Row + i, s.Start.Col}
		}
	}
	return cells
}

// Cell returns the i-th coordinate of the slot.
func (s *Slot) Cell(i int) Coord {
	if s.Dir == Across {
		return Coord{s.Start.Row, s.Start.Col + i}
	}
	return Coord{s.Start.Row + i, s.Start.Col}
}

func (s *Slot) String() string {
	return fmt.Sprintf("slot %d %s (%d,%d) len %d", s.ID, s.Dir, s.Start.Row, s.Start.Col, s.Len)
}

// ConflictError reports a commit whose letter disagrees with one already fixed
// by a crossing slot. Candidates are pattern-filtered before commit, so this
// surfacing means a defect in the caller and is fatal to the run.
type ConflictError struct {
	Slot *Slot
	Word string
	Cell Coord
	Have rune
	Want rune
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grid: %q conflicts at (%d,%d) on %s: cell holds %q, word needs %q",
		e.Word, e.Cell.Row, e.Cell.Col, e.Slot, e.Have, e.Want)
}

// Slots returns all slots of the current blocked layout, rebuilding the cache
// if the layout changed since the last call.
func (g *Grid) Slots() []*Slot {
	g.ensureSlots()
	return g.slots
}

// SlotAt returns the slot with the given ID, or nil.
func (g *Grid) SlotAt(id int) *Slot {
	g.ensureSlots()
	if id < 0 || id >= len(g.slots) {
		return nil
	}
	return g.slots[id]
}

// CrossingAt returns the across and down slot covering a cell. Either may be
// nil: cells in a run of length 1 belong to no slot in that direction.
func (g *Grid) CrossingAt(c Coord) (across, down *Slot) {
	g.ensureSlots()
	x := g.crossings[c]
	return x.across, x.down
}

func (g *Grid) ensureSlots() {
	if !g.stale {
		return
	}
	g.slots = nil
	g.crossings = make(map[Coord]crossing)

	// Rows first, then columns, matching the conventional numbering order.
	for i := 0; i < g.rows; i++ {
		start := 0
		for j := 0; j <= g.cols; j++ {
			if j < g.cols && g.cells[i][j] != Blocked {
				continue
			}
			if j-start >= 2 {
				g.addSlot(Across, Coord{i, start}, j-start)
			}
			start = j + 1
		}
	}
	for j := 0; j < g.cols; j++ {
		start := 0
		for i := 0; i <= g.rows; i++ {
			if i < g.rows && g.cells[i][j] != Blocked {
				continue
			}
			if i-start >= 2 {
				g.addSlot(Down, Coord{start, j}, i-start)
			}
			start = i + 1
		}
	}
	g.stale = false
}

func (g *Grid) addSlot(dir Dir, start Coord, length int) {
	s := &Slot{ID: len(g.slots), Dir: dir, Start: start, Len: length}
	g.slots = append(g.slots, s)
	for _, c := range s.Cells() {
		x := g.crossings[c]
		if dir == Across {
			x.across = s
		} else {
			x.down = s
		}
		g.crossings[c] = x
	}
}

// Pattern reads the slot's current letters, with Wildcard for empty cells.
func (g *Grid) Pattern(s *Slot) string {
	out := make([]rune, s.Len)
	for i := 0; i < s.Len; i++ {
		c := s.Cell(i)
		if r := g.cells[c.Row][c.Col]; r == Blank {
			out[i] = Wildcard
		} else {
			out[i] = r
		}
	}
	return string(out)
}

// Complete reports whether every cell of the slot holds a letter.
func (g *Grid) Complete(s *Slot) bool {
	for i := 0; i < s.Len; i++ {
		c := s.Cell(i)
		if g.cells[c.Row][c.Col] == Blank {
			return false
		}
	}
	return true
}

// Commit writes a word into the slot. The word must be lowercase letters of
// the slot's exact rune length. Cells already holding the same letter are
// left alone; a cell holding a different letter aborts with ConflictError
// before anything is written, so a failed commit never mutates the grid.
func (g *Grid) Commit(s *Slot, word string) error {
	rs := []rune(word)
	if len(rs) != s.Len {
		return fmt.Errorf("grid: word %q has %d runes, %s wants %d", word, len(rs), s, s.Len)
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("grid: word %q has non-letter %q", word, r)
		}
		c := s.Cell(i)
		if have := g.cells[c.Row][c.Col]; have != Blank && have != r {
			return &ConflictError{Slot: s, Word: word, Cell: c, Have: have, Want: r}
		}
	}
	for i, r := range rs {
		c := s.Cell(i)
		g.cells[c.Row][c.Col] = r
	}
	return nil
}

// Uncommit clears the slot's letters, keeping any cell whose crossing slot is
// still committed according to the caller. Passing a nil predicate clears the
// whole slot unconditionally.
func (g *Grid) Uncommit(s *Slot, committed func(*Slot) bool) {
	for i := 0; i < s.Len; i++ {
		c := s.Cell(i)
		if committed != nil {
			across, down := g.CrossingAt(c)
			other := across
			if s.Dir == Across {
				other = down
			}
			if other != nil && committed(other) {
				continue
			}
		}
		g.cells[c.Row][c.Col] = Blank
	}
}
