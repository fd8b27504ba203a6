/*
Package grid implements the crossword grid model: a rectangular matrix of
cells, the slots (maximal open runs) derived from its blocked layout, and the
crossing index that ties every cell to the across and down slot covering it.

A grid is parsed from plain text rows where '*' marks a blocked cell, '_' an
empty cell and any letter a pre-filled cell:

	g, err := grid.Parse([]string{
		"__*__",
		"__*__",
		"_____",
	})

Slots are derived state. They are extracted lazily from the blocked layout and
cached until the layout changes; letter fills never invalidate them.
*/
package grid

import (
	"fmt"
	"strings"
	"unicode"
)

// Cell markers in the textual grid form.
const (
	Blocked  = '*'
	Blank    = '_'
	Wildcard = '?'
)

// Dir is the orientation of a slot.
type Dir uint8

const (
	Across Dir = iota
	Down
)

func (d Dir) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Coord addresses a single cell, row first.
type Coord struct {
	Row, Col int
}

// Grid is the 2-D cell matrix. It is not safe for concurrent mutation;
// concurrent generation runs must each own a private clone.
type Grid struct {
	rows, cols int
	cells      [][]rune

	slots     []*Slot
	crossings map[Coord]crossing
	stale     bool
}

type crossing struct {
	across, down *Slot
}

// Parse builds a grid from textual rows. All rows must have equal length and
// letters are stored lowercased.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: no rows")
	}
	cells := make([][]rune, len(rows))
	cols := -1
	for i, row := range rows {
		rs := []rune(row)
		if cols < 0 {
			cols = len(rs)
		} else if len(rs) != cols {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", i, len(rs), cols)
		}
		for j, r := range rs {
			switch {
			case r == Blocked || r == Blank:
			case unicode.IsLetter(r):
				rs[j] = unicode.ToLower(r)
			default:
				return nil, fmt.Errorf("grid: invalid cell %q at (%d,%d)", r, i, j)
			}
		}
		cells[i] = rs
	}
	if cols == 0 {
		return nil, fmt.Errorf("grid: zero width")
	}
	return &Grid{rows: len(rows), cols: cols, cells: cells, stale: true}, nil
}

// New builds an all-empty grid of the given dimensions.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", rows, cols)
	}
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
		for j := range cells[i] {
			cells[i][j] = Blank
		}
	}
	return &Grid{rows: rows, cols: cols, cells: cells, stale: true}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell marker at c: Blocked, Blank or a letter.
func (g *Grid) At(c Coord) rune { return g.cells[c.Row][c.Col] }

// SetBlocked toggles a cell between blocked and empty. Any letter at the cell
// is discarded and the slot cache is invalidated.
func (g *Grid) SetBlocked(c Coord, blocked bool) {
	if blocked {
		g.cells[c.Row][c.Col] = Blocked
	} else {
		g.cells[c.Row][c.Col] = Blank
	}
	g.stale = true
}

// Clone returns a deep copy. Slots are re-derived on the clone, so slot
// pointers are not shared between a grid and its clones.
func (g *Grid) Clone() *Grid {
	cells := make([][]rune, g.rows)
	for i := range cells {
		cells[i] = make([]rune, g.cols)
		copy(cells[i], g.cells[i])
	}
	return &Grid{rows: g.rows, cols: g.cols, cells: cells, stale: true}
}

// CopyCellsFrom overwrites this grid's cells with those of o. The blocked
// layouts must be identical; this is used to restore a snapshot taken with
// Clone without disturbing slot identity.
func (g *Grid) CopyCellsFrom(o *Grid) error {
	if o.rows != g.rows || o.cols != g.cols {
		return fmt.Errorf("grid: dimension mismatch %dx%d vs %dx%d", g.rows, g.cols, o.rows, o.cols)
	}
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if (g.cells[i][j] == Blocked) != (o.cells[i][j] == Blocked) {
				return fmt.Errorf("grid: blocked layout mismatch at (%d,%d)", i, j)
			}
			g.cells[i][j] = o.cells[i][j]
		}
	}
	return nil
}

// String renders the grid in its textual form, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// TextRows returns the grid as textual rows, the inverse of Parse.
func (g *Grid) TextRows() []string {
	rows := make([]string, g.rows)
	for i, row := range g.cells {
		rows[i] = string(row)
	}
	return rows
}

// CountCells returns the number of open (non-blocked) cells and how many of
// them hold a letter.
func (g *Grid) CountCells() (open, filled int) {
	for _, row := range g.cells {
		for _, r := range row {
			if r == Blocked {
				continue
			}
			open++
			if r != Blank {
				filled++
			}
		}
	}
	return open, filled
}
