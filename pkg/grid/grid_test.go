package grid

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, rows []string) *Grid {
	t.Helper()
	g, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse(%v): %v", rows, err)
	}
	return g
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		rows        []string
		description string
	}{
		{nil, "no rows"},
		{[]string{""}, "zero width"},
		{[]string{"___", "__"}, "ragged rows"},
		{[]string{"_#_"}, "invalid cell marker"},
	}
	for _, tc := range cases {
		if _, err := Parse(tc.rows); err == nil {
			t.Errorf("%s: Parse(%v) succeeded, want error", tc.description, tc.rows)
		}
	}
}

func TestSlotExtraction(t *testing.T) {
	// Two across runs in row 0 (lengths 2 and 2), one length-1 run in row 1
	// that must not become a slot, and two down slots.
	g := mustParse(t, []string{
		"__*__",
		"_**_*",
		"_**__",
	})
	slots := g.Slots()

	var across, down int
	for _, s := range slots {
		switch s.Dir {
		case Across:
			across++
		case Down:
			down++
		}
		if s.Len < 2 {
			t.Errorf("%s: run of length %d must not be a slot", s, s.Len)
		}
	}
	if across != 3 {
		t.Errorf("got %d across slots, want 3", across)
	}
	if down != 2 {
		t.Errorf("got %d down slots, want 2", down)
	}
}

func TestSlotCacheInvalidation(t *testing.T) {
	g := mustParse(t, []string{
		"_____",
		"_____",
	})
	if n := len(g.Slots()); n != 7 {
		t.Fatalf("got %d slots, want 7 (2 across + 5 down)", n)
	}
	g.SetBlocked(Coord{0, 2}, true)
	var across int
	for _, s := range g.Slots() {
		if s.Dir == Across {
			across++
		}
	}
	// Row 0 splits into two runs, row 1 stays whole.
	if across != 3 {
		t.Errorf("after blocking (0,2): got %d across slots, want 3", across)
	}
	if n := len(g.Slots()); n != 7 {
		t.Errorf("after blocking (0,2): got %d slots, want 7", n)
	}
}

func TestCrossingIndex(t *testing.T) {
	g := mustParse(t, []string{
		"___",
		"_*_",
		"___",
	})
	across, down := g.CrossingAt(Coord{0, 0})
	if across == nil || across.Dir != Across || across.Start != (Coord{0, 0}) {
		t.Errorf("across at (0,0) = %v", across)
	}
	if down == nil || down.Dir != Down || down.Start != (Coord{0, 0}) {
		t.Errorf("down at (0,0) = %v", down)
	}
	if a, d := g.CrossingAt(Coord{1, 1}); a != nil || d != nil {
		t.Errorf("blocked cell has crossings %v / %v", a, d)
	}
}

func TestPatternReadsLetters(t *testing.T) {
	g := mustParse(t, []string{
		"c_t",
		"*_*",
	})
	var top *Slot
	for _, s := range g.Slots() {
		if s.Dir == Across {
			top = s
		}
	}
	if got := g.Pattern(top); got != "c?t" {
		t.Errorf("Pattern = %q, want %q", got, "c?t")
	}
}

func TestCommitUncommitRoundTrip(t *testing.T) {
	g := mustParse(t, []string{
		"_____",
		"*_***",
		"*_***",
	})
	before := g.String()

	var across *Slot
	for _, s := range g.Slots() {
		if s.Dir == Across {
			across = s
		}
	}
	if err := g.Commit(across, "house"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if g.Pattern(across) != "house" {
		t.Fatalf("after commit pattern = %q", g.Pattern(across))
	}
	g.Uncommit(across, nil)
	if got := g.String(); got != before {
		t.Errorf("round trip mismatch:\n%s\nwant:\n%s", got, before)
	}
}

func TestUncommitKeepsCommittedCrossings(t *testing.T) {
	g := mustParse(t, []string{
		"___",
		"_**",
		"_**",
	})
	var across, down *Slot
	for _, s := range g.Slots() {
		if s.Dir == Across {
			across = s
		} else {
			down = s
		}
	}
	if err := g.Commit(across, "cat"); err != nil {
		t.Fatalf("Commit across: %v", err)
	}
	if err := g.Commit(down, "cow"); err != nil {
		t.Fatalf("Commit down: %v", err)
	}
	g.Uncommit(across, func(s *Slot) bool { return s == down })

	if got := g.Pattern(down); got != "cow" {
		t.Errorf("down pattern = %q, want cow intact", got)
	}
	if got := g.Pattern(across); got != "c??" {
		t.Errorf("across pattern = %q, want c?? (shared letter kept)", got)
	}
}

func TestCommitConflictIsAtomic(t *testing.T) {
	g := mustParse(t, []string{
		"___",
		"_**",
		"_**",
	})
	var across, down *Slot
	for _, s := range g.Slots() {
		if s.Dir == Across {
			across = s
		} else {
			down = s
		}
	}
	if err := g.Commit(down, "cow"); err != nil {
		t.Fatalf("Commit down: %v", err)
	}
	before := g.String()

	err := g.Commit(across, "hat")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Commit = %v, want ConflictError", err)
	}
	if conflict.Cell != (Coord{0, 0}) || conflict.Have != 'c' || conflict.Want != 'h' {
		t.Errorf("conflict detail = %+v", conflict)
	}
	if g.String() != before {
		t.Errorf("failed commit mutated the grid:\n%s", g.String())
	}
}

func TestCommitLengthMismatch(t *testing.T) {
	g := mustParse(t, []string{"____"})
	s := g.Slots()[0]
	if err := g.Commit(s, "abc"); err == nil {
		t.Error("Commit with short word succeeded")
	}
	var conflict *ConflictError
	if err := g.Commit(s, "abc"); errors.As(err, &conflict) {
		t.Error("length mismatch must not be a ConflictError")
	}
}

func TestCloneAndRestore(t *testing.T) {
	g := mustParse(t, []string{
		"____",
		"*__*",
	})
	s := g.Slots()[0]
	snap := g.Clone()
	if err := g.Commit(s, "word"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.String() == g.String() {
		t.Fatal("clone shares cell storage with original")
	}
	if err := g.CopyCellsFrom(snap); err != nil {
		t.Fatalf("CopyCellsFrom: %v", err)
	}
	if g.String() != snap.String() {
		t.Errorf("restore mismatch:\n%s", g.String())
	}
}

func TestCountCells(t *testing.T) {
	g := mustParse(t, []string{
		"ab*",
		"__*",
	})
	open, filled := g.CountCells()
	if open != 4 || filled != 2 {
		t.Errorf("CountCells = (%d,%d), want (4,2)", open, filled)
	}
}
