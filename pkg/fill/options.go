/*
Package fill implements the crossword generation engines.

Given a grid pattern and one or more word sources, a Filler assigns a word to
every slot so that crossing letters agree, no word repeats and no blacklisted
word appears. Two strategies are provided: a recursive backtracking search
that explores the full assignment tree, and an iterative most-constrained-
first fill that repairs local conflicts instead of backtracking and may leave
slots empty on hard grids.

Both strategies share the same contract: the grid is mutated in place, the
search respects an attempt/time budget and a context, and on exhaustion the
best partial fill seen so far is kept rather than failing outright.
*/
package fill

import (
	"errors"
	"time"
)

// Strategy selects the generation engine.
type Strategy uint8

const (
	Recursive Strategy = iota
	Iterative
)

func (s Strategy) String() string {
	if s == Iterative {
		return "iterative"
	}
	return "recursive"
}

// ParseStrategy maps a config/CLI string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "recursive":
		return Recursive, nil
	case "iterative":
		return Iterative, nil
	}
	return Recursive, errors.New("fill: unknown strategy " + s)
}

// TieBreak controls ordering between equally ranked candidates.
type TieBreak uint8

const (
	// Deterministic keeps source order on ties; identical inputs give
	// identical fills.
	Deterministic TieBreak = iota
	// Randomized shuffles ties using Seed, for variety between runs.
	Randomized
)

// SlotOrder controls which unfilled slot is attempted next.
type SlotOrder uint8

const (
	// MostConstrained picks the slot with the fewest matching candidates.
	MostConstrained SlotOrder = iota
	// LongestFirst picks the longest unfilled slot.
	LongestFirst
)

// Options configures a generation run.
type Options struct {
	Strategy    Strategy
	SlotOrder   SlotOrder
	TieBreak    TieBreak
	Seed        int64
	MaxAttempts int           // word placements tried; 0 means unlimited
	MaxDuration time.Duration // wall-clock budget; 0 means unlimited
	// RepairBudget bounds how often the iterative engine may rip up a
	// crossing word to rescue one slot before giving up on it.
	RepairBudget int
	// RequireFullFill turns a partial result into ErrNoSolution instead of a
	// best-effort success.
	RequireFullFill bool
}

// DefaultOptions returns the options used when the caller specifies nothing.
func DefaultOptions() Options {
	return Options{
		Strategy:     Recursive,
		SlotOrder:    MostConstrained,
		TieBreak:     Deterministic,
		MaxDuration:  60 * time.Second,
		RepairBudget: 3,
	}
}

// ErrNoSolution is returned (with the best partial result) when
// RequireFullFill is set and the engine could not fill every slot.
var ErrNoSolution = errors.New("fill: no solution found")
