package fill

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avosk/gridfill/internal/logger"
	"github.com/avosk/gridfill/internal/utils"
	"github.com/avosk/gridfill/pkg/grid"
	"github.com/avosk/gridfill/pkg/wordsrc"
)

// Filler runs generation over a grid. It holds no per-run state, so one
// Filler may serve sequential runs; concurrent runs need private grids and,
// if the sources block on I/O, independent source handles.
type Filler struct {
	sources   []wordsrc.Source
	blacklist map[string]struct{}
	opts      Options
	log       *log.Logger
}

// New creates a Filler drawing candidates from the given sources in order.
func New(opts Options, sources ...wordsrc.Source) *Filler {
	return &Filler{
		sources:   sources,
		blacklist: make(map[string]struct{}),
		opts:      opts,
		log:       logger.Default("fill"),
	}
}

// SetBlacklist replaces the forbidden-word set. Words are normalized the same
// way source words are.
func (f *Filler) SetBlacklist(words ...string) {
	f.blacklist = make(map[string]struct{}, len(words))
	for _, w := range words {
		f.blacklist[utils.NormalizeWord(w)] = struct{}{}
	}
}

// Fill generates words for every slot of g, mutating it in place and leaving
// it at the best state found. The context and the option budgets are checked
// at each slot-assignment step; exhausting them yields the best partial fill,
// not an error. A grid.ConflictError is the only hard failure.
func (f *Filler) Fill(ctx context.Context, g *grid.Grid) (*Result, error) {
	if len(f.sources) == 0 {
		return nil, fmt.Errorf("fill: no word sources")
	}
	start := time.Now()

	r := newRun(ctx, f, g)
	r.recordBest()

	var err error
	switch f.opts.Strategy {
	case Iterative:
		err = r.solveIterative()
	default:
		_, err = r.solveRecursive()
	}
	if err != nil {
		return nil, err
	}
	r.recordBest()

	if err := r.restoreBest(); err != nil {
		return nil, err
	}
	res := &Result{
		Assignments: r.best.assignments,
		Score:       r.best.score,
		Complete:    r.best.complete,
		Attempts:    r.attempts,
		Duration:    time.Since(start),
	}
	f.log.Debugf("%s fill: %d/%d slots, %d attempts in %s",
		f.opts.Strategy, len(res.Assignments), len(g.Slots()), res.Attempts, res.Duration)

	if f.opts.RequireFullFill && !res.Complete {
		return res, ErrNoSolution
	}
	return res, nil
}

// run is the state of one generation run: the used-word set, committed
// assignments and budgets. Modeled as an explicit value so that independent
// concurrent runs share nothing.
type run struct {
	f   *Filler
	g   *grid.Grid
	ctx context.Context
	rng *rand.Rand

	used     map[string]int         // word -> slot ID holding it
	assigned map[int]Assignment     // slot ID -> committed assignment
	remain   map[int]int            // slot ID -> alternatives left behind the committed pick
	cache    map[string][]candidate // pattern -> blacklist-filtered candidates

	attempts int
	deadline time.Time
	stopped  bool

	best snapshot
}

type candidate struct {
	word   string
	source int
}

type snapshot struct {
	cells       *grid.Grid
	assignments []Assignment
	score       Score
	complete    bool
	valid       bool
}

func newRun(ctx context.Context, f *Filler, g *grid.Grid) *run {
	r := &run{
		f:        f,
		g:        g,
		ctx:      ctx,
		used:     make(map[string]int),
		assigned: make(map[int]Assignment),
		remain:   make(map[int]int),
		cache:    make(map[string][]candidate),
	}
	if f.opts.MaxDuration > 0 {
		r.deadline = time.Now().Add(f.opts.MaxDuration)
	}
	if f.opts.TieBreak == Randomized {
		r.rng = rand.New(rand.NewPCG(uint64(f.opts.Seed), 0x9e3779b97f4a7c15))
	}
	// Words already present in the input count as used from the start, the
	// way a partially filled editor grid would.
	for _, s := range g.Slots() {
		if g.Complete(s) {
			word := g.Pattern(s)
			r.used[word] = s.ID
			r.assigned[s.ID] = Assignment{Slot: s, Word: word, Source: -1}
		}
	}
	return r
}

// overBudget is the soft-stop check, applied at slot-assignment steps only so
// the grid is never seen half-committed.
func (r *run) overBudget() bool {
	if r.stopped {
		return true
	}
	if r.ctx != nil && r.ctx.Err() != nil {
		r.stopped = true
	} else if r.f.opts.MaxAttempts > 0 && r.attempts >= r.f.opts.MaxAttempts {
		r.stopped = true
	} else if !r.deadline.IsZero() && time.Now().After(r.deadline) {
		r.stopped = true
	}
	if r.stopped {
		r.f.log.Debug("budget exhausted, keeping best partial fill")
	}
	return r.stopped
}

func (r *run) excluded(w string) bool {
	_, bad := r.f.blacklist[w]
	return bad
}

// candidatesFor returns the ranked, used-filtered candidates for a slot.
// Source results are cached per pattern with only the blacklist applied, so
// the cache stays valid as the used set changes.
func (r *run) candidatesFor(s *grid.Slot) []candidate {
	pattern := r.g.Pattern(s)
	pool, ok := r.cache[pattern]
	if !ok {
		for i, src := range r.f.sources {
			words, err := src.Lookup(pattern, r.excluded)
			if err != nil {
				// Source failures degrade to zero candidates for that call.
				log.Warnf("source %d failed for %q: %v", i, pattern, err)
				continue
			}
			for _, w := range words {
				pool = append(pool, candidate{word: w, source: i})
			}
		}
		pool = dedupe(pool)
		r.cache[pattern] = pool
	}

	var out []candidate
	for _, c := range pool {
		if holder, taken := r.used[c.word]; taken && holder != s.ID {
			continue
		}
		out = append(out, c)
	}
	return r.rank(s, out)
}

func dedupe(pool []candidate) []candidate {
	seen := make(map[string]struct{}, len(pool))
	out := pool[:0]
	for _, c := range pool {
		if _, dup := seen[c.word]; dup {
			continue
		}
		seen[c.word] = struct{}{}
		out = append(out, c)
	}
	return out
}

// commit writes a candidate into the grid and books it. A ConflictError here
// means a candidate survived pattern filtering it should not have; that is a
// defect, so it propagates and aborts the run.
func (r *run) commit(s *grid.Slot, c candidate, alternatives int) error {
	if err := r.g.Commit(s, c.word); err != nil {
		return err
	}
	r.used[c.word] = s.ID
	r.assigned[s.ID] = Assignment{Slot: s, Word: c.word, Source: c.source}
	r.remain[s.ID] = alternatives
	return nil
}

// uncommit reverses a commit, clearing only cells no committed crossing slot
// still needs.
func (r *run) uncommit(s *grid.Slot) {
	a, ok := r.assigned[s.ID]
	if !ok {
		return
	}
	delete(r.assigned, s.ID)
	delete(r.remain, s.ID)
	delete(r.used, a.Word)
	r.g.Uncommit(s, func(other *grid.Slot) bool {
		_, committed := r.assigned[other.ID]
		return committed
	})
}

// nextSlot picks the next unassigned slot per the configured order, or nil
// when every slot is assigned. Slots completed incidentally by crossings are
// still returned: committing them verifies the formed word against the
// sources, the used set and the blacklist.
func (r *run) nextSlot() *grid.Slot {
	var (
		pick *grid.Slot
		key  int
	)
	for _, s := range r.g.Slots() {
		if _, done := r.assigned[s.ID]; done {
			continue
		}
		switch r.f.opts.SlotOrder {
		case LongestFirst:
			if pick == nil || s.Len > key {
				pick, key = s, s.Len
			}
		default:
			n := len(r.candidatesFor(s))
			if pick == nil || n < key {
				pick, key = s, n
			}
		}
	}
	return pick
}

// recordBest snapshots the current grid if it beats the best seen so far.
func (r *run) recordBest() {
	score := Evaluate(r.g)
	if r.best.valid && !score.Better(r.best.score) {
		return
	}
	assignments := make([]Assignment, 0, len(r.assigned))
	complete := true
	for _, s := range r.g.Slots() {
		if a, ok := r.assigned[s.ID]; ok {
			if a.Source >= 0 {
				assignments = append(assignments, a)
			}
		} else {
			complete = false
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Slot.ID < assignments[j].Slot.ID
	})
	r.best = snapshot{
		cells:       r.g.Clone(),
		assignments: assignments,
		score:       score,
		complete:    complete,
		valid:       true,
	}
}

func (r *run) restoreBest() error {
	if !r.best.valid {
		r.recordBest()
	}
	return r.g.CopyCellsFrom(r.best.cells)
}
