package fill

import (
	"sort"

	"github.com/avosk/gridfill/pkg/grid"
)

// rank orders candidates so the least risky come first. Every candidate
// matches the slot's fixed letters, so what separates them is the letters
// they put into still-empty crossing cells: prefer letters that are common
// in the candidate pool, keeping the crossing slots' own pools large and
// avoiding rare letters at intersections. The sort is stable over source
// order; with randomized tie-breaking the list is shuffled first so equal
// scores land in random order.
func (r *run) rank(s *grid.Slot, cands []candidate) []candidate {
	if len(cands) < 2 {
		return cands
	}
	if r.rng != nil {
		r.rng.Shuffle(len(cands), func(i, j int) {
			cands[i], cands[j] = cands[j], cands[i]
		})
	}

	// Pool-wide letter frequency. A letter most other candidates also carry
	// is a letter a crossing slot can almost certainly live with.
	freq := make(map[rune]int)
	for _, c := range cands {
		for _, ch := range c.word {
			freq[ch]++
		}
	}

	// Positions where this slot writes a fresh letter into a crossing slot.
	var hot []int
	for i := 0; i < s.Len; i++ {
		cell := s.Cell(i)
		if r.g.At(cell) != grid.Blank {
			continue
		}
		across, down := r.g.CrossingAt(cell)
		other := across
		if s.Dir == grid.Across {
			other = down
		}
		if other != nil {
			hot = append(hot, i)
		}
	}

	scores := make([]int, len(cands))
	for ci, c := range cands {
		ws := []rune(c.word)
		for _, i := range hot {
			scores[ci] += freq[ws[i]]
		}
	}

	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	out := make([]candidate, len(cands))
	for i, idx := range order {
		out[i] = cands[idx]
	}
	return out
}
