package fill

import (
	"container/heap"

	"github.com/avosk/gridfill/pkg/grid"
)

// The iterative engine never explores the full assignment tree. It keeps a
// priority queue of unfilled slots ordered by candidate count, always fills
// the most constrained slot with its top-ranked candidate, and when a slot
// has no candidates it repairs locally: the committed crossing word with the
// most alternatives left is ripped out and both slots are re-queued. Each
// slot gets a bounded number of repairs before it is declared unfillable and
// left empty, which is what bounds the whole loop.

type slotItem struct {
	id   int
	prio int
}

type slotHeap []slotItem

func (h slotHeap) Len() int { return len(h) }
func (h slotHeap) Less(i, j int) bool {
	if h[i].prio != h[j].prio {
		return h[i].prio < h[j].prio
	}
	return h[i].id < h[j].id
}
func (h slotHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *slotHeap) Push(x any)   { *h = append(*h, x.(slotItem)) }
func (h *slotHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func (r *run) solveIterative() error {
	h := &slotHeap{}
	for _, s := range r.g.Slots() {
		if _, done := r.assigned[s.ID]; done {
			continue
		}
		heap.Push(h, slotItem{id: s.ID, prio: len(r.candidatesFor(s))})
	}

	unfillable := make(map[int]bool)
	repairs := make(map[int]int)

	for h.Len() > 0 {
		if r.overBudget() {
			break
		}
		it := heap.Pop(h).(slotItem)
		s := r.g.SlotAt(it.id)
		if s == nil || unfillable[it.id] {
			continue
		}
		if _, done := r.assigned[it.id]; done {
			continue
		}

		cands := r.candidatesFor(s)
		if len(cands) != it.prio {
			// Stale priority from an earlier commit on a crossing slot.
			heap.Push(h, slotItem{id: it.id, prio: len(cands)})
			continue
		}

		if len(cands) > 0 {
			r.attempts++
			if err := r.commit(s, cands[0], len(cands)-1); err != nil {
				return err
			}
			r.recordBest()
			r.requeueCrossings(h, s, unfillable)
			continue
		}

		repairs[s.ID]++
		if repairs[s.ID] > r.f.opts.RepairBudget {
			r.f.log.Debugf("%s unfillable after %d repairs, leaving empty", s, repairs[s.ID]-1)
			unfillable[s.ID] = true
			continue
		}
		victim := r.repairVictim(s)
		if victim == nil {
			// Nothing committed crosses this slot; its letters are fixed and
			// no repair can ever change the pattern.
			r.f.log.Debugf("%s has no candidates and no repairable crossing", s)
			unfillable[s.ID] = true
			continue
		}
		r.f.log.Debugf("repairing %s: uncommitting %s", s, victim)
		r.uncommit(victim)
		heap.Push(h, slotItem{id: s.ID, prio: len(r.candidatesFor(s))})
		heap.Push(h, slotItem{id: victim.ID, prio: len(r.candidatesFor(victim))})
		r.requeueCrossings(h, victim, unfillable)
	}
	return nil
}

// requeueCrossings refreshes queue entries for unassigned slots crossing s,
// whose candidate pools just changed.
func (r *run) requeueCrossings(h *slotHeap, s *grid.Slot, unfillable map[int]bool) {
	for i := 0; i < s.Len; i++ {
		across, down := r.g.CrossingAt(s.Cell(i))
		other := across
		if s.Dir == grid.Across {
			other = down
		}
		if other == nil || unfillable[other.ID] {
			continue
		}
		if _, done := r.assigned[other.ID]; done {
			continue
		}
		heap.Push(h, slotItem{id: other.ID, prio: len(r.candidatesFor(other))})
	}
}

// repairVictim picks the committed crossing slot with the most remaining
// alternative candidates; ripping that one out is the cheapest way to give
// the stuck slot a new pattern. Pre-filled words (Source < 0) are never
// touched.
func (r *run) repairVictim(s *grid.Slot) *grid.Slot {
	var (
		victim  *grid.Slot
		bestAlt = -1
	)
	for i := 0; i < s.Len; i++ {
		across, down := r.g.CrossingAt(s.Cell(i))
		other := across
		if s.Dir == grid.Across {
			other = down
		}
		if other == nil {
			continue
		}
		a, ok := r.assigned[other.ID]
		if !ok || a.Source < 0 {
			continue
		}
		if alt := r.remain[other.ID]; alt > bestAlt {
			victim, bestAlt = other, alt
		}
	}
	return victim
}
