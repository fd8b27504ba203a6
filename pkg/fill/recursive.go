package fill

// solveRecursive is the backtracking engine: depth-first over slot
// assignments, most-constrained slot next, candidates tried in ranked order,
// uncommit on failure. Recursion depth is bounded by the slot count. The
// budget is checked at each slot step; when it runs out the search unwinds
// without retrying, leaving the grid in its current consistent state so the
// best-so-far snapshot decides the outcome.
func (r *run) solveRecursive() (bool, error) {
	if r.overBudget() {
		return false, nil
	}
	s := r.nextSlot()
	if s == nil {
		r.recordBest()
		return true, nil
	}

	cands := r.candidatesFor(s)
	if len(cands) == 0 {
		r.f.log.Debugf("no candidates for %s (%q)", s, r.g.Pattern(s))
		return false, nil
	}

	for i, c := range cands {
		if r.overBudget() {
			return false, nil
		}
		r.attempts++
		if err := r.commit(s, c, len(cands)-i-1); err != nil {
			return false, err
		}
		r.recordBest()

		ok, err := r.solveRecursive()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		r.uncommit(s)
		if r.stopped {
			return false, nil
		}
	}
	return false, nil
}
