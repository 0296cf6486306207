package pareto

// Frontier returns the entries in set dominated by no other entry in set,
// evaluated under dims, plus the entries excluded from consideration because
// they lack a finite value on a required dimension. An excluded entry is
// ineligible outright: it neither appears in the frontier nor dominates
// anything out of it.
//
// O(n^2 * |dims|) dominance check — fine for the population sizes a single
// mode sees. Any pruned variant must return the identical set.
func Frontier(set []*Vector, dims []int) ([]*Vector, []Skipped) {
	eligible, skipped := partition(set, dims)
	return frontierOf(eligible, dims), skipped
}

// frontierOf computes the non-dominated subset of an already-validated set.
// Order of the input is preserved in the output.
func frontierOf(eligible []*Vector, dims []int) []*Vector {
	if len(eligible) <= 1 {
		return eligible
	}
	frontier := make([]*Vector, 0, len(eligible))
	for i := range eligible {
		dominated := false
		for j := range eligible {
			if i == j {
				continue
			}
			if dominates(eligible[j], eligible[i], dims) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, eligible[i])
		}
	}
	return frontier
}
