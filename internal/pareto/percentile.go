package pareto

// DominancePercentiles computes, for each eligible entry, the fraction of
// the rest of the population it strictly dominates under dims: dominated
// count / (population - 1), in [0, 1]. The population can pool many eras;
// the percentile is deliberately independent of layer membership — an entry
// beaten by a handful of elites can still out-perform almost everyone.
//
// Entries without finite values under dims are excluded from both sides of
// the count and reported as skipped.
func DominancePercentiles(set []*Vector, dims []int) (map[string]float64, []Skipped) {
	eligible, skipped := partition(set, dims)

	out := make(map[string]float64, len(eligible))
	if len(eligible) == 1 {
		out[eligible[0].ID] = 0
		return out, skipped
	}
	for i, a := range eligible {
		dominated := 0
		for j, b := range eligible {
			if i == j {
				continue
			}
			if dominates(a, b, dims) {
				dominated++
			}
		}
		out[a.ID] = float64(dominated) / float64(len(eligible)-1)
	}
	return out, skipped
}
