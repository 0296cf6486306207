package pareto

import (
	"fmt"
	"sync"
)

// Membership summarizes one entry's standing across every non-empty
// dimension subset of a DimensionSet. ParetoCount is the number of subsets
// whose frontier contains the entry. MinParetoDim is the smallest subset
// size at which the entry is still unbeaten, nil if it is beaten under every
// subset; MinParetoVars names the canonical subset achieving that minimum.
type Membership struct {
	ParetoCount   int      `json:"pareto_count"`
	MinParetoDim  *int     `json:"min_pareto_dim"`
	MinParetoVars []string `json:"min_pareto_vars"`
}

// SubFrontierOptions bounds the exponential subset enumeration.
type SubFrontierOptions struct {
	// Workers is the number of goroutines computing subset frontiers.
	// Values < 1 mean run serially.
	Workers int
	// WarnThreshold: when the subset count 2^d - 1 exceeds it, the run
	// proceeds but emits an advisory warning. <= 0 disables the warning.
	WarnThreshold int
	// HardCap rejects dimension sets with more than this many dimensions
	// outright. <= 0 applies DefaultDimensionCap.
	HardCap int
}

// DefaultDimensionCap is the largest dimension set the analyzer will
// enumerate. 2^20 subset frontiers is already far past any sane run.
const DefaultDimensionCap = 20

// memberAcc is the per-worker accumulator. Each worker owns one, so subset
// frontiers write without locking; mergeAcc folds them afterwards.
type memberAcc map[string]*memberState

type memberState struct {
	count     int
	minSubset []int
}

func (a memberAcc) observe(id string, subset []int) {
	st := a[id]
	if st == nil {
		st = &memberState{}
		a[id] = st
	}
	st.count++
	if st.minSubset == nil ||
		len(subset) < len(st.minSubset) ||
		(len(subset) == len(st.minSubset) && lessSubset(subset, st.minSubset)) {
		st.minSubset = subset
	}
}

// mergeAcc folds src into dst using the same size-then-lexicographic rule,
// so the merged result is independent of worker scheduling.
func mergeAcc(dst, src memberAcc) {
	for id, s := range src {
		d := dst[id]
		if d == nil {
			dst[id] = s
			continue
		}
		d.count += s.count
		if d.minSubset == nil ||
			(s.minSubset != nil &&
				(len(s.minSubset) < len(d.minSubset) ||
					(len(s.minSubset) == len(d.minSubset) && lessSubset(s.minSubset, d.minSubset)))) {
			d.minSubset = s.minSubset
		}
	}
}

// AnalyzeSubFrontiers computes frontier membership for every non-empty
// subset of ds over set. Only layer-0 membership per subset is needed, never
// a full layering. Entries missing a finite value on some dimension are
// ineligible only for subsets that include that dimension; they still
// compete everywhere else.
//
// Subset frontiers are independent reads of the same immutable population,
// so they fan out across Workers goroutines; per-worker accumulators merge
// deterministically at the end.
func AnalyzeSubFrontiers(set []*Vector, ds DimensionSet, opts SubFrontierOptions) (map[string]*Membership, []string, error) {
	d := ds.Size()
	hardCap := opts.HardCap
	if hardCap <= 0 {
		hardCap = DefaultDimensionCap
	}
	if d > hardCap {
		return nil, nil, &DimensionCapError{Set: ds.Name, Size: d, Cap: hardCap}
	}
	if len(set) == 0 {
		return nil, nil, ErrEmptyPopulation
	}
	if err := checkIDs(set); err != nil {
		return nil, nil, err
	}

	var warnings []string
	total := (uint64(1) << uint(d)) - 1
	if opts.WarnThreshold > 0 && total > uint64(opts.WarnThreshold) {
		warnings = append(warnings,
			fmt.Sprintf("dimension set %q expands to %d subset frontiers (threshold %d); expect a slow run",
				ds.Name, total, opts.WarnThreshold))
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	subsets := make(chan []int, workers)
	accs := make([]memberAcc, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		acc := make(memberAcc, len(set))
		accs[w] = acc
		wg.Add(1)
		go func() {
			defer wg.Done()
			for subset := range subsets {
				frontier, _ := Frontier(set, subset)
				for _, v := range frontier {
					acc.observe(v.ID, subset)
				}
			}
		}()
	}

	it := newSubsetIter(d)
	for subset := it.Next(); subset != nil; subset = it.Next() {
		subsets <- subset
	}
	close(subsets)
	wg.Wait()

	merged := accs[0]
	for _, acc := range accs[1:] {
		mergeAcc(merged, acc)
	}

	out := make(map[string]*Membership, len(set))
	for _, v := range set {
		m := &Membership{}
		if st := merged[v.ID]; st != nil {
			m.ParetoCount = st.count
			size := len(st.minSubset)
			m.MinParetoDim = &size
			names, err := ds.Names(st.minSubset)
			if err != nil {
				return nil, nil, err
			}
			m.MinParetoVars = names
		}
		out[v.ID] = m
	}
	return out, warnings, nil
}
