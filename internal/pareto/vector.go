package pareto

import (
	"fmt"
	"math"
	"sort"
)

// Vector is one historical performance: a player-season or a player-game,
// identified by a stable id, with one value per tracked dimension. All
// dimensions are "higher is better" — anything that ranks the other way
// (turnovers, fouls) must be negated upstream before it reaches the engine.
// Values is indexed by dimension position in the owning DimensionSet.
type Vector struct {
	ID     string                 `json:"id"`
	Values []float64              `json:"values"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// DimensionSet names the dimensions for one analysis mode. Position in
// Dimensions is the index into every Vector.Values for that mode. A
// 6-dimension season mode and a 3-dimension season mode are two independent
// DimensionSets run separately.
type DimensionSet struct {
	Name       string   `json:"name"`
	Dimensions []string `json:"dimensions"`
}

// Size returns the number of dimensions in the set.
func (ds DimensionSet) Size() int { return len(ds.Dimensions) }

// Indices returns the full index list 0..d-1 in canonical order.
func (ds DimensionSet) Indices() []int {
	idx := make([]int, len(ds.Dimensions))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Names maps a canonical subset back to dimension names.
func (ds DimensionSet) Names(subset []int) ([]string, error) {
	names := make([]string, 0, len(subset))
	for _, i := range subset {
		if i < 0 || i >= len(ds.Dimensions) {
			return nil, fmt.Errorf("dimension index %d out of range for set %q (size %d)", i, ds.Name, len(ds.Dimensions))
		}
		names = append(names, ds.Dimensions[i])
	}
	return names, nil
}

// checkVector verifies v carries a finite value for every index in dims.
// Returns a DimensionMismatchError for a missing index and an
// InvalidVectorError for NaN/Inf, so callers can apply the per-entry
// exclusion policy.
func checkVector(v *Vector, dims []int) error {
	for _, i := range dims {
		if i < 0 || i >= len(v.Values) {
			return &DimensionMismatchError{EntryID: v.ID, Dim: i, Have: len(v.Values)}
		}
		if math.IsNaN(v.Values[i]) || math.IsInf(v.Values[i], 0) {
			return &InvalidVectorError{EntryID: v.ID, Dim: i, Value: v.Values[i]}
		}
	}
	return nil
}

// Skipped records one entry excluded from an analysis and why.
type Skipped struct {
	EntryID string `json:"entry_id"`
	Reason  string `json:"reason"`
}

// partition splits a population into entries usable under dims and entries
// excluded by the per-entry error policy. Order is preserved.
func partition(set []*Vector, dims []int) (eligible []*Vector, skipped []Skipped) {
	eligible = make([]*Vector, 0, len(set))
	for _, v := range set {
		if err := checkVector(v, dims); err != nil {
			skipped = append(skipped, Skipped{EntryID: v.ID, Reason: err.Error()})
			continue
		}
		eligible = append(eligible, v)
	}
	return eligible, skipped
}

// sortByID orders vectors by entry id. Frontier and layer membership are
// sets; this pins the listing order so output is reproducible.
func sortByID(vs []*Vector) {
	sort.Slice(vs, func(i, j int) bool { return vs[i].ID < vs[j].ID })
}

// checkIDs rejects populations with duplicate entry ids. Ambiguous identity
// would corrupt every id-keyed output map and the DAG, so this is fatal for
// the whole run.
func checkIDs(set []*Vector) error {
	seen := make(map[string]struct{}, len(set))
	for _, v := range set {
		if _, dup := seen[v.ID]; dup {
			return &DuplicateEntryIDError{EntryID: v.ID}
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}
