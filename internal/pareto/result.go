package pareto

// Options configures one analysis run.
type Options struct {
	SubFrontier SubFrontierOptions
	// EliteMaxLayer bounds the elite subgraph view. < 0 applies
	// DefaultEliteMaxLayer.
	EliteMaxLayer int
}

// DefaultEliteMaxLayer keeps the elite view to the outer three shells.
const DefaultEliteMaxLayer = 2

// Result is the full output of one analysis run for one DimensionSet. The
// layers / sub_pareto / dag / dominance_percentile field names and nesting
// are a compatibility contract with downstream presentation; fields may be
// added but never renamed or dropped.
type Result struct {
	Mode                string                 `json:"mode"`
	Dimensions          []string               `json:"dimensions"`
	Layers              map[string]int         `json:"layers"`
	SubPareto           map[string]*Membership `json:"sub_pareto"`
	DAG                 *DAG                   `json:"dag"`
	EliteDAG            *DAG                   `json:"elite_dag"`
	DominancePercentile map[string]float64     `json:"dominance_percentile"`
	Skipped             []Skipped              `json:"skipped,omitempty"`
	Warnings            []string               `json:"warnings,omitempty"`
}

// Analyze runs the whole pipeline for one population under one
// DimensionSet: onion-peel layering, sub-frontier membership over every
// dimension subset, the adjacent-layer dominance DAG with its elite view,
// and pooled dominance percentiles.
//
// Per-entry problems (missing or non-finite dimension values) exclude only
// that entry and land in Result.Skipped. Run-fatal conditions — duplicate
// ids, an empty or fully-invalid population, a dimension set above the hard
// cap — return an error and no partial result.
func Analyze(set []*Vector, ds DimensionSet, opts Options) (*Result, error) {
	if len(set) == 0 {
		return nil, ErrEmptyPopulation
	}
	if err := checkIDs(set); err != nil {
		return nil, err
	}

	dims := ds.Indices()

	layering := ComputeLayers(set, dims)
	if len(layering.Layers) == 0 {
		return nil, ErrEmptyPopulation
	}

	subPareto, warnings, err := AnalyzeSubFrontiers(set, ds, opts.SubFrontier)
	if err != nil {
		return nil, err
	}

	dag := BuildDAG(layering, dims)

	eliteMax := opts.EliteMaxLayer
	if eliteMax < 0 {
		eliteMax = DefaultEliteMaxLayer
	}

	percentiles, _ := DominancePercentiles(set, dims)

	return &Result{
		Mode:                ds.Name,
		Dimensions:          ds.Dimensions,
		Layers:              layering.Layers,
		SubPareto:           subPareto,
		DAG:                 dag,
		EliteDAG:            dag.Elite(eliteMax),
		DominancePercentile: percentiles,
		Skipped:             layering.Unranked,
		Warnings:            warnings,
	}, nil
}
