package pareto

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

var threeDims = DimensionSet{Name: "season3", Dimensions: []string{"pts", "trb", "ast"}}

func TestAnalyzeSubFrontiers(t *testing.T) {
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("B", 25, 12, 6),
		vec("C", 20, 8, 4),
	}
	got, warnings, err := AnalyzeSubFrontiers(pop, threeDims, SubFrontierOptions{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	// A wins {pts}, {pts,trb}, {pts,ast}, {pts,trb,ast}.
	a := got["A"]
	if a.ParetoCount != 4 {
		t.Errorf("A pareto_count = %d, want 4", a.ParetoCount)
	}
	if a.MinParetoDim == nil || *a.MinParetoDim != 1 {
		t.Errorf("A min_pareto_dim = %v, want 1", a.MinParetoDim)
	}
	if !reflect.DeepEqual(a.MinParetoVars, []string{"pts"}) {
		t.Errorf("A min_pareto_vars = %v, want [pts]", a.MinParetoVars)
	}

	// B wins every subset touching trb or ast, six of the seven. Both {trb}
	// and {ast} are minimal; the tie-break picks the lexicographically
	// smaller index set, so trb.
	b := got["B"]
	if b.ParetoCount != 6 {
		t.Errorf("B pareto_count = %d, want 6", b.ParetoCount)
	}
	if b.MinParetoDim == nil || *b.MinParetoDim != 1 {
		t.Errorf("B min_pareto_dim = %v, want 1", b.MinParetoDim)
	}
	if !reflect.DeepEqual(b.MinParetoVars, []string{"trb"}) {
		t.Errorf("B min_pareto_vars = %v, want [trb]", b.MinParetoVars)
	}

	// C never makes a frontier.
	c := got["C"]
	if c.ParetoCount != 0 {
		t.Errorf("C pareto_count = %d, want 0", c.ParetoCount)
	}
	if c.MinParetoDim != nil || c.MinParetoVars != nil {
		t.Errorf("C should have null min fields, got %v / %v", c.MinParetoDim, c.MinParetoVars)
	}
}

// Brute-force cross-check: pareto_count must equal the number of subsets
// whose frontier contains the entry, computed the slow obvious way.
func TestAnalyzeSubFrontiersBruteForce(t *testing.T) {
	ds := DimensionSet{Name: "season4", Dimensions: []string{"pts", "trb", "ast", "stl"}}
	pop := []*Vector{
		vec("A", 30, 10, 5, 1.2),
		vec("B", 25, 12, 6, 0.8),
		vec("C", 20, 8, 4, 2.0),
		vec("D", 28, 11, 2, 1.5),
		vec("E", 5, 20, 9, 0.5),
		vec("F", 20, 8, 4, 2.0),
	}

	want := map[string]int{}
	for _, subset := range collectSubsets(ds.Size()) {
		frontier, _ := Frontier(pop, subset)
		for _, v := range frontier {
			want[v.ID]++
		}
	}

	got, _, err := AnalyzeSubFrontiers(pop, ds, SubFrontierOptions{Workers: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range pop {
		if got[v.ID].ParetoCount != want[v.ID] {
			t.Errorf("%s pareto_count = %d, brute force says %d", v.ID, got[v.ID].ParetoCount, want[v.ID])
		}
	}
}

// min_pareto_dim must be achieved by the recorded subset and by no smaller
// one.
func TestAnalyzeSubFrontiersMinIsTight(t *testing.T) {
	ds := DimensionSet{Name: "season3", Dimensions: []string{"pts", "trb", "ast"}}
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("B", 25, 12, 6),
		vec("C", 20, 8, 4),
		vec("D", 28, 11, 2),
	}
	got, _, err := AnalyzeSubFrontiers(pop, ds, SubFrontierOptions{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := map[string]*Vector{}
	for _, v := range pop {
		byID[v.ID] = v
	}
	nameToIdx := map[string]int{}
	for i, n := range ds.Dimensions {
		nameToIdx[n] = i
	}

	for id, m := range got {
		if m.MinParetoDim == nil {
			continue
		}
		subset := make([]int, 0, len(m.MinParetoVars))
		for _, n := range m.MinParetoVars {
			subset = append(subset, nameToIdx[n])
		}
		if len(subset) != *m.MinParetoDim {
			t.Errorf("%s: recorded vars %v disagree with min dim %d", id, m.MinParetoVars, *m.MinParetoDim)
		}
		frontier, _ := Frontier(pop, subset)
		if !idSet(frontier)[id] {
			t.Errorf("%s not actually on the frontier of its recorded minimal subset %v", id, m.MinParetoVars)
		}
		for _, smaller := range collectSubsets(ds.Size()) {
			if len(smaller) >= *m.MinParetoDim {
				continue
			}
			frontier, _ := Frontier(pop, smaller)
			if idSet(frontier)[id] {
				t.Errorf("%s is optimal under %v, smaller than recorded minimum %d", id, smaller, *m.MinParetoDim)
			}
		}
	}
}

// An entry with a bad value on one dimension stays eligible for every subset
// avoiding that dimension.
func TestAnalyzeSubFrontiersPartialEligibility(t *testing.T) {
	pop := []*Vector{
		vec("N", 50, 50, math.NaN()),
		vec("A", 30, 10, 5),
	}
	got, _, err := AnalyzeSubFrontiers(pop, threeDims, SubFrontierOptions{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// N wins {pts}, {trb}, {pts,trb}; every ast-touching subset excludes it.
	if got["N"].ParetoCount != 3 {
		t.Errorf("N pareto_count = %d, want 3", got["N"].ParetoCount)
	}
	if !reflect.DeepEqual(got["N"].MinParetoVars, []string{"pts"}) {
		t.Errorf("N min_pareto_vars = %v, want [pts]", got["N"].MinParetoVars)
	}
	// A wins the four ast-touching subsets by default of competition.
	if got["A"].ParetoCount != 4 {
		t.Errorf("A pareto_count = %d, want 4", got["A"].ParetoCount)
	}
	if !reflect.DeepEqual(got["A"].MinParetoVars, []string{"ast"}) {
		t.Errorf("A min_pareto_vars = %v, want [ast]", got["A"].MinParetoVars)
	}
}

func TestAnalyzeSubFrontiersSerialMatchesParallel(t *testing.T) {
	ds := DimensionSet{Name: "season5", Dimensions: []string{"pts", "trb", "ast", "stl", "blk"}}
	pop := []*Vector{
		vec("A", 30, 10, 5, 1.2, 0.4),
		vec("B", 25, 12, 6, 0.8, 1.1),
		vec("C", 20, 8, 4, 2.0, 0.2),
		vec("D", 28, 11, 2, 1.5, 2.3),
		vec("E", 5, 20, 9, 0.5, 0.9),
	}
	serial, _, err := AnalyzeSubFrontiers(pop, ds, SubFrontierOptions{Workers: 1})
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, _, err := AnalyzeSubFrontiers(pop, ds, SubFrontierOptions{Workers: 8})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Errorf("worker count changed the result:\nserial:   %+v\nparallel: %+v", serial, parallel)
	}
}

func TestAnalyzeSubFrontiersGuards(t *testing.T) {
	pop := []*Vector{vec("A", 1, 2, 3), vec("B", 3, 2, 1)}

	t.Run("explosion warning", func(t *testing.T) {
		_, warnings, err := AnalyzeSubFrontiers(pop, threeDims, SubFrontierOptions{WarnThreshold: 5})
		if err != nil {
			t.Fatalf("warning must not fail the run: %v", err)
		}
		if len(warnings) != 1 {
			t.Errorf("expected one explosion warning, got %v", warnings)
		}
	})

	t.Run("hard cap", func(t *testing.T) {
		_, _, err := AnalyzeSubFrontiers(pop, threeDims, SubFrontierOptions{HardCap: 2})
		var capErr *DimensionCapError
		if !errors.As(err, &capErr) {
			t.Fatalf("expected DimensionCapError, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		dup := []*Vector{vec("A", 1, 2, 3), vec("A", 3, 2, 1)}
		_, _, err := AnalyzeSubFrontiers(dup, threeDims, SubFrontierOptions{})
		var dupErr *DuplicateEntryIDError
		if !errors.As(err, &dupErr) {
			t.Fatalf("expected DuplicateEntryIDError, got %v", err)
		}
	})

	t.Run("empty population", func(t *testing.T) {
		_, _, err := AnalyzeSubFrontiers(nil, threeDims, SubFrontierOptions{})
		if !errors.Is(err, ErrEmptyPopulation) {
			t.Fatalf("expected ErrEmptyPopulation, got %v", err)
		}
	})
}
