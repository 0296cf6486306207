package pareto

import (
	"math"
	"reflect"
	"testing"
)

func TestComputeLayers(t *testing.T) {
	dims := []int{0, 1, 2}

	t.Run("two layer split", func(t *testing.T) {
		pop := []*Vector{
			vec("A", 30, 10, 5),
			vec("B", 25, 12, 6),
			vec("C", 20, 8, 4),
		}
		l := ComputeLayers(pop, dims)

		want := map[string]int{"A": 0, "B": 0, "C": 1}
		if !reflect.DeepEqual(l.Layers, want) {
			t.Errorf("layers = %v, want %v", l.Layers, want)
		}
		if l.MaxLayer() != 1 {
			t.Errorf("max layer = %d, want 1", l.MaxLayer())
		}
	})

	t.Run("equal vectors share layer zero", func(t *testing.T) {
		pop := []*Vector{
			vec("A", 10, 10, 10),
			vec("B", 10, 10, 10),
			vec("C", 5, 5, 5),
		}
		l := ComputeLayers(pop, dims)
		want := map[string]int{"A": 0, "B": 0, "C": 1}
		if !reflect.DeepEqual(l.Layers, want) {
			t.Errorf("layers = %v, want %v", l.Layers, want)
		}
	})

	t.Run("totally ordered chain peels one per layer", func(t *testing.T) {
		pop := []*Vector{
			vec("A", 3, 3, 3),
			vec("B", 2, 2, 2),
			vec("C", 1, 1, 1),
		}
		l := ComputeLayers(pop, dims)
		want := map[string]int{"A": 0, "B": 1, "C": 2}
		if !reflect.DeepEqual(l.Layers, want) {
			t.Errorf("layers = %v, want %v", l.Layers, want)
		}
	})
}

func TestComputeLayersUnranked(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("N", 40, math.NaN(), 9),
		vec("C", 20, 8, 4),
	}
	l := ComputeLayers(pop, dims)

	if _, ranked := l.Layers["N"]; ranked {
		t.Error("NaN entry must not receive a layer")
	}
	if len(l.Unranked) != 1 || l.Unranked[0].EntryID != "N" {
		t.Errorf("unranked = %v, want [N]", l.Unranked)
	}
	want := map[string]int{"A": 0, "C": 1}
	if !reflect.DeepEqual(l.Layers, want) {
		t.Errorf("layers = %v, want %v", l.Layers, want)
	}
}

func TestComputeLayersWithinLayerOrder(t *testing.T) {
	dims := []int{0, 1, 2}
	// Deliberately unsorted input; within-layer listing must come back by id.
	pop := []*Vector{
		vec("zeta", 25, 12, 6),
		vec("alpha", 30, 10, 5),
		vec("mid", 20, 8, 4),
	}
	l := ComputeLayers(pop, dims)
	got := ids(l.ByLayer[0])
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layer 0 listing = %v, want %v", got, want)
	}
}

func TestComputeLayersDeterministic(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("B", 25, 12, 6),
		vec("C", 20, 8, 4),
		vec("D", 28, 11, 2),
		vec("E", 5, 20, 9),
		vec("F", 20, 8, 4),
	}
	first := ComputeLayers(pop, dims)
	second := ComputeLayers(pop, dims)
	if !reflect.DeepEqual(first.Layers, second.Layers) {
		t.Errorf("layer assignment not deterministic: %v vs %v", first.Layers, second.Layers)
	}
	for i := range first.ByLayer {
		if !reflect.DeepEqual(ids(first.ByLayer[i]), ids(second.ByLayer[i])) {
			t.Errorf("layer %d listing differs between runs", i)
		}
	}
}

// Every entry below layer 0 must be dominated by at least one entry from
// some earlier layer — not necessarily the immediately preceding one.
func TestComputeLayersDominatorExists(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("B", 25, 12, 6),
		vec("C", 20, 8, 4),
		vec("D", 15, 7, 3),
		vec("E", 25, 9, 4),
		vec("F", 10, 6, 2),
	}
	l := ComputeLayers(pop, dims)

	byID := make(map[string]*Vector, len(pop))
	for _, v := range pop {
		byID[v.ID] = v
	}

	for id, layer := range l.Layers {
		if layer == 0 {
			continue
		}
		found := false
		for earlier := 0; earlier < layer && !found; earlier++ {
			for _, p := range l.ByLayer[earlier] {
				if dominates(p, byID[id], dims) {
					found = true
					break
				}
			}
		}
		if !found {
			t.Errorf("entry %s at layer %d has no dominator in any earlier layer", id, layer)
		}
	}
}

// Layer 0 members must be pairwise non-dominating.
func TestComputeLayersLayerZeroIsFrontier(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("A", 30, 10, 5),
		vec("B", 25, 12, 6),
		vec("C", 20, 8, 4),
		vec("D", 28, 11, 2),
	}
	l := ComputeLayers(pop, dims)
	layer0 := l.ByLayer[0]
	for _, a := range layer0 {
		for _, b := range layer0 {
			if a.ID == b.ID {
				continue
			}
			if dominates(a, b, dims) {
				t.Errorf("layer 0 entries %s and %s are not mutually non-dominating", a.ID, b.ID)
			}
		}
	}
}
