package pareto

import (
	"errors"
	"math"
	"testing"
)

func vec(id string, values ...float64) *Vector {
	return &Vector{ID: id, Values: values}
}

func TestDominates(t *testing.T) {
	dims := []int{0, 1, 2}

	tests := []struct {
		name string
		a, b *Vector
		want bool
	}{
		{"strict on all", vec("a", 30, 10, 5), vec("c", 20, 8, 4), true},
		{"strict on one, equal rest", vec("a", 30, 10, 5), vec("b", 30, 10, 4), true},
		{"mixed, neither way", vec("a", 30, 10, 5), vec("b", 25, 12, 6), false},
		{"exactly equal", vec("a", 10, 10, 10), vec("b", 10, 10, 10), false},
		{"worse on one dim", vec("a", 30, 10, 3), vec("b", 20, 8, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dominates(tt.a, tt.b, dims)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", tt.a.Values, tt.b.Values, got, tt.want)
			}
		})
	}
}

func TestDominatesIrreflexive(t *testing.T) {
	a := vec("a", 30, 10, 5)
	got, err := Dominates(a, a, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("a vector must never dominate itself")
	}
}

func TestDominatesAntisymmetric(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("a", 30, 10, 5),
		vec("b", 25, 12, 6),
		vec("c", 20, 8, 4),
		vec("d", 20, 8, 4),
		vec("e", 30, 10, 5),
	}
	for _, a := range pop {
		for _, b := range pop {
			ab, err := Dominates(a, b, dims)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ba, err := Dominates(b, a, dims)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ab && ba {
				t.Errorf("antisymmetry violated for %s and %s", a.ID, b.ID)
			}
		}
	}
}

// Transitivity is not enforced pointwise; it has to fall out of the vector
// ordering. Check it over an exhaustive triple scan of a mixed population.
func TestDominatesTransitive(t *testing.T) {
	dims := []int{0, 1, 2}
	pop := []*Vector{
		vec("a", 30, 10, 5),
		vec("b", 25, 12, 6),
		vec("c", 20, 8, 4),
		vec("d", 15, 7, 3),
		vec("e", 25, 9, 4),
		vec("f", 20, 8, 4),
	}
	for _, x := range pop {
		for _, y := range pop {
			for _, z := range pop {
				xy, _ := Dominates(x, y, dims)
				yz, _ := Dominates(y, z, dims)
				if !xy || !yz {
					continue
				}
				xz, _ := Dominates(x, z, dims)
				if !xz {
					t.Errorf("transitivity violated: %s>%s and %s>%s but not %s>%s", x.ID, y.ID, y.ID, z.ID, x.ID, z.ID)
				}
			}
		}
	}
}

func TestDominatesSubsetOfDims(t *testing.T) {
	// b beats a overall but restricted to dim 0 the order flips.
	a := vec("a", 30, 1, 1)
	b := vec("b", 25, 12, 6)
	got, err := Dominates(a, b, []int{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected a to dominate b on points alone")
	}
}

func TestDominatesDimensionErrors(t *testing.T) {
	t.Run("missing dimension", func(t *testing.T) {
		a := vec("a", 30, 10)
		b := vec("b", 20, 8, 4)
		_, err := Dominates(a, b, []int{0, 1, 2})
		var mismatch *DimensionMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected DimensionMismatchError, got %v", err)
		}
		if mismatch.EntryID != "a" || mismatch.Dim != 2 {
			t.Errorf("unexpected error detail: %+v", mismatch)
		}
	})

	t.Run("nan value", func(t *testing.T) {
		a := vec("a", 30, math.NaN(), 5)
		b := vec("b", 20, 8, 4)
		_, err := Dominates(a, b, []int{0, 1, 2})
		var invalid *InvalidVectorError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidVectorError, got %v", err)
		}
	})
}
