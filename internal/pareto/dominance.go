package pareto

// Dominates reports whether a Pareto-dominates b restricted to dims: a is
// >= b on every listed dimension and strictly > on at least one. Equal
// vectors do not dominate each other in either direction. The relation is
// irreflexive and antisymmetric by construction.
//
// Returns a DimensionMismatchError or InvalidVectorError if either vector
// lacks a finite value for an index in dims.
func Dominates(a, b *Vector, dims []int) (bool, error) {
	if err := checkVector(a, dims); err != nil {
		return false, err
	}
	if err := checkVector(b, dims); err != nil {
		return false, err
	}
	return dominates(a, b, dims), nil
}

// dominates is the unchecked comparator for the hot paths. Callers must have
// validated both vectors against dims (see partition).
func dominates(a, b *Vector, dims []int) bool {
	strict := false
	for _, i := range dims {
		if a.Values[i] < b.Values[i] {
			return false
		}
		if a.Values[i] > b.Values[i] {
			strict = true
		}
	}
	return strict
}
