package pareto

// subsetIter lazily enumerates every non-empty subset of dimension indices
// 0..d-1 without materializing all 2^d - 1 of them. Each subset comes out in
// canonical ascending-index order.
type subsetIter struct {
	d    int
	mask uint64
}

func newSubsetIter(d int) *subsetIter {
	return &subsetIter{d: d, mask: 0}
}

// Next returns the next subset, or nil when the enumeration is done. The
// returned slice is freshly allocated and safe for the caller to keep.
func (it *subsetIter) Next() []int {
	it.mask++
	if it.mask >= uint64(1)<<uint(it.d) {
		return nil
	}
	subset := make([]int, 0, it.d)
	for i := 0; i < it.d; i++ {
		if it.mask&(uint64(1)<<uint(i)) != 0 {
			subset = append(subset, i)
		}
	}
	return subset
}

// lessSubset is the deterministic tie-break order over canonical subsets:
// element-wise ascending index, shorter prefix first. [0 2] < [1 2], and
// [0] < [0 1].
func lessSubset(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
