package pareto

import (
	"errors"
	"fmt"
)

// ErrEmptyPopulation is returned when a run is requested over zero usable
// entries. A run where every entry was individually excluded also ends here.
var ErrEmptyPopulation = errors.New("pareto: empty population")

// DimensionMismatchError means an entry has no value at an index the active
// DimensionSet requires. Fatal for that entry only.
type DimensionMismatchError struct {
	EntryID string
	Dim     int
	Have    int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("entry %s: missing dimension %d (vector has %d values)", e.EntryID, e.Dim, e.Have)
}

// InvalidVectorError means an entry carries a NaN or infinite value on a
// required dimension. Fatal for that entry only.
type InvalidVectorError struct {
	EntryID string
	Dim     int
	Value   float64
}

func (e *InvalidVectorError) Error() string {
	return fmt.Sprintf("entry %s: non-finite value %v at dimension %d", e.EntryID, e.Value, e.Dim)
}

// DuplicateEntryIDError means two input vectors share an id. Fatal for the
// run: silent dedup would make DAG nodes and edges ambiguous.
type DuplicateEntryIDError struct {
	EntryID string
}

func (e *DuplicateEntryIDError) Error() string {
	return fmt.Sprintf("duplicate entry id %q in population", e.EntryID)
}

// DimensionCapError means the requested DimensionSet is too large to
// enumerate 2^d subsets safely. Fatal for the run.
type DimensionCapError struct {
	Set  string
	Size int
	Cap  int
}

func (e *DimensionCapError) Error() string {
	return fmt.Sprintf("dimension set %q has %d dimensions, above the hard cap of %d", e.Set, e.Size, e.Cap)
}
