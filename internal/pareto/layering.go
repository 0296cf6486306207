package pareto

// Layering is the onion-peel partition of a population under one
// DimensionSet. Layers maps entry id to layer index; layer 0 is the outer
// Pareto frontier of the whole population. Unranked holds entries excluded
// before peeling (missing or non-finite dimension values); they carry no
// layer at all rather than a fake deep one.
type Layering struct {
	Layers   map[string]int
	Unranked []Skipped
	// ByLayer lists members of each layer ordered by entry id, for
	// reproducible output. ByLayer[i] is layer i.
	ByLayer [][]*Vector
}

// MaxLayer returns the highest layer index assigned, or -1 when nothing was
// ranked.
func (l *Layering) MaxLayer() int { return len(l.ByLayer) - 1 }

// ComputeLayers peels set into successive Pareto frontiers under dims:
// extract the frontier of the remaining pool, assign it the current layer
// index, remove it, repeat until the pool is empty. Each peel strictly
// shrinks the pool (a finite non-empty set always has a non-empty frontier),
// so termination is guaranteed.
func ComputeLayers(set []*Vector, dims []int) *Layering {
	remaining, skipped := partition(set, dims)

	out := &Layering{
		Layers:   make(map[string]int, len(remaining)),
		Unranked: skipped,
	}

	for layer := 0; len(remaining) > 0; layer++ {
		frontier := frontierOf(remaining, dims)

		members := make([]*Vector, len(frontier))
		copy(members, frontier)
		sortByID(members)
		out.ByLayer = append(out.ByLayer, members)

		inFrontier := make(map[string]struct{}, len(frontier))
		for _, v := range frontier {
			inFrontier[v.ID] = struct{}{}
			out.Layers[v.ID] = layer
		}

		next := remaining[:0]
		for _, v := range remaining {
			if _, peeled := inFrontier[v.ID]; !peeled {
				next = append(next, v)
			}
		}
		remaining = next
	}

	return out
}
