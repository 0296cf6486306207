package pareto

// Node is one ranked entry in the dominance graph.
type Node struct {
	ID    string                 `json:"id"`
	Layer int                    `json:"layer"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// Edge is an ordered (parent id, child id) pair: parent dominates child and
// sits exactly one layer above it.
type Edge [2]string

// Stats summarizes a dominance graph.
type Stats struct {
	TotalEntries int         `json:"total_entries"`
	MaxLayer     int         `json:"max_layer"`
	LayerSizes   map[int]int `json:"layer_sizes"`
}

// DAG is the dominance graph over a layered population. Edges only connect
// adjacent layers: a dominator two or more layers up gets no edge to that
// descendant. That under-reports the full dominance relation on purpose —
// the graph reads as "who directly out-performs whom", one shell in.
// Acyclicity holds because every edge runs strictly downward in layer.
type DAG struct {
	Stats Stats  `json:"stats"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildDAG derives the adjacent-layer dominance graph from a layering.
// Nodes appear in layer order, id-sorted within a layer; edges are emitted
// parent-layer by parent-layer, both sides id-sorted, so equal inputs always
// produce byte-equal output. Both slices stay non-nil so a graph with no
// edges (a single-layer population) still serializes as a list.
func BuildDAG(layering *Layering, dims []int) *DAG {
	dag := &DAG{
		Stats: Stats{
			TotalEntries: len(layering.Layers),
			MaxLayer:     layering.MaxLayer(),
			LayerSizes:   make(map[int]int, len(layering.ByLayer)),
		},
		Nodes: make([]Node, 0, len(layering.Layers)),
		Edges: []Edge{},
	}

	for layer, members := range layering.ByLayer {
		dag.Stats.LayerSizes[layer] = len(members)
		for _, v := range members {
			dag.Nodes = append(dag.Nodes, Node{ID: v.ID, Layer: layer, Meta: v.Meta})
		}
	}

	for layer := 0; layer+1 < len(layering.ByLayer); layer++ {
		parents := layering.ByLayer[layer]
		children := layering.ByLayer[layer+1]
		for _, p := range parents {
			for _, c := range children {
				if dominates(p, c, dims) {
					dag.Edges = append(dag.Edges, Edge{p.ID, c.ID})
				}
			}
		}
	}

	return dag
}

// Elite returns the view of the graph restricted to layers <= maxLayer, for
// compact presentation of the top shells. Stats are recomputed for the view.
func (d *DAG) Elite(maxLayer int) *DAG {
	view := &DAG{
		Stats: Stats{MaxLayer: -1, LayerSizes: make(map[int]int)},
		Nodes: []Node{},
		Edges: []Edge{},
	}
	kept := make(map[string]struct{})
	for _, n := range d.Nodes {
		if n.Layer > maxLayer {
			continue
		}
		view.Nodes = append(view.Nodes, n)
		kept[n.ID] = struct{}{}
		view.Stats.LayerSizes[n.Layer]++
		if n.Layer > view.Stats.MaxLayer {
			view.Stats.MaxLayer = n.Layer
		}
	}
	view.Stats.TotalEntries = len(view.Nodes)
	for _, e := range d.Edges {
		if _, ok := kept[e[0]]; !ok {
			continue
		}
		if _, ok := kept[e[1]]; !ok {
			continue
		}
		view.Edges = append(view.Edges, e)
	}
	return view
}
