package network

// Build constructs a Graph from airport and route record sets.
//
// Airports are inserted first; a duplicate airport id overwrites the
// earlier record (last write wins). A route is added only when both
// endpoints already exist as nodes; routes referencing unknown airports
// are silently dropped, which is the principal validation rule of the
// whole system. Self-loop routes (src == dst) are dropped as well: they
// carry no connectivity information and would skew degree counts.
//
// Build has no side effects beyond the returned graph.
func Build(airports []AirportRecord, routes []RouteRecord) *Graph {
	g := &Graph{
		nodes:     make(map[string]AirportRecord, len(airports)),
		adjacency: make(map[string]map[string]struct{}, len(airports)),
	}

	for _, a := range airports {
		g.nodes[a.ID] = a
		if _, ok := g.adjacency[a.ID]; !ok {
			g.adjacency[a.ID] = make(map[string]struct{})
		}
	}

	for _, r := range routes {
		if _, ok := g.nodes[r.SrcID]; !ok {
			continue
		}
		if _, ok := g.nodes[r.DstID]; !ok {
			continue
		}
		if r.SrcID == r.DstID {
			continue
		}

		if _, dup := g.adjacency[r.SrcID][r.DstID]; !dup {
			g.adjacency[r.SrcID][r.DstID] = struct{}{}
			g.adjacency[r.DstID][r.SrcID] = struct{}{}
			g.edgeCount++
		}
		g.routes = append(g.routes, r)
	}

	return g
}
