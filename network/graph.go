package network

import "sort"

// Graph is an undirected airport-route network. Nodes are airports keyed by
// identifier; edges are structural connections between distinct airports.
// Parallel routes from multiple carriers collapse to a single structural
// edge, but every underlying RouteRecord is retained for presentation.
//
// A Graph is immutable after Build returns and safe for concurrent reads.
type Graph struct {
	nodes     map[string]AirportRecord
	adjacency map[string]map[string]struct{}
	edgeCount int
	routes    []RouteRecord
}

// Node returns the airport with the given id, if present.
func (g *Graph) Node(id string) (AirportRecord, bool) {
	a, ok := g.nodes[id]
	return a, ok
}

// Nodes returns all airports sorted by id for deterministic iteration.
func (g *Graph) Nodes() []AirportRecord {
	out := make([]AirportRecord, 0, len(g.nodes))
	for _, a := range g.nodes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeIDs returns all airport identifiers sorted ascending.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Neighbors returns the ids of the distinct airports adjacent to id,
// sorted ascending. A missing id yields nil.
func (g *Graph) Neighbors(id string) []string {
	set, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Degree returns the number of distinct neighbors of id. Isolated or
// unknown airports have degree zero.
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// HasEdge reports whether a structural edge connects the two airports, in
// either direction.
func (g *Graph) HasEdge(srcID, dstID string) bool {
	_, ok := g.adjacency[srcID][dstID]
	return ok
}

// NodeCount returns the number of airports, including isolated ones.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of structural edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Routes returns every route record that survived validation, including
// carrier duplicates that share a structural edge.
func (g *Graph) Routes() []RouteRecord {
	out := make([]RouteRecord, len(g.routes))
	copy(out, g.routes)
	return out
}
