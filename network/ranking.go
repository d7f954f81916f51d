package network

import "sort"

// TopByDegree ranks airports by their number of distinct neighbors,
// descending, and returns at most n entries. Ties are broken by airport id
// ascending so the order is deterministic regardless of map iteration.
// When n meets or exceeds the node count, every airport is returned.
func TopByDegree(g *Graph, n int) []RankedAirport {
	if n <= 0 {
		return nil
	}

	ranked := make([]RankedAirport, 0, g.NodeCount())
	for id, a := range g.nodes {
		ranked = append(ranked, RankedAirport{
			ID:     id,
			Name:   a.Name,
			Degree: g.Degree(id),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Degree != ranked[j].Degree {
			return ranked[i].Degree > ranked[j].Degree
		}
		return ranked[i].ID < ranked[j].ID
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
