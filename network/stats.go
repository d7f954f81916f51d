package network

import (
	"context"
	"runtime"
	"sync"
)

// ComputeStatistics derives the aggregate statistics of the graph: counts,
// degree mean/max and connected-component count. It does not compute the
// diameter; see ComputeDiameter for that explicitly expensive operation.
//
// Returns ErrEmptyGraph when the graph has zero nodes, since mean and max
// degree are undefined over an empty set.
func ComputeStatistics(g *Graph) (Statistics, error) {
	if g.NodeCount() == 0 {
		return Statistics{}, ErrEmptyGraph
	}

	var degreeSum, degreeMax int
	for id := range g.nodes {
		d := g.Degree(id)
		degreeSum += d
		if d > degreeMax {
			degreeMax = d
		}
	}

	return Statistics{
		TotalAirports:       g.NodeCount(),
		TotalRoutes:         g.EdgeCount(),
		AvgConnections:      float64(degreeSum) / float64(g.NodeCount()),
		MaxConnections:      degreeMax,
		ConnectedComponents: countComponents(g),
	}, nil
}

// ComputeFullStatistics computes the base statistics and, when the graph is
// connected, its diameter. The diameter pass is O(V*(V+E)); callers on a
// fast path should prefer ComputeStatistics.
func ComputeFullStatistics(ctx context.Context, g *Graph, concurrency int) (Statistics, error) {
	stats, err := ComputeStatistics(g)
	if err != nil {
		return Statistics{}, err
	}
	if stats.ConnectedComponents == 1 {
		d, ok, err := ComputeDiameter(ctx, g, concurrency)
		if err != nil {
			return Statistics{}, err
		}
		if ok {
			stats.Diameter = &d
		}
	}
	return stats, nil
}

// countComponents counts maximal sets of mutually reachable nodes with a
// BFS sweep over every unvisited node.
func countComponents(g *Graph) int {
	seen := make(map[string]bool, len(g.nodes))
	count := 0

	for id := range g.nodes {
		if seen[id] {
			continue
		}
		count++
		queue := []string{id}
		seen[id] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for v := range g.adjacency[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	return count
}

// ComputeDiameter returns the greatest shortest-path hop count between any
// pair of nodes. The second result is false when the diameter is not
// applicable: the graph is empty or disconnected.
//
// The computation runs one BFS per source node, fanned out over a fixed
// pool of workers and reduced with a max; cost is O(V*(V+E)). Concurrency
// values below 1 default to GOMAXPROCS. Cancellation of ctx is honored
// between per-source computations.
func ComputeDiameter(ctx context.Context, g *Graph, concurrency int) (int, bool, error) {
	if g.NodeCount() == 0 {
		return 0, false, nil
	}
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	ids := g.NodeIDs()

	sources := make(chan string)
	results := make(chan sourceEccentricity, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range sources {
				ecc, reached := eccentricity(g, src)
				results <- sourceEccentricity{ecc: ecc, reached: reached}
			}
		}()
	}

	go func() {
		defer close(sources)
		for _, id := range ids {
			select {
			case sources <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	diameter := 0
	for r := range results {
		// A source that cannot reach every node proves the graph is
		// disconnected, which makes the diameter undefined.
		if r.reached != len(ids) {
			// Drain remaining workers before returning.
			for range results {
			}
			return 0, false, ctx.Err()
		}
		if r.ecc > diameter {
			diameter = r.ecc
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	return diameter, true, nil
}

type sourceEccentricity struct {
	ecc     int
	reached int
}

// eccentricity runs a BFS from src and returns the greatest hop distance
// found plus the number of nodes reached.
func eccentricity(g *Graph, src string) (int, int) {
	dist := make(map[string]int, len(g.nodes))
	dist[src] = 0
	queue := []string{src}
	maxDist := 0

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for v := range g.adjacency[u] {
			if _, ok := dist[v]; ok {
				continue
			}
			dist[v] = dist[u] + 1
			if dist[v] > maxDist {
				maxDist = dist[v]
			}
			queue = append(queue, v)
		}
	}

	return maxDist, len(dist)
}
