// Package network models a worldwide air-route network as an undirected
// graph of airports and derives connectivity facts about it: degree
// rankings, component structure and whole-graph statistics.
//
// A Graph is built once per load cycle from validated record sets and is
// read-only afterward; a dataset reload replaces the graph wholesale rather
// than mutating it in place.
package network

import (
	"errors"

	"github.com/skymesh/routegraph/pkg/geo"
)

// ErrEmptyGraph is returned when an aggregate statistic (mean or max
// degree) is requested over a graph with zero nodes.
var ErrEmptyGraph = errors.New("network: graph has no nodes")

// AirportRecord is a validated airport row from the loading boundary.
// Records are immutable once loaded.
type AirportRecord struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Coordinates returns the airport position as a geo point.
func (a AirportRecord) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: a.Lat, Lon: a.Lon}
}

// RouteRecord is a validated route row. The airline code is informational
// only; connectivity ignores it. A route is meaningful only if both
// endpoints resolve to known airports.
type RouteRecord struct {
	SrcID   string `json:"src_id"`
	DstID   string `json:"dst_id"`
	Airline string `json:"airline"`
}

// RankedAirport is one entry of a degree ranking.
type RankedAirport struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// Statistics is an aggregate snapshot of the network. Diameter is nil when
// it is not applicable, i.e. the graph is disconnected or empty; it is
// populated only by the explicitly expensive diameter computation.
type Statistics struct {
	TotalAirports       int     `json:"total_airports"`
	TotalRoutes         int     `json:"total_routes"`
	AvgConnections      float64 `json:"avg_connections"`
	MaxConnections      int     `json:"max_connections"`
	ConnectedComponents int     `json:"connected_components"`
	Diameter            *int    `json:"diameter"`
}
