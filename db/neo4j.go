package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/network"
	"github.com/skymesh/routegraph/pkg/geo"
)

// GraphExporter mirrors a built network into an external graph store so
// downstream tooling can query it with Cypher.
type GraphExporter interface {
	InitSchema() error
	ExportGraph(g *network.Graph) error
	Close() error
}

// Neo4jDB exports the airport network into Neo4j.
type Neo4jDB struct {
	driver neo4j.Driver
}

var _ GraphExporter = (*Neo4jDB)(nil)

// NewNeo4jDB opens a Neo4j connection and verifies connectivity.
func NewNeo4jDB(cfg config.Neo4jConfig) (*Neo4jDB, error) {
	driver, err := neo4j.NewDriver(strings.TrimSpace(cfg.URI), neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(); err != nil {
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	return &Neo4jDB{driver: driver}, nil
}

// Close closes the driver.
func (n *Neo4jDB) Close() error {
	return n.driver.Close()
}

// Ping verifies the driver can still reach Neo4j. The session API used here
// has no context variant, so ctx is unused.
func (n *Neo4jDB) Ping(_ context.Context) error {
	return n.driver.VerifyConnectivity()
}

// InitSchema creates the uniqueness constraint on airport ids.
func (n *Neo4jDB) InitSchema() error {
	session := n.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.Run(
		"CREATE CONSTRAINT airport_id IF NOT EXISTS FOR (a:Airport) REQUIRE a.id IS UNIQUE",
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create airport id constraint: %w", err)
	}

	return nil
}

// ExportGraph merges every airport node and route relationship of the
// built graph into Neo4j. Relationships carry the carrier code and the
// haversine distance in kilometers.
func (n *Neo4jDB) ExportGraph(g *network.Graph) error {
	session := n.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	for _, a := range g.Nodes() {
		_, err := session.Run(
			`MERGE (a:Airport {id: $id})
			 SET a.name = $name, a.latitude = $lat, a.longitude = $lon`,
			map[string]interface{}{
				"id":   a.ID,
				"name": a.Name,
				"lat":  a.Lat,
				"lon":  a.Lon,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to merge airport %s: %w", a.ID, err)
		}
	}

	for _, r := range g.Routes() {
		src, _ := g.Node(r.SrcID)
		dst, _ := g.Node(r.DstID)
		distance := geo.Haversine(src.Lat, src.Lon, dst.Lat, dst.Lon)

		_, err := session.Run(
			`MATCH (s:Airport {id: $src}), (d:Airport {id: $dst})
			 MERGE (s)-[r:ROUTE {airline: $airline}]->(d)
			 SET r.distance_km = $distance`,
			map[string]interface{}{
				"src":      r.SrcID,
				"dst":      r.DstID,
				"airline":  r.Airline,
				"distance": distance,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to merge route %s-%s: %w", r.SrcID, r.DstID, err)
		}
	}

	return nil
}
