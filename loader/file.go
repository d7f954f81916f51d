package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/skymesh/routegraph/network"
)

// FileSource loads the raw OpenFlights dumps from the local filesystem.
type FileSource struct {
	AirportsPath string
	RoutesPath   string
}

// FetchAirports parses the airports file.
func (s FileSource) FetchAirports(ctx context.Context) ([]network.AirportRecord, int, error) {
	f, err := os.Open(s.AirportsPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open airports file: %w", err)
	}
	defer f.Close()

	return ParseAirports(f)
}

// FetchRoutes parses the routes file.
func (s FileSource) FetchRoutes(ctx context.Context) ([]network.RouteRecord, int, error) {
	f, err := os.Open(s.RoutesPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open routes file: %w", err)
	}
	defer f.Close()

	return ParseRoutes(f)
}
