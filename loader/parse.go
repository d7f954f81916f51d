// Package loader reads airport and route datasets into validated records.
//
// Two formats are supported: the raw OpenFlights airports.dat/routes.dat
// dumps (headerless, full column set) and the minimal headered CSVs the
// preprocessing pipeline emits (id,name,lat,lon and src_id,dst_id,airline).
// Rows that fail basic validation are skipped and counted; the core graph
// layer never sees a malformed record.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	anyascii "github.com/anyascii/go"
	"github.com/skymesh/routegraph/network"
)

// OpenFlights column layout.
const (
	airportColID   = 0
	airportColName = 1
	airportColLat  = 6
	airportColLon  = 7
	airportMinCols = 8

	routeColAirline = 0
	routeColSrcID   = 3
	routeColDstID   = 5
	routeMinCols    = 6
)

// nullField is OpenFlights' marker for a missing value.
const nullField = `\N`

// ParseAirports reads a raw OpenFlights airports.dat dump. Rows with too
// few columns, unparsable coordinates or coordinates outside the valid
// degree ranges are skipped; the skip count is returned alongside the
// records. Display names are folded to ASCII.
func ParseAirports(r io.Reader) ([]network.AirportRecord, int, error) {
	reader := newCSVReader(r)

	var records []network.AirportRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read airports row: %w", err)
		}
		if len(row) < airportMinCols {
			skipped++
			continue
		}

		rec, ok := airportFromFields(row[airportColID], row[airportColName], row[airportColLat], row[airportColLon])
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// ParseRoutes reads a raw OpenFlights routes.dat dump. Rows with missing
// (\N) or non-numeric airport ids are skipped and counted.
func ParseRoutes(r io.Reader) ([]network.RouteRecord, int, error) {
	reader := newCSVReader(r)

	var records []network.RouteRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read routes row: %w", err)
		}
		if len(row) < routeMinCols {
			skipped++
			continue
		}

		src := row[routeColSrcID]
		dst := row[routeColDstID]
		if !isNumericID(src) || !isNumericID(dst) {
			skipped++
			continue
		}

		records = append(records, network.RouteRecord{
			SrcID:   src,
			DstID:   dst,
			Airline: row[routeColAirline],
		})
	}

	return records, skipped, nil
}

// ParseAirportsCSV reads the minimal headered airport CSV
// (id,name,lat,lon) produced by the preprocessing step.
func ParseAirportsCSV(r io.Reader) ([]network.AirportRecord, int, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read airports header: %w", err)
	}
	if len(header) < 4 || header[0] != "id" {
		return nil, 0, fmt.Errorf("unexpected airports header: %v", header)
	}

	var records []network.AirportRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read airports row: %w", err)
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		rec, ok := airportFromFields(row[0], row[1], row[2], row[3])
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// ParseRoutesCSV reads the minimal headered route CSV
// (src_id,dst_id,airline).
func ParseRoutesCSV(r io.Reader) ([]network.RouteRecord, int, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read routes header: %w", err)
	}
	if len(header) < 3 || header[0] != "src_id" {
		return nil, 0, fmt.Errorf("unexpected routes header: %v", header)
	}

	var records []network.RouteRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read routes row: %w", err)
		}
		if len(row) < 3 || !isNumericID(row[0]) || !isNumericID(row[1]) {
			skipped++
			continue
		}

		records = append(records, network.RouteRecord{
			SrcID:   row[0],
			DstID:   row[1],
			Airline: row[2],
		})
	}

	return records, skipped, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // OpenFlights rows are ragged
	reader.LazyQuotes = true
	return reader
}

func airportFromFields(id, name, lat, lon string) (network.AirportRecord, bool) {
	id = strings.TrimSpace(id)
	if id == "" || id == nullField {
		return network.AirportRecord{}, false
	}

	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return network.AirportRecord{}, false
	}
	lonF, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return network.AirportRecord{}, false
	}
	if latF < -90 || latF > 90 || lonF < -180 || lonF > 180 {
		return network.AirportRecord{}, false
	}

	return network.AirportRecord{
		ID:   id,
		Name: anyascii.Transliterate(strings.TrimSpace(name)),
		Lat:  latF,
		Lon:  lonF,
	}, true
}

func isNumericID(s string) bool {
	if s == "" || s == nullField {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
