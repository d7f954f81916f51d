package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawAirports = `1,"Goroka Airport","Goroka","Papua New Guinea","GKA","AYGA",-6.081689834590001,145.391998291,5282,10,"U","Pacific/Port_Moresby","airport","OurAirports"
2,"Madang Airport","Madang","Papua New Guinea","MAG","AYMD",-5.20707988739,145.789001465,20,10,"U","Pacific/Port_Moresby","airport","OurAirports"
3,"Broken Airport","Nowhere","Nowhere","XXX","XXXX",not-a-number,145.0,20,10,"U","UTC","airport","OurAirports"
4,"Out Of Range","Nowhere","Nowhere","YYY","YYYY",95.0,145.0,20,10,"U","UTC","airport","OurAirports"
`

const rawRoutes = `2B,410,AER,2965,KZN,2990,,0,CR2
2B,410,ASF,2966,KZN,2990,,0,CR2
AA,24,JFK,\N,LHR,507,,0,744
AA,24,JFK,abc,LHR,507,,0,744
`

func TestParseAirports_SkipsInvalidRows(t *testing.T) {
	records, skipped, err := ParseAirports(strings.NewReader(rawAirports))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 2, skipped, "unparsable and out-of-range coordinates are skipped")

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Goroka Airport", records[0].Name)
	assert.InDelta(t, -6.0817, records[0].Lat, 0.001)
	assert.InDelta(t, 145.392, records[0].Lon, 0.001)
}

func TestParseAirports_TransliteratesNames(t *testing.T) {
	row := `100,"Aéroport de Tahiti Faa'a","Papeete","French Polynesia","PPT","NTAA",-17.5537,-149.607,5,-10,"U","Pacific/Tahiti","airport","OurAirports"` + "\n"

	records, _, err := ParseAirports(strings.NewReader(row))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Aeroport de Tahiti Faa'a", records[0].Name)
}

func TestParseRoutes_SkipsNullAndNonNumericIDs(t *testing.T) {
	records, skipped, err := ParseRoutes(strings.NewReader(rawRoutes))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 2, skipped)

	assert.Equal(t, "410", records[0].SrcID)
	assert.Equal(t, "2990", records[0].DstID)
	assert.Equal(t, "2B", records[0].Airline)
}

func TestParseAirportsCSV(t *testing.T) {
	csvData := "id,name,lat,lon\n1,First,51.47,-0.45\n2,Second,40.64,-73.78\nbad-row\n"

	records, skipped, err := ParseAirportsCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 1, skipped)
}

func TestParseAirportsCSV_RejectsUnknownHeader(t *testing.T) {
	_, _, err := ParseAirportsCSV(strings.NewReader("a,b,c,d\n"))
	assert.Error(t, err)
}

func TestParseRoutesCSV(t *testing.T) {
	csvData := "src_id,dst_id,airline\n1,2,AA\n2,3,BA\nx,3,CC\n"

	records, skipped, err := ParseRoutesCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "AA", records[0].Airline)
}

func TestParseAirportsCSV_EmptyInput(t *testing.T) {
	records, skipped, err := ParseAirportsCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}

func TestFetcher_FetchAirports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rawAirports))
	}))
	defer server.Close()

	f := NewFetcher(server.URL+"/airports.dat", server.URL+"/routes.dat")
	records, skipped, err := f.FetchAirports(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 2, skipped)
}

func TestFetcher_WrongStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(server.URL+"/airports.dat", server.URL+"/routes.dat")
	f.client.RetryMax = 0

	_, _, err := f.FetchRoutes(context.Background())
	assert.Error(t, err)
}
