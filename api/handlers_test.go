package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/network"
	"github.com/skymesh/routegraph/worker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		StatsConfig: config.StatsConfig{
			DiameterConcurrency: 2,
			CacheTTL:            time.Minute,
		},
	}
}

func testHolder() *worker.Holder {
	airports := []network.AirportRecord{
		{ID: "1", Name: "Alpha Intl", Lat: 51.47, Lon: -0.45},
		{ID: "2", Name: "Bravo Intl", Lat: 40.64, Lon: -73.78},
		{ID: "3", Name: "Charlie Intl", Lat: 33.94, Lon: -118.40},
	}
	routes := []network.RouteRecord{
		{SrcID: "1", DstID: "2", Airline: "AA"},
		{SrcID: "2", DstID: "3", Airline: "BA"},
	}
	return worker.NewHolder(&worker.Snapshot{
		Graph:    network.Build(airports, routes),
		LoadedAt: time.Now(),
	})
}

func newTestRouter(holder *worker.Holder) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, holder, nil, testConfig())
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 3, stats["total_airports"])
	assert.EqualValues(t, 2, stats["total_routes"])
	assert.InDelta(t, 1.33, stats["avg_connections"].(float64), 0.01)
	assert.EqualValues(t, 2, stats["max_connections"])
	assert.EqualValues(t, 1, stats["connected_components"])
	assert.Equal(t, "n/a", body["diameter"], "diameter is opt-in")
}

func TestGetStats_WithDiameter(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/stats?diameter=true")
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 2, body["diameter"])
}

func TestGetStats_EmptyGraph(t *testing.T) {
	holder := worker.NewHolder(&worker.Snapshot{Graph: network.Build(nil, nil), LoadedAt: time.Now()})
	router := newTestRouter(holder)

	w, body := doGet(t, router, "/api/v1/stats")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["error"], "no nodes")
}

func TestGetStats_DisconnectedDiameterNotApplicable(t *testing.T) {
	airports := []network.AirportRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	routes := []network.RouteRecord{
		{SrcID: "1", DstID: "2"},
		{SrcID: "3", DstID: "4"},
	}
	holder := worker.NewHolder(&worker.Snapshot{Graph: network.Build(airports, routes), LoadedAt: time.Now()})
	router := newTestRouter(holder)

	w, body := doGet(t, router, "/api/v1/stats?diameter=true")
	require.Equal(t, http.StatusOK, w.Code)

	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["connected_components"])
	assert.Equal(t, "n/a", body["diameter"])
}

func TestGetTopAirports(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/airports/top?n=1")
	require.Equal(t, http.StatusOK, w.Code)

	airports := body["airports"].([]interface{})
	require.Len(t, airports, 1)
	first := airports[0].(map[string]interface{})
	assert.Equal(t, "2", first["id"])
	assert.EqualValues(t, 2, first["degree"])
}

func TestGetAirports(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/airports")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["count"])
}

func TestGetAirport(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/airports/2")
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 2, body["degree"])
	assert.Equal(t, []interface{}{"1", "3"}, body["neighbors"])
}

func TestGetAirport_NotFound(t *testing.T) {
	router := newTestRouter(testHolder())

	w, _ := doGet(t, router, "/api/v1/airports/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoutes(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/routes?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 2, body["total"])

	routes := body["routes"].([]interface{})
	first := routes[0].(map[string]interface{})
	assert.Greater(t, first["distance_km"].(float64), 0.0)
}

func TestGetPath(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/path?src=1&dst=2&points=10")
	require.Equal(t, http.StatusOK, w.Code)

	points := body["points"].([]interface{})
	assert.Len(t, points, 11)
	assert.Greater(t, body["distance_km"].(float64), 5000.0)
}

func TestGetPath_UnknownAirport(t *testing.T) {
	router := newTestRouter(testHolder())

	w, _ := doGet(t, router, "/api/v1/path?src=1&dst=999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPath_MissingParams(t *testing.T) {
	router := newTestRouter(testHolder())

	w, _ := doGet(t, router, "/api/v1/path?src=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGeoPath(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/api/v1/geo/path?lat1=51.5074&lon1=-0.1278&lat2=40.7128&lon2=-74.0060&points=5")
	require.Equal(t, http.StatusOK, w.Code)

	assert.InDelta(t, 5570, body["distance_km"].(float64), 20)
	assert.Len(t, body["points"].([]interface{}), 6)
}

func TestGetGeoPath_OutOfRange(t *testing.T) {
	router := newTestRouter(testHolder())

	w, _ := doGet(t, router, "/api/v1/geo/path?lat1=95&lon1=0&lat2=0&lon2=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoSnapshotReturns503(t *testing.T) {
	router := newTestRouter(worker.NewHolder(nil))

	w, _ := doGet(t, router, "/api/v1/stats")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(testHolder())

	w, body := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", body["status"])
}
