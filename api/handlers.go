// Package api exposes the network graph, statistics, rankings and
// great-circle geometry over HTTP for an external rendering layer.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/network"
	"github.com/skymesh/routegraph/pkg/cache"
	"github.com/skymesh/routegraph/pkg/geo"
	"github.com/skymesh/routegraph/worker"
)

const (
	defaultTopN     = 50
	maxTopN         = 500
	defaultPathPts  = 100
	maxPathPts      = 1000
	defaultRouteCap = 1000
	maxRouteCap     = 50000
	snapshotMissing = "no graph snapshot loaded yet"
	diameterNotAppl = "n/a"
)

// AirportResponse is one airport with its degree.
type AirportResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Degree int     `json:"degree"`
}

// RouteResponse is one route with its geodesic length.
type RouteResponse struct {
	SrcID      string  `json:"src_id"`
	DstID      string  `json:"dst_id"`
	Airline    string  `json:"airline"`
	DistanceKm float64 `json:"distance_km"`
}

// currentGraph fetches the active snapshot or writes a 503.
func currentGraph(c *gin.Context, holder *worker.Holder) (*network.Graph, bool) {
	snap := holder.Get()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": snapshotMissing})
		return nil, false
	}
	return snap.Graph, true
}

// intQuery parses a bounded integer query parameter with a default.
func intQuery(c *gin.Context, name string, def, max int) int {
	v := def
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= max {
			v = parsed
		}
	}
	return v
}

// GetAirports lists every airport with its degree.
// GET /api/v1/airports
func GetAirports(holder *worker.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		nodes := g.Nodes()
		out := make([]AirportResponse, 0, len(nodes))
		for _, a := range nodes {
			out = append(out, AirportResponse{
				ID:     a.ID,
				Name:   a.Name,
				Lat:    a.Lat,
				Lon:    a.Lon,
				Degree: g.Degree(a.ID),
			})
		}

		c.JSON(http.StatusOK, gin.H{"count": len(out), "airports": out})
	}
}

// GetAirport returns one airport and its neighbors.
// GET /api/v1/airports/:id
func GetAirport(holder *worker.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		id := c.Param("id")
		a, found := g.Node(id)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "airport not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"airport":   a,
			"degree":    g.Degree(id),
			"neighbors": g.Neighbors(id),
		})
	}
}

// GetTopAirports returns the n airports with the most connections.
// GET /api/v1/airports/top?n=50
func GetTopAirports(holder *worker.Holder, cacheMgr *cache.Manager, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		n := intQuery(c, "n", defaultTopN, maxTopN)

		var ranked []network.RankedAirport
		err := cachedJSON(c.Request.Context(), cacheMgr, cache.TopAirportsKey(n), ttl, &ranked, func() (interface{}, error) {
			return network.TopByDegree(g, n), nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"n": n, "airports": ranked})
	}
}

// GetRoutes lists routes with their geodesic lengths, capped by ?limit=.
// GET /api/v1/routes?limit=1000
func GetRoutes(holder *worker.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		limit := intQuery(c, "limit", defaultRouteCap, maxRouteCap)

		routes := g.Routes()
		total := len(routes)
		if limit < total {
			routes = routes[:limit]
		}

		out := make([]RouteResponse, 0, len(routes))
		for _, r := range routes {
			src, _ := g.Node(r.SrcID)
			dst, _ := g.Node(r.DstID)
			out = append(out, RouteResponse{
				SrcID:      r.SrcID,
				DstID:      r.DstID,
				Airline:    r.Airline,
				DistanceKm: geo.Haversine(src.Lat, src.Lon, dst.Lat, dst.Lon),
			})
		}

		c.JSON(http.StatusOK, gin.H{"count": len(out), "total": total, "routes": out})
	}
}

// GetStats returns the network statistics. The expensive diameter pass is
// opt-in via ?diameter=true and only attempted on connected graphs.
// GET /api/v1/stats?diameter=true
func GetStats(holder *worker.Holder, cacheMgr *cache.Manager, cfg config.StatsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		withDiameter := c.Query("diameter") == "true"

		key := cache.StatsKey()
		if withDiameter {
			key = cache.FullStatsKey()
		}

		var stats network.Statistics
		err := cachedJSON(c.Request.Context(), cacheMgr, key, cfg.CacheTTL, &stats, func() (interface{}, error) {
			if withDiameter {
				s, err := network.ComputeFullStatistics(c.Request.Context(), g, cfg.DiameterConcurrency)
				return s, err
			}
			s, err := network.ComputeStatistics(g)
			return s, err
		})
		if err != nil {
			if errors.Is(err, network.ErrEmptyGraph) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		body := gin.H{"stats": stats}
		if stats.Diameter == nil {
			body["diameter"] = diameterNotAppl
		} else {
			body["diameter"] = *stats.Diameter
		}
		c.JSON(http.StatusOK, body)
	}
}

// GetPath returns a great-circle polyline between two airports, plus the
// haversine distance.
// GET /api/v1/path?src=3797&dst=507&points=100
func GetPath(holder *worker.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := currentGraph(c, holder)
		if !ok {
			return
		}

		srcID := c.Query("src")
		dstID := c.Query("dst")
		if srcID == "" || dstID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "src and dst query parameters are required"})
			return
		}

		src, found := g.Node(srcID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "source airport not found"})
			return
		}
		dst, found := g.Node(dstID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "destination airport not found"})
			return
		}

		points := intQuery(c, "points", defaultPathPts, maxPathPts)

		c.JSON(http.StatusOK, gin.H{
			"src":         src,
			"dst":         dst,
			"distance_km": geo.Haversine(src.Lat, src.Lon, dst.Lat, dst.Lon),
			"points":      geo.GreatCirclePath(src.Lat, src.Lon, dst.Lat, dst.Lon, points),
		})
	}
}

// GetGeoPath returns a great-circle polyline between two raw coordinate
// pairs, for callers that are not working from graph nodes.
// GET /api/v1/geo/path?lat1=51.5&lon1=-0.1&lat2=40.7&lon2=-74.0&points=100
func GetGeoPath() gin.HandlerFunc {
	return func(c *gin.Context) {
		coords := make([]float64, 4)
		for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
			raw := c.Query(name)
			if raw == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
				return
			}
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
				return
			}
			coords[i] = parsed
		}

		from := geo.Coordinates{Lat: coords[0], Lon: coords[1]}
		to := geo.Coordinates{Lat: coords[2], Lon: coords[3]}
		if !from.IsValid() || !to.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}

		points := intQuery(c, "points", defaultPathPts, maxPathPts)

		c.JSON(http.StatusOK, gin.H{
			"distance_km": from.DistanceTo(to),
			"points":      geo.PathBetween(from, to, points),
		})
	}
}
