package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/pkg/cache"
	"github.com/skymesh/routegraph/pkg/health"
	"github.com/skymesh/routegraph/worker"
)

// RegisterRoutes registers all API routes. cacheMgr may be nil when Redis
// is disabled; handlers then compute every request.
func RegisterRoutes(router *gin.Engine, holder *worker.Holder, cacheMgr *cache.Manager, cfg *config.Config, checkers ...health.Checker) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		report := health.Run(c.Request.Context(), checkers...)
		status := http.StatusOK
		if report.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/airports", GetAirports(holder))
		v1.GET("/airports/top", GetTopAirports(holder, cacheMgr, cfg.StatsConfig.CacheTTL))
		v1.GET("/airports/:id", GetAirport(holder))

		v1.GET("/routes", GetRoutes(holder))

		v1.GET("/stats", GetStats(holder, cacheMgr, cfg.StatsConfig))

		v1.GET("/path", GetPath(holder))
		v1.GET("/geo/path", GetGeoPath())
	}
}
