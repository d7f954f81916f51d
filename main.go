package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/skymesh/routegraph/api"
	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/db"
	"github.com/skymesh/routegraph/loader"
	"github.com/skymesh/routegraph/pkg/cache"
	"github.com/skymesh/routegraph/pkg/health"
	"github.com/skymesh/routegraph/pkg/logger"
	"github.com/skymesh/routegraph/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal(err, "failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})

	var checkers []health.Checker

	var store worker.SnapshotStore
	var postgresDB *db.PostgresDB
	if cfg.PostgresConfig.Enabled {
		postgresDB, err = db.NewPostgresDB(cfg.PostgresConfig)
		if err != nil {
			log.Fatal(err, "failed to connect to PostgreSQL")
		}
		defer postgresDB.Close()

		if err := postgresDB.InitSchema(); err != nil {
			log.Fatal(err, "failed to initialize PostgreSQL schema")
		}
		store = postgresDB
		checkers = append(checkers, health.PostgresChecker{DB: postgresDB})
	}

	var exporter worker.GraphExporter
	if cfg.Neo4jConfig.Enabled {
		neo4jDB, err := db.NewNeo4jDB(cfg.Neo4jConfig)
		if err != nil {
			log.Fatal(err, "failed to connect to Neo4j")
		}
		defer neo4jDB.Close()

		if err := neo4jDB.InitSchema(); err != nil {
			log.Fatal(err, "failed to initialize Neo4j schema")
		}
		exporter = neo4jDB
		checkers = append(checkers, health.Neo4jChecker{DB: neo4jDB})
	}

	// Dataset source: remote URLs when configured, local files otherwise,
	// previously persisted records as the last resort.
	var source worker.RecordSource
	switch {
	case cfg.LoaderConfig.AirportsURL != "" && cfg.LoaderConfig.RoutesURL != "":
		source = loader.NewFetcher(cfg.LoaderConfig.AirportsURL, cfg.LoaderConfig.RoutesURL)
	case cfg.LoaderConfig.AirportsFile != "" && cfg.LoaderConfig.RoutesFile != "":
		source = loader.FileSource{
			AirportsPath: cfg.LoaderConfig.AirportsFile,
			RoutesPath:   cfg.LoaderConfig.RoutesFile,
		}
	case postgresDB != nil:
		source = worker.StoreSource{Loader: postgresDB}
	default:
		log.Fatal(errors.New("no dataset source configured"),
			"set AIRPORTS_URL/ROUTES_URL or AIRPORTS_FILE/ROUTES_FILE, or enable PostgreSQL")
	}

	var cacheMgr *cache.Manager
	var invalidator worker.CacheInvalidator
	if cfg.RedisConfig.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer client.Close()

		redisCache := cache.NewRedisCache(client, "routegraph")
		cacheMgr = cache.NewManager(redisCache)
		invalidator = cacheMgr
		checkers = append(checkers, health.RedisChecker{Client: client})
	}

	holder := worker.NewHolder(nil)

	// With scheduled reloads on, a snapshot older than two cycles of the
	// default daily cadence means the reloads are failing.
	snapshotMaxAge := cfg.ReloadConfig.SnapshotMaxAge
	if snapshotMaxAge == 0 && cfg.ReloadConfig.Enabled {
		snapshotMaxAge = 48 * time.Hour
	}
	checkers = append(checkers, health.SnapshotChecker{Holder: holder, MaxAge: snapshotMaxAge})

	reloader := worker.NewReloader(source, holder, store, exporter, invalidator, log)

	// Initial load; the service refuses traffic on /api until it succeeds.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	if _, err := reloader.Reload(loadCtx); err != nil {
		cancel()
		log.Fatal(err, "initial dataset load failed")
	}
	cancel()

	if cfg.ReloadConfig.Enabled {
		if err := reloader.Start(cfg.ReloadConfig.CronExpression); err != nil {
			log.Fatal(err, "failed to start reload scheduler")
		}
		defer reloader.Stop()
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.RegisterRoutes(router, holder, cacheMgr, cfg, checkers...)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
}
