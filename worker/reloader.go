package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/skymesh/routegraph/network"
	"github.com/skymesh/routegraph/pkg/logger"
)

// RecordSource supplies validated record sets for a reload. Implemented by
// loader.Fetcher (HTTP) and loader.FileSource (local files).
type RecordSource interface {
	FetchAirports(ctx context.Context) ([]network.AirportRecord, int, error)
	FetchRoutes(ctx context.Context) ([]network.RouteRecord, int, error)
}

// RecordLoader reads back previously persisted record sets. Implemented by
// db.PostgresDB.
type RecordLoader interface {
	LoadAirports(ctx context.Context) ([]network.AirportRecord, error)
	LoadRoutes(ctx context.Context) ([]network.RouteRecord, error)
}

// StoreSource adapts a RecordLoader into a RecordSource, so a reload can run
// from persisted records when no URL or file source is configured. Records
// were validated before persistence, so the skipped counts are always zero.
type StoreSource struct {
	Loader RecordLoader
}

var _ RecordSource = StoreSource{}

// FetchAirports implements RecordSource.
func (s StoreSource) FetchAirports(ctx context.Context) ([]network.AirportRecord, int, error) {
	records, err := s.Loader.LoadAirports(ctx)
	return records, 0, err
}

// FetchRoutes implements RecordSource.
func (s StoreSource) FetchRoutes(ctx context.Context) ([]network.RouteRecord, int, error) {
	records, err := s.Loader.LoadRoutes(ctx)
	return records, 0, err
}

// SnapshotStore persists the validated record sets of a snapshot.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, airports []network.AirportRecord, routes []network.RouteRecord) error
}

// GraphExporter mirrors a built graph into an external store.
type GraphExporter interface {
	ExportGraph(g *network.Graph) error
}

// CacheInvalidator drops cached derived results after a reload.
type CacheInvalidator interface {
	Clear(ctx context.Context) error
}

// Reloader rebuilds the network snapshot from a record source, either on
// demand or on a cron schedule. Persistence, export and cache invalidation
// are optional collaborators; a nil value skips the step.
type Reloader struct {
	source   RecordSource
	holder   *Holder
	store    SnapshotStore
	exporter GraphExporter
	cache    CacheInvalidator
	log      *logger.Logger
	cron     *cron.Cron
}

// NewReloader creates a reloader. source, holder and log are required.
func NewReloader(source RecordSource, holder *Holder, store SnapshotStore, exporter GraphExporter, cache CacheInvalidator, log *logger.Logger) *Reloader {
	return &Reloader{
		source:   source,
		holder:   holder,
		store:    store,
		exporter: exporter,
		cache:    cache,
		log:      log,
		cron:     cron.New(),
	}
}

// Reload fetches both record sets, builds a fresh graph and swaps it in.
// The previous snapshot stays visible until the new one is complete.
func (r *Reloader) Reload(ctx context.Context) (*Snapshot, error) {
	reloadID := uuid.New().String()
	log := r.log.WithField("reload_id", reloadID)
	started := time.Now()

	airports, airportsSkipped, err := r.source.FetchAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	routes, routesSkipped, err := r.source.FetchRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	graph := network.Build(airports, routes)
	snap := &Snapshot{
		Graph:           graph,
		LoadedAt:        time.Now(),
		AirportsSkipped: airportsSkipped,
		RoutesSkipped:   routesSkipped,
	}

	log.Info("graph rebuilt",
		"airports", graph.NodeCount(),
		"edges", graph.EdgeCount(),
		"airports_skipped", airportsSkipped,
		"routes_skipped", routesSkipped,
		"duration", time.Since(started).String(),
	)

	if r.store != nil {
		if err := r.store.SaveSnapshot(ctx, airports, routes); err != nil {
			// Persistence is durability, not correctness; the in-memory
			// snapshot still serves.
			log.Error(err, "failed to persist snapshot")
		}
	}

	if r.exporter != nil {
		if err := r.exporter.ExportGraph(graph); err != nil {
			log.Error(err, "failed to export graph")
		}
	}

	r.holder.Replace(snap)

	if r.cache != nil {
		if err := r.cache.Clear(ctx); err != nil {
			log.Error(err, "failed to invalidate cache")
		}
	}

	return snap, nil
}

// Start schedules periodic reloads with the given cron expression.
func (r *Reloader) Start(cronExpr string) error {
	_, err := r.cron.AddFunc(cronExpr, func() {
		if _, err := r.Reload(context.Background()); err != nil {
			r.log.Error(err, "scheduled reload failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reload: %w", err)
	}

	r.cron.Start()
	r.log.Info("reload scheduler started", "cron", cronExpr)
	return nil
}

// Stop halts the scheduler and waits for a running reload to finish.
func (r *Reloader) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("reload scheduler stopped")
}
