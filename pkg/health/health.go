// Package health aggregates liveness checks for the service's collaborators.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skymesh/routegraph/worker"
)

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check is the outcome of a single component check.
type Check struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Report is the overall health of the service.
type Report struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
}

// Checker is a single component health check.
type Checker interface {
	Check(ctx context.Context) Check
}

// Run executes every checker and reduces to an overall status. The report
// is down when any component is down.
func Run(ctx context.Context, checkers ...Checker) Report {
	report := Report{
		Status:    StatusUp,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(checkers)),
	}

	for _, c := range checkers {
		check := c.Check(ctx)
		report.Checks[check.Name] = check
		if check.Status == StatusDown {
			report.Status = StatusDown
		}
	}

	return report
}

// SnapshotChecker verifies a graph snapshot is loaded and fresh enough.
type SnapshotChecker struct {
	Holder *worker.Holder
	MaxAge time.Duration // zero disables the freshness check
}

// Check implements Checker.
func (c SnapshotChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Name: "snapshot", Status: StatusUp, Timestamp: start}

	snap := c.Holder.Get()
	switch {
	case snap == nil:
		check.Status = StatusDown
		check.Message = "no graph snapshot loaded"
	case c.MaxAge > 0 && time.Since(snap.LoadedAt) > c.MaxAge:
		check.Status = StatusDown
		check.Message = fmt.Sprintf("snapshot is stale: loaded %s ago", time.Since(snap.LoadedAt).Round(time.Second))
	default:
		check.Message = fmt.Sprintf("%d airports, %d routes", snap.Graph.NodeCount(), snap.Graph.EdgeCount())
	}

	check.Duration = time.Since(start)
	return check
}

// Pinger is satisfied by the Postgres and Neo4j stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostgresChecker pings the record store.
type PostgresChecker struct {
	DB Pinger
}

// Check implements Checker.
func (c PostgresChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Name: "postgres", Status: StatusUp, Timestamp: start}

	if err := c.DB.Ping(ctx); err != nil {
		check.Status = StatusDown
		check.Message = err.Error()
	}

	check.Duration = time.Since(start)
	return check
}

// Neo4jChecker pings the graph export store.
type Neo4jChecker struct {
	DB Pinger
}

// Check implements Checker.
func (c Neo4jChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Name: "neo4j", Status: StatusUp, Timestamp: start}

	if err := c.DB.Ping(ctx); err != nil {
		check.Status = StatusDown
		check.Message = err.Error()
	}

	check.Duration = time.Since(start)
	return check
}

// RedisChecker pings the cache backend.
type RedisChecker struct {
	Client *redis.Client
}

// Check implements Checker.
func (c RedisChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Name: "redis", Status: StatusUp, Timestamp: start}

	if err := c.Client.Ping(ctx).Err(); err != nil {
		check.Status = StatusDown
		check.Message = err.Error()
	}

	check.Duration = time.Since(start)
	return check
}
