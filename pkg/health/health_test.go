package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skymesh/routegraph/network"
	"github.com/skymesh/routegraph/worker"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func TestRun_AllUp(t *testing.T) {
	holder := worker.NewHolder(&worker.Snapshot{
		Graph:    network.Build([]network.AirportRecord{{ID: "1"}}, nil),
		LoadedAt: time.Now(),
	})

	report := Run(context.Background(),
		SnapshotChecker{Holder: holder},
		PostgresChecker{DB: stubPinger{}},
	)

	assert.Equal(t, StatusUp, report.Status)
	assert.Len(t, report.Checks, 2)
	assert.Equal(t, StatusUp, report.Checks["snapshot"].Status)
}

func TestRun_OneDownIsDown(t *testing.T) {
	holder := worker.NewHolder(&worker.Snapshot{
		Graph:    network.Build(nil, nil),
		LoadedAt: time.Now(),
	})

	report := Run(context.Background(),
		SnapshotChecker{Holder: holder},
		PostgresChecker{DB: stubPinger{err: errors.New("connection refused")}},
	)

	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusDown, report.Checks["postgres"].Status)
	assert.Contains(t, report.Checks["postgres"].Message, "connection refused")
}

func TestNeo4jChecker(t *testing.T) {
	check := Neo4jChecker{DB: stubPinger{}}.Check(context.Background())
	assert.Equal(t, StatusUp, check.Status)
	assert.Equal(t, "neo4j", check.Name)

	check = Neo4jChecker{DB: stubPinger{err: errors.New("no route to host")}}.Check(context.Background())
	assert.Equal(t, StatusDown, check.Status)
	assert.Contains(t, check.Message, "no route to host")
}

func TestSnapshotChecker_NoSnapshot(t *testing.T) {
	check := SnapshotChecker{Holder: worker.NewHolder(nil)}.Check(context.Background())

	assert.Equal(t, StatusDown, check.Status)
	assert.Contains(t, check.Message, "no graph snapshot")
}

func TestSnapshotChecker_Stale(t *testing.T) {
	holder := worker.NewHolder(&worker.Snapshot{
		Graph:    network.Build(nil, nil),
		LoadedAt: time.Now().Add(-2 * time.Hour),
	})

	check := SnapshotChecker{Holder: holder, MaxAge: time.Hour}.Check(context.Background())
	require.Equal(t, StatusDown, check.Status)
	assert.Contains(t, check.Message, "stale")
}
