// Package db persists airport and route record sets and exports the built
// graph to external stores.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/skymesh/routegraph/config"
	"github.com/skymesh/routegraph/network"
)

// PostgresDB stores the validated record sets. It is a load source and a
// durability layer, not a query engine; the graph itself lives in memory.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a PostgreSQL connection and verifies it.
func NewPostgresDB(cfg config.PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return &PostgresDB{db: db}, nil
}

// Close closes the database connection.
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

// Ping verifies the connection is alive.
func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// InitSchema creates the record tables when they do not exist.
func (p *PostgresDB) InitSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS airports (
			id VARCHAR(16) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		);

		CREATE TABLE IF NOT EXISTS routes (
			id SERIAL PRIMARY KEY,
			src_id VARCHAR(16) NOT NULL,
			dst_id VARCHAR(16) NOT NULL,
			airline VARCHAR(8) NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_routes_src ON routes(src_id);
		CREATE INDEX IF NOT EXISTS idx_routes_dst ON routes(dst_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored record sets wholesale inside a single
// transaction, matching the reload-replaces-wholesale lifecycle of the
// in-memory graph.
func (p *PostgresDB) SaveSnapshot(ctx context.Context, airports []network.AirportRecord, routes []network.RouteRecord) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM routes"); err != nil {
		return fmt.Errorf("clear routes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM airports"); err != nil {
		return fmt.Errorf("clear airports: %w", err)
	}

	airportStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO airports (id, name, latitude, longitude) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO UPDATE SET name = $2, latitude = $3, longitude = $4")
	if err != nil {
		return fmt.Errorf("prepare airport insert: %w", err)
	}
	defer airportStmt.Close()

	for _, a := range airports {
		if _, err := airportStmt.ExecContext(ctx, a.ID, a.Name, a.Lat, a.Lon); err != nil {
			return fmt.Errorf("insert airport %s: %w", a.ID, err)
		}
	}

	routeStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO routes (src_id, dst_id, airline) VALUES ($1, $2, $3)")
	if err != nil {
		return fmt.Errorf("prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	for _, r := range routes {
		if _, err := routeStmt.ExecContext(ctx, r.SrcID, r.DstID, r.Airline); err != nil {
			return fmt.Errorf("insert route %s-%s: %w", r.SrcID, r.DstID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// LoadAirports reads the stored airport records. Together with LoadRoutes
// it backs a store-based reload via worker.StoreSource.
func (p *PostgresDB) LoadAirports(ctx context.Context) ([]network.AirportRecord, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT id, name, latitude, longitude FROM airports ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query airports: %w", err)
	}
	defer rows.Close()

	var records []network.AirportRecord
	for rows.Next() {
		var a network.AirportRecord
		if err := rows.Scan(&a.ID, &a.Name, &a.Lat, &a.Lon); err != nil {
			return nil, fmt.Errorf("scan airport row: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// LoadRoutes reads the stored route records.
func (p *PostgresDB) LoadRoutes(ctx context.Context) ([]network.RouteRecord, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT src_id, dst_id, airline FROM routes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var records []network.RouteRecord
	for rows.Next() {
		var r network.RouteRecord
		if err := rows.Scan(&r.SrcID, &r.DstID, &r.Airline); err != nil {
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
