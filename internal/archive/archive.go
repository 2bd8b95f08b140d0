// Package archive optionally persists completed optimizer runs to
// Postgres: one row per run (parameters, final cost, timing) and one row
// per per-step CSV record, so many runs against the same timetable can be
// compared later without re-parsing CSV output (SPEC_FULL.md §10.6).
// Grounded directly on the host project's internal/db/connection.go pool
// lifecycle (config-from-env, pgxpool.Config tuning, ping-on-connect,
// explicit Close), scoped down from a singleton to an explicit value
// since archival here is opt-in per invocation rather than mandatory API
// infrastructure.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliaswendt/timetable-optimizer/internal/optimize"
)

// Store wraps a connection pool and the two tables it maintains.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn, pings to verify connectivity, and ensures the
// archive tables exist. Archival is entirely optional: callers with no
// PostgresDSN configured never call Open at all.
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the two archive tables if absent. Minimal and
// idempotent rather than a full migration framework, matching the scale
// of this optional feature.
func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS optimizer_run (
			id          BIGSERIAL PRIMARY KEY,
			optimizer   TEXT NOT NULL,
			seed        BIGINT NOT NULL,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL,
			final_cost       BIGINT NOT NULL,
			final_edge_cost  BIGINT NOT NULL,
			final_travel_cost BIGINT NOT NULL,
			final_delay_cost BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS optimizer_run_step (
			run_id      BIGINT NOT NULL REFERENCES optimizer_run(id),
			step        INT NOT NULL,
			temperature DOUBLE PRECISION,
			cost        BIGINT NOT NULL,
			edge_cost   BIGINT NOT NULL,
			delay_cost  BIGINT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("running archive migration: %w", err)
	}
	return nil
}

// RunRecord summarizes one completed optimizer invocation for archival.
type RunRecord struct {
	Optimizer   string
	Seed        int64
	StartedAt   time.Time
	FinishedAt  time.Time
	FinalCost   optimize.Cost
	Steps       []optimize.StepRow
}

// SaveRun writes one optimizer_run row and its per-step rows in a single
// transaction. Archival failures are logged by the caller and never abort
// a run — the CSV output remains the authoritative record (SPEC_FULL.md
// §10.6).
func (s *Store) SaveRun(ctx context.Context, r RunRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning archive transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO optimizer_run
			(optimizer, seed, started_at, finished_at, final_cost, final_edge_cost, final_travel_cost, final_delay_cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, r.Optimizer, r.Seed, r.StartedAt, r.FinishedAt,
		r.FinalCost.Total(), r.FinalCost.StrainedEdges, r.FinalCost.Travel, r.FinalCost.Delay,
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("inserting optimizer_run: %w", err)
	}

	for _, step := range r.Steps {
		_, err := tx.Exec(ctx, `
			INSERT INTO optimizer_run_step (run_id, step, temperature, cost, edge_cost, delay_cost)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, runID, step.Time, step.Temperature, step.Cost.Total(), step.Cost.StrainedEdges, step.Cost.Delay)
		if err != nil {
			return fmt.Errorf("inserting optimizer_run_step %d: %w", step.Time, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing archive transaction: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() { s.pool.Close() }
