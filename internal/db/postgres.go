package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// Postgres is the pgx-backed run store.
//
// Expected schema:
//
//	CREATE TABLE pipeline_runs (
//	    id              UUID PRIMARY KEY,
//	    sector          TEXT NOT NULL,
//	    sub_sector      TEXT NOT NULL,
//	    facility        TEXT NOT NULL,
//	    equipment_class TEXT NOT NULL,
//	    quantity        INT NOT NULL,
//	    status          TEXT NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL,
//	    completed_at    TIMESTAMPTZ,
//	    stages          JSONB NOT NULL,
//	    results         JSONB NOT NULL,
//	    logs            JSONB NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// SaveRun inserts or replaces a run.
func (p *Postgres) SaveRun(ctx context.Context, run *types.PipelineRun) error {
	stages, err := json.Marshal(run.Stages)
	if err != nil {
		return fmt.Errorf("failed to marshal stages: %w", err)
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	logs, err := json.Marshal(run.Logs)
	if err != nil {
		return fmt.Errorf("failed to marshal logs: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, sector, sub_sector, facility, equipment_class, quantity, status, created_at, completed_at, stages, results, logs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     status = $7, completed_at = $9, stages = $10, results = $11, logs = $12`,
		run.ID, run.Sector, run.SubSector, run.Facility, run.EquipmentClass,
		run.Quantity, run.Status, run.CreatedAt, run.CompletedAt, stages, results, logs,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save run: %v", ErrUnavailable, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (p *Postgres) GetRun(ctx context.Context, id string) (*types.PipelineRun, error) {
	var run types.PipelineRun
	var stages, results, logs []byte

	err := p.pool.QueryRow(ctx,
		`SELECT id, sector, sub_sector, facility, equipment_class, quantity, status, created_at, completed_at, stages, results, logs
		 FROM pipeline_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.Sector, &run.SubSector, &run.Facility, &run.EquipmentClass,
		&run.Quantity, &run.Status, &run.CreatedAt, &run.CompletedAt, &stages, &results, &logs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get run: %v", ErrUnavailable, err)
	}

	if err := unmarshalRunPayloads(&run, stages, results, logs); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first.
func (p *Postgres) ListRuns(ctx context.Context, limit int) ([]types.PipelineRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, sector, sub_sector, facility, equipment_class, quantity, status, created_at, completed_at, stages, results, logs
		 FROM pipeline_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list runs: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var runs []types.PipelineRun
	for rows.Next() {
		var run types.PipelineRun
		var stages, results, logs []byte
		if err := rows.Scan(&run.ID, &run.Sector, &run.SubSector, &run.Facility, &run.EquipmentClass,
			&run.Quantity, &run.Status, &run.CreatedAt, &run.CompletedAt, &stages, &results, &logs); err != nil {
			return nil, fmt.Errorf("%w: failed to scan run: %v", ErrUnavailable, err)
		}
		if err := unmarshalRunPayloads(&run, stages, results, logs); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func unmarshalRunPayloads(run *types.PipelineRun, stages, results, logs []byte) error {
	if err := json.Unmarshal(stages, &run.Stages); err != nil {
		return fmt.Errorf("failed to unmarshal stages: %w", err)
	}
	if err := json.Unmarshal(results, &run.Results); err != nil {
		return fmt.Errorf("failed to unmarshal results: %w", err)
	}
	if err := json.Unmarshal(logs, &run.Logs); err != nil {
		return fmt.Errorf("failed to unmarshal logs: %w", err)
	}
	return nil
}
