// Package db provides persistence for pipeline runs.
package db

import (
	"context"
	"errors"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// ErrUnavailable wraps transport-level store failures.
var ErrUnavailable = errors.New("run store unavailable")

// RunStore persists pipeline runs. Runs are saved whole: the orchestrator
// owns the run object and flushes it at stage boundaries, so partial updates
// are never needed.
type RunStore interface {
	// SaveRun inserts or replaces a run by ID.
	SaveRun(ctx context.Context, run *types.PipelineRun) error
	// GetRun returns a run by ID, or (nil, nil) when absent.
	GetRun(ctx context.Context, id string) (*types.PipelineRun, error)
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]types.PipelineRun, error)
}
