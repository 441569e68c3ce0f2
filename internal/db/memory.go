package db

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// Memory is an in-process run store for tests and database-less runs.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]types.PipelineRun
}

// NewMemory creates an empty in-memory run store.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]types.PipelineRun)}
}

// SaveRun stores a deep copy of the run, so later mutation by the
// orchestrator cannot leak into readers.
func (m *Memory) SaveRun(_ context.Context, run *types.PipelineRun) error {
	copied, err := copyRun(run)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *copied
	return nil
}

// GetRun returns a copy of the run, or (nil, nil) when absent.
func (m *Memory) GetRun(_ context.Context, id string) (*types.PipelineRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return copyRun(&run)
}

// ListRuns returns the most recent runs, newest first.
func (m *Memory) ListRuns(_ context.Context, limit int) ([]types.PipelineRun, error) {
	if limit <= 0 {
		limit = 50
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]types.PipelineRun, 0, len(m.runs))
	for _, run := range m.runs {
		copied, err := copyRun(&run)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *copied)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// copyRun deep-copies a run through JSON. Run payloads are small and already
// round-trip through JSON for persistence.
func copyRun(run *types.PipelineRun) (*types.PipelineRun, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}
	var copied types.PipelineRun
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
