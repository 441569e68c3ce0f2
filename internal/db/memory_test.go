package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

func sampleRun(createdAt time.Time) *types.PipelineRun {
	return &types.PipelineRun{
		ID:             uuid.NewString(),
		Sector:         "Energy",
		SubSector:      "Natural Gas",
		Facility:       "Gas Processing Plant",
		EquipmentClass: "CentrifugalPump",
		Quantity:       3,
		Status:         types.RunPending,
		Stages:         types.NewStages(),
		CreatedAt:      createdAt,
	}
}

func TestMemory_SaveAndGet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	run := sampleRun(time.Now().UTC())
	run.AddLog("info", "research", "starting research")

	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, types.RunPending, got.Status)
	assert.Len(t, got.Stages, 5)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "starting research", got.Logs[0].Message)
}

func TestMemory_GetMissingReturnsNilNil(t *testing.T) {
	store := NewMemory()

	got, err := store.GetRun(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_SaveReplacesByID(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	run := sampleRun(time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run))

	run.Status = types.RunCompleted
	run.Results.Stored = 2
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RunCompleted, got.Status)
	assert.Equal(t, 2, got.Results.Stored)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	run := sampleRun(time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	got.Status = types.RunFailed
	got.Stages[0].Status = types.RunFailed

	again, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RunPending, again.Status)
	assert.Equal(t, types.RunPending, again.Stages[0].Status)
}

func TestMemory_ListRunsNewestFirst(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	base := time.Now().UTC()

	oldest := sampleRun(base.Add(-2 * time.Hour))
	middle := sampleRun(base.Add(-1 * time.Hour))
	newest := sampleRun(base)
	for _, run := range []*types.PipelineRun{oldest, middle, newest} {
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newest.ID, runs[0].ID)
	assert.Equal(t, middle.ID, runs[1].ID)
}
