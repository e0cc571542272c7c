package worker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/signal"
	"github.com/rcwtools/paintsum/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func writeTasksWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rows := map[string][]interface{}{
		"A5": {"Lot/Block", "Plan", "Elevation", "Swing", "Task", "Task Start Date", "Total"},
		"A6": {"0044/", "2", "B", "", "Painting - Exterior (EXT)", "2026-03-20", "$1,200.00"},
		"A7": {"0044/", "2", "B", "", "Touch up after carpet", "2026-03-21", "$100.00"},
		"A8": {"0045/", "3", "", "", "Painting - Interior (INT)", "2026-03-22", "$900.00"},
	}
	for start, values := range rows {
		v := values
		require.NoError(t, f.SetSheetRow(sheet, start, &v))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestPipeline_ProcessSucceeds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := &model.Job{ID: "job-1", Status: model.JobQueued}
	require.NoError(t, store.CreateJob(ctx, job))

	pipeline := NewPipeline(store, signal.DefaultConfig(), t.TempDir())
	require.NoError(t, pipeline.Process(ctx, "job-1", writeTasksWorkbook(t)))

	got, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobSucceeded, got.Status)
	assert.InDelta(t, 1.0, got.Progress, 0.001)
	assert.Empty(t, got.Message)

	require.NotNil(t, got.Result)
	assert.Equal(t, 3, got.Result.RowsProcessed)
	assert.Equal(t, 2, got.Result.SummaryRows)
	assert.Contains(t, got.Result.CategoryHeaders, "EXTERIOR")
	assert.Contains(t, got.Result.CategoryHeaders, "TOUCH UP")
	assert.FileExists(t, got.Result.OutputPath)
	require.NotNil(t, got.Result.QAReport)
	assert.Equal(t, 3, got.Result.QAReport.ParseMeta.RowsParsed)
}

func TestPipeline_ProcessRecordsFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := &model.Job{ID: "job-2", Status: model.JobQueued}
	require.NoError(t, store.CreateJob(ctx, job))

	pipeline := NewPipeline(store, signal.DefaultConfig(), t.TempDir())
	require.NoError(t, pipeline.Process(ctx, "job-2", filepath.Join(t.TempDir(), "missing.xlsx")))

	got, err := store.GetJob(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, model.JobFailed, got.Status)
	assert.Contains(t, got.Message, "parse failed")
	assert.Nil(t, got.Result)
}

func TestPipeline_ProcessUnknownJob(t *testing.T) {
	store := newTestStore(t)

	pipeline := NewPipeline(store, signal.DefaultConfig(), t.TempDir())
	err := pipeline.Process(context.Background(), "missing", "whatever.xlsx")
	assert.Error(t, err)
}

func TestPool_ProcessesQueuedJobs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := &model.Job{ID: "job-3", Status: model.JobQueued}
	require.NoError(t, store.CreateJob(ctx, job))

	pipeline := NewPipeline(store, signal.DefaultConfig(), t.TempDir())
	pool := NewPool(pipeline, 2, 4)
	pool.Start(ctx)

	require.NoError(t, pool.Enqueue(Task{JobID: "job-3", InputPath: writeTasksWorkbook(t)}))
	pool.Stop()

	got, err := store.GetJob(ctx, "job-3")
	require.NoError(t, err)
	assert.Equal(t, model.JobSucceeded, got.Status)
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	pipeline := NewPipeline(newTestStore(t), signal.DefaultConfig(), t.TempDir())
	pool := NewPool(pipeline, 1, 1)
	// Workers never started, so the buffered slot is all there is.

	require.NoError(t, pool.Enqueue(Task{JobID: "a"}))
	assert.ErrorIs(t, pool.Enqueue(Task{JobID: "b"}), ErrQueueFull)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pipeline := NewPipeline(newTestStore(t), signal.DefaultConfig(), t.TempDir())
	pool := NewPool(pipeline, 1, 4)
	pool.Start(context.Background())
	pool.Stop()

	assert.ErrorIs(t, pool.Enqueue(Task{JobID: "late"}), ErrQueueFull)
}
