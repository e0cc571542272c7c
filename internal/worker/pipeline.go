// Package worker runs upload processing jobs: parse the workbook,
// aggregate the rows, write the summary report, and record progress on
// the job as it goes.
package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcwtools/paintsum/internal/aggregate"
	"github.com/rcwtools/paintsum/internal/category"
	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/parser"
	"github.com/rcwtools/paintsum/internal/report"
	"github.com/rcwtools/paintsum/internal/signal"
	"github.com/rcwtools/paintsum/internal/storage"
)

// Progress checkpoints reported while a job runs.
const (
	progressParsing    = 0.1
	progressProcessing = 0.5
	progressWriting    = 0.8
	progressDone       = 1.0
)

// Pipeline executes processing jobs against the job store.
type Pipeline struct {
	store     *storage.Store
	cfg       signal.Config
	outputDir string
}

// NewPipeline builds a pipeline writing report files under outputDir.
func NewPipeline(store *storage.Store, cfg signal.Config, outputDir string) *Pipeline {
	return &Pipeline{store: store, cfg: cfg, outputDir: outputDir}
}

// Process runs one job end to end. Failures are recorded on the job
// record rather than returned; the returned error covers only job-store
// failures.
func (p *Pipeline) Process(ctx context.Context, jobID, inputPath string) error {
	job, err := p.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	result, runErr := p.run(ctx, job, inputPath)
	if runErr != nil {
		common.LogError(runErr, "job failed", common.Fields{"job_id": jobID})
		job.Status = model.JobFailed
		job.Message = runErr.Error()
		return p.store.UpdateJob(ctx, job)
	}

	job.Status = model.JobSucceeded
	job.Progress = progressDone
	job.Message = ""
	job.Result = result
	return p.store.UpdateJob(ctx, job)
}

func (p *Pipeline) run(ctx context.Context, job *model.Job, inputPath string) (*model.JobResult, error) {
	if err := p.checkpoint(ctx, job, progressParsing); err != nil {
		return nil, err
	}

	rows, qaMeta, meta, err := parser.ParseWorkbook(inputPath)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	if err := p.checkpoint(ctx, job, progressProcessing); err != nil {
		return nil, err
	}

	result := aggregate.New(category.DefaultCategories, p.cfg).Aggregate(rows, qaMeta)

	if err := p.checkpoint(ctx, job, progressWriting); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(p.outputDir, job.ID+"-summary.xlsx")
	writeErr := report.Write(outputPath, report.Input{
		Meta:    meta,
		Headers: result.Headers,
		Rows:    result.Rows,
		QA:      result.Report,
	})
	if writeErr != nil {
		return nil, fmt.Errorf("report write failed: %w", writeErr)
	}

	return &model.JobResult{
		QAReport:        &result.Report,
		OutputPath:      outputPath,
		CategoryHeaders: result.Headers,
		SummaryRows:     len(result.Rows),
		RowsProcessed:   len(rows),
	}, nil
}

// checkpoint records a progress update on the running job.
func (p *Pipeline) checkpoint(ctx context.Context, job *model.Job, progress float64) error {
	job.Status = model.JobRunning
	job.Progress = progress
	if err := p.store.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}
