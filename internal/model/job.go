package model

import "time"

// JobStatus indicates where a processing job is in its lifecycle.
type JobStatus string

// Job status constants.
const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// JobResult holds the output of a completed processing job.
type JobResult struct {
	QAReport        *QAReport `json:"qa_report,omitempty"`
	OutputPath      string    `json:"output_path"`
	CategoryHeaders []string  `json:"category_headers,omitempty"`
	SummaryRows     int       `json:"summary_rows"`
	RowsProcessed   int       `json:"rows_processed"`
}

// Job represents one upload processing job.
type Job struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Result    *JobResult `json:"result,omitempty"`
	ID        string     `json:"job_id"`
	Status    JobStatus  `json:"status"`
	Message   string     `json:"message,omitempty"`
	Progress  float64    `json:"progress"`
}
