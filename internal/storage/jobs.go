package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/model"
)

// CreateJob inserts a new job record.
func (s *Store) CreateJob(ctx context.Context, job *model.Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job must have an ID")
	}

	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	resultJSON, err := marshalResult(job.Result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, status, progress, message, result, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID, string(job.Status), job.Progress, job.Message, resultJSON, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJob fetches one job by ID. Returns common.ErrJobNotFound when the
// ID is unknown.
func (s *Store) GetJob(ctx context.Context, id string) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, progress, message, result, created_at, updated_at
		 FROM jobs WHERE id = ?`, id)

	var job model.Job
	var status string
	var message, resultJSON sql.NullString

	err := row.Scan(&job.ID, &status, &job.Progress, &message, &resultJSON, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job.Status = model.JobStatus(status)
	job.Message = message.String
	if resultJSON.Valid && resultJSON.String != "" {
		var result model.JobResult
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return nil, fmt.Errorf("failed to decode job result: %w", err)
		}
		job.Result = &result
	}

	return &job, nil
}

// UpdateJob persists the job's status, progress, message, and result.
func (s *Store) UpdateJob(ctx context.Context, job *model.Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job must have an ID")
	}

	job.UpdatedAt = time.Now().UTC()

	resultJSON, err := marshalResult(job.Result)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, progress = ?, message = ?, result = ?, updated_at = ?
		 WHERE id = ?`,
		string(job.Status), job.Progress, job.Message, resultJSON, job.UpdatedAt, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrJobNotFound
	}
	return nil
}

func marshalResult(result *model.JobResult) (sql.NullString, error) {
	if result == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode job result: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
