package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one extraction run's bookkeeping row.
type Run struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       *time.Time
	Status           string
	TaskCount        int
	SessionCount     int
	AggregationCount int
	Error            string
}

// StartRun records the beginning of an extraction run and returns its id.
func (d *DB) StartRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := d.driver.Exec(ctx, `
		INSERT INTO extraction_runs (id, started_at, status)
		VALUES (?, ?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339), RunStatusRunning)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// FinishRun finalizes a run row with its counts and outcome. A non-nil
// runErr marks the run failed and stores the error text.
func (d *DB) FinishRun(ctx context.Context, id string, taskCount, sessionCount, aggregationCount int, runErr error) error {
	status := RunStatusCompleted
	var errText *string
	if runErr != nil {
		status = RunStatusFailed
		s := runErr.Error()
		errText = &s
	}

	_, err := d.driver.Exec(ctx, `
		UPDATE extraction_runs
		SET finished_at = ?, status = ?, task_count = ?, session_count = ?, aggregation_count = ?, error = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), status, taskCount, sessionCount, aggregationCount, errText, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// LastRun returns the most recently started run, or nil when none exist.
func (d *DB) LastRun(ctx context.Context) (*Run, error) {
	row := d.driver.QueryRow(ctx, `
		SELECT id, started_at, finished_at, status, task_count, session_count, aggregation_count, error
		FROM extraction_runs
		ORDER BY started_at DESC
		LIMIT 1
	`)

	var r Run
	var startedAt string
	var finishedAt, errText sql.NullString
	err := row.Scan(&r.ID, &startedAt, &finishedAt, &r.Status, &r.TaskCount, &r.SessionCount, &r.AggregationCount, &errText)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}

	if t, perr := time.Parse(time.RFC3339, startedAt); perr == nil {
		r.StartedAt = t
	}
	if finishedAt.Valid {
		if t, perr := time.Parse(time.RFC3339, finishedAt.String); perr == nil {
			r.FinishedAt = &t
		}
	}
	if errText.Valid {
		r.Error = errText.String
	}
	return &r, nil
}
