// Package extract orchestrates the extraction pipeline: build the fixed
// query documents for a lookback window, execute them against the Search
// API, and route the decoded records into the store.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/ccxport/internal/db"
	"github.com/randalmurphal/ccxport/internal/wxcc"
)

// aggregationQueryName labels task_aggregations rows written by
// ExtractTaskAggregations.
const aggregationQueryName = "task_statistics_by_agent"

// queryFunc is the function signature for executing a query document.
// Allows injection of test fakes.
type queryFunc func(ctx context.Context, query string, variables map[string]any) ([]byte, error)

// Extractor runs the three extraction operations. The operations are
// independent and order-insensitive; Run executes them sequentially.
type Extractor struct {
	store     *db.DB
	logger    *slog.Logger
	queryFunc queryFunc
	now       func() time.Time
}

// NewExtractor creates an Extractor over a query client and a store.
func NewExtractor(client *wxcc.Client, store *db.DB, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		store:  store,
		logger: logger,
		queryFunc: func(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
			return client.Execute(ctx, query, variables)
		},
		now: time.Now,
	}
}

// timeRange returns the [now-daysBack, now] window as millisecond epochs.
// Each extraction computes its own window at call time.
func (e *Extractor) timeRange(daysBack int) (int64, int64) {
	end := e.now()
	start := end.Add(-time.Duration(daysBack) * 24 * time.Hour)
	return start.UnixMilli(), end.UnixMilli()
}

// ExtractTasks fetches tasks with their activity sets for the window and
// upserts them. Returns the number of tasks processed; a response without
// the expected shape counts as zero records, not an error.
func (e *Extractor) ExtractTasks(ctx context.Context, daysBack int) (int, error) {
	start, end := e.timeRange(daysBack)
	query := fmt.Sprintf(taskDetailsQuery, start, end)

	data, err := e.queryFunc(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("task details query: %w", err)
	}

	var envelope struct {
		TaskDetails *wxcc.TaskDetails `json:"taskDetails"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("decode task details: %w", err)
	}
	if envelope.TaskDetails == nil {
		e.logger.Warn("response missing taskDetails, treating as empty")
		return 0, nil
	}

	tasks := envelope.TaskDetails.Tasks
	e.logger.Info("retrieved tasks", "count", len(tasks))

	if len(tasks) > 0 {
		if err := e.store.UpsertTasks(ctx, tasks); err != nil {
			return 0, fmt.Errorf("store tasks: %w", err)
		}
	}
	return len(tasks), nil
}

// ExtractAgentSessions fetches agent sessions with nested channel and
// activity info for the window and upserts them. Returns the session count.
func (e *Extractor) ExtractAgentSessions(ctx context.Context, daysBack int) (int, error) {
	start, end := e.timeRange(daysBack)
	query := fmt.Sprintf(agentSessionQuery, start, end)

	data, err := e.queryFunc(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("agent session query: %w", err)
	}

	var envelope struct {
		AgentSession *wxcc.AgentSessionDetails `json:"agentSession"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("decode agent sessions: %w", err)
	}
	if envelope.AgentSession == nil {
		e.logger.Warn("response missing agentSession, treating as empty")
		return 0, nil
	}

	sessions := envelope.AgentSession.AgentSessions
	e.logger.Info("retrieved agent sessions", "count", len(sessions))

	if len(sessions) > 0 {
		if err := e.store.UpsertAgentSessions(ctx, sessions); err != nil {
			return 0, fmt.Errorf("store agent sessions: %w", err)
		}
	}
	return len(sessions), nil
}

// ExtractTaskAggregations fetches per-owner statistics for the window and
// appends them, one batch per task keyed on the owning agent's id.
// Returns the number of tasks processed.
func (e *Extractor) ExtractTaskAggregations(ctx context.Context, daysBack int) (int, error) {
	start, end := e.timeRange(daysBack)
	query := fmt.Sprintf(taskAggregationQuery, start, end)

	data, err := e.queryFunc(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("task aggregation query: %w", err)
	}

	var envelope struct {
		TaskDetails *wxcc.TaskDetails `json:"taskDetails"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("decode task aggregations: %w", err)
	}
	if envelope.TaskDetails == nil {
		e.logger.Warn("response missing taskDetails, treating as empty")
		return 0, nil
	}

	tasks := envelope.TaskDetails.Tasks
	for i := range tasks {
		task := &tasks[i]
		if task.Aggregation == nil {
			continue
		}

		groupBy := &db.GroupBy{Field: "owner_id"}
		if task.Owner != nil {
			groupBy.Value = task.Owner.ID
		}
		if err := e.store.InsertAggregations(ctx, aggregationQueryName, task.Aggregation, start, end, groupBy); err != nil {
			return 0, fmt.Errorf("store aggregations: %w", err)
		}
	}

	e.logger.Info("stored aggregations", "tasks", len(tasks))
	return len(tasks), nil
}

// RunResult summarizes a full extraction run.
type RunResult struct {
	RunID        string
	Tasks        int
	Sessions     int
	Aggregations int
}

// Run executes the three extractions sequentially and records the run in
// extraction_runs. On failure the run row is finalized as failed before
// the error propagates; writes from families that already completed stay
// committed.
func (e *Extractor) Run(ctx context.Context, daysBack int) (*RunResult, error) {
	runID, err := e.store.StartRun(ctx)
	if err != nil {
		return nil, err
	}
	result := &RunResult{RunID: runID}

	runErr := func() error {
		e.logger.Info("extracting tasks", "days_back", daysBack)
		if result.Tasks, err = e.ExtractTasks(ctx, daysBack); err != nil {
			return err
		}

		e.logger.Info("extracting agent sessions", "days_back", daysBack)
		if result.Sessions, err = e.ExtractAgentSessions(ctx, daysBack); err != nil {
			return err
		}

		e.logger.Info("extracting task aggregations", "days_back", daysBack)
		if result.Aggregations, err = e.ExtractTaskAggregations(ctx, daysBack); err != nil {
			return err
		}
		return nil
	}()

	if finishErr := e.store.FinishRun(ctx, runID, result.Tasks, result.Sessions, result.Aggregations, runErr); finishErr != nil {
		e.logger.Error("finalize run record", "error", finishErr)
	}
	if runErr != nil {
		return result, fmt.Errorf("extraction run: %w", runErr)
	}
	return result, nil
}
