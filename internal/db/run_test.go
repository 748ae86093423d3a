package db

import (
	"context"
	"errors"
	"testing"
)

func TestRunLifecycle(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	id, err := d.StartRun(ctx)
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if id == "" {
		t.Fatal("StartRun returned empty id")
	}

	run, err := d.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if run == nil || run.ID != id {
		t.Fatalf("LastRun = %+v, want id %s", run, id)
	}
	if run.Status != RunStatusRunning {
		t.Errorf("Status = %s, want running", run.Status)
	}

	if err := d.FinishRun(ctx, id, 10, 5, 3, nil); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, err = d.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun after finish failed: %v", err)
	}
	if run.Status != RunStatusCompleted {
		t.Errorf("Status = %s, want completed", run.Status)
	}
	if run.TaskCount != 10 || run.SessionCount != 5 || run.AggregationCount != 3 {
		t.Errorf("counts = (%d, %d, %d), want (10, 5, 3)", run.TaskCount, run.SessionCount, run.AggregationCount)
	}
	if run.FinishedAt == nil {
		t.Error("FinishedAt should be set")
	}
}

func TestFinishRun_Failed(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	id, err := d.StartRun(ctx)
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if err := d.FinishRun(ctx, id, 10, 0, 0, errors.New("agent session query: boom")); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, err := d.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if run.Status != RunStatusFailed {
		t.Errorf("Status = %s, want failed", run.Status)
	}
	if run.Error != "agent session query: boom" {
		t.Errorf("Error = %q", run.Error)
	}
	if run.TaskCount != 10 {
		t.Errorf("TaskCount = %d, want 10 (completed families keep their counts)", run.TaskCount)
	}
}

func TestLastRun_Empty(t *testing.T) {
	d := NewTestDB(t)

	run, err := d.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if run != nil {
		t.Errorf("LastRun = %+v, want nil for empty table", run)
	}
}
