package db

import (
	"context"
	"testing"
)

func TestCountRows_UnknownTable(t *testing.T) {
	d := NewTestDB(t)

	if _, err := d.CountRows(context.Background(), "sqlite_master"); err == nil {
		t.Error("expected error for table outside the allowlist")
	}
}

func TestAgentSessionCounts(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	sessions := decodeSessions(t, `[
		{"agentSessionId": "sess-1", "agentName": "Alice"},
		{"agentSessionId": "sess-2", "agentName": "Alice"},
		{"agentSessionId": "sess-3", "agentName": "Bob"}
	]`)
	if err := d.UpsertAgentSessions(ctx, sessions); err != nil {
		t.Fatalf("UpsertAgentSessions failed: %v", err)
	}

	counts, order, err := d.AgentSessionCounts(ctx, 10)
	if err != nil {
		t.Fatalf("AgentSessionCounts failed: %v", err)
	}
	if counts["Alice"] != 2 || counts["Bob"] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if len(order) != 2 || order[0] != "Alice" {
		t.Errorf("order = %v, want Alice first", order)
	}
}

func TestRawPayloads(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	tasks := decodeTasks(t, `[{"id": "task-1"}, {"id": "task-2"}]`)
	if err := d.UpsertTasks(ctx, tasks); err != nil {
		t.Fatalf("UpsertTasks failed: %v", err)
	}

	payloads, err := d.RawPayloads(ctx, "tasks", 10)
	if err != nil {
		t.Fatalf("RawPayloads failed: %v", err)
	}
	if len(payloads) != 2 {
		t.Errorf("payloads = %d, want 2", len(payloads))
	}

	if _, err := d.RawPayloads(ctx, "task_aggregations", 10); err == nil {
		t.Error("expected error for table without raw_data")
	}
}
