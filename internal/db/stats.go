package db

import (
	"context"
	"fmt"
)

// statTables is the allowlist for CountRows; table names are interpolated
// into SQL and must never come from user input unchecked.
var statTables = []string{
	"tasks",
	"task_activities",
	"agent_sessions",
	"agent_activities",
	"task_aggregations",
	"extraction_runs",
}

// StatTables returns the tables reported by the stats command, in
// display order.
func StatTables() []string {
	return append([]string(nil), statTables...)
}

// CountRows returns the row count of one of the extraction tables.
func (d *DB) CountRows(ctx context.Context, table string) (int64, error) {
	ok := false
	for _, t := range statTables {
		if t == table {
			ok = true
			break
		}
	}
	if !ok {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var count int64
	if err := d.driver.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// RawPayloads returns up to limit raw_data payloads from a table, newest
// first. Used by the stats command to report on fields that were never
// mapped into columns.
func (d *DB) RawPayloads(ctx context.Context, table string, limit int) ([]string, error) {
	switch table {
	case "tasks", "task_activities", "agent_sessions", "agent_activities":
	default:
		return nil, fmt.Errorf("table %s has no raw_data column", table)
	}

	rows, err := d.driver.Query(ctx, "SELECT raw_data FROM "+table+" ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query raw payloads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payloads []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan raw payload: %w", err)
		}
		payloads = append(payloads, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate raw payloads: %w", err)
	}
	return payloads, nil
}

// AgentSessionCounts returns session counts grouped by agent name,
// descending, capped at limit.
func (d *DB) AgentSessionCounts(ctx context.Context, limit int) (map[string]int64, []string, error) {
	rows, err := d.driver.Query(ctx, `
		SELECT COALESCE(agent_name, '(unknown)'), COUNT(*)
		FROM agent_sessions
		GROUP BY agent_name
		ORDER BY COUNT(*) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("query session counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	var order []string
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, nil, fmt.Errorf("scan session count: %w", err)
		}
		counts[name] = count
		order = append(order, name)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate session counts: %w", err)
	}
	return counts, order, nil
}
