package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ccxport/internal/wxcc"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestInsertAggregations(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	aggs := []wxcc.Aggregation{
		{Name: strPtr("Total Contacts Handled"), Value: floatPtr(42)},
		{Name: strPtr("Average Talk Time"), Value: floatPtr(183.5)},
	}
	groupBy := &GroupBy{Field: "owner_id", Value: strPtr("agent-1")}

	err := d.InsertAggregations(ctx, "task_statistics_by_agent", aggs, 1700000000000, 1700086400000, groupBy)
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, d, "task_aggregations"))

	var queryName, field, value string
	var aggValue float64
	var start, end int64
	err = d.QueryRowContext(ctx, `
		SELECT query_name, group_by_field, group_by_value, aggregation_value, time_period_start, time_period_end
		FROM task_aggregations WHERE aggregation_name = ?`, "Total Contacts Handled").
		Scan(&queryName, &field, &value, &aggValue, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, "task_statistics_by_agent", queryName)
	assert.Equal(t, "owner_id", field)
	assert.Equal(t, "agent-1", value)
	assert.Equal(t, float64(42), aggValue)
	assert.Equal(t, int64(1700000000000), start)
	assert.Equal(t, int64(1700086400000), end)
}

func TestInsertAggregations_NoGroupBy(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	aggs := []wxcc.Aggregation{{Name: strPtr("Total Contacts Handled"), Value: floatPtr(7)}}
	err := d.InsertAggregations(ctx, "totals", aggs, 1, 2, nil)
	require.NoError(t, err)

	var field, value *string
	err = d.QueryRowContext(ctx,
		"SELECT group_by_field, group_by_value FROM task_aggregations").Scan(&field, &value)
	require.NoError(t, err)
	assert.Nil(t, field)
	assert.Nil(t, value)
}

func TestInsertAggregations_AppendOnly(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	aggs := []wxcc.Aggregation{{Name: strPtr("Maximum Hold Time"), Value: floatPtr(600)}}
	groupBy := &GroupBy{Field: "owner_id", Value: strPtr("agent-1")}

	require.NoError(t, d.InsertAggregations(ctx, "task_statistics_by_agent", aggs, 1, 2, groupBy))
	require.NoError(t, d.InsertAggregations(ctx, "task_statistics_by_agent", aggs, 1, 2, groupBy))

	// No uniqueness constraint: an identical rerun doubles the rows
	assert.Equal(t, 2, countRows(t, d, "task_aggregations"))
}
