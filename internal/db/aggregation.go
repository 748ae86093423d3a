package db

import (
	"context"
	"fmt"

	"github.com/randalmurphal/ccxport/internal/db/driver"
	"github.com/randalmurphal/ccxport/internal/wxcc"
)

// GroupBy is the dimension shared by every aggregation entry in a batch,
// e.g. {Field: "owner_id", Value: <agent id>}.
type GroupBy struct {
	Field string
	Value *string
}

// InsertAggregations appends one task_aggregations row per entry, all
// tagged with the query name, the covering time window, and an optional
// group-by pair. No uniqueness constraint exists: reruns accumulate rows.
func (d *DB) InsertAggregations(ctx context.Context, queryName string, aggregations []wxcc.Aggregation, windowStart, windowEnd int64, groupBy *GroupBy) error {
	return d.withTx(ctx, func(tx driver.Tx) error {
		for _, agg := range aggregations {
			var groupByField, groupByValue *string
			if groupBy != nil {
				groupByField = &groupBy.Field
				groupByValue = groupBy.Value
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO task_aggregations (
					query_name, aggregation_name, aggregation_value,
					group_by_field, group_by_value, time_period_start, time_period_end
				) VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				queryName, agg.Name, agg.Value,
				groupByField, groupByValue, windowStart, windowEnd)
			if err != nil {
				return fmt.Errorf("insert aggregation: %w", err)
			}
		}
		return nil
	})
}
