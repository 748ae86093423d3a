package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/randalmurphal/ccxport/internal/db"
)

func newStatsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the extracted data",
		Long: `Report row counts per table, the last extraction run, and
top agents by session count.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.DatabasePath = resolveString(dbPath, "CCXPORT_DB", cfg.DatabasePath)
			cfg.ApplyDefaults()

			store, err := db.OpenWithDialect(cfg.DatabasePath, db.DialectForDSN(cfg.DatabasePath))
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx := context.Background()

			fmt.Println("Tables:")
			for _, table := range db.StatTables() {
				count, err := store.CountRows(ctx, table)
				if err != nil {
					return err
				}
				fmt.Printf("  %-20s %d\n", table, count)
			}

			if run, err := store.LastRun(ctx); err != nil {
				return err
			} else if run != nil {
				fmt.Printf("\nLast run: %s (%s)\n", run.ID, run.Status)
				fmt.Printf("  started:      %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
				fmt.Printf("  tasks:        %d\n", run.TaskCount)
				fmt.Printf("  sessions:     %d\n", run.SessionCount)
				fmt.Printf("  aggregations: %d\n", run.AggregationCount)
				if run.Error != "" {
					fmt.Printf("  error:        %s\n", run.Error)
				}
			}

			counts, order, err := store.AgentSessionCounts(ctx, 10)
			if err != nil {
				return err
			}
			if len(order) > 0 {
				fmt.Println("\nTop agents by session count:")
				for _, name := range order {
					fmt.Printf("  %-30s %d\n", name, counts[name])
				}
			}

			// Activity totals live only in the raw payloads; pull them
			// out with gjson rather than re-decoding full records.
			payloads, err := store.RawPayloads(ctx, "tasks", 1000)
			if err != nil {
				return err
			}
			var activityTotal int64
			for _, raw := range payloads {
				activityTotal += gjson.Get(raw, "activities.totalCount").Int()
			}
			if len(payloads) > 0 {
				fmt.Printf("\nActivity events across %d most recent tasks: %d\n", len(payloads), activityTotal)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path or postgres:// DSN")

	return cmd
}
