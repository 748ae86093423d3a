package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/ccxport/internal/config"
	"github.com/randalmurphal/ccxport/internal/db"
	"github.com/randalmurphal/ccxport/internal/extract"
	"github.com/randalmurphal/ccxport/internal/wxcc"
)

func newExtractCmd() *cobra.Command {
	var (
		baseURL string
		token   string
		dbPath  string
		days    int
		only    string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run an extraction against the Search API",
		Long: `Extract tasks, agent sessions, and task aggregations for the
lookback window and store them locally.

Authentication requires an OAuth2 access token:
  1. Set CCXPORT_ACCESS_TOKEN environment variable (recommended)
  2. Or pass --token flag
  3. Or set access_token in ccxport.yaml

Examples:
  ccxport extract --base-url https://api.wxcc-us1.cisco.com
  ccxport extract --days 1 --db ./data/cc.db
  ccxport extract --only sessions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Resolve auth: flags > env > config
			cfg.BaseURL = resolveString(baseURL, "CCXPORT_BASE_URL", cfg.BaseURL)
			cfg.AccessToken = resolveString(token, "CCXPORT_ACCESS_TOKEN", cfg.AccessToken)
			cfg.DatabasePath = resolveString(dbPath, "CCXPORT_DB", cfg.DatabasePath)
			if days > 0 {
				cfg.DaysBack = days
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.Default()

			client, err := wxcc.NewClient(wxcc.ClientConfig{
				BaseURL:     cfg.BaseURL,
				AccessToken: cfg.AccessToken,
				OrgID:       cfg.OrgID,
			}, logger)
			if err != nil {
				return fmt.Errorf("create client: %w", err)
			}

			store, err := db.OpenWithDialect(cfg.DatabasePath, db.DialectForDSN(cfg.DatabasePath))
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx := context.Background()
			extractor := extract.NewExtractor(client, store, logger)

			switch only {
			case "":
				result, err := extractor.Run(ctx, cfg.DaysBack)
				if err != nil {
					logger.Error("extraction failed", "error", err)
					return err
				}
				fmt.Printf("Extracted %d tasks, %d agent sessions, aggregations for %d tasks\n",
					result.Tasks, result.Sessions, result.Aggregations)
				fmt.Printf("Database saved to: %s\n", cfg.DatabasePath)
				return nil
			case "tasks":
				count, err := extractor.ExtractTasks(ctx, cfg.DaysBack)
				if err != nil {
					return err
				}
				fmt.Printf("Extracted %d tasks\n", count)
				return nil
			case "sessions":
				count, err := extractor.ExtractAgentSessions(ctx, cfg.DaysBack)
				if err != nil {
					return err
				}
				fmt.Printf("Extracted %d agent sessions\n", count)
				return nil
			case "aggregations":
				count, err := extractor.ExtractTaskAggregations(ctx, cfg.DaysBack)
				if err != nil {
					return err
				}
				fmt.Printf("Extracted aggregations for %d tasks\n", count)
				return nil
			default:
				return fmt.Errorf("unknown extraction family %q (want tasks, sessions, or aggregations)", only)
			}
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "data-center API URL")
	cmd.Flags().StringVar(&token, "token", "", "OAuth2 access token")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path or postgres:// DSN")
	cmd.Flags().IntVar(&days, "days", 0, "lookback window in days (default 7)")
	cmd.Flags().StringVar(&only, "only", "", "run a single family: tasks, sessions, or aggregations")

	return cmd
}

// loadConfig loads the config file resolved by --config or viper's search
// paths; a missing file yields defaults.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = viper.ConfigFileUsed()
	}
	if path == "" {
		path = config.ConfigFileName
	}
	return config.Load(path)
}
