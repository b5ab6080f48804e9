// Command pulse analyzes a team's status reports. It seeds a report
// store with fixture data, runs one-shot analyses from the command
// line, and serves the analytics HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/teampulse/pulse/internal/adapters/narrative"
	"github.com/teampulse/pulse/internal/adapters/reportstore"
	service "github.com/teampulse/pulse/internal/app"
	"github.com/teampulse/pulse/internal/config"
	"github.com/teampulse/pulse/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootState carries what the root command resolves for its subcommands.
type rootState struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	st := &rootState{}
	var (
		storePath string
		logLevel  string
	)

	root := &cobra.Command{
		Use:   "pulse",
		Short: "Team report analytics",
		Long: `Pulse turns a team's weekly status reports into insights: burnout
risk per person, delivery risk per project, behavioral patterns, and
prioritized recommendations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout stays clean for JSON output.
			if err := logger.InitWriter(os.Stderr); err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}

			// Load configuration (defaults -> optional file -> env),
			// then let flags win over everything.
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			// Apply configured log level (fallback to info on invalid input)
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			st.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&storePath, "store", "", "report store path (overrides store_path)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity (overrides log_level)")

	root.AddCommand(newAnalyzeCmd(st))
	root.AddCommand(newServeCmd(st))
	root.AddCommand(newSeedCmd(st))

	return root
}

// openStore opens the configured SQLite report store.
func openStore(cfg *config.Config) (*reportstore.SQLite, error) {
	store, err := reportstore.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening report store %s: %w", cfg.StorePath, err)
	}
	return store, nil
}

// buildService assembles the analysis service from configuration.
func buildService(cfg *config.Config, store reportstore.Store) *service.Service {
	opts := []service.Option{
		service.WithStore(store),
		service.WithLookbackWeeks(cfg.LookbackWeeks),
		service.WithPersonWindow(cfg.MaxReportsPerPerson),
		service.WithStaleAfterDays(cfg.StaleAfterDays),
		service.WithConfidenceThreshold(cfg.ConfidenceThreshold),
		service.WithMaxRecommendations(cfg.MaxRecommendations),
		service.WithWorkers(cfg.Workers),
		service.WithBurnoutEnabled(cfg.EnableBurnout),
		service.WithProjectsEnabled(cfg.EnableProjects),
		service.WithPatternsEnabled(cfg.EnablePatterns),
	}

	if cfg.NarrativeEnabled {
		opts = append(opts, service.WithNarrativeGenerator(narrative.NewClient(
			cfg.NarrativeEndpoint,
			narrative.WithModel(cfg.NarrativeModel),
			narrative.WithAPIKey(cfg.NarrativeAPIKey),
			narrative.WithTimeout(time.Duration(cfg.NarrativeTimeoutMS)*time.Millisecond),
			narrative.WithMaxRetries(cfg.NarrativeMaxRetries),
			narrative.WithObserver(narrative.NewLogObserver()),
		)))
	}

	return service.New(opts...)
}
