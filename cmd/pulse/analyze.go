package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/teampulse/pulse/internal/adapters/reportstore"
	service "github.com/teampulse/pulse/internal/app"
	"github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/internal/domain/types"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	dateLayout = "2006-01-02"
)

// newAnalyzeCmd builds the one-shot analysis command. Without filters
// it analyzes the configured lookback window; with filters it analyzes
// exactly the matching reports.
func newAnalyzeCmd(st *rootState) *cobra.Command {
	var (
		authors []string
		since   string
		until   string
		status  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze stored reports and print the insights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatTable)
			}
			filter, filtered, err := buildFilter(authors, since, until, status)
			if err != nil {
				return err
			}

			store, err := openStore(st.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := buildService(st.cfg, store)

			insights, err := runAnalysis(cmd.Context(), svc, store, filter, filtered)
			if err != nil {
				return err
			}

			if format == formatTable {
				renderTables(cmd.OutOrStdout(), insights)
				return nil
			}
			return printJSON(cmd.OutOrStdout(), insights)
		},
	}

	cmd.Flags().StringSliceVar(&authors, "author", nil, "limit to these authors (repeatable)")
	cmd.Flags().StringVar(&since, "since", "", "earliest report date, YYYY-MM-DD")
	cmd.Flags().StringVar(&until, "until", "", "latest report date, YYYY-MM-DD")
	cmd.Flags().StringVar(&status, "status", "", "report status filter: draft or submitted")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json or table")

	return cmd
}

// buildFilter translates the analyze flags into a store filter. The
// second return reports whether any filter was set at all: unfiltered
// runs go through the service's lookback window instead.
func buildFilter(authors []string, since, until, status string) (reportstore.Filter, bool, error) {
	var f reportstore.Filter

	if since != "" {
		t, err := time.Parse(dateLayout, since)
		if err != nil {
			return f, false, fmt.Errorf("parsing --since: %w", err)
		}
		f.From = t
	}
	if until != "" {
		t, err := time.Parse(dateLayout, until)
		if err != nil {
			return f, false, fmt.Errorf("parsing --until: %w", err)
		}
		// A date-only bound means "through the end of that day".
		f.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if status != "" {
		switch s := model.ReportStatus(strings.ToLower(status)); s {
		case model.ReportDraft, model.ReportSubmitted:
			f.Status = s
		default:
			return f, false, fmt.Errorf("unknown status %q (want %s or %s)",
				status, model.ReportDraft, model.ReportSubmitted)
		}
	}
	f.Authors = authors

	filtered := len(authors) > 0 || since != "" || until != "" || status != ""
	return f, filtered, nil
}

func runAnalysis(ctx context.Context, svc *service.Service, store reportstore.Store, filter reportstore.Filter, filtered bool) (types.Insights, error) {
	if !filtered {
		return svc.Run(ctx)
	}
	reports, err := store.Fetch(ctx, filter)
	if err != nil {
		return types.Insights{}, fmt.Errorf("fetching reports: %w", err)
	}
	return svc.Analyze(ctx, reports)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
