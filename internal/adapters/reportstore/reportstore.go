// Package reportstore provides read access to the team's report
// snapshots. Two adapters implement the same contract: a SQLite store
// for real deployments and an in-memory store for tests and fixtures.
// The analytics pipeline only ever reads; Save and Ingest exist for
// seeding.
package reportstore

import (
	"context"
	"sort"
	"time"

	model "github.com/teampulse/pulse/internal/domain/model"
)

// Store fetches report snapshots, ordered newest first.
type Store interface {
	Fetch(ctx context.Context, filter Filter) ([]model.Report, error)
}

// Filter narrows a fetch. Zero values mean "no constraint". Date bounds
// are inclusive; reports without a usable timestamp never match a
// bounded date range.
type Filter struct {
	From    time.Time
	To      time.Time
	Authors []string
	Status  model.ReportStatus
}

func (f Filter) bounded() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}

func (f Filter) matches(r model.Report) bool {
	if f.bounded() {
		if !r.HasTimestamp() {
			return false
		}
		if !f.From.IsZero() && r.SubmittedAt.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && r.SubmittedAt.After(f.To) {
			return false
		}
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if len(f.Authors) > 0 {
		found := false
		for _, a := range f.Authors {
			if a == r.Author {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortNewestFirst orders reports by submission time descending with
// report ID breaking ties. Undated reports sort last.
func sortNewestFirst(reports []model.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.ID < b.ID
		}
		return a.SubmittedAt.After(b.SubmittedAt)
	})
}
