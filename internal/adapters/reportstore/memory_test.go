package reportstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/teampulse/pulse/internal/domain/model"
)

func TestMemory_IngestAndFetch(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	stored := store.Ingest(
		doc(t, map[string]any{"id": "r1", "name": "casey", "timestamp": "2026-03-09T12:00:00Z"}),
		doc(t, map[string]any{"id": "r2", "name": "dana", "timestamp": "2026-03-16T12:00:00Z"}),
		[]byte("{broken"),
	)
	assert.Equal(t, 2, stored, "undecodable documents are skipped")

	reports, err := store.Fetch(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID, "newest first")
	assert.Equal(t, "r1", reports[1].ID)
}

func TestMemory_FetchFilters(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	store.Add(
		model.Report{ID: "a1", Author: "casey", SubmittedAt: base, Status: model.ReportSubmitted},
		model.Report{ID: "a2", Author: "casey", SubmittedAt: base.AddDate(0, 0, 7), Status: model.ReportDraft},
		model.Report{ID: "b1", Author: "dana", SubmittedAt: base.AddDate(0, 0, 14), Status: model.ReportSubmitted},
		model.Report{ID: "u1", Author: "casey", Status: model.ReportSubmitted},
	)

	t.Run("by author", func(t *testing.T) {
		reports, err := store.Fetch(ctx, Filter{Authors: []string{"dana"}})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "b1", reports[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		reports, err := store.Fetch(ctx, Filter{Status: model.ReportDraft})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "a2", reports[0].ID)
	})

	t.Run("by inclusive date range", func(t *testing.T) {
		reports, err := store.Fetch(ctx, Filter{From: base, To: base.AddDate(0, 0, 7)})
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "a2", reports[0].ID)
		assert.Equal(t, "a1", reports[1].ID)
	})

	t.Run("bounded range excludes undated", func(t *testing.T) {
		reports, err := store.Fetch(ctx, Filter{From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
		for _, r := range reports {
			assert.True(t, r.HasTimestamp())
		}
	})

	t.Run("unbounded fetch includes undated last", func(t *testing.T) {
		reports, err := store.Fetch(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, reports, 4)
		assert.Equal(t, "u1", reports[3].ID)
	})
}

func TestMemory_FetchCanceled(t *testing.T) {
	store := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Fetch(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}
