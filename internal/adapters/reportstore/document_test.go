package reportstore

import (
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func doc(t *testing.T, fields map[string]any) []byte {
	t.Helper()
	b, err := json.Marshal(fields)
	require.NoError(t, err)
	return b
}

func TestDecodeDocument_Full(t *testing.T) {
	raw := doc(t, map[string]any{
		"id":        "rep-1",
		"name":      " casey ",
		"timestamp": "2026-03-09T12:00:00Z",
		"week":      "2026-W11",
		"status":    "Submitted",
		"current_activities": []map[string]any{
			{
				"description": "Wire the ingest path",
				"project":     "Atlas",
				"milestone":   "M1",
				"priority":    "high",
				"status":      "blocked",
				"progress":    45,
				"deadline":    "2026-03-20",
			},
			{
				"description": "Cleanup",
				"priority":    "urgent-ish",
				"status":      "on fire",
				"progress":    "150",
			},
		},
		"accomplishments": []any{
			"Shipped the importer",
			`{"text": "Closed M0", "project": "Atlas", "milestone": "M0"}`,
		},
		"challenges": "Too many reviews in flight",
		"concerns":   "Vendor access keeps lapsing",
	})

	r, err := DecodeDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, "rep-1", r.ID)
	assert.Equal(t, "casey", r.Author)
	assert.Equal(t, "2026-W11", r.Period)
	assert.Equal(t, model.ReportSubmitted, r.Status)
	assert.True(t, r.SubmittedAt.Equal(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)))

	require.Len(t, r.Activities, 2)
	first := r.Activities[0]
	assert.Equal(t, model.PriorityHigh, first.Priority)
	assert.Equal(t, model.StatusBlocked, first.Status)
	assert.Equal(t, 45.0, first.Progress)
	assert.Equal(t, "Atlas", first.Project)
	assert.False(t, first.Deadline.IsZero())

	second := r.Activities[1]
	assert.Equal(t, model.PriorityMedium, second.Priority, "unknown priority defaults")
	assert.Equal(t, model.StatusInProgress, second.Status, "unknown status defaults")
	assert.Equal(t, 100.0, second.Progress, "numeric strings parse and clamp")

	require.Len(t, r.Accomplishments, 2)
	assert.False(t, r.Accomplishments[0].Structured)
	assert.True(t, r.Accomplishments[1].Structured)
	assert.Equal(t, "Closed M0", r.Accomplishments[1].Text)
	assert.Equal(t, "Atlas", r.Accomplishments[1].Project)

	assert.Equal(t, "Too many reviews in flight", r.Challenges)
	assert.Equal(t, "Vendor access keeps lapsing", r.Concerns)
}

func TestDecodeDocument_MalformedTimestamp(t *testing.T) {
	raw := doc(t, map[string]any{
		"id":        "rep-2",
		"name":      "dana",
		"timestamp": "last tuesday",
	})

	r, err := DecodeDocument(raw)
	require.NoError(t, err)
	assert.False(t, r.HasTimestamp())
}

func TestDecodeDocument_MissingID(t *testing.T) {
	raw := doc(t, map[string]any{"name": "dana", "timestamp": "2026-03-09"})

	_, err := DecodeDocument(raw)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDecodeDocument_BadJSON(t *testing.T) {
	_, err := DecodeDocument([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDecodeDocument_MixedAccomplishments(t *testing.T) {
	raw := doc(t, map[string]any{
		"id": "rep-3",
		"accomplishments": []any{
			"plain text entry",
			42,
			map[string]any{"unexpected": "object"},
			"   ",
		},
	})

	r, err := DecodeDocument(raw)
	require.NoError(t, err)
	require.Len(t, r.Accomplishments, 1, "non-strings and blanks are dropped")
	assert.Equal(t, "plain text entry", r.Accomplishments[0].Text)
}

func TestDecodeDocument_ProgressShapes(t *testing.T) {
	raw := doc(t, map[string]any{
		"id": "rep-4",
		"current_activities": []map[string]any{
			{"progress": -20},
			{"progress": "n/a"},
			{"progress": 62.5},
			{},
		},
	})

	r, err := DecodeDocument(raw)
	require.NoError(t, err)
	require.Len(t, r.Activities, 4)
	assert.Equal(t, 0.0, r.Activities[0].Progress, "negative clamps to zero")
	assert.Equal(t, 0.0, r.Activities[1].Progress, "unparsable counts as zero")
	assert.Equal(t, 62.5, r.Activities[2].Progress)
	assert.Equal(t, 0.0, r.Activities[3].Progress, "absent counts as zero")
}
