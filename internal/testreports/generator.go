// Package testreports generates a deterministic synthetic report corpus
// for seeding stores, demos, and end-to-end exercising of the analysis.
// The roster mixes healthy, blocked, and overloaded reporters so every
// analysis stage has something to find.
package testreports

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Progress jitter keeps weekly numbers from looking machine-generated.
const (
	progressJitter = 3.0
	minuteJitter   = 50

	maxProgress = 100

	// unparsableTimestamp is what an interrupted client left behind.
	unparsableTimestamp = "pending final review"
)

// Generator produces the corpus. The same configuration always yields
// byte-identical documents.
type Generator struct {
	seed     int64
	weeks    int
	anchor   time.Time
	teamSize int

	rng *rand.Rand
}

// New creates a generator with default configuration.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:     defaultSeed,
		weeks:    defaultWeeks,
		anchor:   defaultAnchor,
		teamSize: len(team),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.teamSize > len(team) {
		g.teamSize = len(team)
	}

	return g
}

// Documents builds the corpus as raw report documents in the reporting
// tool's wire shape, oldest week first. Each call regenerates from the
// configured seed, so successive calls return identical output.
func (g *Generator) Documents() [][]byte {
	g.rng = rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic fixture data, not cryptography

	newestMonday := mondayOf(g.anchor)
	roster := team[:g.teamSize]

	// Per-member report ordinals, for cadence and the undated quirk.
	filed := make([]int, len(roster))

	docs := make([][]byte, 0, g.weeks*len(roster))
	for week := 0; week < g.weeks; week++ {
		monday := newestMonday.AddDate(0, 0, -7*(g.weeks-1-week))
		for i := range roster {
			m := &roster[i]
			// Members report on a fixed cadence aligned so everyone
			// files in the newest week.
			if (g.weeks-1-week)%m.cadence != 0 {
				continue
			}
			docs = append(docs, g.buildDocument(m, week, filed[i], monday, newestMonday))
			filed[i]++
		}
	}
	return docs
}

// reportDoc mirrors the reporting tool's persisted document shape.
type reportDoc struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Timestamp       string        `json:"timestamp"`
	Week            string        `json:"week"`
	Status          string        `json:"status"`
	Activities      []activityDoc `json:"current_activities"`
	Accomplishments []string      `json:"accomplishments"`
	Challenges      string        `json:"challenges,omitempty"`
	Concerns        string        `json:"concerns,omitempty"`
}

type activityDoc struct {
	Description string `json:"description"`
	Project     string `json:"project"`
	Milestone   string `json:"milestone,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Progress    any    `json:"progress"`
	Deadline    string `json:"deadline,omitempty"`
}

func (g *Generator) buildDocument(m *member, week, ordinal int, monday, newestMonday time.Time) []byte {
	submitted := monday.AddDate(0, 0, m.dayOffset).
		Add(time.Duration(m.hour)*time.Hour + time.Duration(g.rng.Intn(minuteJitter))*time.Minute)

	timestamp := submitted.Format(time.RFC3339)
	if ordinal == m.undatedReport {
		timestamp = unparsableTimestamp
	}

	year, isoWeek := submitted.ISOWeek()

	doc := reportDoc{
		ID:              g.reportID(),
		Name:            m.name,
		Timestamp:       timestamp,
		Week:            fmt.Sprintf("%d-W%02d", year, isoWeek),
		Status:          "submitted",
		Activities:      g.buildActivities(m, week, newestMonday),
		Accomplishments: g.buildAccomplishments(m, week),
		Challenges:      pick(m.challenges, m, week, g.weeks),
		Concerns:        pick(m.concerns, m, week, g.weeks),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		// The document is built from plain strings and numbers; this
		// cannot fail at runtime.
		panic(fmt.Sprintf("marshaling synthetic report: %v", err))
	}
	return data
}

func (g *Generator) buildActivities(m *member, week int, newestMonday time.Time) []activityDoc {
	activities := make([]activityDoc, 0, len(m.assignments))
	for _, a := range m.assignments {
		p := a.startProgress + a.weeklyDelta*float64(week) + (g.rng.Float64()*2*progressJitter - progressJitter)
		progress := clampRound(p)

		var value any = progress
		if m.stringProgress {
			value = strconv.FormatFloat(progress, 'f', -1, 64)
		}

		deadline := ""
		if a.deadlineWeeksOut > 0 {
			deadline = newestMonday.AddDate(0, 0, 7*a.deadlineWeeksOut).Format("2006-01-02")
		}

		activities = append(activities, activityDoc{
			Description: a.descriptions[week%len(a.descriptions)],
			Project:     a.project,
			Milestone:   a.milestone,
			Priority:    a.priority,
			Status:      a.status,
			Progress:    value,
			Deadline:    deadline,
		})
	}
	return activities
}

func (g *Generator) buildAccomplishments(m *member, week int) []string {
	count := 1 + g.rng.Intn(2)
	if count > len(m.accomplishments) {
		count = len(m.accomplishments)
	}

	items := make([]string, 0, count)
	for j := 0; j < count; j++ {
		text := m.accomplishments[(week+j)%len(m.accomplishments)]
		if m.structuredEvery > 0 && j == 0 && week%m.structuredEvery == 0 {
			items = append(items, structuredNote(text, m.assignments[0]))
			continue
		}
		items = append(items, text)
	}
	return items
}

// structuredNote renders an accomplishment the way newer clients store
// it: a JSON payload carrying project and milestone context.
func structuredNote(text string, a assignment) string {
	payload, _ := json.Marshal(struct {
		Text      string `json:"text"`
		Project   string `json:"project"`
		Milestone string `json:"milestone"`
	}{Text: text, Project: a.project, Milestone: a.milestone})
	return string(payload)
}

// pick selects from a free-text pool: escalating members walk the pool
// front to back across the corpus, everyone else rotates weekly.
func pick(pool []string, m *member, week, totalWeeks int) string {
	if len(pool) == 0 {
		return ""
	}
	if m.escalating {
		idx := week * len(pool) / totalWeeks
		if idx >= len(pool) {
			idx = len(pool) - 1
		}
		return pool[idx]
	}
	return pool[week%len(pool)]
}

func (g *Generator) reportID() string {
	// Drawing UUIDs from the seeded source keeps IDs stable across
	// runs; math/rand's Read never errors.
	id, _ := uuid.NewRandomFromReader(g.rng)
	return id.String()
}

// mondayOf returns midnight UTC of the Monday in t's week.
func mondayOf(t time.Time) time.Time {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func clampRound(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > maxProgress {
		v = maxProgress
	}
	return float64(int(v + 0.5))
}
