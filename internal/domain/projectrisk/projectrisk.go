// Package projectrisk assesses per-project delivery risk from reported
// activity.
package projectrisk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	model "github.com/teampulse/pulse/internal/domain/model"
	types "github.com/teampulse/pulse/internal/domain/types"
)

// Aggregation and scoring constants.
const (
	minActivities        = 2
	progressTrendPoints  = 3
	blockerCountCutoff   = 2
	blockedRatioCutoff   = 0.3
	defaultStaleDays     = 14
	soloTeamSize         = 1
	largeTeamSize        = 5
	recentBlockersKept   = 2
	maxRiskScore         = 100
	defaultConfThreshold = 0.7

	progressDeclinePoints = 25
	blockerCountPoints    = 20
	blockedRatioPoints    = 30
	stalenessPoints       = 15
	soloTeamPoints        = 10
	largeTeamPoints       = 5

	highRiskCutoff   = 60
	mediumRiskCutoff = 30
)

// Confidence grows with activity volume: 0.5 base plus activities/20,
// capped.
const (
	confidenceBase    = 0.5
	confidenceDivisor = 20.0
	confidenceCap     = 0.95
)

// uncategorized is the placeholder bucket excluded from assessment.
const uncategorized = "uncategorized"

// Group is one project's aggregated activity, the unit of assessment.
type Group struct {
	Project string

	// Progress values in chronological report order; activities from
	// undated reports sort before dated ones.
	Progress []float64

	Statuses []model.ActivityStatus

	// Blockers in chronological order. Date is empty for undated reports.
	Blockers []types.RecentBlocker

	// Members are the distinct report authors, sorted.
	Members []string

	// LastActivity is the newest dated report mentioning the project;
	// zero when every mention was undated.
	LastActivity time.Time
}

// Predictor rates project groups. It is stateless and safe for
// concurrent use.
type Predictor struct {
	staleDays     int
	confThreshold float64
}

// NewPredictor creates a predictor with default configuration.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		staleDays:     defaultStaleDays,
		confThreshold: defaultConfThreshold,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// GroupReports buckets a snapshot's activities by project, dropping the
// empty and uncategorized placeholders and any project mentioned by
// fewer than two activities. Groups come back sorted by name.
func GroupReports(reports []model.Report) []Group {
	ordered := chronological(reports)

	byName := make(map[string]*Group)
	for _, r := range ordered {
		for _, a := range r.Activities {
			name := strings.TrimSpace(a.Project)
			if name == "" || strings.EqualFold(name, uncategorized) {
				continue
			}

			g, ok := byName[name]
			if !ok {
				g = &Group{Project: name}
				byName[name] = g
			}

			g.Progress = append(g.Progress, a.Progress)
			g.Statuses = append(g.Statuses, a.Status)

			if a.Blocked() {
				blocker := types.RecentBlocker{
					Description: a.Description,
					Reporter:    r.Author,
				}
				if r.HasTimestamp() {
					blocker.Date = r.SubmittedAt.UTC().Format("2006-01-02")
				}
				g.Blockers = append(g.Blockers, blocker)
			}

			if r.Author != "" && !contains(g.Members, r.Author) {
				g.Members = append(g.Members, r.Author)
			}
			if r.HasTimestamp() && r.SubmittedAt.After(g.LastActivity) {
				g.LastActivity = r.SubmittedAt
			}
		}
	}

	groups := make([]Group, 0, len(byName))
	for _, g := range byName {
		if len(g.Statuses) < minActivities {
			continue
		}
		sort.Strings(g.Members)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Project < groups[j].Project })
	return groups
}

// Assess rates one project group as of now. The second return is false
// when the assessment's confidence falls below the emission threshold
// or the group is too small to rate.
func (p *Predictor) Assess(g Group, now time.Time) (types.ProjectRisk, bool) {
	if len(g.Statuses) < minActivities {
		return types.ProjectRisk{}, false
	}

	factors := []string{}
	score := 0

	if len(g.Progress) >= progressTrendPoints {
		recent := g.Progress[len(g.Progress)-progressTrendPoints:]
		if nonIncreasing(recent) {
			factors = append(factors, "Progress declining over time")
			score += progressDeclinePoints
		}
	}

	if n := len(g.Blockers); n > blockerCountCutoff {
		factors = append(factors, fmt.Sprintf("Multiple blockers reported (%d)", n))
		score += blockerCountPoints
	}

	blocked := 0
	for _, s := range g.Statuses {
		if s == model.StatusBlocked {
			blocked++
		}
	}
	ratio := float64(blocked) / float64(len(g.Statuses))
	if ratio > blockedRatioCutoff {
		factors = append(factors, fmt.Sprintf("High blocked activity ratio (%.1f%%)", ratio*100))
		score += blockedRatioPoints
	}

	if !g.LastActivity.IsZero() {
		if days := daysBetween(g.LastActivity, now); days > p.staleDays {
			factors = append(factors, fmt.Sprintf("No activity for %d days", days))
			score += stalenessPoints
		}
	}

	switch teamSize := len(g.Members); {
	case teamSize == soloTeamSize:
		factors = append(factors, "Single person dependency")
		score += soloTeamPoints
	case teamSize > largeTeamSize:
		factors = append(factors, "Large team coordination complexity")
		score += largeTeamPoints
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}

	level := types.RiskLow
	switch {
	case score >= highRiskCutoff:
		level = types.RiskHigh
	case score >= mediumRiskCutoff:
		level = types.RiskMedium
	}

	conf := confidence(len(g.Statuses))
	if conf < p.confThreshold {
		return types.ProjectRisk{}, false
	}

	recent := g.Blockers
	if len(recent) > recentBlockersKept {
		recent = recent[len(recent)-recentBlockersKept:]
	}
	blockersOut := make([]types.RecentBlocker, len(recent))
	copy(blockersOut, recent)

	return types.ProjectRisk{
		Subject:        g.Project,
		RiskLevel:      level,
		RiskScore:      score,
		Confidence:     conf,
		Factors:        factors,
		TeamSize:       len(g.Members),
		ActivityCount:  len(g.Statuses),
		AvgProgress:    round1(mean(g.Progress)),
		RecentBlockers: blockersOut,
	}, true
}

// Rank orders assessments by score descending, name ascending.
func Rank(risks []types.ProjectRisk) {
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Subject < risks[j].Subject
	})
}

// chronological orders reports oldest first; undated reports sort before
// dated ones, and ties break by report ID.
func chronological(reports []model.Report) []model.Report {
	ordered := make([]model.Report, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.ID < b.ID
		}
		return a.SubmittedAt.Before(b.SubmittedAt)
	})
	return ordered
}

// nonIncreasing reports whether every step holds steady or falls.
func nonIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			return false
		}
	}
	return true
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(civilDay(b) - civilDay(a))
}

func civilDay(t time.Time) int64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Unix() / (24 * 60 * 60)
}

func confidence(activityCount int) float64 {
	c := confidenceBase + float64(activityCount)/confidenceDivisor
	if c > confidenceCap {
		c = confidenceCap
	}
	return math.Round(c*100) / 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
