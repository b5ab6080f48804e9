// Package recommend synthesizes team-level recommendations from risk
// assessments and detected patterns.
package recommend

import (
	"context"
	"fmt"
	"strings"

	types "github.com/teampulse/pulse/internal/domain/types"
)

const (
	defaultMaxRecommendations = 8

	// Digest lists are bounded so the narrative request stays small.
	defaultDigestItems = 3

	// The narrative contract is five priority-tagged lines.
	narrativeLines = 5

	fallbackRecommendation = "Continue monitoring team metrics and project progress"
)

// priorityTags mark a narrative line as an actionable recommendation.
var priorityTags = []string{"high:", "medium:", "low:"}

// Generator phrases recommendations from a textual digest. Implemented
// by the narrative client; any error means the caller falls back to the
// local rule list.
type Generator interface {
	Generate(ctx context.Context, digest string) (string, error)
}

// Synthesizer derives recommendations. It is stateless and safe for
// concurrent use.
type Synthesizer struct {
	maxRecommendations int
	digestItems        int
}

// NewSynthesizer creates a synthesizer with default configuration.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		maxRecommendations: defaultMaxRecommendations,
		digestItems:        defaultDigestItems,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LocalRules derives the rule-based recommendation list. Inputs are
// expected in ranked order; the output is bounded and never empty.
func (s *Synthesizer) LocalRules(persons []types.PersonRisk, projects []types.ProjectRisk, pats types.Patterns) []string {
	recs := make([]string, 0, s.maxRecommendations)

	if names := subjectsAtLevel(persons, types.RiskHigh); len(names) > 0 {
		recs = append(recs, "Redistribute workload for team members at high burnout risk: "+joinTop(names, s.digestItems))
	}
	if names := projectsAtLevel(projects, types.RiskHigh); len(names) > 0 {
		recs = append(recs, "Run blocker-resolution sessions for high-risk projects: "+joinTop(names, s.digestItems))
	}
	if names := subjectsAtLevel(persons, types.RiskMedium); len(names) > 0 {
		recs = append(recs, "Schedule one-on-ones with team members showing early burnout signals: "+joinTop(names, s.digestItems))
	}
	if names := projectsAtLevel(projects, types.RiskMedium); len(names) > 0 {
		recs = append(recs, "Review scope and staffing for at-risk projects: "+joinTop(names, s.digestItems))
	}
	if words := keywordList(pats.RecurringBlockers.Keywords); len(words) > 0 {
		recs = append(recs, "Address recurring blocker themes: "+joinTop(words, s.digestItems))
	}
	if len(pats.Collaboration.SoloProjects) > 0 {
		recs = append(recs, "Arrange cross-training for single-owner projects: "+joinTop(pats.Collaboration.SoloProjects, s.digestItems))
	}

	if len(recs) == 0 {
		return []string{fallbackRecommendation}
	}
	if len(recs) > s.maxRecommendations {
		recs = recs[:s.maxRecommendations]
	}
	return recs
}

// Digest builds the bounded textual digest sent to the narrative
// generator. Inputs are expected in ranked order.
func (s *Synthesizer) Digest(persons []types.PersonRisk, projects []types.ProjectRisk, pats types.Patterns, reportCount int) string {
	var b strings.Builder

	b.WriteString("Team reporting digest\n")
	fmt.Fprintf(&b, "Reports analyzed: %d\n", reportCount)

	highPersons := filterLevel(persons, types.RiskHigh)
	fmt.Fprintf(&b, "High-risk members (%d):", len(highPersons))
	for i, p := range highPersons {
		if i == s.digestItems {
			break
		}
		fmt.Fprintf(&b, " %s: %s;", p.Subject, joinTop(p.Factors, s.digestItems))
	}
	b.WriteString("\n")

	highProjects := filterProjectLevel(projects, types.RiskHigh)
	fmt.Fprintf(&b, "High-risk projects (%d):", len(highProjects))
	for i, p := range highProjects {
		if i == s.digestItems {
			break
		}
		fmt.Fprintf(&b, " %s: %s;", p.Subject, joinTop(p.Factors, s.digestItems))
	}
	b.WriteString("\n")

	if words := keywordList(pats.RecurringBlockers.Keywords); len(words) > 0 {
		fmt.Fprintf(&b, "Recurring blockers: %s\n", joinTop(words, s.digestItems))
	}
	if solo := pats.Collaboration.SoloProjects; len(solo) > 0 {
		fmt.Fprintf(&b, "Single-owner projects: %s\n", joinTop(solo, s.digestItems))
	}

	b.WriteString("\nProvide exactly 5 recommendations, each with a priority level (High/Medium/Low), a specific action, an expected timeline, and a success metric.\n")
	b.WriteString("Format each line as: Priority: Action (Timeline) - Success Metric\n")

	return b.String()
}

// ParseNarrative extracts the priority-tagged lines from a narrative
// response, keeping at most five. Responses without a single tagged
// line are rejected.
func ParseNarrative(content string) ([]string, error) {
	lines := make([]string, 0, narrativeLines)
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !tagged(line) {
			continue
		}
		lines = append(lines, line)
		if len(lines) == narrativeLines {
			break
		}
	}

	if len(lines) == 0 {
		return nil, ErrNoPriorityLines
	}
	return lines, nil
}

func tagged(line string) bool {
	lower := strings.ToLower(line)
	for _, tag := range priorityTags {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func subjectsAtLevel(persons []types.PersonRisk, level types.RiskLevel) []string {
	names := make([]string, 0, len(persons))
	for _, p := range persons {
		if p.RiskLevel == level {
			names = append(names, p.Subject)
		}
	}
	return names
}

func projectsAtLevel(projects []types.ProjectRisk, level types.RiskLevel) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.RiskLevel == level {
			names = append(names, p.Subject)
		}
	}
	return names
}

func filterLevel(persons []types.PersonRisk, level types.RiskLevel) []types.PersonRisk {
	out := make([]types.PersonRisk, 0, len(persons))
	for _, p := range persons {
		if p.RiskLevel == level {
			out = append(out, p)
		}
	}
	return out
}

func filterProjectLevel(projects []types.ProjectRisk, level types.RiskLevel) []types.ProjectRisk {
	out := make([]types.ProjectRisk, 0, len(projects))
	for _, p := range projects {
		if p.RiskLevel == level {
			out = append(out, p)
		}
	}
	return out
}

func keywordList(keywords []types.KeywordCount) []string {
	words := make([]string, 0, len(keywords))
	for _, k := range keywords {
		words = append(words, k.Keyword)
	}
	return words
}

// joinTop joins at most n entries with commas.
func joinTop(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
