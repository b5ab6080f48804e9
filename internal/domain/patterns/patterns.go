// Package patterns detects behavioral and temporal patterns across a
// report snapshot.
package patterns

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	model "github.com/teampulse/pulse/internal/domain/model"
	types "github.com/teampulse/pulse/internal/domain/types"
)

const (
	// Accomplishments shorter than this many runes are considered noise.
	nontrivialRunes = 10

	accomplishmentWeight = 2

	defaultTopKeywords = 5
	defaultTopClusters = 5
)

// keywordPattern pulls words of four or more characters out of blocker
// descriptions.
var keywordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// Detector finds reporting-cadence, blocker-language and collaboration
// patterns. It is stateless and safe for concurrent use.
type Detector struct {
	topKeywords int
	topClusters int
}

// NewDetector creates a detector with default configuration.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		topKeywords: defaultTopKeywords,
		topClusters: defaultTopClusters,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Detect runs every pattern analysis over the snapshot.
func (d *Detector) Detect(reports []model.Report) types.Patterns {
	return types.Patterns{
		WeeklyCycle:       d.WeeklyCycle(reports),
		RecurringBlockers: d.RecurringBlockers(reports),
		Collaboration:     d.Collaboration(reports),
	}
}

// WeeklyCycle averages a simple productivity score per weekday. Reports
// without a usable timestamp are skipped.
func (d *Detector) WeeklyCycle(reports []model.Report) types.WeeklyCycle {
	dayScores := make(map[string][]float64)
	for _, r := range reports {
		if !r.HasTimestamp() {
			continue
		}
		day := r.SubmittedAt.UTC().Weekday().String()
		dayScores[day] = append(dayScores[day], productivity(r))
	}

	cycle := types.WeeklyCycle{
		ProductivityByDay: make(map[string]float64, len(dayScores)),
		ReportsByDay:      make(map[string]int, len(dayScores)),
	}

	for day, scores := range dayScores {
		cycle.ProductivityByDay[day] = round1(mean(scores))
		cycle.ReportsByDay[day] = len(scores)
	}

	// Walk weekdays Monday first so ties resolve to the earlier day.
	var peak, slow float64
	for i := 0; i < 7; i++ {
		day := time.Weekday((i + 1) % 7).String()
		avg, ok := cycle.ProductivityByDay[day]
		if !ok {
			continue
		}
		if cycle.PeakDay == "" || avg > peak {
			cycle.PeakDay, peak = day, avg
		}
		if cycle.SlowDay == "" || avg < slow {
			cycle.SlowDay, slow = day, avg
		}
	}

	return cycle
}

// RecurringBlockers counts keywords across blocked-activity descriptions
// and keeps the most frequent ones.
func (d *Detector) RecurringBlockers(reports []model.Report) types.RecurringBlockers {
	total := 0
	counts := make(map[string]int)
	for _, r := range reports {
		for _, a := range r.Activities {
			if !a.Blocked() {
				continue
			}
			total++
			words := keywordPattern.FindAllString(strings.ToLower(a.Description), -1)
			for _, w := range words {
				counts[w]++
			}
		}
	}

	keywords := make([]types.KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, types.KeywordCount{Keyword: word, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})
	if len(keywords) > d.topKeywords {
		keywords = keywords[:d.topKeywords]
	}

	return types.RecurringBlockers{
		Keywords:     keywords,
		TotalBlocked: total,
	}
}

// Collaboration clusters distinct report authors by the projects they
// touch. Activities without a project name are skipped; solo projects
// list everything exactly one person reported on, regardless of cluster
// truncation.
func (d *Detector) Collaboration(reports []model.Report) types.Collaboration {
	teams := make(map[string]map[string]struct{})
	for _, r := range reports {
		if r.Author == "" {
			continue
		}
		for _, a := range r.Activities {
			project := strings.TrimSpace(a.Project)
			if project == "" {
				continue
			}
			if teams[project] == nil {
				teams[project] = make(map[string]struct{})
			}
			teams[project][r.Author] = struct{}{}
		}
	}

	clusters := make([]types.Cluster, 0, len(teams))
	solo := make([]string, 0)
	for project, team := range teams {
		members := make([]string, 0, len(team))
		for name := range team {
			members = append(members, name)
		}
		sort.Strings(members)
		clusters = append(clusters, types.Cluster{
			Project: project,
			Members: members,
			Size:    len(members),
		})
		if len(members) == 1 {
			solo = append(solo, project)
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Size != clusters[j].Size {
			return clusters[i].Size > clusters[j].Size
		}
		return clusters[i].Project < clusters[j].Project
	})
	if len(clusters) > d.topClusters {
		clusters = clusters[:d.topClusters]
	}
	sort.Strings(solo)

	return types.Collaboration{
		Clusters:     clusters,
		SoloProjects: solo,
	}
}

// productivity scores one report: accomplishments weigh double,
// activities single.
func productivity(r model.Report) float64 {
	nontrivial := 0
	for _, item := range r.Accomplishments {
		if utf8.RuneCountInString(strings.TrimSpace(item.Text)) > nontrivialRunes {
			nontrivial++
		}
	}
	return float64(accomplishmentWeight*nontrivial + len(r.Activities))
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
