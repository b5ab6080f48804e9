package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/teampulse/pulse/internal/adapters/reportstore"
	service "github.com/teampulse/pulse/internal/app"
	"github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/internal/domain/types"
)

// stubNarrator scripts the narrative collaborator.
type stubNarrator struct {
	response string
	err      error
	digests  []string
}

func (s *stubNarrator) Generate(_ context.Context, digest string) (string, error) {
	s.digests = append(s.digests, digest)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// corpus builds three weeks of reports: ana making steady progress on
// Atlas, ben blocked and slipping on Zephyr, and cam closing out a
// single Atlas milestone.
func corpus() []model.Report {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	var reports []model.Report
	for i, progress := range []float64{40, 55, 70} {
		reports = append(reports, model.Report{
			ID:          fmt.Sprintf("ana-%d", i+1),
			Author:      "ana",
			SubmittedAt: monday.AddDate(0, 0, 7*i),
			Period:      fmt.Sprintf("2026-W%02d", 10+i),
			Status:      model.ReportSubmitted,
			Activities: []model.Activity{{
				Description: "Ingestion pipeline build-out",
				Project:     "Atlas",
				Priority:    model.PriorityMedium,
				Status:      model.StatusInProgress,
				Progress:    progress,
			}},
			Accomplishments: []model.TextItem{{Text: "Shipped the ingestion retries layer"}},
		})
	}

	blockers := []string{
		"Waiting on vendor API access",
		"Still waiting on vendor credentials",
		"Vendor access request stalled",
		"Vendor integration blocked entirely",
	}
	for i, progress := range []float64{70, 60, 50, 40} {
		reports = append(reports, model.Report{
			ID:          fmt.Sprintf("ben-%d", i+1),
			Author:      "ben",
			SubmittedAt: monday.AddDate(0, 0, 7*i+1),
			Period:      fmt.Sprintf("2026-W%02d", 10+i),
			Status:      model.ReportSubmitted,
			Activities: []model.Activity{{
				Description: blockers[i],
				Project:     "Zephyr",
				Priority:    model.PriorityHigh,
				Status:      model.StatusBlocked,
				Progress:    progress,
			}},
		})
	}

	reports = append(reports, model.Report{
		ID:          "cam-1",
		Author:      "cam",
		SubmittedAt: monday.AddDate(0, 0, 16),
		Period:      "2026-W12",
		Status:      model.ReportSubmitted,
		Activities: []model.Activity{{
			Description: "Close out milestone zero",
			Project:     "Atlas",
			Priority:    model.PriorityLow,
			Status:      model.StatusCompleted,
			Progress:    100,
		}},
	})

	return reports
}

func TestServiceIntegration_Analyze(t *testing.T) {
	Convey("Given a three-person corpus with a troubled project", t, func() {
		svc := service.New(service.WithClock(clock), service.WithWorkers(2))

		out, err := svc.Analyze(context.Background(), corpus())
		So(err, ShouldBeNil)

		Convey("Then persons with history are assessed and cam is excluded", func() {
			So(out.PersonRisks, ShouldHaveLength, 2)
			bysubj := map[string]types.PersonRisk{}
			for _, p := range out.PersonRisks {
				bysubj[p.Subject] = p
			}
			So(bysubj, ShouldContainKey, "ana")
			So(bysubj, ShouldContainKey, "ben")

			// History length drives confidence regardless of signal content.
			So(bysubj["ana"].Confidence, ShouldAlmostEqual, 0.6)
			So(bysubj["ben"].Confidence, ShouldAlmostEqual, 0.67)

			// ana's quiet, steady reports can never accumulate real risk.
			So(bysubj["ana"].RiskLevel, ShouldEqual, types.RiskLow)
			So(bysubj["ben"].RiskLevel, ShouldBeIn, types.RiskLow, types.RiskMedium)
		})

		Convey("Then Zephyr outranks Atlas with the expected factors", func() {
			So(out.ProjectRisks, ShouldHaveLength, 2)

			zephyr := out.ProjectRisks[0]
			So(zephyr.Subject, ShouldEqual, "Zephyr")
			So(zephyr.RiskLevel, ShouldEqual, types.RiskHigh)
			So(zephyr.RiskScore, ShouldEqual, 85)
			So(zephyr.Confidence, ShouldAlmostEqual, 0.7)
			So(zephyr.Factors, ShouldResemble, []string{
				"Progress declining over time",
				"Multiple blockers reported (4)",
				"High blocked activity ratio (100.0%)",
				"Single person dependency",
			})
			So(zephyr.TeamSize, ShouldEqual, 1)
			So(zephyr.ActivityCount, ShouldEqual, 4)
			So(zephyr.AvgProgress, ShouldAlmostEqual, 55.0)
			So(zephyr.RecentBlockers, ShouldResemble, []types.RecentBlocker{
				{Description: "Vendor access request stalled", Date: "2026-03-17", Reporter: "ben"},
				{Description: "Vendor integration blocked entirely", Date: "2026-03-24", Reporter: "ben"},
			})

			atlas := out.ProjectRisks[1]
			So(atlas.Subject, ShouldEqual, "Atlas")
			So(atlas.RiskLevel, ShouldEqual, types.RiskLow)
			So(atlas.RiskScore, ShouldEqual, 0)
			So(atlas.Factors, ShouldBeEmpty)
			So(atlas.TeamSize, ShouldEqual, 2)
			So(atlas.AvgProgress, ShouldAlmostEqual, 66.3)
		})

		Convey("Then the weekly cycle reflects the reporting days", func() {
			cycle := out.Patterns.WeeklyCycle
			So(cycle.ReportsByDay, ShouldResemble, map[string]int{
				"Monday": 3, "Tuesday": 4, "Wednesday": 1,
			})
			So(cycle.ProductivityByDay["Monday"], ShouldAlmostEqual, 3.0)
			So(cycle.ProductivityByDay["Tuesday"], ShouldAlmostEqual, 1.0)
			So(cycle.PeakDay, ShouldEqual, "Monday")
			So(cycle.SlowDay, ShouldEqual, "Tuesday")
		})

		Convey("Then blocker vocabulary and collaboration structure are mined", func() {
			rb := out.Patterns.RecurringBlockers
			So(rb.TotalBlocked, ShouldEqual, 4)
			So(rb.Keywords, ShouldResemble, []types.KeywordCount{
				{Keyword: "vendor", Count: 4},
				{Keyword: "access", Count: 2},
				{Keyword: "waiting", Count: 2},
				{Keyword: "blocked", Count: 1},
				{Keyword: "credentials", Count: 1},
			})

			collab := out.Patterns.Collaboration
			So(collab.Clusters, ShouldHaveLength, 2)
			So(collab.Clusters[0].Project, ShouldEqual, "Atlas")
			So(collab.Clusters[0].Members, ShouldResemble, []string{"ana", "cam"})
			So(collab.SoloProjects, ShouldResemble, []string{"Zephyr"})
		})

		Convey("Then the local rules lead with the high-risk project", func() {
			So(out.Recommendations[0], ShouldEqual,
				"Run blocker-resolution sessions for high-risk projects: Zephyr")
			So(out.Recommendations, ShouldContain,
				"Address recurring blocker themes: vendor, access, waiting")
			So(out.Recommendations, ShouldContain,
				"Arrange cross-training for single-owner projects: Zephyr")
		})
	})
}

func TestServiceIntegration_Determinism(t *testing.T) {
	Convey("Given one snapshot, one configuration, and one clock", t, func() {
		svc := service.New(service.WithClock(clock), service.WithWorkers(4))
		reports := corpus()

		Convey("When analyzing the snapshot twice", func() {
			first, err := svc.Analyze(context.Background(), reports)
			So(err, ShouldBeNil)
			second, err := svc.Analyze(context.Background(), reports)
			So(err, ShouldBeNil)

			Convey("Then the marshaled results are byte-identical", func() {
				a, err := json.Marshal(first)
				So(err, ShouldBeNil)
				b, err := json.Marshal(second)
				So(err, ShouldBeNil)
				So(string(a), ShouldEqual, string(b))
			})
		})
	})
}

func TestServiceIntegration_Narrative(t *testing.T) {
	narrativeLines := []string{
		"High: Unblock vendor access for Zephyr (this week) - vendor dependency cleared",
		"High: Pair cam with ana on Atlas (next sprint) - shared ownership",
		"Medium: Rotate blocker triage duty (biweekly) - faster resolution",
		"Medium: Trim Zephyr scope (this month) - achievable milestones",
		"Low: Celebrate Atlas progress (Friday) - team morale",
	}

	Convey("Given a narrative generator that honors the contract", t, func() {
		narrator := &stubNarrator{response: strings.Join(narrativeLines, "\n")}
		svc := service.New(
			service.WithClock(clock),
			service.WithNarrativeGenerator(narrator),
		)

		out, err := svc.Analyze(context.Background(), corpus())
		So(err, ShouldBeNil)

		Convey("Then its lines replace the local list", func() {
			So(out.Recommendations, ShouldResemble, narrativeLines)
		})

		Convey("Then the digest it received summarizes the snapshot", func() {
			So(narrator.digests, ShouldHaveLength, 1)
			So(narrator.digests[0], ShouldContainSubstring, "Reports analyzed: 8")
			So(narrator.digests[0], ShouldContainSubstring, "Zephyr")
		})
	})

	Convey("Given a narrative generator that fails", t, func() {
		narrator := &stubNarrator{err: errors.New("connection refused")}
		svc := service.New(
			service.WithClock(clock),
			service.WithNarrativeGenerator(narrator),
		)

		out, err := svc.Analyze(context.Background(), corpus())
		So(err, ShouldBeNil)

		Convey("Then the run degrades to the local list", func() {
			So(out.Recommendations[0], ShouldEqual,
				"Run blocker-resolution sessions for high-risk projects: Zephyr")
		})
	})

	Convey("Given a narrative generator that returns prose without priorities", t, func() {
		narrator := &stubNarrator{response: "Everything is going great, keep it up."}
		svc := service.New(
			service.WithClock(clock),
			service.WithNarrativeGenerator(narrator),
		)

		out, err := svc.Analyze(context.Background(), corpus())
		So(err, ShouldBeNil)

		Convey("Then the unusable response falls back to the local list", func() {
			So(out.Recommendations[0], ShouldEqual,
				"Run blocker-resolution sessions for high-risk projects: Zephyr")
		})
	})
}

func TestServiceIntegration_RunWithStore(t *testing.T) {
	Convey("Given a store holding the corpus plus a stale report", t, func() {
		store := reportstore.NewMemory()
		store.Add(corpus()...)
		store.Add(model.Report{
			ID:          "ancient",
			Author:      "dora",
			SubmittedAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
			Status:      model.ReportSubmitted,
			Activities: []model.Activity{{
				Description: "Archived prototype work",
				Project:     "Relic",
				Status:      model.StatusCompleted,
				Progress:    100,
			}},
		})

		svc := service.New(
			service.WithClock(clock),
			service.WithStore(store),
			service.WithLookbackWeeks(12),
		)

		Convey("When running end to end", func() {
			out, err := svc.Run(context.Background())

			Convey("Then the stale report stays outside the analysis", func() {
				So(err, ShouldBeNil)
				So(out.ProjectRisks, ShouldHaveLength, 2)
				So(out.ProjectRisks[0].Subject, ShouldEqual, "Zephyr")
				So(out.ProjectRisks[1].Subject, ShouldEqual, "Atlas")
				for _, p := range out.PersonRisks {
					So(p.Subject, ShouldNotEqual, "dora")
				}
			})
		})
	})
}
