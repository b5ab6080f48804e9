package testreports_test

import (
	"bytes"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/teampulse/pulse/internal/adapters/reportstore"
	"github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/internal/testreports"
)

func decodeAll(docs [][]byte) []model.Report {
	reports := make([]model.Report, 0, len(docs))
	for _, doc := range docs {
		r, err := reportstore.DecodeDocument(doc)
		So(err, ShouldBeNil)
		reports = append(reports, r)
	}
	return reports
}

func TestGenerator_Determinism(t *testing.T) {
	Convey("Given two generators with the same configuration", t, func() {
		a := testreports.New(testreports.WithSeed(7), testreports.WithWeeks(6))
		b := testreports.New(testreports.WithSeed(7), testreports.WithWeeks(6))

		Convey("Then their corpora are byte-identical", func() {
			docsA := a.Documents()
			docsB := b.Documents()

			So(len(docsA), ShouldEqual, len(docsB))
			for i := range docsA {
				So(bytes.Equal(docsA[i], docsB[i]), ShouldBeTrue)
			}
		})

		Convey("Then repeated calls on one generator are byte-identical too", func() {
			first := a.Documents()
			second := a.Documents()

			So(len(first), ShouldEqual, len(second))
			for i := range first {
				So(bytes.Equal(first[i], second[i]), ShouldBeTrue)
			}
		})
	})

	Convey("Given two generators with different seeds", t, func() {
		a := testreports.New(testreports.WithSeed(1))
		b := testreports.New(testreports.WithSeed(2))

		Convey("Then the corpora differ", func() {
			docsA := a.Documents()
			docsB := b.Documents()

			So(len(docsA), ShouldEqual, len(docsB))
			same := true
			for i := range docsA {
				if !bytes.Equal(docsA[i], docsB[i]) {
					same = false
					break
				}
			}
			So(same, ShouldBeFalse)
		})
	})
}

func TestGenerator_CorpusShape(t *testing.T) {
	Convey("Given the default eight-week corpus", t, func() {
		gen := testreports.New()
		reports := decodeAll(gen.Documents())

		Convey("Then four weekly reporters file eight times and the biweekly one four", func() {
			byAuthor := map[string]int{}
			for _, r := range reports {
				byAuthor[r.Author]++
			}
			So(byAuthor, ShouldResemble, map[string]int{
				"Ana Barrett": 8,
				"Ben Okafor":  8,
				"Carol Singh": 8,
				"Dev Patel":   8,
				"Elena Ruiz":  4,
			})
		})

		Convey("Then exactly one report carries an unusable timestamp", func() {
			undated := 0
			for _, r := range reports {
				if !r.HasTimestamp() {
					undated++
					So(r.Author, ShouldEqual, "Elena Ruiz")
				}
			}
			So(undated, ShouldEqual, 1)
		})

		Convey("Then every progress value is already clamped", func() {
			for _, r := range reports {
				for _, a := range r.Activities {
					So(a.Progress, ShouldBeBetweenOrEqual, 0, 100)
				}
			}
		})

		Convey("Then the blocked reporter stays blocked on a high-priority item", func() {
			for _, r := range reports {
				if r.Author != "Ben Okafor" {
					continue
				}
				So(r.Activities, ShouldHaveLength, 1)
				So(r.Activities[0].Project, ShouldEqual, "Zephyr Integration")
				So(r.Activities[0].Status, ShouldEqual, model.StatusBlocked)
				So(r.Activities[0].Priority, ShouldEqual, model.PriorityHigh)
			}
		})

		Convey("Then structured accomplishments decode with project context", func() {
			structured := 0
			for _, r := range reports {
				for _, item := range r.Accomplishments {
					if item.Structured {
						structured++
						So(r.Author, ShouldEqual, "Dev Patel")
						So(item.Project, ShouldEqual, "Orion Migration")
						So(item.Milestone, ShouldEqual, "Cutover")
						So(item.Text, ShouldNotBeEmpty)
					}
				}
			}
			So(structured, ShouldEqual, 4)
		})

		Convey("Then string-encoded progress still yields usable numbers", func() {
			for _, r := range reports {
				if r.Author != "Elena Ruiz" || !r.HasTimestamp() {
					continue
				}
				for _, a := range r.Activities {
					So(a.Progress, ShouldBeGreaterThan, 0)
				}
			}
		})

		Convey("Then report IDs are unique", func() {
			seen := map[string]bool{}
			for _, r := range reports {
				So(seen[r.ID], ShouldBeFalse)
				seen[r.ID] = true
			}
		})
	})
}

func TestGenerator_AnchorAndTeamSize(t *testing.T) {
	Convey("Given an anchor in the middle of a week", t, func() {
		anchor := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC) // a Wednesday
		gen := testreports.New(testreports.WithAnchor(anchor), testreports.WithWeeks(6))
		reports := decodeAll(gen.Documents())

		Convey("Then every dated report lands inside the six aligned weeks", func() {
			weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // that week's Monday
			earliest := weekStart.AddDate(0, 0, -7*5)
			latest := weekStart.AddDate(0, 0, 7)

			dated := 0
			for _, r := range reports {
				if !r.HasTimestamp() {
					continue
				}
				dated++
				So(r.SubmittedAt, ShouldHappenOnOrAfter, earliest)
				So(r.SubmittedAt, ShouldHappenBefore, latest)
			}
			So(dated, ShouldBeGreaterThan, 0)
		})

		Convey("Then the newest week has a report from every member", func() {
			newest := map[string]bool{}
			for _, r := range reports {
				if r.HasTimestamp() && !r.SubmittedAt.Before(weekStartOf(anchor)) {
					newest[r.Author] = true
				}
			}
			So(len(newest), ShouldEqual, 5)
		})
	})

	Convey("Given a bounded team size", t, func() {
		gen := testreports.New(testreports.WithTeamSize(2))
		reports := decodeAll(gen.Documents())

		Convey("Then only the first two members report", func() {
			authors := map[string]bool{}
			for _, r := range reports {
				authors[r.Author] = true
			}
			So(authors, ShouldResemble, map[string]bool{
				"Ana Barrett": true,
				"Ben Okafor":  true,
			})
		})
	})
}

func weekStartOf(t time.Time) time.Time {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
