package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	model "github.com/teampulse/pulse/internal/domain/model"
)

func TestParsePriority(t *testing.T) {
	Convey("Given free-form priority input", t, func() {
		Convey("When the value matches a known priority", func() {
			So(model.ParsePriority("High"), ShouldEqual, model.PriorityHigh)
			So(model.ParsePriority("high"), ShouldEqual, model.PriorityHigh)
			So(model.ParsePriority("  LOW  "), ShouldEqual, model.PriorityLow)
			So(model.ParsePriority("Medium"), ShouldEqual, model.PriorityMedium)
		})

		Convey("When the value is unknown or empty", func() {
			Convey("Then it defaults to Medium", func() {
				So(model.ParsePriority("urgent"), ShouldEqual, model.PriorityMedium)
				So(model.ParsePriority(""), ShouldEqual, model.PriorityMedium)
			})
		})
	})
}

func TestParseActivityStatus(t *testing.T) {
	Convey("Given free-form status input", t, func() {
		Convey("When the value matches a known status", func() {
			So(model.ParseActivityStatus("Not Started"), ShouldEqual, model.StatusNotStarted)
			So(model.ParseActivityStatus("blocked"), ShouldEqual, model.StatusBlocked)
			So(model.ParseActivityStatus("COMPLETED"), ShouldEqual, model.StatusCompleted)
			So(model.ParseActivityStatus("In Progress"), ShouldEqual, model.StatusInProgress)
		})

		Convey("When the value is unknown or empty", func() {
			Convey("Then it defaults to In Progress", func() {
				So(model.ParseActivityStatus("paused"), ShouldEqual, model.StatusInProgress)
				So(model.ParseActivityStatus(""), ShouldEqual, model.StatusInProgress)
			})
		})
	})
}

func TestClampProgress(t *testing.T) {
	Convey("Given progress values", t, func() {
		Convey("When the value is inside the range", func() {
			So(model.ClampProgress(42.5), ShouldEqual, 42.5)
			So(model.ClampProgress(0), ShouldEqual, 0.0)
			So(model.ClampProgress(100), ShouldEqual, 100.0)
		})

		Convey("When the value is outside the range", func() {
			Convey("Then it is clamped to the bounds", func() {
				So(model.ClampProgress(-5), ShouldEqual, 0.0)
				So(model.ClampProgress(150), ShouldEqual, 100.0)
			})
		})
	})
}

func TestParseTimestamp(t *testing.T) {
	Convey("Given raw timestamp strings", t, func() {
		Convey("When the value is RFC3339", func() {
			ts := model.ParseTimestamp("2026-03-09T10:30:00Z")
			So(ts.IsZero(), ShouldBeFalse)
			So(ts.Year(), ShouldEqual, 2026)
			So(ts.Month(), ShouldEqual, time.March)
		})

		Convey("When the value is a bare date", func() {
			ts := model.ParseTimestamp("2026-03-09")
			So(ts.IsZero(), ShouldBeFalse)
			So(ts.Day(), ShouldEqual, 9)
		})

		Convey("When the value uses a space separator", func() {
			ts := model.ParseTimestamp("2026-03-09 10:30:00")
			So(ts.IsZero(), ShouldBeFalse)
			So(ts.Hour(), ShouldEqual, 10)
		})

		Convey("When the value is malformed", func() {
			Convey("Then the zero time comes back", func() {
				So(model.ParseTimestamp("next tuesday").IsZero(), ShouldBeTrue)
				So(model.ParseTimestamp("").IsZero(), ShouldBeTrue)
				So(model.ParseTimestamp("2026-13-45").IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestReportHasTimestamp(t *testing.T) {
	Convey("Given reports with and without timestamps", t, func() {
		dated := model.Report{ID: "r1", Author: "dana", SubmittedAt: time.Now()}
		undated := model.Report{ID: "r2", Author: "dana"}

		Convey("Then HasTimestamp distinguishes them", func() {
			So(dated.HasTimestamp(), ShouldBeTrue)
			So(undated.HasTimestamp(), ShouldBeFalse)
		})
	})
}

func TestActivityBlocked(t *testing.T) {
	Convey("Given activities in different states", t, func() {
		blocked := model.Activity{Description: "api keys", Status: model.StatusBlocked}
		active := model.Activity{Description: "dashboard", Status: model.StatusInProgress}

		Convey("Then only the blocked one reports blocked", func() {
			So(blocked.Blocked(), ShouldBeTrue)
			So(active.Blocked(), ShouldBeFalse)
		})
	})
}
