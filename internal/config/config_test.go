package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/teampulse/pulse/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.StorePath, convey.ShouldEqual, "data/reports.db")
			convey.So(cfg.LookbackWeeks, convey.ShouldEqual, 12)
			convey.So(cfg.ConfidenceThreshold, convey.ShouldAlmostEqual, 0.7)
			convey.So(cfg.MaxReportsPerPerson, convey.ShouldEqual, 8)
			convey.So(cfg.StaleAfterDays, convey.ShouldEqual, 14)
			convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MaxRecommendations, convey.ShouldEqual, 8)
		})

		convey.Convey("Then the narrative service should be off by default", func() {
			convey.So(cfg.NarrativeEnabled, convey.ShouldBeFalse)
			convey.So(cfg.NarrativeEndpoint, convey.ShouldBeEmpty)
			convey.So(cfg.NarrativeTimeoutMS, convey.ShouldEqual, 10_000)
			convey.So(cfg.NarrativeMaxRetries, convey.ShouldEqual, 1)
		})

		convey.Convey("Then all analysis stages should be enabled", func() {
			convey.So(cfg.EnableBurnout, convey.ShouldBeTrue)
			convey.So(cfg.EnableProjects, convey.ShouldBeTrue)
			convey.So(cfg.EnablePatterns, convey.ShouldBeTrue)
		})
	})
}
