// Package service provides the core analysis service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teampulse/pulse/internal/adapters/reportstore"
	"github.com/teampulse/pulse/internal/domain/burnout"
	"github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/internal/domain/patterns"
	"github.com/teampulse/pulse/internal/domain/projectrisk"
	"github.com/teampulse/pulse/internal/domain/recommend"
	"github.com/teampulse/pulse/internal/domain/signal"
	"github.com/teampulse/pulse/internal/domain/types"
	"github.com/teampulse/pulse/internal/domain/workload"
	"github.com/teampulse/pulse/internal/pipeline"
	"github.com/teampulse/pulse/pkg/logger"
	"github.com/teampulse/pulse/pkg/metrics"
)

const (
	defaultLookbackWeeks = 12
	defaultPersonWindow  = 8
	defaultStaleDays     = 14
	defaultConfidence    = 0.7
	defaultMaxRecs       = 8

	daysPerWeek = 7
)

// Service runs the analysis stages over a report snapshot. It holds no
// cross-run state: every call recomputes from its input.
type Service struct {
	// Collaborators
	store    reportstore.Store
	narrator recommend.Generator

	// Stages
	burnout  *burnout.Predictor
	projects *projectrisk.Predictor
	detector *patterns.Detector
	synth    *recommend.Synthesizer
	pool     *pipeline.Pool

	// Configuration
	lookbackWeeks  int
	personWindow   int
	staleDays      int
	confThreshold  float64
	maxRecs        int
	workers        int
	enableBurnout  bool
	enableProjects bool
	enablePatterns bool

	// Clock, replaceable for tests.
	now func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the report store backing Snapshot and Run.
func WithStore(store reportstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNarrativeGenerator sets the optional narrative service. When set,
// its response replaces the local recommendation list; any failure falls
// back to the local list.
func WithNarrativeGenerator(g recommend.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.narrator = g
		}
	}
}

// WithClock replaces the wall clock used for staleness and the lookback
// window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLookbackWeeks bounds how far back Snapshot reaches. Zero disables
// the recency filter.
func WithLookbackWeeks(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.lookbackWeeks = n
		}
	}
}

// WithPersonWindow bounds how many recent reports feed one person's
// trend series.
func WithPersonWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.personWindow = n
		}
	}
}

// WithStaleAfterDays sets the project staleness cutoff.
func WithStaleAfterDays(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.staleDays = n
		}
	}
}

// WithConfidenceThreshold sets the minimum confidence for emitting a
// project assessment.
func WithConfidenceThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.confThreshold = threshold
		}
	}
}

// WithMaxRecommendations caps the recommendation list.
func WithMaxRecommendations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRecs = n
		}
	}
}

// WithWorkers sets the assessment fan-out parallelism.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBurnoutEnabled toggles the per-person assessment stage.
func WithBurnoutEnabled(enabled bool) Option {
	return func(s *Service) {
		s.enableBurnout = enabled
	}
}

// WithProjectsEnabled toggles the per-project assessment stage.
func WithProjectsEnabled(enabled bool) Option {
	return func(s *Service) {
		s.enableProjects = enabled
	}
}

// WithPatternsEnabled toggles the pattern detection stage.
func WithPatternsEnabled(enabled bool) Option {
	return func(s *Service) {
		s.enablePatterns = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lookbackWeeks:  defaultLookbackWeeks,
		personWindow:   defaultPersonWindow,
		staleDays:      defaultStaleDays,
		confThreshold:  defaultConfidence,
		maxRecs:        defaultMaxRecs,
		enableBurnout:  true,
		enableProjects: true,
		enablePatterns: true,
		now:            time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	// Stages are built after the options so they see the final knobs.
	s.burnout = burnout.NewPredictor(
		signal.NewExtractor(),
		burnout.WithWindow(s.personWindow),
		burnout.WithWorkloadFunc(workload.Score),
	)
	s.projects = projectrisk.NewPredictor(
		projectrisk.WithStaleDays(s.staleDays),
		projectrisk.WithConfidenceThreshold(s.confThreshold),
	)
	s.detector = patterns.NewDetector()
	s.synth = recommend.NewSynthesizer(
		recommend.WithMaxRecommendations(s.maxRecs),
	)
	s.pool = pipeline.NewPool(pipeline.WithWorkers(s.workers))

	return s
}

// Snapshot fetches the reports the next analysis should consider. The
// lookback window drops dated reports older than the cutoff; reports
// without a usable timestamp stay in the snapshot so count-only
// aggregates still see them.
func (s *Service) Snapshot(ctx context.Context) ([]model.Report, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	reports, err := s.store.Fetch(ctx, reportstore.Filter{})
	if err != nil {
		return nil, fmt.Errorf("fetching report snapshot: %w", err)
	}

	if s.lookbackWeeks <= 0 {
		return reports, nil
	}

	cutoff := s.now().AddDate(0, 0, -daysPerWeek*s.lookbackWeeks)
	recent := reports[:0]
	for _, r := range reports {
		if !r.HasTimestamp() || !r.SubmittedAt.Before(cutoff) {
			recent = append(recent, r)
		}
	}
	return recent, nil
}

// Run fetches the current snapshot and analyzes it.
func (s *Service) Run(ctx context.Context) (types.Insights, error) {
	reports, err := s.Snapshot(ctx)
	if err != nil {
		metrics.RecordRunFailure()
		return types.Insights{}, err
	}
	return s.Analyze(ctx, reports)
}

// Analyze computes the full analytics result for one report snapshot.
// It is a pure function of the snapshot, the configuration, and the
// clock: the same inputs yield the identical result. A nil snapshot
// yields an empty, well-formed result. The returned error is non-nil
// only when the context is canceled before the numeric stages finish;
// a cancellation during the narrative call still returns the computed
// result with the local recommendation list.
func (s *Service) Analyze(ctx context.Context, reports []model.Report) (types.Insights, error) {
	start := time.Now()
	now := s.now()

	if err := ctx.Err(); err != nil {
		metrics.RecordRunFailure()
		return types.Insights{}, fmt.Errorf("analysis aborted: %w", err)
	}

	metrics.UpdateSnapshotSize(len(reports))

	out := types.Insights{
		PersonRisks:     []types.PersonRisk{},
		ProjectRisks:    []types.ProjectRisk{},
		Recommendations: []string{},
	}

	if s.enableBurnout {
		stage := time.Now()
		out.PersonRisks = s.assessPersons(ctx, reports)
		metrics.RecordStageDuration("burnout", float64(time.Since(stage).Milliseconds()))
	}

	if s.enableProjects {
		stage := time.Now()
		out.ProjectRisks = s.assessProjects(ctx, reports, now)
		metrics.RecordStageDuration("projects", float64(time.Since(stage).Milliseconds()))
	}

	if err := ctx.Err(); err != nil {
		metrics.RecordRunFailure()
		return types.Insights{}, fmt.Errorf("analysis aborted: %w", err)
	}

	if s.enablePatterns {
		stage := time.Now()
		out.Patterns = s.detector.Detect(reports)
		metrics.RecordStageDuration("patterns", float64(time.Since(stage).Milliseconds()))
	} else {
		// Keep the section well-formed so the result marshals the same
		// shape whether or not the stage ran.
		out.Patterns = s.detector.Detect(nil)
	}

	stage := time.Now()
	out.Recommendations = s.recommendations(ctx, out, len(reports))
	metrics.RecordStageDuration("recommend", float64(time.Since(stage).Milliseconds()))

	metrics.UpdateAssessmentCounts(len(out.PersonRisks), len(out.ProjectRisks))
	metrics.UpdateHighRiskCounts(countHigh(out.PersonRisks), countHighProjects(out.ProjectRisks))
	metrics.RecordRun(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "analysis complete",
		logger.Int("reports", len(reports)),
		logger.Int("persons", len(out.PersonRisks)),
		logger.Int("projects", len(out.ProjectRisks)),
		logger.Int("recommendations", len(out.Recommendations)),
		logger.Duration("elapsed", time.Since(start)),
	)

	return out, nil
}

// assessPersons fans one burnout assessment per author across the pool.
// Authors with a single report come back unknown and are excluded
// rather than zero-scored; reports without an author are left out of
// the per-person stage entirely.
func (s *Service) assessPersons(ctx context.Context, reports []model.Report) []types.PersonRisk {
	byAuthor := make(map[string][]model.Report)
	for _, r := range reports {
		author := strings.TrimSpace(r.Author)
		if author == "" {
			continue
		}
		byAuthor[author] = append(byAuthor[author], r)
	}

	subjects := make([]string, 0, len(byAuthor))
	for author := range byAuthor {
		subjects = append(subjects, author)
	}
	sort.Strings(subjects)

	assessments := make([]burnout.Assessment, len(subjects))
	s.pool.Run(ctx, len(subjects), func(_ context.Context, i int) {
		assessments[i] = s.burnout.Assess(subjects[i], byAuthor[subjects[i]])
	})

	risks := make([]types.PersonRisk, 0, len(assessments))
	for _, a := range assessments {
		if a.Level == types.RiskUnknown || a.Level == "" {
			continue
		}
		risks = append(risks, types.PersonRisk{
			Subject:            a.Subject,
			RiskLevel:          a.Level,
			RiskScore:          a.Score,
			Confidence:         a.Confidence,
			Factors:            a.Factors,
			PositiveIndicators: a.PositiveIndicators,
			Recommendations:    a.Recommendations,
			WeeksToEvent:       a.WeeksToEvent,
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Subject < risks[j].Subject
	})

	return risks
}

// assessProjects fans one risk assessment per project group across the
// pool and ranks what the confidence gate lets through.
func (s *Service) assessProjects(ctx context.Context, reports []model.Report, now time.Time) []types.ProjectRisk {
	groups := projectrisk.GroupReports(reports)

	type result struct {
		risk types.ProjectRisk
		ok   bool
	}
	results := make([]result, len(groups))
	s.pool.Run(ctx, len(groups), func(_ context.Context, i int) {
		results[i].risk, results[i].ok = s.projects.Assess(groups[i], now)
	})

	risks := make([]types.ProjectRisk, 0, len(results))
	for _, r := range results {
		if r.ok {
			risks = append(risks, r.risk)
		}
	}
	projectrisk.Rank(risks)

	return risks
}

// recommendations returns the narrative list when a generator is set
// and its response honors the contract, otherwise the local rule list.
// Narrative failure is a degradation, never a run failure.
func (s *Service) recommendations(ctx context.Context, result types.Insights, reportCount int) []string {
	local := s.synth.LocalRules(result.PersonRisks, result.ProjectRisks, result.Patterns)
	if s.narrator == nil {
		return local
	}

	digest := s.synth.Digest(result.PersonRisks, result.ProjectRisks, result.Patterns, reportCount)
	content, err := s.narrator.Generate(ctx, digest)
	if err != nil {
		metrics.RecordNarrativeFallback()
		s.logger.Warn(ctx, "narrative generation failed, using local recommendations",
			logger.Error(err),
		)
		return local
	}

	lines, err := recommend.ParseNarrative(content)
	if err != nil {
		metrics.RecordNarrativeFallback()
		s.logger.Warn(ctx, "narrative response unusable, using local recommendations",
			logger.Error(err),
		)
		return local
	}

	return lines
}

func countHigh(persons []types.PersonRisk) int {
	n := 0
	for _, p := range persons {
		if p.RiskLevel == types.RiskHigh {
			n++
		}
	}
	return n
}

func countHighProjects(projects []types.ProjectRisk) int {
	n := 0
	for _, p := range projects {
		if p.RiskLevel == types.RiskHigh {
			n++
		}
	}
	return n
}
