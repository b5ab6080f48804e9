// Package burnout assesses per-person burnout risk from report history.
package burnout

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	model "github.com/teampulse/pulse/internal/domain/model"
	signal "github.com/teampulse/pulse/internal/domain/signal"
	types "github.com/teampulse/pulse/internal/domain/types"
)

// Risk scoring contributions and cutoffs.
const (
	minReports    = 2
	defaultWindow = 8

	lowSentimentCutoff      = 4.0
	moderateSentimentCutoff = 6.0
	highStressCutoff        = 5.0
	moderateStressCutoff    = 3.0
	highWorkloadCutoff      = 80.0
	moderateWorkloadCutoff  = 60.0

	lowSentimentPoints      = 30
	moderateSentimentPoints = 15
	highStressPoints        = 25
	moderateStressPoints    = 15
	highWorkloadPoints      = 25
	moderateWorkloadPoints  = 15
	sentimentTrendPoints    = 15
	stressTrendPoints       = 15
	workloadTrendPoints     = 10

	highRiskCutoff   = 70
	mediumRiskCutoff = 40
	maxRiskScore     = 100

	weeksToEventHigh   = 2
	weeksToEventMedium = 6
)

// Supplemental trend cutoffs, computed over the three most recent dated
// reports; cadence over every dated report.
const (
	trendPoints              = 3
	productivityPerItem      = 20
	maxProductivity          = 100
	nontrivialRunes          = 10
	productivitySlopeCutoff  = 5.0
	sentimentSlopeCutoff     = -0.5
	overloadAvgCutoff        = 85.0
	idealCadenceDays         = 7.0
	cadencePenaltyPerDay     = 5.0
	irregularCadenceCutoff   = 60.0
	minReportsForConsistency = 3
)

// Confidence grows with history: 0.4 base plus reports/15, capped.
const (
	confidenceBase    = 0.4
	confidenceDivisor = 15.0
	confidenceCap     = 0.95
)

// Analyzer provides the text signals the predictor consumes.
type Analyzer interface {
	Sentiment(text string) signal.Sentiment
	Stress(text string) signal.Stress
}

// WorkloadFunc rates an activity list on a 0-100 scale.
type WorkloadFunc func([]model.Activity) float64

// Assessment is one person's burnout reading.
type Assessment struct {
	Subject            string
	Level              types.RiskLevel
	Score              int
	Confidence         float64
	WeeksToEvent       *int
	Factors            []string
	PositiveIndicators []string
	Recommendations    []string

	// Trend series over the assessment window, newest first.
	SentimentTrend []float64
	StressTrend    []int
	WorkloadTrend  []float64

	ReportCount int
}

// Predictor computes burnout assessments. It is stateless and safe for
// concurrent use.
type Predictor struct {
	analyzer Analyzer
	workload WorkloadFunc
	window   int
}

// NewPredictor creates a predictor reading signals through analyzer.
func NewPredictor(analyzer Analyzer, opts ...Option) *Predictor {
	p := &Predictor{
		analyzer: analyzer,
		window:   defaultWindow,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Assess rates one person's burnout risk from their report history.
// Fewer than two reports yields the unknown assessment rather than an
// error. Reports without a usable timestamp count toward history size
// but stay out of the trend window.
func (p *Predictor) Assess(subject string, reports []model.Report) Assessment {
	if len(reports) < minReports {
		return Assessment{
			Subject:            subject,
			Level:              types.RiskUnknown,
			Factors:            []string{},
			PositiveIndicators: []string{},
			Recommendations:    []string{"Insufficient data for prediction"},
			SentimentTrend:     []float64{},
			StressTrend:        []int{},
			WorkloadTrend:      []float64{},
			ReportCount:        len(reports),
		}
	}

	dated := datedNewestFirst(reports)
	window := dated
	if len(window) > p.window {
		window = window[:p.window]
	}

	// Per-report signals across the window, newest first.
	sentiments := make([]float64, len(window))
	stresses := make([]int, len(window))
	workloads := make([]float64, len(window))
	productivity := make([]float64, len(window))
	for i, r := range window {
		text := signal.ReportText(r)
		sentiments[i] = p.analyzer.Sentiment(text).Score
		stresses[i] = p.analyzer.Stress(text).Score
		workloads[i] = p.workloadScore(r.Activities)
		productivity[i] = productivityScore(r.Accomplishments)
	}

	avgSentiment := meanOr(sentiments, 5.0)
	avgStress := meanOr(intsToFloats(stresses), 0)
	avgWorkload := meanOr(workloads, 0)

	sentimentDeclining := len(sentiments) >= trendPoints && sentiments[0] < sentiments[2]
	stressIncreasing := len(stresses) >= trendPoints && stresses[0] > stresses[2]
	workloadIncreasing := len(workloads) >= trendPoints && workloads[0] > workloads[2]

	score := 0
	factors := []string{}

	switch {
	case avgSentiment < lowSentimentCutoff:
		score += lowSentimentPoints
		factors = append(factors, "Low average sentiment")
	case avgSentiment < moderateSentimentCutoff:
		score += moderateSentimentPoints
		factors = append(factors, "Below-average sentiment")
	}

	switch {
	case avgStress > highStressCutoff:
		score += highStressPoints
		factors = append(factors, "Elevated stress indicators")
	case avgStress > moderateStressCutoff:
		score += moderateStressPoints
		factors = append(factors, "Moderate stress indicators")
	}

	switch {
	case avgWorkload > highWorkloadCutoff:
		score += highWorkloadPoints
		factors = append(factors, "Sustained high workload")
	case avgWorkload > moderateWorkloadCutoff:
		score += moderateWorkloadPoints
		factors = append(factors, "Elevated workload")
	}

	if sentimentDeclining {
		score += sentimentTrendPoints
		factors = append(factors, "Sentiment declining across recent reports")
	}
	if stressIncreasing {
		score += stressTrendPoints
		factors = append(factors, "Stress rising across recent reports")
	}
	if workloadIncreasing {
		score += workloadTrendPoints
		factors = append(factors, "Workload rising across recent reports")
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}

	level := types.RiskLow
	var weeks *int
	switch {
	case score >= highRiskCutoff:
		level = types.RiskHigh
		weeks = intPtr(weeksToEventHigh)
	case score >= mediumRiskCutoff:
		level = types.RiskMedium
		weeks = intPtr(weeksToEventMedium)
	}

	positives := []string{}
	if len(window) >= trendPoints {
		prodSlope := slope(lastThreeChronological(productivity))
		switch {
		case prodSlope < -productivitySlopeCutoff:
			factors = append(factors, "Declining productivity trend")
		case prodSlope > productivitySlopeCutoff:
			positives = append(positives, "Productivity trending upward")
		}

		if slope(lastThreeChronological(sentiments)) < sentimentSlopeCutoff {
			factors = append(factors, "Negative sentiment trend")
		}

		if avg3 := meanOr(workloads[:trendPoints], 0); avg3 > overloadAvgCutoff {
			factors = append(factors, fmt.Sprintf("High average workload (%.0f/100)", avg3))
		}
	}
	if c, ok := cadenceConsistency(dated); ok && c < irregularCadenceCutoff {
		factors = append(factors, "Irregular reporting pattern")
	}

	recommendations := []string{}
	if avgSentiment < 5 {
		recommendations = append(recommendations, "Consider one-on-one meeting to discuss concerns")
	}
	if avgWorkload > 75 {
		recommendations = append(recommendations, "Review workload distribution and priorities")
	}
	if avgStress > 4 {
		recommendations = append(recommendations, "Identify and address stress factors")
	}
	if sentimentDeclining {
		recommendations = append(recommendations, "Monitor closely - sentiment declining")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Continue monitoring")
	}

	return Assessment{
		Subject:            subject,
		Level:              level,
		Score:              score,
		Confidence:         confidence(len(reports)),
		WeeksToEvent:       weeks,
		Factors:            factors,
		PositiveIndicators: positives,
		Recommendations:    recommendations,
		SentimentTrend:     sentiments,
		StressTrend:        stresses,
		WorkloadTrend:      workloads,
		ReportCount:        len(reports),
	}
}

func (p *Predictor) workloadScore(activities []model.Activity) float64 {
	if p.workload == nil {
		return 0
	}
	return p.workload(activities)
}

// productivityScore counts substantive accomplishments. Entries of ten
// characters or fewer are treated as filler.
func productivityScore(items []model.TextItem) float64 {
	count := 0
	for _, item := range items {
		if utf8.RuneCountInString(strings.TrimSpace(item.Text)) > nontrivialRunes {
			count++
		}
	}
	score := count * productivityPerItem
	if score > maxProductivity {
		score = maxProductivity
	}
	return float64(score)
}

// cadenceConsistency scores reporting regularity against a weekly ideal.
// It needs at least three dated reports; ok is false otherwise.
func cadenceConsistency(dated []model.Report) (float64, bool) {
	if len(dated) < minReportsForConsistency {
		return 0, false
	}

	// Gaps are measured between calendar days, not instants.
	days := make([]int64, len(dated))
	for i, r := range dated {
		t := r.SubmittedAt.UTC()
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		days[i] = midnight.Unix() / (24 * 60 * 60)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var gapSum float64
	for i := 1; i < len(days); i++ {
		gapSum += float64(days[i] - days[i-1])
	}
	avgGap := gapSum / float64(len(days)-1)

	consistency := 100 - math.Abs(avgGap-idealCadenceDays)*cadencePenaltyPerDay
	if consistency < 0 {
		consistency = 0
	}
	return consistency, true
}

// datedNewestFirst filters out undated reports and orders the rest
// newest first, breaking timestamp ties by report ID.
func datedNewestFirst(reports []model.Report) []model.Report {
	dated := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if r.HasTimestamp() {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].SubmittedAt.Equal(dated[j].SubmittedAt) {
			return dated[i].ID < dated[j].ID
		}
		return dated[i].SubmittedAt.After(dated[j].SubmittedAt)
	})
	return dated
}

// lastThreeChronological reverses the first three entries of a
// newest-first series into chronological order.
func lastThreeChronological(newestFirst []float64) []float64 {
	return []float64{newestFirst[2], newestFirst[1], newestFirst[0]}
}

// slope fits a least-squares line through equally spaced points.
func slope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	xMean := (n - 1) / 2
	var yMean float64
	for _, v := range values {
		yMean += v
	}
	yMean /= n

	var num, den float64
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func confidence(reportCount int) float64 {
	c := confidenceBase + float64(reportCount)/confidenceDivisor
	if c > confidenceCap {
		c = confidenceCap
	}
	return math.Round(c*100) / 100
}

func meanOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func intPtr(v int) *int { return &v }
