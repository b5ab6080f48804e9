// Package signal extracts sentiment and stress signals from report text.
package signal

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	model "github.com/teampulse/pulse/internal/domain/model"
)

// Sentiment scale constants. Lexicon polarity in [-1,1] maps onto [1,10].
const (
	minAnalyzableRunes = 5
	neutralScore       = 5.0
	positiveThreshold  = 7.0
	neutralThreshold   = 4.0
)

// Stress scoring weights and thresholds.
const (
	highStressWeight   = 3
	mediumStressWeight = 2
	workloadWeight     = 2
	blockerWeight      = 1
	maxStressScore     = 10
	stressHighCutoff   = 6
	stressMediumCutoff = 3
)

// Stress keyword buckets. Matching is substring, case-insensitive, one hit
// per keyword. "delayed" deliberately appears in two buckets.
var (
	highStressKeywords = []string{
		"overwhelmed", "stressed", "burned out", "exhausted", "impossible", "too much",
	}
	mediumStressKeywords = []string{
		"challenging", "difficult", "struggling", "behind", "delayed", "concerned",
	}
	workloadKeywords = []string{
		"overloaded", "too many", "not enough time", "deadline pressure", "tight schedule",
	}
	blockerKeywords = []string{
		"blocked", "waiting for", "stuck", "delayed", "can't proceed", "dependencies",
	}
)

// Tone labels a sentiment score.
type Tone string

// Tone values.
const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// Level buckets a stress score.
type Level string

// Level values.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Sentiment is the lexical sentiment of one piece of text.
type Sentiment struct {
	Score      float64 // 1..10, one decimal
	Label      Tone
	Confidence float64 // 0..1, share of tokens carrying any polarity
	Polarity   float64 // -1..1, two decimals
}

// Indicators holds the matched stress keywords per bucket.
type Indicators struct {
	HighStress   []string
	MediumStress []string
	Workload     []string
	Blockers     []string
}

// Stress is the keyword-derived stress reading of one piece of text.
type Stress struct {
	Score      int // 0..10
	Level      Level
	Indicators Indicators
	Total      int // total matched keywords across buckets
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMinTextLength overrides the minimum analyzable text length in runes.
func WithMinTextLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minTextLen = n
		}
	}
}

// Extractor computes lexical signals. It is stateless and safe for
// concurrent use.
type Extractor struct {
	minTextLen int
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		minTextLen: minAnalyzableRunes,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Sentiment scores text on a 1-10 scale. Text shorter than the minimum
// yields exactly the neutral reading with zero confidence.
func (e *Extractor) Sentiment(text string) Sentiment {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < e.minTextLen {
		return Sentiment{Score: neutralScore, Label: ToneNeutral}
	}

	parsed := sentitext.Parse(trimmed, lexicon.DefaultLexicon)
	polarity := sentitext.PolarityScore(parsed)

	score := round1(((polarity.Compound+1)/2)*9 + 1)

	label := ToneNegative
	switch {
	case score >= positiveThreshold:
		label = TonePositive
	case score >= neutralThreshold:
		label = ToneNeutral
	}

	return Sentiment{
		Score:      score,
		Label:      label,
		Confidence: round2(polarity.Positive + polarity.Negative),
		Polarity:   round2(polarity.Compound),
	}
}

// Stress scans text for stress vocabulary and scores the hits.
func (e *Extractor) Stress(text string) Stress {
	lower := strings.ToLower(text)

	ind := Indicators{
		HighStress:   matchKeywords(lower, highStressKeywords),
		MediumStress: matchKeywords(lower, mediumStressKeywords),
		Workload:     matchKeywords(lower, workloadKeywords),
		Blockers:     matchKeywords(lower, blockerKeywords),
	}

	score := len(ind.HighStress)*highStressWeight +
		len(ind.MediumStress)*mediumStressWeight +
		len(ind.Workload)*workloadWeight +
		len(ind.Blockers)*blockerWeight
	if score > maxStressScore {
		score = maxStressScore
	}

	level := LevelLow
	switch {
	case score >= stressHighCutoff:
		level = LevelHigh
	case score >= stressMediumCutoff:
		level = LevelMedium
	}

	return Stress{
		Score:      score,
		Level:      level,
		Indicators: ind,
		Total:      len(ind.HighStress) + len(ind.MediumStress) + len(ind.Workload) + len(ind.Blockers),
	}
}

// ReportText flattens a report's narrative into one analyzable string:
// accomplishments, challenges, concerns, then activity descriptions.
func ReportText(r model.Report) string {
	parts := make([]string, 0, len(r.Accomplishments)+len(r.Activities)+2)
	for _, item := range r.Accomplishments {
		if item.Text != "" {
			parts = append(parts, item.Text)
		}
	}
	if r.Challenges != "" {
		parts = append(parts, r.Challenges)
	}
	if r.Concerns != "" {
		parts = append(parts, r.Concerns)
	}
	for _, a := range r.Activities {
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}

func matchKeywords(lower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
