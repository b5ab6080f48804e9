// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers an optional YAML file and PULSE_-prefixed env vars on top.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// StorePath locates the SQLite report store file.
	StorePath string `koanf:"store_path"`

	// LookbackWeeks bounds how far back the analysis fetches reports.
	// Zero disables the recency filter and analyzes everything stored.
	LookbackWeeks int `koanf:"lookback_weeks"`

	// ConfidenceThreshold gates project risk emission. Assessments below
	// it are suppressed. Valid range [0.5, 0.95].
	ConfidenceThreshold float64 `koanf:"confidence_threshold"`

	// MaxReportsPerPerson bounds the per-person assessment window to the
	// most recent N reports.
	MaxReportsPerPerson int `koanf:"max_reports_per_person"`

	// StaleAfterDays marks a project stale after this many days without
	// a dated report.
	StaleAfterDays int `koanf:"stale_after_days"`

	// Workers sets the assessment fan-out parallelism.
	Workers int `koanf:"workers"`

	// MaxRecommendations caps the synthesized recommendation list.
	MaxRecommendations int `koanf:"max_recommendations"`

	// Narrative service settings. The service is optional; when disabled
	// or unreachable, recommendations come from local rules only.
	NarrativeEnabled    bool   `koanf:"narrative_enabled"`
	NarrativeEndpoint   string `koanf:"narrative_endpoint"`
	NarrativeModel      string `koanf:"narrative_model"`
	NarrativeAPIKey     string `koanf:"narrative_api_key"`
	NarrativeTimeoutMS  int    `koanf:"narrative_timeout_ms"`
	NarrativeMaxRetries int    `koanf:"narrative_max_retries"`

	// Analysis toggles. A disabled stage yields an empty section in the
	// snapshot and recommendations degrade to what remains.
	EnableBurnout  bool `koanf:"enable_burnout"`
	EnableProjects bool `koanf:"enable_projects"`
	EnablePatterns bool `koanf:"enable_patterns"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":8090",
		StorePath:           "data/reports.db",
		LookbackWeeks:       12,
		ConfidenceThreshold: 0.7,
		MaxReportsPerPerson: 8,
		StaleAfterDays:      14,
		Workers:             runtime.NumCPU(),
		MaxRecommendations:  8,
		NarrativeEnabled:    false,
		NarrativeTimeoutMS:  10_000,
		NarrativeMaxRetries: 1,
		EnableBurnout:       true,
		EnableProjects:      true,
		EnablePatterns:      true,
	}
	return c
}
