package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	configFileEnv = "PULSE_CONFIG"
	envPrefix     = "PULSE_"

	minConfidenceThreshold = 0.5
	maxConfidenceThreshold = 0.95
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if PULSE_CONFIG is set
//  3. env (prefix PULSE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: PULSE_ADDR, PULSE_STORE_PATH, ...
	// Map env keys like PULSE_STORE_PATH -> store_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "pulse_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the analysis cannot run with.
func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.StorePath == "" {
		return fmt.Errorf("%w: store_path must not be empty", ErrInvalidConfig)
	}
	if cfg.LookbackWeeks < 0 {
		return fmt.Errorf("%w: lookback_weeks must not be negative, got %d", ErrInvalidConfig, cfg.LookbackWeeks)
	}
	if cfg.ConfidenceThreshold < minConfidenceThreshold || cfg.ConfidenceThreshold > maxConfidenceThreshold {
		return fmt.Errorf("%w: confidence_threshold must be in [%.2f, %.2f], got %.2f",
			ErrInvalidConfig, minConfidenceThreshold, maxConfidenceThreshold, cfg.ConfidenceThreshold)
	}
	if cfg.MaxReportsPerPerson <= 0 {
		return fmt.Errorf("%w: max_reports_per_person must be positive, got %d", ErrInvalidConfig, cfg.MaxReportsPerPerson)
	}
	if cfg.StaleAfterDays <= 0 {
		return fmt.Errorf("%w: stale_after_days must be positive, got %d", ErrInvalidConfig, cfg.StaleAfterDays)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if cfg.MaxRecommendations <= 0 {
		return fmt.Errorf("%w: max_recommendations must be positive, got %d", ErrInvalidConfig, cfg.MaxRecommendations)
	}
	if cfg.NarrativeTimeoutMS <= 0 {
		return fmt.Errorf("%w: narrative_timeout_ms must be positive, got %d", ErrInvalidConfig, cfg.NarrativeTimeoutMS)
	}
	if cfg.NarrativeMaxRetries < 0 {
		return fmt.Errorf("%w: narrative_max_retries must not be negative, got %d", ErrInvalidConfig, cfg.NarrativeMaxRetries)
	}
	if cfg.NarrativeEnabled && cfg.NarrativeEndpoint == "" {
		return fmt.Errorf("%w: narrative_endpoint required when narrative_enabled is set", ErrInvalidConfig)
	}
	return nil
}
