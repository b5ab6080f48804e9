package testreports

import "time"

// Defaults for the synthetic corpus.
const (
	defaultSeed  = 1
	defaultWeeks = 8
)

// defaultAnchor pins the newest reporting week so a generator without
// options is fully reproducible. Callers seeding a live store pass
// WithAnchor(time.Now()) instead.
var defaultAnchor = time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed. The same seed always yields the same
// corpus.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithWeeks sets how many reporting weeks the corpus spans.
func WithWeeks(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.weeks = n
		}
	}
}

// WithAnchor sets the newest reporting week. Any time within the week
// works; the generator aligns on that week's Monday.
func WithAnchor(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.anchor = t
		}
	}
}

// WithTeamSize bounds how many of the synthetic team members report.
func WithTeamSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.teamSize = n
		}
	}
}
