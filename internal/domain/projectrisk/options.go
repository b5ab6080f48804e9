package projectrisk

// Option configures a Predictor.
type Option func(*Predictor)

// WithStaleDays sets how many days without activity marks a project
// stale.
func WithStaleDays(days int) Option {
	return func(p *Predictor) {
		if days > 0 {
			p.staleDays = days
		}
	}
}

// WithConfidenceThreshold sets the minimum confidence an assessment
// needs to be emitted.
func WithConfidenceThreshold(threshold float64) Option {
	return func(p *Predictor) {
		if threshold > 0 {
			p.confThreshold = threshold
		}
	}
}
