package patterns

// Option configures a Detector.
type Option func(*Detector)

// WithTopKeywords bounds how many recurring blocker keywords are kept.
func WithTopKeywords(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.topKeywords = n
		}
	}
}

// WithTopClusters bounds how many collaboration clusters are kept.
func WithTopClusters(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.topClusters = n
		}
	}
}
