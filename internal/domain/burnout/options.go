package burnout

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithWindow bounds how many recent reports feed the trend series.
func WithWindow(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.window = n
		}
	}
}

// WithWorkloadFunc sets the activity workload scorer.
func WithWorkloadFunc(f WorkloadFunc) Option {
	return func(p *Predictor) {
		if f != nil {
			p.workload = f
		}
	}
}
