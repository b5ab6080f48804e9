package recommend

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithMaxRecommendations bounds the local rule list.
func WithMaxRecommendations(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.maxRecommendations = n
		}
	}
}

// WithDigestItems bounds how many entries each digest list carries.
func WithDigestItems(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.digestItems = n
		}
	}
}
