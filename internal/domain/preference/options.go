package preference

import "github.com/quarterback/viperball-sub000/internal/domain/collab"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithDepth sets how many entries each ranked list keeps.
func WithDepth(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.depth = k
		}
	}
}

// WithAmbition sets the rater used for the hot-name and promotion terms.
func WithAmbition(a collab.AmbitionRater) Option {
	return func(e *Engine) {
		if a != nil {
			e.ambition = a
		}
	}
}

// WithNoise sets the symmetric noise amplitude on both sides.
func WithNoise(amplitude float64) Option {
	return func(e *Engine) {
		if amplitude >= 0 {
			e.noise = amplitude
		}
	}
}
