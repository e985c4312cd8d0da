package pool

import "github.com/quarterback/viperball-sub000/pkg/logger"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMinPoolSize sets the floor on pool size when vacancies exist.
func WithMinPoolSize(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.minPoolSize = n
		}
	}
}

// WithPoolMultiplier sets how many entries to target per open vacancy.
func WithPoolMultiplier(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.poolMultiplier = n
		}
	}
}

// WithFreeAgentPrestige sets the range generated free agents draw prestige from.
func WithFreeAgentPrestige(lo, hi float64) Option {
	return func(b *Builder) {
		if lo >= 0 && hi > lo {
			b.freeAgentPrestigeLo = lo
			b.freeAgentPrestigeHi = hi
		}
	}
}
