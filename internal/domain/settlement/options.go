package settlement

import "github.com/quarterback/viperball-sub000/pkg/logger"

// Option applies a configuration option to the Settler.
type Option func(*Settler)

// WithLogger sets a custom logger for the settler.
func WithLogger(l logger.Logger) Option {
	return func(s *Settler) {
		if l != nil {
			s.logger = l
		}
	}
}
