package matching

// Option applies a configuration option to the Solver.
type Option func(*Solver)

// WithIterationFactor sets the per-vacancy proposal budget.
func WithIterationFactor(factor int) Option {
	return func(s *Solver) {
		if factor > 0 {
			s.factor = factor
		}
	}
}
