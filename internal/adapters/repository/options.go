package repository

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithCapacity presizes the registry.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}
