package pool

import "errors"

// Sentinel kinds for pool errors.
var (
	ErrNilRegistry = errors.New("pool: nil registry")
	ErrNilSource   = errors.New("pool: nil random source")
)
