package settlement

import "errors"

// Sentinel kinds for settlement errors.
var (
	ErrNilRegistry = errors.New("settlement: nil registry")
	ErrNilSource   = errors.New("settlement: nil random source")
)
