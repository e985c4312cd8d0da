package matching

import "errors"

// ErrIterationLimit is returned when the solver exhausts its proposal
// budget. It indicates degenerate preference tables, not a valid outcome.
var ErrIterationLimit = errors.New("matching iteration limit reached")
