package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound       = errors.New("coach not found")
	ErrDuplicateCoach = errors.New("duplicate coach id")
	ErrInvalidCoach   = errors.New("invalid coach")
)
