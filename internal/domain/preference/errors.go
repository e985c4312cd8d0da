package preference

import (
	"errors"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

// Sentinel kinds for preference errors.
var (
	// ErrUnknownRole aliases the model error so callers can match either.
	ErrUnknownRole = model.ErrUnknownRole
	ErrNilSource   = errors.New("preference: nil random source")
)
