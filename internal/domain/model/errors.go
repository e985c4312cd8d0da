package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrUnknownRole           = errors.New("unknown coaching role")
	ErrUnknownUnit           = errors.New("unknown roster unit")
	ErrUnknownClassification = errors.New("unknown coach classification")
	ErrAlreadyMatched        = errors.New("market entry already matched")
)
