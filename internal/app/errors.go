package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMarketResolved = errors.New("market already resolved")
	ErrNilMarket      = errors.New("nil market")
	ErrNilRegistry    = errors.New("nil coach registry")
)
