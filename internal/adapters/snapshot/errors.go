package snapshot

import "errors"

// ErrInvalidSnapshot reports a snapshot that parses but does not describe a
// consistent league.
var ErrInvalidSnapshot = errors.New("invalid league snapshot")
