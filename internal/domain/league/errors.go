package league

import "errors"

// ErrInvalidLeague is returned when a league key cannot be decoded.
var ErrInvalidLeague = errors.New("invalid league")
