package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/simreveal/internal/domain/league"
)

// ErrTimestampShape is returned when a payload cannot be read as the clock
// of the requested league.
var ErrTimestampShape = errors.New("timestamp payload does not fit league")

// DecodeTimestamp reads a JSON clock in the shape of l's family. Hockey
// payloads without a league stamp are stamped with l.
func DecodeTimestamp(l league.League, data []byte) (Timestamp, error) {
	switch l.Family() {
	case league.Football:
		var ts FootballTimestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTimestampShape, l, err)
		}
		return ts, nil
	case league.Basketball:
		var ts BasketballTimestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTimestampShape, l, err)
		}
		return ts, nil
	case league.Hockey:
		var ts HockeyTimestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTimestampShape, l, err)
		}
		if ts.League == league.Unknown {
			ts.League = l
		}
		return ts, nil
	default:
		return nil, fmt.Errorf("%w: %s", league.ErrInvalidLeague, l)
	}
}
