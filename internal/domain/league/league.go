// Package league enumerates the supported competitions and the sport family
// and tier each one belongs to.
package league

import (
	"fmt"
	"strings"
)

// Family groups leagues that share a timestamp shape and slot vocabulary.
type Family int

const (
	FamilyUnknown Family = iota
	Football
	Basketball
	Hockey
)

func (f Family) String() string {
	switch f {
	case Football:
		return "football"
	case Basketball:
		return "basketball"
	case Hockey:
		return "hockey"
	default:
		return "unknown"
	}
}

// Tier separates amateur (college) and professional variants of a family.
type Tier int

const (
	TierUnknown Tier = iota
	Amateur
	Professional
)

func (t Tier) String() string {
	switch t {
	case Amateur:
		return "amateur"
	case Professional:
		return "professional"
	default:
		return "unknown"
	}
}

// League identifies one competition.
type League int

const (
	Unknown League = iota
	CollegeFootball
	ProFootball
	CollegeBasketball
	ProBasketball
	CollegeHockey
	ProHockey
)

type info struct {
	key    string
	family Family
	tier   Tier
}

var leagues = map[League]info{ //nolint:gochecknoglobals // static lookup table
	CollegeFootball:   {key: "cfb", family: Football, tier: Amateur},
	ProFootball:       {key: "nfl", family: Football, tier: Professional},
	CollegeBasketball: {key: "cbb", family: Basketball, tier: Amateur},
	ProBasketball:     {key: "nba", family: Basketball, tier: Professional},
	CollegeHockey:     {key: "chl", family: Hockey, tier: Amateur},
	ProHockey:         {key: "phl", family: Hockey, tier: Professional},
}

var aliases = map[string]League{ //nolint:gochecknoglobals // static lookup table
	"cfb":                CollegeFootball,
	"college_football":   CollegeFootball,
	"nfl":                ProFootball,
	"pro_football":       ProFootball,
	"cbb":                CollegeBasketball,
	"college_basketball": CollegeBasketball,
	"nba":                ProBasketball,
	"pro_basketball":     ProBasketball,
	"chl":                CollegeHockey,
	"college_hockey":     CollegeHockey,
	"phl":                ProHockey,
	"pro_hockey":         ProHockey,
}

// All returns every supported league in declaration order.
func All() []League {
	return []League{CollegeFootball, ProFootball, CollegeBasketball, ProBasketball, CollegeHockey, ProHockey}
}

// Parse decodes a league key such as "cfb" or "pro_hockey".
func Parse(s string) (League, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if l, ok := aliases[key]; ok {
		return l, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidLeague, s)
}

// Family reports the sport family; Unknown maps to FamilyUnknown.
func (l League) Family() Family { return leagues[l].family }

// Tier reports the amateur/professional tier.
func (l League) Tier() Tier { return leagues[l].tier }

// Valid reports whether l is one of the supported leagues.
func (l League) Valid() bool {
	_, ok := leagues[l]
	return ok
}

func (l League) String() string {
	if i, ok := leagues[l]; ok {
		return i.key
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler. Unknown encodes as "".
func (l League) MarshalText() ([]byte, error) {
	if l == Unknown {
		return []byte{}, nil
	}
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLeague, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value decodes
// to Unknown.
func (l *League) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*l = Unknown
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
