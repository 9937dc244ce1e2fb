package model

import "strings"

// FootballSlot is the broadcast window a football game is scheduled in.
// Unrecognized wire values decode to FootballSlotUnknown, which never
// matches a ran flag.
type FootballSlot int

const (
	FootballSlotUnknown FootballSlot = iota
	SlotThursdayNight
	SlotThursdayNightFootball
	SlotFridayNight
	SlotSaturdayMorning
	SlotSaturdayAfternoon
	SlotSaturdayEvening
	SlotSaturdayNight
	SlotSundayNoon
	SlotSundayAfternoon
	SlotSundayNightFootball
	SlotMondayNightFootball
)

var footballSlotNames = [...]string{ //nolint:gochecknoglobals // static lookup table
	FootballSlotUnknown:       "",
	SlotThursdayNight:         "Thursday Night",
	SlotThursdayNightFootball: "Thursday Night Football",
	SlotFridayNight:           "Friday Night",
	SlotSaturdayMorning:       "Saturday Morning",
	SlotSaturdayAfternoon:     "Saturday Afternoon",
	SlotSaturdayEvening:       "Saturday Evening",
	SlotSaturdayNight:         "Saturday Night",
	SlotSundayNoon:            "Sunday Noon",
	SlotSundayAfternoon:       "Sunday Afternoon",
	SlotSundayNightFootball:   "Sunday Night Football",
	SlotMondayNightFootball:   "Monday Night Football",
}

// FootballSlots lists the known football slots in weekly order.
func FootballSlots() []FootballSlot {
	out := make([]FootballSlot, 0, len(footballSlotNames)-1)
	for s := SlotThursdayNight; s <= SlotMondayNightFootball; s++ {
		out = append(out, s)
	}
	return out
}

// ParseFootballSlot matches the exact upstream slot label.
func ParseFootballSlot(s string) FootballSlot {
	for i, name := range footballSlotNames {
		if i > 0 && name == s {
			return FootballSlot(i)
		}
	}
	return FootballSlotUnknown
}

func (s FootballSlot) String() string {
	if s < 0 || int(s) >= len(footballSlotNames) {
		return ""
	}
	return footballSlotNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s FootballSlot) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *FootballSlot) UnmarshalText(b []byte) error {
	*s = ParseFootballSlot(string(b))
	return nil
}

// BasketballSlot is the letter-coded match of the week.
type BasketballSlot int

const (
	BasketballSlotUnknown BasketballSlot = iota
	MatchA
	MatchB
	MatchC
	MatchD
)

// ParseBasketballSlot accepts A-D in either case.
func ParseBasketballSlot(s string) BasketballSlot {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return MatchA
	case "B":
		return MatchB
	case "C":
		return MatchC
	case "D":
		return MatchD
	default:
		return BasketballSlotUnknown
	}
}

func (s BasketballSlot) String() string {
	switch s {
	case MatchA:
		return "A"
	case MatchB:
		return "B"
	case MatchC:
		return "C"
	case MatchD:
		return "D"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s BasketballSlot) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *BasketballSlot) UnmarshalText(b []byte) error {
	*s = ParseBasketballSlot(string(b))
	return nil
}

// HockeyDay is the letter-coded game day within a hockey week.
type HockeyDay int

const (
	HockeyDayUnknown HockeyDay = iota
	DayA
	DayB
	DayC
)

// ParseHockeyDay accepts A-C in either case.
func ParseHockeyDay(s string) HockeyDay {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return DayA
	case "B":
		return DayB
	case "C":
		return DayC
	default:
		return HockeyDayUnknown
	}
}

func (d HockeyDay) String() string {
	switch d {
	case DayA:
		return "A"
	case DayB:
		return "B"
	case DayC:
		return "C"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d HockeyDay) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (d *HockeyDay) UnmarshalText(b []byte) error {
	*d = ParseHockeyDay(string(b))
	return nil
}
