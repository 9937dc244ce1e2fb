package model

import "github.com/okian/simreveal/internal/domain/league"

// Timestamp is an immutable snapshot of where a sport family's simulation
// clock currently is. Snapshots are replaced wholesale on every advance and
// must not be mutated while reveal evaluations are in flight.
type Timestamp interface {
	Family() league.Family
}

// Clock is a (week, season) position for one tier.
type Clock struct {
	Week     int
	SeasonID int
}

// FootballTimestamp tracks both football tiers plus one ran flag per
// broadcast slot.
type FootballTimestamp struct {
	CollegeWeek     int
	CollegeSeasonID int
	NFLWeek         int
	NFLSeasonID     int

	ThursdayGames      bool
	NFLThursday        bool
	FridayGames        bool
	SaturdayMorning    bool
	SaturdayNoon       bool
	SaturdayEvening    bool
	SaturdayNight      bool
	NFLSundayNoon      bool
	NFLSundayAfternoon bool
	NFLSundayEvening   bool
	NFLMondayEvening   bool
}

// Family implements Timestamp.
func (FootballTimestamp) Family() league.Family { return league.Football }

// ClockFor returns the clock of the given tier.
func (ts FootballTimestamp) ClockFor(tier league.Tier) Clock {
	if tier == league.Professional {
		return Clock{Week: ts.NFLWeek, SeasonID: ts.NFLSeasonID}
	}
	return Clock{Week: ts.CollegeWeek, SeasonID: ts.CollegeSeasonID}
}

// SlotRan reports the ran flag for a slot. known is false for
// FootballSlotUnknown.
func (ts FootballTimestamp) SlotRan(s FootballSlot) (ran, known bool) {
	switch s {
	case SlotThursdayNight:
		return ts.ThursdayGames, true
	case SlotThursdayNightFootball:
		return ts.NFLThursday, true
	case SlotFridayNight:
		return ts.FridayGames, true
	case SlotSaturdayMorning:
		return ts.SaturdayMorning, true
	case SlotSaturdayAfternoon:
		return ts.SaturdayNoon, true
	case SlotSaturdayEvening:
		return ts.SaturdayEvening, true
	case SlotSaturdayNight:
		return ts.SaturdayNight, true
	case SlotSundayNoon:
		return ts.NFLSundayNoon, true
	case SlotSundayAfternoon:
		return ts.NFLSundayAfternoon, true
	case SlotSundayNightFootball:
		return ts.NFLSundayEvening, true
	case SlotMondayNightFootball:
		return ts.NFLMondayEvening, true
	default:
		return false, false
	}
}

// BasketballTimestamp tracks both basketball tiers plus four ran flags.
type BasketballTimestamp struct {
	CollegeWeek     int
	CollegeSeasonID int
	NBAWeek         int
	NBASeasonID     int

	GamesARan bool
	GamesBRan bool
	GamesCRan bool
	GamesDRan bool
}

// Family implements Timestamp.
func (BasketballTimestamp) Family() league.Family { return league.Basketball }

// ClockFor returns the clock of the given tier.
func (ts BasketballTimestamp) ClockFor(tier league.Tier) Clock {
	if tier == league.Professional {
		return Clock{Week: ts.NBAWeek, SeasonID: ts.NBASeasonID}
	}
	return Clock{Week: ts.CollegeWeek, SeasonID: ts.CollegeSeasonID}
}

// SlotRan reports the ran flag for a match letter.
func (ts BasketballTimestamp) SlotRan(s BasketballSlot) (ran, known bool) {
	switch s {
	case MatchA:
		return ts.GamesARan, true
	case MatchB:
		return ts.GamesBRan, true
	case MatchC:
		return ts.GamesCRan, true
	case MatchD:
		return ts.GamesDRan, true
	default:
		return false, false
	}
}

// HockeyTimestamp is the clock of a single hockey league. The college tier
// plays days A and B only; the professional tier adds C.
type HockeyTimestamp struct {
	League   league.League
	Week     int
	SeasonID int

	GamesARan bool
	GamesBRan bool
	GamesCRan bool
}

// Family implements Timestamp.
func (HockeyTimestamp) Family() league.Family { return league.Hockey }

// Clock returns the snapshot's position.
func (ts HockeyTimestamp) Clock() Clock {
	return Clock{Week: ts.Week, SeasonID: ts.SeasonID}
}

// SlotRan reports the ran flag for a game day. Day C is unknown to the
// amateur tier regardless of GamesCRan.
func (ts HockeyTimestamp) SlotRan(d HockeyDay) (ran, known bool) {
	switch d {
	case DayA:
		return ts.GamesARan, true
	case DayB:
		return ts.GamesBRan, true
	case DayC:
		if ts.League.Tier() != league.Professional {
			return false, false
		}
		return ts.GamesCRan, true
	default:
		return false, false
	}
}
