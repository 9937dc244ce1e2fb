package reveal

import (
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
)

// RevealPolicy supplies the two family-specific pieces of a reveal decision:
// which clock applies to a league and whether a game's slot has run.
type RevealPolicy interface {
	Family() league.Family
	// Clock resolves the tier clock for l. ok is false when ts is not a
	// snapshot of this family or does not serve l.
	Clock(ts model.Timestamp, l league.League) (c model.Clock, ok bool)
	// SlotRan maps the game's slot onto the snapshot's ran flag. known is
	// false for slots outside the family's vocabulary.
	SlotRan(g model.Game, ts model.Timestamp) (ran, known bool)
}

// Policy is a RevealPolicy over one concrete timestamp type.
type Policy[T model.Timestamp] struct {
	family  league.Family
	clockOf func(ts T, l league.League) (model.Clock, bool)
	slotOf  func(g model.Game, ts T) (bool, bool)
}

// NewPolicy builds a policy from a clock resolver and a slot resolver.
func NewPolicy[T model.Timestamp](
	family league.Family,
	clockOf func(ts T, l league.League) (model.Clock, bool),
	slotOf func(g model.Game, ts T) (bool, bool),
) Policy[T] {
	return Policy[T]{family: family, clockOf: clockOf, slotOf: slotOf}
}

// Family implements RevealPolicy.
func (p Policy[T]) Family() league.Family { return p.family }

// Clock implements RevealPolicy.
func (p Policy[T]) Clock(ts model.Timestamp, l league.League) (model.Clock, bool) {
	t, ok := ts.(T)
	if !ok || l.Family() != p.family {
		return model.Clock{}, false
	}
	return p.clockOf(t, l)
}

// SlotRan implements RevealPolicy.
func (p Policy[T]) SlotRan(g model.Game, ts model.Timestamp) (bool, bool) {
	t, ok := ts.(T)
	if !ok {
		return false, false
	}
	return p.slotOf(g, t)
}

// FootballPolicy reads TimeSlot against the eleven broadcast flags.
var FootballPolicy = NewPolicy( //nolint:gochecknoglobals // stateless policy value
	league.Football,
	func(ts model.FootballTimestamp, l league.League) (model.Clock, bool) {
		return ts.ClockFor(l.Tier()), true
	},
	func(g model.Game, ts model.FootballTimestamp) (bool, bool) {
		return ts.SlotRan(g.TimeSlot)
	},
)

// BasketballPolicy reads MatchOfWeek against GamesARan..GamesDRan.
var BasketballPolicy = NewPolicy( //nolint:gochecknoglobals // stateless policy value
	league.Basketball,
	func(ts model.BasketballTimestamp, l league.League) (model.Clock, bool) {
		return ts.ClockFor(l.Tier()), true
	},
	func(g model.Game, ts model.BasketballTimestamp) (bool, bool) {
		return ts.SlotRan(g.MatchOfWeek)
	},
)

// HockeyPolicy reads GameDay against a single-league snapshot. A stamped
// snapshot must belong to the league being evaluated.
var HockeyPolicy = NewPolicy( //nolint:gochecknoglobals // stateless policy value
	league.Hockey,
	func(ts model.HockeyTimestamp, l league.League) (model.Clock, bool) {
		if ts.League != league.Unknown && ts.League != l {
			return model.Clock{}, false
		}
		return ts.Clock(), true
	},
	func(g model.Game, ts model.HockeyTimestamp) (bool, bool) {
		return ts.SlotRan(g.GameDay)
	},
)
