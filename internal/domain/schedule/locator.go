package schedule

import (
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/reveal"
)

// Locator binds the next-matchup scan to a league and snapshot.
type Locator struct {
	Engine    *reveal.Engine
	League    league.League
	Timestamp model.Timestamp
}

// Played returns the predicate used by NextGameIndex. Basketball uses the
// week gate at the snapshot's current week. The other families treat a game
// as played once it is behind the clock and its result would be revealed
// without override; a current or later week game is never played.
func (l Locator) Played() func(model.Game) bool {
	engine := l.Engine
	if engine == nil {
		engine = reveal.New()
	}
	if bts, ok := l.Timestamp.(model.BasketballTimestamp); ok && l.League.Family() == league.Basketball {
		week := bts.ClockFor(l.League.Tier()).Week
		return func(g model.Game) bool {
			return engine.WeekGate(g, bts, l.League, week)
		}
	}
	clock, known := engine.Clock(l.Timestamp, l.League)
	return func(g model.Game) bool {
		if known && !behind(g, clock) {
			return false
		}
		return engine.Reveal(g, l.Timestamp, l.League, false)
	}
}

func behind(g model.Game, c model.Clock) bool {
	return g.SeasonID < c.SeasonID || (g.SeasonID == c.SeasonID && g.Week < c.Week)
}

// Next returns the index of the next matchup in entries, or -1.
func (l Locator) Next(entries []Entry) int {
	return NextEntryIndex(entries, l.Played())
}
