// Package reveal decides whether a scheduled game's result may be shown
// for a given simulation clock.
//
// Every family follows the same gate order: override, family check, season
// and week comparison, slot flag, completion. Anything the engine cannot
// place fails closed: hiding a finished game briefly is acceptable, showing
// a result before its slot has aired is not.
package reveal

import (
	"context"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/pkg/logger"
)

// Reason explains a Decision.
type Reason string

const (
	ReasonOverride       Reason = "override"
	ReasonFamilyMismatch Reason = "family_mismatch"
	ReasonPast           Reason = "past"
	ReasonFutureSeason   Reason = "future_season"
	ReasonUnknownSlot    Reason = "unknown_slot"
	ReasonSlotPending    Reason = "slot_pending"
	ReasonIncomplete     Reason = "incomplete"
	ReasonSlotRan        Reason = "slot_ran"
)

// FailClosed reports whether the reason is a precondition violation rather
// than an ordinary timing outcome.
func (r Reason) FailClosed() bool {
	return r == ReasonFamilyMismatch || r == ReasonUnknownSlot
}

// Decision is the outcome of one reveal evaluation.
type Decision struct {
	League   league.League
	GameID   uint
	Revealed bool
	Reason   Reason
}

// Engine evaluates reveal decisions. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	policies map[league.Family]RevealPolicy
	observer func(Decision)
	logger   logger.Logger
}

// New creates an engine with the football, basketball and hockey policies.
func New(opts ...Option) *Engine {
	e := &Engine{
		policies: map[league.Family]RevealPolicy{
			league.Football:   FootballPolicy,
			league.Basketball: BasketballPolicy,
			league.Hockey:     HockeyPolicy,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reveal reports whether g's result may be shown.
func (e *Engine) Reveal(g model.Game, ts model.Timestamp, l league.League, override bool) bool {
	return e.Evaluate(g, ts, l, override).Revealed
}

// Evaluate runs the reveal gates and returns the decision with its reason.
func (e *Engine) Evaluate(g model.Game, ts model.Timestamp, l league.League, override bool) Decision {
	d := e.evaluate(g, ts, l, override)
	d.League = l
	d.GameID = g.ID
	if e.observer != nil {
		e.observer(d)
	}
	return d
}

func (e *Engine) evaluate(g model.Game, ts model.Timestamp, l league.League, override bool) Decision {
	if override {
		return Decision{Revealed: true, Reason: ReasonOverride}
	}

	policy, ok := e.policies[l.Family()]
	if !ok || ts == nil || ts.Family() != l.Family() {
		e.warn("timestamp does not match league family", g, l)
		return Decision{Reason: ReasonFamilyMismatch}
	}
	clock, ok := policy.Clock(ts, l)
	if !ok {
		e.warn("timestamp does not serve league", g, l)
		return Decision{Reason: ReasonFamilyMismatch}
	}

	// No slot flags exist for a season that has not begun.
	if g.SeasonID > clock.SeasonID {
		return Decision{Reason: ReasonFutureSeason}
	}
	if g.Week < clock.Week || g.SeasonID < clock.SeasonID {
		return Decision{Revealed: true, Reason: ReasonPast}
	}

	ran, known := policy.SlotRan(g, ts)
	switch {
	case !known:
		e.debug("unrecognized slot", g, l)
		return Decision{Reason: ReasonUnknownSlot}
	case !ran:
		return Decision{Reason: ReasonSlotPending}
	case !g.GameComplete:
		return Decision{Reason: ReasonIncomplete}
	default:
		return Decision{Revealed: true, Reason: ReasonSlotRan}
	}
}

// WeekGate is the basketball next-game locator check. It reports whether g
// counts as already attempted relative to currentWeek. Unlike Reveal, slot
// A is checked with inverted polarity: an A game counts only while
// GamesARan is still false.
func (e *Engine) WeekGate(g model.Game, ts model.BasketballTimestamp, l league.League, currentWeek int) bool {
	if l.Family() != league.Basketball {
		e.warn("week gate called for non-basketball league", g, l)
		return false
	}
	clock := ts.ClockFor(l.Tier())
	if g.Week < currentWeek || g.SeasonID < clock.SeasonID {
		return true
	}
	ran, known := ts.SlotRan(g.MatchOfWeek)
	if !known {
		return false
	}
	if g.MatchOfWeek == model.MatchA {
		ran = !ran
	}
	return ran && g.GameComplete
}

// Clock resolves the tier clock ts holds for l. ok is false when ts cannot
// serve l.
func (e *Engine) Clock(ts model.Timestamp, l league.League) (model.Clock, bool) {
	policy, ok := e.policies[l.Family()]
	if !ok || ts == nil {
		return model.Clock{}, false
	}
	return policy.Clock(ts, l)
}

func (e *Engine) warn(msg string, g model.Game, l league.League) {
	if e.logger == nil {
		return
	}
	e.logger.Warn(context.Background(), msg,
		logger.Int("game_id", int(g.ID)), //nolint:gosec // ids are small
		logger.String("league", l.String()),
	)
}

func (e *Engine) debug(msg string, g model.Game, l league.League) {
	if e.logger == nil {
		return
	}
	e.logger.Debug(context.Background(), msg,
		logger.Int("game_id", int(g.ID)), //nolint:gosec // ids are small
		logger.String("league", l.String()),
	)
}

var std = New() //nolint:gochecknoglobals // stateless default engine

// RevealFootballOrBasketball applies the display reveal rules to a football
// or basketball game. Hockey leagues fail closed here.
func RevealFootballOrBasketball(g model.Game, ts model.Timestamp, l league.League, override bool) bool {
	if l.Family() == league.Hockey {
		return override
	}
	return std.Reveal(g, ts, l, override)
}

// RevealHockey applies the display reveal rules to a hockey game using the
// league stamped on the snapshot. An unstamped snapshot still runs the time
// gates; its tier is unknown, so day C fails closed.
func RevealHockey(g model.Game, ts model.HockeyTimestamp, override bool) bool {
	l := ts.League
	if l == league.Unknown {
		l = league.CollegeHockey
	}
	return std.Reveal(g, ts, l, override)
}

// RevealBasketballWeekGate is WeekGate on the default engine.
func RevealBasketballWeekGate(g model.Game, ts model.BasketballTimestamp, l league.League, currentWeek int) bool {
	return std.WeekGate(g, ts, l, currentWeek)
}
