// Package schedule derives display views from a season's games: a team's
// slice of the schedule, the next matchup, weekly groups and standings
// groups. Reveal decisions are delegated to a caller-supplied function.
//
// Absent inputs produce empty results, never errors.
package schedule

import (
	"sort"

	"github.com/okian/simreveal/internal/domain/model"
)

// Entry is one row of a team's schedule as seen from that team.
type Entry struct {
	Game       model.Game
	OpponentID uint
	Opponent   string
	IsHome     bool
	Revealed   bool
}

// Won reports whether the viewing team won. Only meaningful when Revealed.
func (e Entry) Won() bool {
	if e.IsHome {
		return e.Game.HomeTeamWin
	}
	return e.Game.AwayTeamWin
}

// Masked returns the entry with outcome fields cleared when it is not
// revealed.
func (e Entry) Masked() Entry {
	if !e.Revealed {
		e.Game = Mask(e.Game)
	}
	return e
}

// Mask clears a game's outcome fields. Completion stays visible so callers
// can tell "hidden" apart from "not played".
func Mask(g model.Game) model.Game {
	g.HomeTeamScore = 0
	g.AwayTeamScore = 0
	g.HomeTeamWin = false
	g.AwayTeamWin = false
	return g
}

// TeamIndex maps team IDs to abbreviations. When an ID appears twice the
// first entry wins.
func TeamIndex(teams []model.Team) map[uint]string {
	idx := make(map[uint]string, len(teams))
	for _, t := range teams {
		if _, ok := idx[t.ID]; ok {
			continue
		}
		idx[t.ID] = t.Abbr
	}
	return idx
}

// TeamSchedule returns the games teamID plays in input order with the
// opponent resolved through index. reveal may be nil, in which case every
// entry is hidden.
func TeamSchedule(teamID uint, games []model.Game, index map[uint]string, reveal func(model.Game) bool) []Entry {
	out := make([]Entry, 0)
	if teamID == 0 {
		return out
	}
	for _, g := range games {
		if !g.Involves(teamID) {
			continue
		}
		oppID, home := g.Opponent(teamID)
		e := Entry{
			Game:       g,
			OpponentID: oppID,
			Opponent:   opponentAbbr(g, oppID, home, index),
			IsHome:     home,
		}
		if reveal != nil {
			e.Revealed = reveal(g)
		}
		out = append(out, e)
	}
	return out
}

func opponentAbbr(g model.Game, oppID uint, home bool, index map[uint]string) string {
	if abbr, ok := index[oppID]; ok {
		return abbr
	}
	if home {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// NextGameIndex returns the index of the first game in schedule order that
// played reports as not yet played, or -1.
func NextGameIndex(games []model.Game, played func(model.Game) bool) int {
	if played == nil {
		return -1
	}
	for i, g := range games {
		if !played(g) {
			return i
		}
	}
	return -1
}

// NextEntryIndex is NextGameIndex over schedule entries.
func NextEntryIndex(entries []Entry, played func(model.Game) bool) int {
	if played == nil {
		return -1
	}
	for i, e := range entries {
		if !played(e.Game) {
			return i
		}
	}
	return -1
}

// GroupByWeek partitions games by week, keeping input order within a week.
func GroupByWeek(games []model.Game) map[int][]model.Game {
	groups := make(map[int][]model.Game)
	for _, g := range games {
		groups[g.Week] = append(groups[g.Week], g)
	}
	return groups
}

// Weeks returns the keys of a weekly grouping in ascending order.
func Weeks(groups map[int][]model.Game) []int {
	weeks := make([]int, 0, len(groups))
	for w := range groups {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// CurrentMatchups returns the games scheduled in week.
func CurrentMatchups(games []model.Game, week int) []model.Game {
	out := make([]model.Game, 0)
	for _, g := range games {
		if g.Week == week {
			out = append(out, g)
		}
	}
	return out
}

// SeasonToDate returns the games scheduled up to and including week.
func SeasonToDate(games []model.Game, week int) []model.Game {
	out := make([]model.Game, 0)
	for _, g := range games {
		if g.Week <= week {
			out = append(out, g)
		}
	}
	return out
}
