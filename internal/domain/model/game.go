// Package model contains domain models passed between layers.
package model

// Game is one scheduled matchup. Week and SeasonID are fixed at schedule
// generation; GameComplete flips false->true once, set by the simulation.
// Only the slot field matching the game's sport family is populated.
type Game struct {
	ID         uint
	HomeTeamID uint
	AwayTeamID uint
	HomeTeam   string
	AwayTeam   string

	Week         int
	SeasonID     int
	GameComplete bool

	TimeSlot    FootballSlot   `json:",omitempty"`
	MatchOfWeek BasketballSlot `json:",omitempty"`
	GameDay     HockeyDay      `json:",omitempty"`

	HomeTeamWin   bool
	AwayTeamWin   bool
	HomeTeamScore int
	AwayTeamScore int
}

// Involves reports whether teamID plays in g.
func (g Game) Involves(teamID uint) bool {
	return teamID != 0 && (g.HomeTeamID == teamID || g.AwayTeamID == teamID)
}

// Opponent returns the other side of the matchup from teamID's view and
// whether teamID is the home team.
func (g Game) Opponent(teamID uint) (opponentID uint, home bool) {
	if g.HomeTeamID == teamID {
		return g.AwayTeamID, true
	}
	return g.HomeTeamID, false
}

// Tied reports a final with neither side flagged as winner.
func (g Game) Tied() bool {
	return !g.HomeTeamWin && !g.AwayTeamWin
}

// Team is the minimal team shape needed to resolve abbreviations and groups.
type Team struct {
	ID         uint
	Abbr       string
	Name       string
	Conference string
	Division   string
}

// Standing is one row of a league table, already ordered upstream.
type Standing struct {
	TeamID     uint
	Team       string
	Conference string
	Division   string
	Wins       int
	Losses     int
	Ties       int
	WinPct     float64
}
