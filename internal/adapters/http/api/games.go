package api

import (
	"fmt"
	"net/http"
	"strconv"

	service "github.com/okian/simreveal/internal/app"
	"github.com/okian/simreveal/internal/domain/model"
)

// GamesHandler serves masked schedules, reveal decisions and team
// schedules, and accepts schedule and team list replacements.
type GamesHandler struct {
	deps     Dependencies
	override func(*http.Request) (bool, error)
}

// NewGamesHandler creates a new games handler. override decides whether a
// request may bypass the clock.
func NewGamesHandler(deps Dependencies, override func(*http.Request) (bool, error)) *GamesHandler {
	return &GamesHandler{deps: deps, override: override}
}

type gameView struct {
	Game     model.Game `json:"game"`
	Revealed bool       `json:"revealed"`
	Reason   string     `json:"reason"`
}

type gamesResponse struct {
	League string     `json:"league"`
	Week   *int       `json:"week,omitempty"`
	Games  []gameView `json:"games"`
}

type revealResponse struct {
	League   string `json:"league"`
	GameID   uint   `json:"game_id"`
	Revealed bool   `json:"revealed"`
	Reason   string `json:"reason"`
}

type weeksResponse struct {
	League string `json:"league"`
	Weeks  []int  `json:"weeks"`
}

type scheduleEntry struct {
	Game       model.Game `json:"game"`
	OpponentID uint       `json:"opponent_id"`
	Opponent   string     `json:"opponent"`
	Home       bool       `json:"home"`
	Revealed   bool       `json:"revealed"`
	// Result is W, L or T from the team's side, empty while hidden or unplayed.
	Result string `json:"result,omitempty"`
}

type scheduleResponse struct {
	League  string          `json:"league"`
	TeamID  uint            `json:"team_id"`
	Next    int             `json:"next"`
	Entries []scheduleEntry `json:"entries"`
}

// HandleGetGames handles GET /v1/leagues/{league}/games[?week=N].
func (h *GamesHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	override, err := h.override(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := gamesResponse{League: l.String()}
	var views []service.GameView
	if raw := r.URL.Query().Get("week"); raw != "" {
		week, convErr := strconv.Atoi(raw)
		if convErr != nil || week < 1 {
			writeServiceError(w, fmt.Errorf("%w: invalid week %q", ErrBadRequest, raw))
			return
		}
		resp.Week = &week
		views, err = h.deps.WeekGames(r.Context(), l, week, override)
	} else {
		views, err = h.deps.Games(r.Context(), l, override)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.Games = make([]gameView, 0, len(views))
	for _, v := range views {
		resp.Games = append(resp.Games, gameView{Game: v.Game, Revealed: v.Revealed, Reason: string(v.Reason)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetReveal handles GET /v1/leagues/{league}/games/{gameID}/reveal.
func (h *GamesHandler) HandleGetReveal(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	gameID, err := idParam(r, "gameID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	override, err := h.override(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	d, err := h.deps.Reveal(r.Context(), l, gameID, override)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revealResponse{
		League:   l.String(),
		GameID:   gameID,
		Revealed: d.Revealed,
		Reason:   string(d.Reason),
	})
}

// HandleGetWeeks handles GET /v1/leagues/{league}/weeks.
func (h *GamesHandler) HandleGetWeeks(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	weeks, err := h.deps.Weeks(r.Context(), l)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if weeks == nil {
		weeks = []int{}
	}
	writeJSON(w, http.StatusOK, weeksResponse{League: l.String(), Weeks: weeks})
}

// HandleGetSchedule handles GET /v1/leagues/{league}/teams/{teamID}/schedule.
func (h *GamesHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	override, err := h.override(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	view, err := h.deps.TeamSchedule(r.Context(), l, teamID, override)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := scheduleResponse{
		League:  l.String(),
		TeamID:  view.TeamID,
		Next:    view.Next,
		Entries: make([]scheduleEntry, 0, len(view.Entries)),
	}
	for _, e := range view.Entries {
		entry := scheduleEntry{
			Game:       e.Game,
			OpponentID: e.OpponentID,
			Opponent:   e.Opponent,
			Home:       e.IsHome,
			Revealed:   e.Revealed,
		}
		if e.Revealed && e.Game.GameComplete {
			switch {
			case e.Game.Tied():
				entry.Result = "T"
			case e.Won():
				entry.Result = "W"
			default:
				entry.Result = "L"
			}
		}
		resp.Entries = append(resp.Entries, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePutGames handles PUT /v1/leagues/{league}/games. The body replaces
// the league's schedule.
func (h *GamesHandler) HandlePutGames(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var games []model.Game
	if err := decodeBody(w, r, &games); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.deps.SubmitGames(r.Context(), l, games); err != nil {
		writeServiceError(w, err)
		return
	}
	accepted(w, l)
}

// HandlePutTeams handles PUT /v1/leagues/{league}/teams.
func (h *GamesHandler) HandlePutTeams(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var teams []model.Team
	if err := decodeBody(w, r, &teams); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.deps.SubmitTeams(r.Context(), l, teams); err != nil {
		writeServiceError(w, err)
		return
	}
	accepted(w, l)
}
