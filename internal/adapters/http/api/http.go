// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/simreveal/internal/adapters/repository"
	service "github.com/okian/simreveal/internal/app"
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/internal/domain/schedule"
	"github.com/okian/simreveal/pkg/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxBodyBytes          = 8 << 20

	// AdminTokenHeader carries the token that unlocks override reads.
	AdminTokenHeader = "X-Admin-Token"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Timestamp(ctx context.Context, l league.League) (repository.Snapshot, error)
	Reveal(ctx context.Context, l league.League, gameID uint, override bool) (reveal.Decision, error)
	Games(ctx context.Context, l league.League, override bool) ([]service.GameView, error)
	WeekGames(ctx context.Context, l league.League, week int, override bool) ([]service.GameView, error)
	Weeks(ctx context.Context, l league.League) ([]int, error)
	TeamSchedule(ctx context.Context, l league.League, teamID uint, override bool) (service.ScheduleView, error)
	Standings(ctx context.Context, l league.League, key schedule.GroupKey, order []string) ([]schedule.StandingsGroup, error)

	// Writes are queued; they return service.ErrBackpressure when full.
	SubmitTimestamp(ctx context.Context, l league.League, ts model.Timestamp) error
	SubmitGames(ctx context.Context, l league.League, games []model.Game) error
	SubmitStandings(ctx context.Context, l league.League, rows []model.Standing) error
	SubmitTeams(ctx context.Context, l league.League, teams []model.Team) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	clockHandler     *ClockHandler
	gamesHandler     *GamesHandler
	standingsHandler *StandingsHandler

	adminToken     string
	corsOrigins    []string
	requestTimeout time.Duration
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		corsOrigins:    []string{"*"},
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.clockHandler = NewClockHandler(deps)
	s.gamesHandler = NewGamesHandler(deps, s.overrideGate)
	s.standingsHandler = NewStandingsHandler(deps)
	return s
}

// Handler builds the chi router with middleware and all routes attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

// Register attaches middleware and all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", AdminTokenHeader},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/v1/leagues/{league}", func(r chi.Router) {
		r.Get("/timestamp", s.clockHandler.HandleGetTimestamp)
		r.Put("/timestamp", s.clockHandler.HandlePutTimestamp)

		r.Get("/games", s.gamesHandler.HandleGetGames)
		r.Put("/games", s.gamesHandler.HandlePutGames)
		r.Get("/games/{gameID}/reveal", s.gamesHandler.HandleGetReveal)
		r.Get("/weeks", s.gamesHandler.HandleGetWeeks)
		r.Get("/teams/{teamID}/schedule", s.gamesHandler.HandleGetSchedule)
		r.Put("/teams", s.gamesHandler.HandlePutTeams)

		r.Get("/standings", s.standingsHandler.HandleGetStandings)
		r.Put("/standings", s.standingsHandler.HandlePutStandings)
	})
}

// overrideGate reports whether r asked for an override read and is allowed
// to. Without a configured admin token, or with the wrong one, the request
// is served as a normal read.
func (s *Server) overrideGate(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("override")
	if raw == "" {
		return false, nil
	}
	want, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: override must be a boolean", ErrBadRequest)
	}
	if !want {
		return false, nil
	}
	if s.adminToken == "" || r.Header.Get(AdminTokenHeader) != s.adminToken {
		s.logger.Debug(r.Context(), "override ignored without admin token", logger.String("path", r.URL.Path))
		return false, nil
	}
	return true, nil
}

type ackResponse struct {
	Status string `json:"status"`
	League string `json:"league"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain and service errors into responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, league.ErrInvalidLeague),
		errors.Is(err, model.ErrTimestampShape),
		errors.Is(err, repository.ErrFamilyMismatch),
		errors.Is(err, service.ErrEmptyUpdate):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, service.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

// leagueParam decodes the {league} path segment.
func leagueParam(r *http.Request) (league.League, error) {
	return league.Parse(chi.URLParam(r, "league"))
}

// idParam decodes a positive numeric path segment.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return uint(id), nil
}

// decodeBody reads a JSON request body into v, capped at maxBodyBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func accepted(w http.ResponseWriter, l league.League) {
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", League: l.String()})
}
