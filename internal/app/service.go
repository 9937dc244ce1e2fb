// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/simreveal/internal/adapters/mq/queue"
	"github.com/okian/simreveal/internal/adapters/mq/worker"
	"github.com/okian/simreveal/internal/adapters/repository"
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/internal/domain/schedule"
	"github.com/okian/simreveal/pkg/logger"
	"github.com/okian/simreveal/pkg/metrics"
)

const (
	defaultQueueSize    = 1024
	defaultPollInterval = 5 * time.Second
	stopTimeout         = 5 * time.Second
)

// GameView is a game as the caller may see it: outcome fields are zeroed
// unless Revealed.
type GameView struct {
	Game     model.Game
	Revealed bool
	Reason   reveal.Reason
}

// ScheduleView is one team's schedule with the next matchup located.
type ScheduleView struct {
	TeamID  uint
	Entries []schedule.Entry
	// Next is the index into Entries of the next matchup, or -1.
	Next int
}

// Service implements the API dependencies for the reveal service.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	updates *queue.InMemoryQueue
	engine  *reveal.Engine
	applier *worker.Applier
	poller  *worker.Poller
	source  worker.Fetcher

	// Configuration
	queueSize    int
	pollInterval time.Duration

	// State
	started    bool
	cancel     context.CancelFunc
	pollCancel context.CancelFunc
	pollWG     sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:    defaultQueueSize,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.updates = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	engineOpts := []reveal.Option{reveal.WithObserver(observeDecision)}
	if s.logger != nil {
		engineOpts = append(engineOpts, reveal.WithLogger(s.logger.Named("reveal")))
	}
	s.engine = reveal.New(engineOpts...)
	return s
}

func observeDecision(d reveal.Decision) {
	metrics.RecordRevealDecision(d.League.String(), string(d.Reason), d.Revealed, d.Reason.FailClosed())
}

// Start launches the applier and, when a source is configured, the poller.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.updates.IsClosed() {
		return ErrStopped
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting reveal service...")

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.applier = worker.NewApplier(s.updates, s.store, worker.WithLogger(s.logger.Named("applier")))
	go s.applier.Run(runCtx)

	if s.source != nil {
		pollCtx, pollCancel := context.WithCancel(runCtx)
		s.pollCancel = pollCancel
		s.poller = worker.NewPoller(s.source, s.updates,
			worker.WithInterval(s.pollInterval),
			worker.WithPollerLogger(s.logger.Named("poller")),
		)
		s.pollWG.Add(1)
		go func() {
			defer s.pollWG.Done()
			s.poller.Run(pollCtx)
		}()
	}

	s.started = true
	s.logger.Info(ctx, "reveal service started",
		logger.Int("queueSize", s.queueSize),
		logger.Bool("poller", s.source != nil),
	)
	return nil
}

// Stop closes the update queue, lets the applier drain it and stops the
// poller.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping reveal service...")

	// poller first so nothing enqueues after the close
	if s.pollCancel != nil {
		s.pollCancel()
		s.pollWG.Wait()
	}
	_ = s.updates.Close()

	select {
	case <-s.applier.Done():
	case <-time.After(stopTimeout):
		s.logger.Warn(ctx, "applier did not drain before timeout")
	}
	shutdownCtx, done := context.WithTimeout(ctx, stopTimeout)
	defer done()
	if err := s.applier.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "applier did not stop cleanly", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "reveal service stopped")
}

// Timestamp returns the clock snapshot serving l.
func (s *Service) Timestamp(ctx context.Context, l league.League) (repository.Snapshot, error) {
	return s.store.Timestamp(ctx, l)
}

// snapshot returns the clock for l or nil when none has been published,
// which makes every non-override reveal fail closed.
func (s *Service) snapshot(ctx context.Context, l league.League) (model.Timestamp, error) {
	snap, err := s.store.Timestamp(ctx, l)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Timestamp, nil
}

// Reveal evaluates one game against the current clock.
func (s *Service) Reveal(ctx context.Context, l league.League, gameID uint, override bool) (reveal.Decision, error) {
	games, err := s.store.Games(ctx, l)
	if err != nil {
		return reveal.Decision{}, err
	}
	ts, err := s.snapshot(ctx, l)
	if err != nil {
		return reveal.Decision{}, err
	}
	for _, g := range games {
		if g.ID == gameID {
			return s.engine.Evaluate(g, ts, l, override), nil
		}
	}
	return reveal.Decision{}, fmt.Errorf("%w: %s game %d", repository.ErrNotFound, l, gameID)
}

// Games returns every game of l with outcomes masked per the clock.
func (s *Service) Games(ctx context.Context, l league.League, override bool) ([]GameView, error) {
	return s.games(ctx, l, override, nil)
}

// WeekGames returns the games of one week.
func (s *Service) WeekGames(ctx context.Context, l league.League, week int, override bool) ([]GameView, error) {
	return s.games(ctx, l, override, func(all []model.Game) []model.Game {
		return schedule.CurrentMatchups(all, week)
	})
}

func (s *Service) games(ctx context.Context, l league.League, override bool, filter func([]model.Game) []model.Game) ([]GameView, error) {
	all, err := s.store.Games(ctx, l)
	if err != nil {
		return nil, err
	}
	ts, err := s.snapshot(ctx, l)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		all = filter(all)
	}

	out := make([]GameView, 0, len(all))
	for _, g := range all {
		d := s.engine.Evaluate(g, ts, l, override)
		if !d.Revealed {
			g = schedule.Mask(g)
		}
		out = append(out, GameView{Game: g, Revealed: d.Revealed, Reason: d.Reason})
	}
	return out, nil
}

// Weeks lists the weeks l has games in, ascending.
func (s *Service) Weeks(ctx context.Context, l league.League) ([]int, error) {
	games, err := s.store.Games(ctx, l)
	if err != nil {
		return nil, err
	}
	return schedule.Weeks(schedule.GroupByWeek(games)), nil
}

// TeamSchedule returns teamID's games with masked outcomes and the index of
// the next matchup. A missing team list only affects opponent labels.
func (s *Service) TeamSchedule(ctx context.Context, l league.League, teamID uint, override bool) (ScheduleView, error) {
	games, err := s.store.Games(ctx, l)
	if err != nil {
		return ScheduleView{}, err
	}
	teams, err := s.store.Teams(ctx, l)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return ScheduleView{}, err
	}
	ts, err := s.snapshot(ctx, l)
	if err != nil {
		return ScheduleView{}, err
	}

	entries := schedule.TeamSchedule(teamID, games, schedule.TeamIndex(teams), func(g model.Game) bool {
		return s.engine.Reveal(g, ts, l, override)
	})
	loc := schedule.Locator{Engine: s.engine, League: l, Timestamp: ts}
	next := loc.Next(entries)
	for i := range entries {
		entries[i] = entries[i].Masked()
	}
	return ScheduleView{TeamID: teamID, Entries: entries, Next: next}, nil
}

// Standings groups l's table by key. When order is empty it is derived from
// the team list, falling back to the rows themselves.
func (s *Service) Standings(ctx context.Context, l league.League, key schedule.GroupKey, order []string) ([]schedule.StandingsGroup, error) {
	rows, err := s.store.Standings(ctx, l)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		teams, err := s.store.Teams(ctx, l)
		switch {
		case err == nil:
			order = schedule.GroupOrder(teams, key)
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
		if len(order) == 0 {
			order = schedule.StandingsOrder(rows, key)
		}
	}
	return schedule.GroupStandings(rows, order, key), nil
}

// SubmitTimestamp queues a clock advance for l.
func (s *Service) SubmitTimestamp(ctx context.Context, l league.League, ts model.Timestamp) error {
	if err := checkTimestamp(l, ts); err != nil {
		return err
	}
	return s.Submit(ctx, queue.Update{League: l, Timestamp: ts, Source: queue.SourceAPI})
}

// SubmitGames queues a schedule replacement for l.
func (s *Service) SubmitGames(ctx context.Context, l league.League, games []model.Game) error {
	if games == nil {
		games = []model.Game{}
	}
	return s.Submit(ctx, queue.Update{League: l, Games: games, Source: queue.SourceAPI})
}

// SubmitStandings queues a standings replacement for l.
func (s *Service) SubmitStandings(ctx context.Context, l league.League, rows []model.Standing) error {
	if rows == nil {
		rows = []model.Standing{}
	}
	return s.Submit(ctx, queue.Update{League: l, Standings: rows, Source: queue.SourceAPI})
}

// SubmitTeams queues a team list replacement for l.
func (s *Service) SubmitTeams(ctx context.Context, l league.League, teams []model.Team) error {
	if teams == nil {
		teams = []model.Team{}
	}
	return s.Submit(ctx, queue.Update{League: l, Teams: teams, Source: queue.SourceAPI})
}

// Submit validates and enqueues an update without blocking.
func (s *Service) Submit(ctx context.Context, u queue.Update) error { //nolint:gocritic // hugeParam: Update is passed by value through the queue
	if !u.League.Valid() {
		return fmt.Errorf("%w: %s", league.ErrInvalidLeague, u.League)
	}
	if u.Empty() {
		return ErrEmptyUpdate
	}
	if u.Timestamp != nil {
		if err := checkTimestamp(u.League, u.Timestamp); err != nil {
			return err
		}
	}
	if s.updates.IsClosed() {
		return ErrStopped
	}
	if !s.updates.Enqueue(ctx, u) {
		return ErrBackpressure
	}
	return nil
}

func checkTimestamp(l league.League, ts model.Timestamp) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %s", league.ErrInvalidLeague, l)
	}
	if ts == nil || ts.Family() != l.Family() {
		return fmt.Errorf("%w: %s", repository.ErrFamilyMismatch, l)
	}
	if h, ok := ts.(model.HockeyTimestamp); ok && h.League != league.Unknown && h.League != l {
		return fmt.Errorf("%w: snapshot stamped %s, submitted for %s", repository.ErrFamilyMismatch, h.League, l)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	st := s.store.Stats(ctx)
	stats := map[string]interface{}{
		"started":       s.started,
		"queueCapacity": s.updates.Cap(),
		"queueLength":   s.updates.Len(ctx),
		"poller":        s.source != nil,
		"timestamps":    st.Timestamps,
		"gameSets":      st.GameSets,
		"games":         st.Games,
		"standings":     st.Standings,
		"teams":         st.Teams,
	}
	if s.applier != nil {
		as := s.applier.Stats()
		stats["applied"] = as.Applied
		stats["applyFailures"] = as.Failed
	}
	return stats
}
