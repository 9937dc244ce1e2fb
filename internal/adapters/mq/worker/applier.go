// Package worker drains snapshot updates into the store and polls the
// external feed for new ones.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/simreveal/internal/adapters/mq/queue"
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/pkg/logger"
	"github.com/okian/simreveal/pkg/metrics"
)

// Writer is the part of the store the applier needs.
type Writer interface {
	PutTimestamp(ctx context.Context, l league.League, ts model.Timestamp) (string, error)
	PutGames(ctx context.Context, l league.League, games []model.Game) (string, error)
	PutStandings(ctx context.Context, l league.League, rows []model.Standing) (string, error)
	PutTeams(ctx context.Context, l league.League, teams []model.Team) (string, error)
}

// Queue defines how the applier receives updates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Update
}

// ApplierStats counts what the applier has done so far.
type ApplierStats struct {
	Applied int64
	Failed  int64
}

// Applier writes queued updates to the store from a single goroutine so
// that updates for a league land in arrival order.
type Applier struct {
	queue  Queue
	writer Writer

	applied atomic.Int64
	failed  atomic.Int64

	shutdown chan struct{}
	done     chan struct{}
	stopped  atomic.Bool

	logger logger.Logger
}

// NewApplier creates an applier with configuration options.
func NewApplier(q Queue, w Writer, opts ...Option) *Applier {
	a := &Applier{
		queue:    q,
		writer:   w,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("applier"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run applies updates until ctx is cancelled, Shutdown is called or the
// queue is closed and drained.
func (a *Applier) Run(ctx context.Context) {
	defer close(a.done)

	updates := a.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.shutdown:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := a.Apply(ctx, u); err != nil {
				a.logger.Error(ctx, "error applying update",
					logger.String("league", u.League.String()),
					logger.String("source", u.Source),
					logger.Error(err),
				)
			}
		}
	}
}

// Apply writes one update. Teams, standings and games are written before
// the clock so an advanced clock never points at a stale schedule.
func (a *Applier) Apply(ctx context.Context, u queue.Update) error { //nolint:gocritic // hugeParam: Update is passed by value through the queue
	start := time.Now()
	defer func() {
		metrics.RecordApplyLatency(float64(time.Since(start).Milliseconds()))
	}()

	var errs []error
	if u.Teams != nil {
		if _, err := a.writer.PutTeams(ctx, u.League, u.Teams); err != nil {
			errs = append(errs, fmt.Errorf("teams: %w", err))
		}
	}
	if u.Standings != nil {
		if _, err := a.writer.PutStandings(ctx, u.League, u.Standings); err != nil {
			errs = append(errs, fmt.Errorf("standings: %w", err))
		}
	}
	if u.Games != nil {
		if _, err := a.writer.PutGames(ctx, u.League, u.Games); err != nil {
			errs = append(errs, fmt.Errorf("games: %w", err))
		}
	}
	if u.Timestamp != nil {
		version, err := a.writer.PutTimestamp(ctx, u.League, u.Timestamp)
		if err != nil {
			errs = append(errs, fmt.Errorf("timestamp: %w", err))
		} else {
			a.logger.Debug(ctx, "clock advanced",
				logger.String("league", u.League.String()),
				logger.String("version", version),
			)
		}
	}

	if err := errors.Join(errs...); err != nil {
		a.failed.Add(1)
		metrics.RecordApplyError()
		return err
	}
	a.applied.Add(1)
	return nil
}

// Stats returns the applier counters.
func (a *Applier) Stats() ApplierStats {
	return ApplierStats{Applied: a.applied.Load(), Failed: a.failed.Load()}
}

// Done is closed once Run has returned.
func (a *Applier) Done() <-chan struct{} { return a.done }

// Shutdown stops the applier and waits for the loop to exit.
func (a *Applier) Shutdown(ctx context.Context) error {
	if a.stopped.CompareAndSwap(false, true) {
		close(a.shutdown)
	}
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		a.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
