package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/simreveal/internal/adapters/mq/queue"
	"github.com/okian/simreveal/internal/adapters/repository"
	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/pkg/logger"
	"github.com/okian/simreveal/pkg/metrics"
)

const defaultPollInterval = 5 * time.Second

// Fetch results, used as metric labels.
const (
	fetchChanged      = "changed"
	fetchUnchanged    = "unchanged"
	fetchMissing      = "missing"
	fetchError        = "error"
	fetchBackpressure = "backpressure"
)

// Fetcher reads one league's payload from the external feed.
type Fetcher interface {
	Fetch(ctx context.Context, l league.League) (repository.Payload, error)
}

// Enqueuer accepts updates without blocking.
type Enqueuer interface {
	Enqueue(ctx context.Context, u queue.Update) bool
}

// Poller watches the external feed and enqueues an update whenever a
// league's payload changes.
type Poller struct {
	source   Fetcher
	queue    Enqueuer
	interval time.Duration
	leagues  []league.League

	mu   sync.Mutex
	seen map[league.League]uint64

	logger logger.Logger
}

// NewPoller creates a poller over every supported league.
func NewPoller(source Fetcher, q Enqueuer, opts ...PollerOption) *Poller {
	p := &Poller{
		source:   source,
		queue:    q,
		interval: defaultPollInterval,
		leagues:  league.All(),
		seen:     make(map[league.League]uint64),
		logger:   logger.Get().Named("poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls once immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info(ctx, "poller started", logger.String("interval", p.interval.String()))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "poller stopped")
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches every league once and returns how many updates it enqueued.
// A payload rejected by the queue is retried on the next round.
func (p *Poller) Poll(ctx context.Context) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	enqueued := 0
	for _, l := range p.leagues {
		if ctx.Err() != nil {
			return enqueued
		}
		result := p.pollLeague(ctx, l)
		metrics.RecordPollerFetch(l.String(), result)
		if result == fetchChanged {
			enqueued++
		}
	}
	return enqueued
}

func (p *Poller) pollLeague(ctx context.Context, l league.League) string {
	payload, err := p.source.Fetch(ctx, l)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fetchMissing
	case err != nil:
		p.logger.Warn(ctx, "feed fetch failed", logger.String("league", l.String()), logger.Error(err))
		return fetchError
	}

	if last, ok := p.seen[l]; ok && last == payload.Hash {
		return fetchUnchanged
	}

	u := queue.Update{
		League:    l,
		Timestamp: payload.Timestamp,
		Games:     payload.Games,
		Standings: payload.Standings,
		Teams:     payload.Teams,
		Source:    queue.SourcePoller,
	}
	if !p.queue.Enqueue(ctx, u) {
		p.logger.Warn(ctx, "update queue rejected feed payload", logger.String("league", l.String()))
		return fetchBackpressure
	}
	p.seen[l] = payload.Hash
	metrics.UpdatePollerLastChange(time.Now().Unix())
	return fetchChanged
}
