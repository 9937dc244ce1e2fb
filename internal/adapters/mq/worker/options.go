package worker

import (
	"time"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/pkg/logger"
)

// Option applies a configuration option to the Applier.
type Option func(*Applier)

// WithLogger sets a custom logger for the applier.
func WithLogger(l logger.Logger) Option {
	return func(a *Applier) {
		if l != nil {
			a.logger = l
		}
	}
}

// PollerOption applies a configuration option to the Poller.
type PollerOption func(*Poller)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLeagues restricts polling to the given leagues.
func WithLeagues(leagues ...league.League) PollerOption {
	return func(p *Poller) {
		if len(leagues) > 0 {
			p.leagues = leagues
		}
	}
}

// WithPollerLogger sets a custom logger for the poller.
func WithPollerLogger(l logger.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
