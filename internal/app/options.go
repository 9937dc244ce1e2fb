package service

import (
	"time"

	"github.com/okian/simreveal/internal/adapters/mq/worker"
	"github.com/okian/simreveal/internal/adapters/repository"
	"github.com/okian/simreveal/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending updates.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource enables the feed poller over the given source.
func WithSource(src worker.Fetcher) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithPollInterval sets the feed poll period.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}
