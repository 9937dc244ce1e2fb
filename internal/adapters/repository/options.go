package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithVersioner sets the version generator. Defaults to random UUIDs.
func WithVersioner(next func() string) Option {
	return func(s *MemStore) {
		if next != nil {
			s.version = next
		}
	}
}

// SourceOption applies a configuration option to the RedisSource.
type SourceOption func(*RedisSource)

// WithKeyPrefix sets the key namespace. Defaults to "simreveal".
func WithKeyPrefix(prefix string) SourceOption {
	return func(s *RedisSource) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}
