package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
)

const defaultKeyPrefix = "simreveal"

// Payload is one league's worth of feed data. Nil slices mean the key was
// absent and the stored value should be kept.
type Payload struct {
	League    league.League
	Timestamp model.Timestamp
	Games     []model.Game
	Standings []model.Standing
	Teams     []model.Team
	// Hash fingerprints the raw payload so unchanged reads can be skipped.
	Hash uint64
}

// RedisSource reads league snapshots published by the simulation into
// Redis. It never writes.
type RedisSource struct {
	client redis.Cmdable
	prefix string
}

// NewRedisSource wraps a go-redis client.
func NewRedisSource(client redis.Cmdable, opts ...SourceOption) *RedisSource {
	s := &RedisSource{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key holding kind for l.
func (s *RedisSource) Key(kind string, l league.League) string {
	return s.prefix + ":" + kind + ":" + l.String()
}

// ClockKey returns the Redis key holding the clock serving l. Football and
// basketball leagues share one family key, matching the shared store slot;
// each hockey league has its own.
func (s *RedisSource) ClockKey(l league.League) string {
	return s.prefix + ":" + kindTimestamp + ":" + timestampKey(l)
}

// Fetch reads every key of l in one round trip. A missing timestamp key
// is ErrNotFound; the other keys are optional.
func (s *RedisSource) Fetch(ctx context.Context, l league.League) (Payload, error) {
	if err := checkLeague(l); err != nil {
		return Payload{}, err
	}
	keys := []string{
		s.ClockKey(l),
		s.Key(kindGames, l),
		s.Key(kindStandings, l),
		s.Key(kindTeams, l),
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if errors.Is(err, redis.Nil) {
		return Payload{}, fmt.Errorf("%w: %s", ErrNotFound, keys[0])
	}
	if err != nil {
		return Payload{}, fmt.Errorf("redis mget %s: %w", l, err)
	}
	if len(vals) != len(keys) {
		return Payload{}, fmt.Errorf("%w: mget returned %d values", ErrDecode, len(vals))
	}

	raw := make([]string, len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return Payload{}, fmt.Errorf("%w: %s is %T", ErrDecode, keys[i], v)
		}
		raw[i] = str
	}
	if vals[0] == nil {
		return Payload{}, fmt.Errorf("%w: %s", ErrNotFound, keys[0])
	}

	p := Payload{League: l, Hash: fingerprint(raw)}
	if p.Timestamp, err = model.DecodeTimestamp(l, []byte(raw[0])); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if p.Games, err = decodeOptional[model.Game](vals[1], raw[1]); err != nil {
		return Payload{}, fmt.Errorf("%w: %s: %w", ErrDecode, keys[1], err)
	}
	if p.Standings, err = decodeOptional[model.Standing](vals[2], raw[2]); err != nil {
		return Payload{}, fmt.Errorf("%w: %s: %w", ErrDecode, keys[2], err)
	}
	if p.Teams, err = decodeOptional[model.Team](vals[3], raw[3]); err != nil {
		return Payload{}, fmt.Errorf("%w: %s: %w", ErrDecode, keys[3], err)
	}
	return p, nil
}

func decodeOptional[T any](present any, raw string) ([]T, error) {
	if present == nil {
		return nil, nil
	}
	out := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fingerprint(parts []string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
