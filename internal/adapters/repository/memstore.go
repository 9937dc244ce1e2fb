package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/pkg/metrics"
)

// Snapshot kinds, used as metric labels.
const (
	kindTimestamp = "timestamp"
	kindGames     = "games"
	kindStandings = "standings"
	kindTeams     = "teams"
)

type versioned[T any] struct {
	items     []T
	version   string
	updatedAt time.Time
}

// MemStore is the in-memory Store. Values are swapped under a write lock
// and never mutated in place; readers get copies.
type MemStore struct {
	mu sync.RWMutex

	timestamps map[string]Snapshot
	games      map[league.League]versioned[model.Game]
	standings  map[league.League]versioned[model.Standing]
	teams      map[league.League]versioned[model.Team]

	now     func() time.Time
	version func() string
}

var _ Store = (*MemStore)(nil)

// NewMemStore constructs an empty store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		timestamps: make(map[string]Snapshot),
		games:      make(map[league.League]versioned[model.Game]),
		standings:  make(map[league.League]versioned[model.Standing]),
		teams:      make(map[league.League]versioned[model.Team]),
		now:        time.Now,
		version:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestampKey returns the slot a league's clock lives in.
func timestampKey(l league.League) string {
	if l.Family() == league.Hockey {
		return l.String()
	}
	return l.Family().String()
}

func checkLeague(l league.League) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %d", league.ErrInvalidLeague, int(l))
	}
	return nil
}

// PutTimestamp implements Store.PutTimestamp. A hockey snapshot without a
// league stamp is stamped with l; a stamp naming another league is refused.
func (s *MemStore) PutTimestamp(ctx context.Context, l league.League, ts model.Timestamp) (string, error) {
	if err := checkLeague(l); err != nil {
		return "", err
	}
	if ts == nil || ts.Family() != l.Family() {
		return "", fmt.Errorf("%w: %s", ErrFamilyMismatch, l)
	}
	if h, ok := ts.(model.HockeyTimestamp); ok {
		switch h.League {
		case league.Unknown:
			h.League = l
			ts = h
		case l:
		default:
			return "", fmt.Errorf("%w: snapshot stamped %s, put for %s", ErrFamilyMismatch, h.League, l)
		}
	}

	snap := Snapshot{Timestamp: ts, Version: s.version(), UpdatedAt: s.now()}
	s.mu.Lock()
	s.timestamps[timestampKey(l)] = snap
	s.mu.Unlock()

	metrics.RecordSnapshotSwap(l.String(), kindTimestamp, snap.UpdatedAt.Unix())
	return snap.Version, nil
}

// Timestamp implements Store.Timestamp.
func (s *MemStore) Timestamp(ctx context.Context, l league.League) (Snapshot, error) {
	if err := checkLeague(l); err != nil {
		return Snapshot{}, err
	}
	s.mu.RLock()
	snap, ok := s.timestamps[timestampKey(l)]
	s.mu.RUnlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s timestamp", ErrNotFound, l)
	}
	return snap, nil
}

// PutGames implements Store.PutGames.
func (s *MemStore) PutGames(ctx context.Context, l league.League, games []model.Game) (string, error) {
	return put(s, s.games, l, kindGames, games)
}

// Games implements Store.Games.
func (s *MemStore) Games(ctx context.Context, l league.League) ([]model.Game, error) {
	return get(s, s.games, l, kindGames)
}

// PutStandings implements Store.PutStandings.
func (s *MemStore) PutStandings(ctx context.Context, l league.League, rows []model.Standing) (string, error) {
	return put(s, s.standings, l, kindStandings, rows)
}

// Standings implements Store.Standings.
func (s *MemStore) Standings(ctx context.Context, l league.League) ([]model.Standing, error) {
	return get(s, s.standings, l, kindStandings)
}

// PutTeams implements Store.PutTeams.
func (s *MemStore) PutTeams(ctx context.Context, l league.League, teams []model.Team) (string, error) {
	return put(s, s.teams, l, kindTeams, teams)
}

// Teams implements Store.Teams.
func (s *MemStore) Teams(ctx context.Context, l league.League) ([]model.Team, error) {
	return get(s, s.teams, l, kindTeams)
}

// Stats implements Store.Stats.
func (s *MemStore) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		Timestamps: len(s.timestamps),
		GameSets:   len(s.games),
		Standings:  len(s.standings),
		Teams:      len(s.teams),
	}
	for _, v := range s.games {
		st.Games += len(v.items)
	}
	return st
}

func put[T any](s *MemStore, m map[league.League]versioned[T], l league.League, kind string, items []T) (string, error) {
	if err := checkLeague(l); err != nil {
		return "", err
	}
	v := versioned[T]{
		items:     append([]T(nil), items...),
		version:   s.version(),
		updatedAt: s.now(),
	}
	s.mu.Lock()
	m[l] = v
	s.mu.Unlock()

	metrics.RecordSnapshotSwap(l.String(), kind, v.updatedAt.Unix())
	return v.version, nil
}

func get[T any](s *MemStore, m map[league.League]versioned[T], l league.League, kind string) ([]T, error) {
	if err := checkLeague(l); err != nil {
		return nil, err
	}
	s.mu.RLock()
	v, ok := m[l]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, l, kind)
	}
	return append([]T{}, v.items...), nil
}
