// Package repository holds the league snapshots the reveal engine reads:
// the simulation clock, the season's games, standings and teams.
package repository

import (
	"context"
	"time"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
)

// Snapshot is an immutable clock reading with its version.
type Snapshot struct {
	Timestamp model.Timestamp
	Version   string
	UpdatedAt time.Time
}

// Stats summarizes what the store currently holds.
type Stats struct {
	Timestamps int
	GameSets   int
	Games      int
	Standings  int
	Teams      int
}

// Store provides read/write access to league snapshots. Every put replaces
// the previous value wholesale and returns the new version.
type Store interface {
	// PutTimestamp publishes a clock snapshot. Football and basketball
	// leagues share one snapshot per family; each hockey league has its own.
	PutTimestamp(ctx context.Context, l league.League, ts model.Timestamp) (string, error)
	// Timestamp returns the snapshot serving l or ErrNotFound.
	Timestamp(ctx context.Context, l league.League) (Snapshot, error)

	PutGames(ctx context.Context, l league.League, games []model.Game) (string, error)
	Games(ctx context.Context, l league.League) ([]model.Game, error)

	PutStandings(ctx context.Context, l league.League, rows []model.Standing) (string, error)
	Standings(ctx context.Context, l league.League) ([]model.Standing, error)

	PutTeams(ctx context.Context, l league.League, teams []model.Team) (string, error)
	Teams(ctx context.Context, l league.League) ([]model.Team, error)

	Stats(ctx context.Context) Stats
}
