package schedule

import (
	"strings"

	"github.com/okian/simreveal/internal/domain/model"
)

// GroupKey selects the standings column used for grouping.
type GroupKey int

const (
	ByConference GroupKey = iota
	ByDivision
)

// ParseGroupKey decodes "conference" or "division"; anything else is
// reported as not ok.
func ParseGroupKey(s string) (GroupKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "conference":
		return ByConference, true
	case "division":
		return ByDivision, true
	default:
		return ByConference, false
	}
}

func (k GroupKey) String() string {
	if k == ByDivision {
		return "division"
	}
	return "conference"
}

func (k GroupKey) of(s model.Standing) string {
	if k == ByDivision {
		return s.Division
	}
	return s.Conference
}

// RankedStanding is a standings row with its position inside its group.
type RankedStanding struct {
	Rank int
	model.Standing
}

// StandingsGroup is one named group of standings rows.
type StandingsGroup struct {
	Name string
	Rows []RankedStanding
}

// GroupStandings buckets rows by key following order. Groups with no rows
// are omitted and rows whose group is not listed in order are dropped.
// Ranks are 1-based input positions; rows are assumed pre-sorted.
func GroupStandings(rows []model.Standing, order []string, key GroupKey) []StandingsGroup {
	buckets := make(map[string][]RankedStanding, len(order))
	for _, r := range rows {
		name := key.of(r)
		buckets[name] = append(buckets[name], RankedStanding{Rank: len(buckets[name]) + 1, Standing: r})
	}

	out := make([]StandingsGroup, 0, len(order))
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if rows := buckets[name]; len(rows) > 0 {
			out = append(out, StandingsGroup{Name: name, Rows: rows})
		}
	}
	return out
}

// GroupOrder derives a canonical order from teams: first appearance of each
// conference or division name.
func GroupOrder(teams []model.Team, key GroupKey) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, t := range teams {
		name := t.Conference
		if key == ByDivision {
			name = t.Division
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// StandingsOrder derives an order from the rows themselves when no team
// list is available.
func StandingsOrder(rows []model.Standing, key GroupKey) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range rows {
		name := key.of(r)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
