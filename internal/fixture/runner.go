package fixture

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/internal/domain/schedule"
)

// Result is one evaluated game of a fixture.
type Result struct {
	Decision reveal.Decision
	Week     int
	Matchup  string
}

// Evaluate runs the engine over every game of f in file order. A nil
// engine uses the defaults.
func Evaluate(e *reveal.Engine, f *Fixture, override bool) []Result {
	if e == nil {
		e = reveal.New()
	}
	out := make([]Result, 0, len(f.Games))
	for _, g := range f.Games {
		out = append(out, Result{
			Decision: e.Evaluate(g, f.Timestamp, f.League, override),
			Week:     g.Week,
			Matchup:  g.AwayTeam + " @ " + g.HomeTeam,
		})
	}
	return out
}

// Next locates teamID's next matchup. The index is into the returned
// entries, or -1 when every game has been played.
func Next(e *reveal.Engine, f *Fixture, teamID uint) ([]schedule.Entry, int) {
	if e == nil {
		e = reveal.New()
	}
	loc := schedule.Locator{Engine: e, League: f.League, Timestamp: f.Timestamp}
	entries := schedule.TeamSchedule(teamID, f.Games, schedule.TeamIndex(f.Teams), func(g model.Game) bool {
		return e.Reveal(g, f.Timestamp, f.League, false)
	})
	return entries, loc.Next(entries)
}

// WriteResults prints results as an aligned table.
func WriteResults(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GAME\tWEEK\tMATCHUP\tREVEALED\tREASON")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%t\t%s\n",
			r.Decision.GameID, r.Week, r.Matchup, r.Decision.Revealed, r.Decision.Reason)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// WriteNext prints a team schedule with the next matchup marked.
func WriteNext(w io.Writer, entries []schedule.Entry, next int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "\tGAME\tWEEK\tOPPONENT\tVENUE")
	for i, e := range entries {
		marker, venue := "", "away"
		if i == next {
			marker = ">"
		}
		if e.IsHome {
			venue = "home"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", marker, e.Game.ID, e.Game.Week, e.Opponent, venue)
	}
	if next < 0 {
		_, _ = fmt.Fprintln(tw, "\tno remaining games\t\t\t")
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}
