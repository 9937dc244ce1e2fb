package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/reveal"
	"github.com/okian/simreveal/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const basketballYAML = `
league: nba
timestamp:
  NBAWeek: 2
  NBASeasonID: 1
  GamesARan: false
  GamesBRan: true
teams:
  - {ID: 1, Abbr: BOS, Conference: East}
  - {ID: 2, Abbr: NYK, Conference: East}
  - {ID: 3, Abbr: LAL, Conference: West}
games:
  - {ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeTeam: BOS, AwayTeam: NYK, Week: 1, SeasonID: 1, MatchOfWeek: A, GameComplete: true, HomeTeamWin: true, HomeTeamScore: 101, AwayTeamScore: 99}
  - {ID: 2, HomeTeamID: 2, AwayTeamID: 1, HomeTeam: NYK, AwayTeam: BOS, Week: 2, SeasonID: 1, MatchOfWeek: B, GameComplete: true, AwayTeamWin: true}
  - {ID: 3, HomeTeamID: 1, AwayTeamID: 3, HomeTeam: BOS, AwayTeam: LAL, Week: 2, SeasonID: 1, MatchOfWeek: A, GameComplete: true}
  - {ID: 4, HomeTeamID: 3, AwayTeamID: 1, HomeTeam: LAL, AwayTeam: BOS, Week: 3, SeasonID: 1, MatchOfWeek: C}
standings:
  - {TeamID: 1, Team: BOS, Conference: East, Wins: 2}
`

func TestParse(t *testing.T) {
	Convey("Given a basketball fixture", t, func() {
		f, err := Parse([]byte(basketballYAML))

		Convey("Then every section is decoded into domain types", func() {
			So(err, ShouldBeNil)
			So(f.League, ShouldEqual, league.ProBasketball)
			ts, ok := f.Timestamp.(model.BasketballTimestamp)
			So(ok, ShouldBeTrue)
			So(ts.NBAWeek, ShouldEqual, 2)
			So(ts.GamesBRan, ShouldBeTrue)
			So(f.Games, ShouldHaveLength, 4)
			So(f.Games[2].MatchOfWeek, ShouldEqual, model.MatchA)
			So(f.Teams, ShouldHaveLength, 3)
			So(f.Standings, ShouldHaveLength, 1)
		})
	})

	Convey("Given a hockey fixture without a league stamp", t, func() {
		f, err := Parse([]byte("league: college_hockey\ntimestamp: {Week: 3, GamesARan: true}\n"))
		So(err, ShouldBeNil)
		ts := f.Timestamp.(model.HockeyTimestamp)
		So(ts.League, ShouldEqual, league.CollegeHockey)
		So(ts.Week, ShouldEqual, 3)
		So(f.Games, ShouldBeNil)
	})

	Convey("Given broken fixtures", t, func() {
		_, err := Parse([]byte("league: mls\n"))
		So(err, ShouldWrap, ErrInvalidFixture)

		_, err = Parse([]byte("league: [nfl\n"))
		So(err, ShouldWrap, ErrInvalidFixture)

		_, err = Parse([]byte("league: nfl\ntimestamp: [1, 2]\n"))
		So(err, ShouldWrap, ErrInvalidFixture)

		_, err = Parse([]byte("league: nfl\ngames: {ID: 1}\n"))
		So(err, ShouldWrap, ErrInvalidFixture)
	})

	Convey("Given a fixture on disk", t, func() {
		path := filepath.Join(t.TempDir(), "nba.yaml")
		So(os.WriteFile(path, []byte(basketballYAML), 0o600), ShouldBeNil)

		f, err := Load(path)
		So(err, ShouldBeNil)
		So(f.Games, ShouldHaveLength, 4)

		_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
		So(err, ShouldWrap, ErrInvalidFixture)
	})
}

func TestRunner(t *testing.T) {
	Convey("Given a parsed fixture", t, func() {
		f, err := Parse([]byte(basketballYAML))
		So(err, ShouldBeNil)

		Convey("When evaluating without override", func() {
			results := Evaluate(nil, f, false)

			Convey("Then each game gets the clock's decision", func() {
				So(results, ShouldHaveLength, 4)
				So(results[0].Decision.Reason, ShouldEqual, reveal.ReasonPast)
				So(results[1].Decision.Reason, ShouldEqual, reveal.ReasonSlotRan)
				So(results[2].Decision.Reason, ShouldEqual, reveal.ReasonSlotPending)
				So(results[3].Decision.Reason, ShouldEqual, reveal.ReasonSlotPending)
				So(results[3].Matchup, ShouldEqual, "BOS @ LAL")
			})

			Convey("Then the table lists every game", func() {
				var buf bytes.Buffer
				So(WriteResults(&buf, results), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "REASON")
				So(buf.String(), ShouldContainSubstring, "slot_pending")
			})
		})

		Convey("When evaluating with override", func() {
			for _, r := range Evaluate(reveal.New(), f, true) {
				So(r.Decision.Revealed, ShouldBeTrue)
			}
		})

		Convey("When locating the next matchup", func() {
			entries, next := Next(nil, f, 1)

			Convey("Then the week gate treats the pending A game as attempted", func() {
				So(entries, ShouldHaveLength, 4)
				So(next, ShouldEqual, 3)
				So(entries[next].Opponent, ShouldEqual, "LAL")
			})

			Convey("Then reveal flags still follow the display rules", func() {
				So(entries[1].Revealed, ShouldBeTrue)
				So(entries[2].Revealed, ShouldBeFalse)
			})

			Convey("Then the schedule table marks it", func() {
				var buf bytes.Buffer
				So(WriteNext(&buf, entries, next), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, ">")
				So(buf.String(), ShouldContainSubstring, "LAL")
			})
		})

		Convey("When the team has nothing left", func() {
			var buf bytes.Buffer
			So(WriteNext(&buf, nil, -1), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "no remaining games")
		})
	})
}

// recorder is a fake service that remembers PUT paths and bodies.
type recorder struct {
	mu     sync.Mutex
	paths  []string
	bodies map[string][]byte
	busy   int
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy > 0 {
		r.busy--
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":"backpressure","message":"update queue is full"}`))
		return
	}
	if req.URL.Path == "/v1/leagues/nba/standings" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"bad_request","message":"nope"}`))
		return
	}
	body, _ := io.ReadAll(req.Body)
	r.paths = append(r.paths, req.Method+" "+req.URL.Path)
	r.bodies[req.URL.Path] = body
	w.WriteHeader(http.StatusAccepted)
}

func TestClient_Push(t *testing.T) {
	Convey("Given a fake service", t, func() {
		rec := &recorder{bodies: map[string][]byte{}}
		srv := httptest.NewServer(rec)
		Reset(srv.Close)
		c := NewClient(srv.URL+"/", time.Second, logger.Nop())
		ctx := context.Background()

		Convey("When pushing a fixture", func() {
			f, err := Parse([]byte(basketballYAML))
			So(err, ShouldBeNil)
			f.Standings = nil
			rec.busy = 1

			Convey("Then sections are sent with the clock last", func() {
				So(c.Push(ctx, f), ShouldBeNil)
				So(rec.paths, ShouldResemble, []string{
					"PUT /v1/leagues/nba/teams",
					"PUT /v1/leagues/nba/games",
					"PUT /v1/leagues/nba/timestamp",
				})
				var ts map[string]interface{}
				So(json.Unmarshal(rec.bodies["/v1/leagues/nba/timestamp"], &ts), ShouldBeNil)
				So(ts["NBAWeek"], ShouldEqual, float64(2))
			})
		})

		Convey("When the service refuses a section", func() {
			f, err := Parse([]byte(basketballYAML))
			So(err, ShouldBeNil)
			err = c.Push(ctx, f)

			Convey("Then the push stops with the service message", func() {
				So(err, ShouldWrap, ErrPush)
				So(err.Error(), ShouldContainSubstring, "nope")
				So(rec.paths, ShouldResemble, []string{"PUT /v1/leagues/nba/teams"})
			})
		})
	})
}
