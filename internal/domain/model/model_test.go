package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/simreveal/internal/domain/league"
	"github.com/okian/simreveal/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSlotDecoding(t *testing.T) {
	convey.Convey("Given slot labels from upstream payloads", t, func() {
		convey.Convey("When decoding football labels", func() {
			convey.So(model.ParseFootballSlot("Saturday Afternoon"), convey.ShouldEqual, model.SlotSaturdayAfternoon)
			convey.So(model.ParseFootballSlot("Monday Night Football"), convey.ShouldEqual, model.SlotMondayNightFootball)

			convey.Convey("Then matching is exact", func() {
				convey.So(model.ParseFootballSlot("saturday afternoon"), convey.ShouldEqual, model.FootballSlotUnknown)
				convey.So(model.ParseFootballSlot(""), convey.ShouldEqual, model.FootballSlotUnknown)
			})
		})

		convey.Convey("When listing football slots", func() {
			slots := model.FootballSlots()
			convey.So(slots, convey.ShouldHaveLength, 11)
			for _, s := range slots {
				convey.So(model.ParseFootballSlot(s.String()), convey.ShouldEqual, s)
			}
		})

		convey.Convey("When decoding letter codes", func() {
			convey.So(model.ParseBasketballSlot("d"), convey.ShouldEqual, model.MatchD)
			convey.So(model.ParseBasketballSlot("E"), convey.ShouldEqual, model.BasketballSlotUnknown)
			convey.So(model.ParseHockeyDay("c"), convey.ShouldEqual, model.DayC)
			convey.So(model.ParseHockeyDay("D"), convey.ShouldEqual, model.HockeyDayUnknown)
		})

		convey.Convey("When a game JSON carries an unrecognized slot", func() {
			var g model.Game
			err := json.Unmarshal([]byte(`{"ID":7,"Week":3,"SeasonID":2025,"TimeSlot":"Tuesday Brunch","GameDay":"Z"}`), &g)

			convey.Convey("Then decoding succeeds with unknown slots", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(g.ID, convey.ShouldEqual, uint(7))
				convey.So(g.TimeSlot, convey.ShouldEqual, model.FootballSlotUnknown)
				convey.So(g.GameDay, convey.ShouldEqual, model.HockeyDayUnknown)
			})
		})

		convey.Convey("When a game round-trips through JSON", func() {
			in := model.Game{ID: 1, Week: 2, SeasonID: 2025, MatchOfWeek: model.MatchC, GameComplete: true}
			b, err := json.Marshal(in)
			convey.So(err, convey.ShouldBeNil)

			var out model.Game
			convey.So(json.Unmarshal(b, &out), convey.ShouldBeNil)
			convey.So(out, convey.ShouldResemble, in)
		})
	})
}

func TestTimestamps(t *testing.T) {
	convey.Convey("Given timestamp snapshots", t, func() {
		convey.Convey("When resolving football clocks by tier", func() {
			ts := model.FootballTimestamp{CollegeWeek: 5, CollegeSeasonID: 2025, NFLWeek: 3, NFLSeasonID: 2024}
			convey.So(ts.ClockFor(league.Amateur), convey.ShouldResemble, model.Clock{Week: 5, SeasonID: 2025})
			convey.So(ts.ClockFor(league.Professional), convey.ShouldResemble, model.Clock{Week: 3, SeasonID: 2024})
			convey.So(ts.Family(), convey.ShouldEqual, league.Football)
		})

		convey.Convey("When mapping Saturday Afternoon to its flag", func() {
			ts := model.FootballTimestamp{SaturdayNoon: true}
			ran, known := ts.SlotRan(model.SlotSaturdayAfternoon)
			convey.So(known, convey.ShouldBeTrue)
			convey.So(ran, convey.ShouldBeTrue)

			_, known = ts.SlotRan(model.FootballSlotUnknown)
			convey.So(known, convey.ShouldBeFalse)
		})

		convey.Convey("When every football slot is flagged", func() {
			ts := model.FootballTimestamp{
				ThursdayGames: true, NFLThursday: true, FridayGames: true,
				SaturdayMorning: true, SaturdayNoon: true, SaturdayEvening: true, SaturdayNight: true,
				NFLSundayNoon: true, NFLSundayAfternoon: true, NFLSundayEvening: true, NFLMondayEvening: true,
			}
			convey.Convey("Then every known slot reports ran", func() {
				for _, s := range model.FootballSlots() {
					ran, known := ts.SlotRan(s)
					convey.So(known, convey.ShouldBeTrue)
					convey.So(ran, convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When resolving basketball clocks and flags", func() {
			ts := model.BasketballTimestamp{NBAWeek: 9, NBASeasonID: 2026, GamesDRan: true}
			convey.So(ts.ClockFor(league.Professional), convey.ShouldResemble, model.Clock{Week: 9, SeasonID: 2026})
			ran, known := ts.SlotRan(model.MatchD)
			convey.So(known && ran, convey.ShouldBeTrue)
			ran, known = ts.SlotRan(model.MatchA)
			convey.So(known, convey.ShouldBeTrue)
			convey.So(ran, convey.ShouldBeFalse)
		})

		convey.Convey("When a college hockey snapshot sees day C", func() {
			ts := model.HockeyTimestamp{League: league.CollegeHockey, GamesCRan: true}
			_, known := ts.SlotRan(model.DayC)

			convey.Convey("Then the day is not recognized", func() {
				convey.So(known, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a pro hockey snapshot sees day C", func() {
			ts := model.HockeyTimestamp{League: league.ProHockey, GamesCRan: true}
			ran, known := ts.SlotRan(model.DayC)
			convey.So(known, convey.ShouldBeTrue)
			convey.So(ran, convey.ShouldBeTrue)
		})
	})
}

func TestGameHelpers(t *testing.T) {
	convey.Convey("Given a game between teams 10 and 20", t, func() {
		g := model.Game{HomeTeamID: 10, AwayTeamID: 20}

		convey.So(g.Involves(10), convey.ShouldBeTrue)
		convey.So(g.Involves(20), convey.ShouldBeTrue)
		convey.So(g.Involves(30), convey.ShouldBeFalse)
		convey.So(g.Involves(0), convey.ShouldBeFalse)

		opp, home := g.Opponent(10)
		convey.So(opp, convey.ShouldEqual, uint(20))
		convey.So(home, convey.ShouldBeTrue)

		opp, home = g.Opponent(20)
		convey.So(opp, convey.ShouldEqual, uint(10))
		convey.So(home, convey.ShouldBeFalse)

		convey.Convey("Then a final without a winner is a tie", func() {
			convey.So(g.Tied(), convey.ShouldBeTrue)
			g.HomeTeamWin = true
			convey.So(g.Tied(), convey.ShouldBeFalse)
		})
	})
}

func TestDecodeTimestamp(t *testing.T) {
	convey.Convey("Given JSON clock payloads", t, func() {
		convey.Convey("When decoding a football clock", func() {
			ts, err := model.DecodeTimestamp(league.CollegeFootball, []byte(`{"CollegeWeek":4,"CollegeSeasonID":2,"SaturdayNoon":true}`))
			convey.So(err, convey.ShouldBeNil)
			fts, ok := ts.(model.FootballTimestamp)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(fts.CollegeWeek, convey.ShouldEqual, 4)
			convey.So(fts.SaturdayNoon, convey.ShouldBeTrue)
		})

		convey.Convey("When decoding a hockey clock without a league stamp", func() {
			ts, err := model.DecodeTimestamp(league.CollegeHockey, []byte(`{"Week":2,"SeasonID":1,"GamesARan":true}`))
			convey.So(err, convey.ShouldBeNil)
			hts := ts.(model.HockeyTimestamp)
			convey.So(hts.League, convey.ShouldEqual, league.CollegeHockey)
			convey.So(hts.GamesARan, convey.ShouldBeTrue)
		})

		convey.Convey("When decoding a hockey clock stamped with another league", func() {
			ts, err := model.DecodeTimestamp(league.CollegeHockey, []byte(`{"League":"phl","Week":2}`))
			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.(model.HockeyTimestamp).League, convey.ShouldEqual, league.ProHockey)
		})

		convey.Convey("When the payload is malformed", func() {
			_, err := model.DecodeTimestamp(league.ProBasketball, []byte(`{"NBAWeek":"x"}`))
			convey.So(err, convey.ShouldWrap, model.ErrTimestampShape)
		})

		convey.Convey("When the league is unknown", func() {
			_, err := model.DecodeTimestamp(league.Unknown, []byte(`{}`))
			convey.So(err, convey.ShouldWrap, league.ErrInvalidLeague)
		})
	})
}
