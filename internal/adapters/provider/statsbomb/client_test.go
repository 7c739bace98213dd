package statsbomb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/matchscope/internal/adapters/provider/statsbomb"
	"github.com/okian/matchscope/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const competitionsJSON = `[
 {"competition_id": 11, "season_id": 90, "country_name": "Spain", "competition_name": "La Liga", "competition_gender": "male", "season_name": "2020/2021"},
 {"competition_id": 11, "season_id": 42, "country_name": "Spain", "competition_name": "La Liga", "competition_gender": "male", "season_name": "2019/2020"},
 {"competition_id": 43, "season_id": 106, "country_name": "International", "competition_name": "FIFA World Cup", "competition_gender": "male", "season_name": "2022"}
]`

const matchesJSON = `[
 {"match_id": 3869685, "match_date": "2022-12-18", "home_score": 3, "away_score": 3,
  "home_team": {"home_team_id": 779, "home_team_name": "Argentina"},
  "away_team": {"away_team_id": 771, "away_team_name": "France"},
  "competition": {"competition_id": 43}, "season": {"season_id": 106}}
]`

const eventsJSON = `[
 {"id": "9f6e2ecf-6685-45df-a62e-c2db3090f6c1", "index": 1, "period": 1, "minute": 0, "second": 0,
  "type": {"id": 35, "name": "Starting XI"}, "team": {"id": 779, "name": "Argentina"}},
 {"id": "2a41ed8f-8a0e-4bb7-8b7b-3a40b3b8f1c7", "index": 5, "period": 1, "minute": 0, "second": 1,
  "type": {"id": 30, "name": "Pass"}, "team": {"id": 779, "name": "Argentina"},
  "player": {"id": 5503, "name": "Lionel Andrés Messi Cuccittini"}, "location": [60.0, 40.0],
  "pass": {"end_location": [55.1, 44.3], "length": 6.5}},
 {"id": "c4b1d0a2-0f0e-4d2b-9c53-5d0a2c0f9e11", "index": 9, "period": 1, "minute": 22, "second": 30,
  "type": {"id": 16, "name": "Shot"}, "team": {"id": 779, "name": "Argentina"},
  "player": {"id": 5503, "name": "Lionel Andrés Messi Cuccittini"}, "location": [108.0, 40.0],
  "shot": {"end_location": [120.0, 38.0, 0.5], "outcome": {"id": 97, "name": "Goal"}}},
 {"id": "not-a-uuid", "index": 10, "period": 1, "minute": 23, "second": 0,
  "type": {"id": 30, "name": "Pass"}, "team": {"id": 771, "name": "France"},
  "player": {"id": 3009, "name": "Kylian Mbappé Lottin"},
  "pass": {"outcome": {"id": 9, "name": "Incomplete"}}}
]`

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/competitions.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(competitionsJSON))
	})
	mux.HandleFunc("GET /data/matches/43/106.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(matchesJSON))
	})
	mux.HandleFunc("GET /data/events/3869685.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(eventsJSON))
	})
	mux.HandleFunc("GET /data/events/500.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /data/events/666.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"broken": `))
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	Convey("Given a client pointed at an open-data tree", t, func() {
		srv := newServer()
		defer srv.Close()

		ctx := context.Background()
		c := statsbomb.New(
			statsbomb.WithBaseURL(srv.URL+"/data/"),
			statsbomb.WithRatePerSecond(0),
			statsbomb.WithTimeout(2*time.Second),
		)

		Convey("When listing competitions", func() {
			comps, err := c.Competitions(ctx)

			Convey("Then each competition appears once", func() {
				So(err, ShouldBeNil)
				So(comps, ShouldResemble, []model.Competition{
					{ID: 11, Name: "La Liga", Country: "Spain", Gender: "male"},
					{ID: 43, Name: "FIFA World Cup", Country: "International", Gender: "male"},
				})
			})
		})

		Convey("When listing seasons", func() {
			seasons, err := c.Seasons(ctx, 11)

			Convey("Then only that competition's seasons are returned", func() {
				So(err, ShouldBeNil)
				So(seasons, ShouldHaveLength, 2)
				So(seasons[0], ShouldResemble, model.Season{ID: 90, Name: "2020/2021", CompetitionID: 11})
			})

			Convey("And an unknown competition is not found", func() {
				_, err := c.Seasons(ctx, 999)
				So(errors.Is(err, statsbomb.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When listing matches", func() {
			matches, err := c.Matches(ctx, 43, 106)

			Convey("Then nested team names and scores are flattened", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 1)
				So(matches[0].Label(), ShouldEqual, "Argentina x France")
				So(matches[0].HomeScore, ShouldEqual, 3)
				So(matches[0].CompetitionID, ShouldEqual, 43)
				So(matches[0].SeasonID, ShouldEqual, 106)
				So(matches[0].Date, ShouldEqual, "2022-12-18")
			})

			Convey("And a missing season file is not found but still a provider error", func() {
				_, err := c.Matches(ctx, 43, 1)
				So(errors.Is(err, statsbomb.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, statsbomb.ErrProvider), ShouldBeTrue)
			})
		})

		Convey("When fetching events", func() {
			events, err := c.Events(ctx, 3869685)

			Convey("Then every event is stamped with the match id", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 4)
				for _, e := range events {
					So(e.MatchID, ShouldEqual, 3869685)
				}
			})

			Convey("And nested pass and shot attributes are flattened", func() {
				p := events[1]
				So(p.IsSuccessfulPass(), ShouldBeTrue)
				So(*p.Location, ShouldResemble, model.Point{X: 60, Y: 40})
				So(*p.PassEndLocation, ShouldResemble, model.Point{X: 55.1, Y: 44.3})
				So(p.ID.String(), ShouldEqual, "2a41ed8f-8a0e-4bb7-8b7b-3a40b3b8f1c7")

				s := events[2]
				So(s.IsGoal(), ShouldBeTrue)
				So(s.Minute, ShouldEqual, 22)
			})

			Convey("And absent fields stay empty", func() {
				So(events[0].Player, ShouldBeEmpty)
				So(events[0].Location, ShouldBeNil)
				So(events[3].Location, ShouldBeNil)
				So(events[3].PassOutcome, ShouldEqual, "Incomplete")
			})

			Convey("And fetching twice yields the same table", func() {
				again, err := c.Events(ctx, 3869685)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, events)
			})
		})

		Convey("When the provider fails", func() {
			_, statusErr := c.Events(ctx, 500)
			_, decodeErr := c.Events(ctx, 666)

			Convey("Then a ProviderError carrying the status is returned", func() {
				So(errors.Is(statusErr, statsbomb.ErrProvider), ShouldBeTrue)
				var perr *statsbomb.Error
				So(errors.As(statusErr, &perr), ShouldBeTrue)
				So(perr.StatusCode, ShouldEqual, http.StatusInternalServerError)
			})

			Convey("And malformed JSON is a ProviderError too", func() {
				So(errors.Is(decodeErr, statsbomb.ErrProvider), ShouldBeTrue)
				So(errors.Is(decodeErr, statsbomb.ErrNotFound), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unreachable provider", t, func() {
		srv := newServer()
		url := srv.URL
		srv.Close()

		c := statsbomb.New(statsbomb.WithBaseURL(url), statsbomb.WithRatePerSecond(0))
		_, err := c.Competitions(context.Background())

		Convey("Then the transport failure is a ProviderError", func() {
			So(errors.Is(err, statsbomb.ErrProvider), ShouldBeTrue)
		})
	})

	Convey("Given a rate limited client and a cancelled context", t, func() {
		srv := newServer()
		defer srv.Close()
		c := statsbomb.New(statsbomb.WithBaseURL(srv.URL+"/data"), statsbomb.WithRatePerSecond(0.01))

		_, err := c.Competitions(context.Background())
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = c.Competitions(ctx)

		Convey("Then the wait is abandoned", func() {
			So(errors.Is(err, statsbomb.ErrProvider), ShouldBeTrue)
		})
	})
}
