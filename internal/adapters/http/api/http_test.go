package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	"github.com/okian/matchscope/internal/adapters/http/api"
	"github.com/okian/matchscope/internal/adapters/provider/statsbomb"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDeps struct {
	err     error
	lastSel service.Selection
	kind    export.Kind
}

func (f *fakeDeps) Competitions(context.Context) ([]model.Competition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.Competition{{ID: 43, Name: "FIFA World Cup", Country: "International", Gender: "male"}}, nil
}

func (f *fakeDeps) Seasons(_ context.Context, competitionID int) ([]model.Season, error) {
	return []model.Season{{ID: 106, Name: "2022", CompetitionID: competitionID}}, f.err
}

func (f *fakeDeps) Matches(_ context.Context, c, s int) ([]model.Match, error) {
	return []model.Match{{ID: 1, HomeTeam: "Argentina", AwayTeam: "France", CompetitionID: c, SeasonID: s}}, f.err
}

func (f *fakeDeps) Overview(_ context.Context, sel service.Selection) (*service.Overview, error) {
	f.lastSel = sel
	if f.err != nil {
		return nil, f.err
	}
	return &service.Overview{
		Match:      model.Match{ID: sel.MatchID},
		Scope:      service.ScopeMatch,
		Window:     sel.Window,
		GoalsShots: []types.TeamShots{{Team: "Argentina", Goals: 3, Shots: 20}},
	}, nil
}

func (f *fakeDeps) PlayerDetail(_ context.Context, sel service.Selection) (*service.PlayerDetail, error) {
	f.lastSel = sel
	if f.err != nil {
		return nil, f.err
	}
	return &service.PlayerDetail{MatchID: sel.MatchID, Stats: model.PlayerMatchStats{Player: sel.Player, ShotCount: 2}}, nil
}

func (f *fakeDeps) PassMap(_ context.Context, sel service.Selection) (*charts.Map, error) {
	f.lastSel = sel
	return charts.PassMap(sel.Player, []model.Event{{Type: model.TypePass, Player: sel.Player}}, charts.DefaultConfig()), f.err
}

func (f *fakeDeps) ShotMap(_ context.Context, sel service.Selection) (*charts.Map, error) {
	f.lastSel = sel
	return charts.ShotMap(sel.Player, nil, charts.DefaultConfig()), f.err
}

func (f *fakeDeps) ExportCSV(_ context.Context, sel service.Selection, kind export.Kind) (export.File, error) {
	f.lastSel, f.kind = sel, kind
	if f.err != nil {
		return export.File{}, f.err
	}
	data, _ := export.EncodeBytes(nil)
	return export.File{Name: export.FileName(kind, sel.Player), ContentType: export.ContentType, Data: data}, nil
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCatalogRoutes(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &fakeDeps{}
		mux := newMux(deps)

		Convey("When listing competitions", func() {
			rec := get(mux, "/api/competitions")

			Convey("Then JSON rows come back with a request id", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
				var out []model.Competition
				So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
				So(out[0].Name, ShouldEqual, "FIFA World Cup")
			})
		})

		Convey("When listing seasons and matches", func() {
			seasons := get(mux, "/api/competitions/43/seasons")
			matches := get(mux, "/api/competitions/43/seasons/106/matches")

			Convey("Then path ids reach the service", func() {
				So(seasons.Code, ShouldEqual, http.StatusOK)
				So(seasons.Body.String(), ShouldContainSubstring, `"competition_id":43`)
				So(matches.Code, ShouldEqual, http.StatusOK)
				So(matches.Body.String(), ShouldContainSubstring, `"season_id":106`)
			})
		})

		Convey("When a path id is not a number", func() {
			rec := get(mux, "/api/competitions/abc/seasons")

			Convey("Then the request is rejected as bad", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			})
		})

		Convey("When the provider is unreachable", func() {
			deps.err = &statsbomb.Error{Op: "get", URL: "competitions.json", Err: errors.New("connection refused")}
			rec := get(mux, "/api/competitions")

			Convey("Then 502 provider_error is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusBadGateway)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"provider_error"`)
			})
		})

		Convey("When the client passes a request id", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/competitions", nil)
			req.Header.Set("X-Request-ID", "5f0c6a1e-3b1c-4a9e-9d6f-1b2c3d4e5f60")
			mux.ServeHTTP(rec, req)

			Convey("Then it is echoed", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldEqual, "5f0c6a1e-3b1c-4a9e-9d6f-1b2c3d4e5f60")
			})
		})
	})
}

func TestOverviewRoute(t *testing.T) {
	Convey("Given the overview route", t, func() {
		deps := &fakeDeps{}
		mux := newMux(deps)
		base := "/api/competitions/43/seasons/106/matches/1/overview"

		Convey("When no window is given", func() {
			rec := get(mux, base)

			Convey("Then the window is not engaged and the empty top passer is null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastSel.Window, ShouldBeNil)
				So(deps.lastSel.MatchID, ShouldEqual, 1)
				So(rec.Body.String(), ShouldContainSubstring, `"top_passer":null`)
			})
		})

		Convey("When a window and scope are given", func() {
			rec := get(mux, base+"?from=15&to=30&scope=season")

			Convey("Then they reach the selection", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(*deps.lastSel.Window, ShouldResemble, aggregate.Window{Start: 15, End: 30})
				So(deps.lastSel.Scope, ShouldEqual, "season")
			})
		})

		Convey("When only one bound is given", func() {
			get(mux, base+"?from=45")

			Convey("Then the other defaults to the range limit", func() {
				So(*deps.lastSel.Window, ShouldResemble, aggregate.Window{Start: 45, End: 90})
			})
		})

		Convey("When the window is reversed or out of range", func() {
			reversed := get(mux, base+"?from=60&to=10")
			outside := get(mux, base+"?to=120")
			garbage := get(mux, base+"?from=ten")

			Convey("Then 400 bad_request is returned", func() {
				So(reversed.Code, ShouldEqual, http.StatusBadRequest)
				So(outside.Code, ShouldEqual, http.StatusBadRequest)
				So(garbage.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the match is unknown", func() {
			deps.err = service.ErrNotFound
			rec := get(mux, base)

			Convey("Then 404 not_found is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
			})
		})

		Convey("When a provider file is missing", func() {
			deps.err = &statsbomb.Error{Op: "get", URL: "matches/1/1.json", StatusCode: 404, Err: statsbomb.ErrNotFound}
			rec := get(mux, base)

			Convey("Then not found wins over provider error", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestPlayerRoutes(t *testing.T) {
	Convey("Given the player routes", t, func() {
		deps := &fakeDeps{}
		mux := newMux(deps)
		player := url.PathEscape("Lionel Messi")

		Convey("When the detail is requested", func() {
			rec := get(mux, "/api/competitions/43/seasons/106/matches/1/players/"+player+"?from=0&to=45")

			Convey("Then the escaped name and window reach the service", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastSel.Player, ShouldEqual, "Lionel Messi")
				So(*deps.lastSel.Window, ShouldResemble, aggregate.Window{Start: 0, End: 45})
				So(rec.Body.String(), ShouldContainSubstring, `"shot_count":2`)
			})
		})

		Convey("When CSVs are downloaded", func() {
			passes := get(mux, "/api/competitions/43/seasons/106/matches/1/players/"+player+"/passes.csv")
			shots := get(mux, "/api/competitions/43/seasons/106/matches/1/players/"+player+"/shots.csv")

			Convey("Then they are attachments with the export names", func() {
				So(passes.Code, ShouldEqual, http.StatusOK)
				So(passes.Header().Get("Content-Type"), ShouldEqual, export.ContentType)
				So(passes.Header().Get("Content-Disposition"), ShouldEqual, `attachment; filename="passes_Lionel Messi.csv"`)
				So(shots.Header().Get("Content-Disposition"), ShouldContainSubstring, "chutes_Lionel Messi.csv")
				So(deps.kind, ShouldEqual, export.KindShots)
				So(strings.HasPrefix(passes.Body.String(), ",id,match_id"), ShouldBeTrue)
			})
		})

		Convey("When pitch maps are requested", func() {
			passes := get(mux, "/charts/competitions/43/seasons/106/matches/1/players/"+player+"/passes")
			shots := get(mux, "/charts/competitions/43/seasons/106/matches/1/players/"+player+"/shots")

			Convey("Then HTML pages come back with the skipped count", func() {
				So(passes.Code, ShouldEqual, http.StatusOK)
				So(passes.Header().Get("Content-Type"), ShouldStartWith, "text/html")
				So(passes.Header().Get("X-Skipped-Events"), ShouldEqual, "1")
				So(passes.Body.String(), ShouldContainSubstring, "echarts")
				So(shots.Code, ShouldEqual, http.StatusOK)
				So(shots.Header().Get("X-Skipped-Events"), ShouldEqual, "0")
			})
		})

		Convey("When the player is unknown", func() {
			deps.err = service.ErrNotFound
			rec := get(mux, "/api/competitions/43/seasons/106/matches/1/players/Nobody")

			Convey("Then 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the service rejects the selection", func() {
			deps.err = service.ErrInvalidSelection
			rec := get(mux, "/api/competitions/43/seasons/106/matches/1/players/"+player+"/passes.csv")

			Convey("Then 400 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHealthRoute(t *testing.T) {
	Convey("Given the health route", t, func() {
		mux := newMux(&fakeDeps{})
		get(mux, "/api/competitions")
		rec := get(mux, "/healthz")

		Convey("Then Prometheus metrics are exposed", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "matchscope_http_requests_total")
		})
	})
}

func TestParseWindow(t *testing.T) {
	Convey("Given raw bounds", t, func() {
		Convey("Then blanks mean no window", func() {
			w, err := api.ParseWindow(" ", "")
			So(err, ShouldBeNil)
			So(w, ShouldBeNil)
		})

		Convey("And the untouched full range is not engaged", func() {
			w, err := api.ParseWindow("0", "90")
			So(err, ShouldBeNil)
			So(w, ShouldBeNil)
		})

		Convey("And a narrowed range is engaged", func() {
			w, err := api.ParseWindow("0", "89")
			So(err, ShouldBeNil)
			So(*w, ShouldResemble, aggregate.Window{Start: 0, End: 89})
		})

		Convey("And errors are bad requests", func() {
			_, err := api.ParseWindow("-1", "")
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, aggregate.ErrInvalidWindow), ShouldBeTrue)
		})
	})
}
