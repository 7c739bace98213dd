package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/config"
	"github.com/okian/matchscope/pkg/logger"
	"github.com/okian/matchscope/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

const (
	competitionsFixture = `[{"competition_id":43,"season_id":106,"country_name":"International",
		"competition_name":"FIFA World Cup","competition_gender":"male","season_name":"2022"}]`
	matchesFixture = `[{"match_id":3869685,"match_date":"2022-12-18","home_score":3,"away_score":3,
		"home_team":{"home_team_name":"Argentina"},"away_team":{"away_team_name":"France"},
		"competition":{"competition_id":43},"season":{"season_id":106}}]`
	eventsFixture = `[
		{"id":"a3c2a3e4-0000-4000-8000-000000000001","index":1,"period":1,"minute":1,"second":2,
		 "type":{"name":"Pass"},"team":{"name":"Argentina"},"player":{"name":"Lionel Messi"},
		 "location":[60,40],"pass":{"end_location":[70,30]}},
		{"id":"a3c2a3e4-0000-4000-8000-000000000002","index":2,"period":1,"minute":22,"second":5,
		 "type":{"name":"Shot"},"team":{"name":"Argentina"},"player":{"name":"Lionel Messi"},
		 "location":[108,40],"shot":{"outcome":{"name":"Goal"}}}]`
)

func fixtureServer() *httptest.Server {
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}
	}
	mux.HandleFunc("/competitions.json", serve(competitionsFixture))
	mux.HandleFunc("/matches/43/106.json", serve(matchesFixture))
	mux.HandleFunc("/events/3869685.json", serve(eventsFixture))
	return httptest.NewServer(mux)
}

func cleanEnv() {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, config.EnvPrefix) {
			_ = os.Unsetenv(strings.SplitN(kv, "=", 2)[0])
		}
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		cleanEnv()
		defer cleanEnv()

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MATCHSCOPE_ADDR", ":8081")
			_ = os.Setenv("MATCHSCOPE_AGGREGATE_SCOPE", "season")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.AggregateScope, convey.ShouldEqual, "season")
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			_ = os.Setenv("MATCHSCOPE_AGGREGATE_SCOPE", "league")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the server wired against a fixture provider", t, func() {
		upstream := fixtureServer()
		defer upstream.Close()

		cfg := config.New()
		cfg.ProviderBaseURL = upstream.URL
		cfg.ProviderRatePerSec = 0
		log := logger.New(logger.WithWriter(io.Discard))
		ctx := context.Background()
		srv := httptest.NewServer(newMux(ctx, service.FromConfig(cfg, log), log))
		defer srv.Close()

		get := func(path string) (int, string) {
			resp, err := http.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			return resp.StatusCode, string(body)
		}

		convey.Convey("Then the dashboard renders the default selection", func() {
			code, body := get("/?player=Lionel+Messi")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, "Lionel Messi com 1 passes")
			convey.So(body, convey.ShouldContainSubstring, "Argentina x France")
		})

		convey.Convey("And the API serves the overview", func() {
			code, body := get("/api/competitions/43/seasons/106/matches/3869685/overview")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, `"goals":1`)
		})

		convey.Convey("And the pass map is served", func() {
			code, body := get("/charts/competitions/43/seasons/106/matches/3869685/players/Lionel%20Messi/passes")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, "echarts")
		})

		convey.Convey("And the docs and metrics are served", func() {
			code, _ := get("/api-docs")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			code, _ = get("/openapi.yaml")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			code, _ = get("/api/competitions")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			code, body := get("/healthz")
			convey.So(code, convey.ShouldEqual, http.StatusOK)
			convey.So(body, convey.ShouldContainSubstring, "matchscope_provider_requests_total")
		})

		convey.Convey("And unknown matches are 404", func() {
			code, body := get("/api/competitions/43/seasons/106/matches/1/overview")
			convey.So(code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(body, convey.ShouldContainSubstring, "not_found")
		})
	})
}

func TestConfigReload(t *testing.T) {
	convey.Convey("Given the config reload callback", t, func() {
		_ = logger.Init(logger.WithWriter(io.Discard))
		defer func() { _ = logger.SetLevelString("info") }()
		reload := onConfigReload(context.Background(), logger.Get())
		applied := func() float64 { return counterValue("matchscope_config_reloads_total", "applied") }
		rejected := func() float64 { return counterValue("matchscope_config_reloads_total", "rejected") }

		convey.Convey("When a valid config arrives", func() {
			before := applied()
			cfg := config.New()
			cfg.LogLevel = "debug"
			reload(cfg, nil)

			convey.Convey("Then the reload is counted as applied", func() {
				convey.So(applied(), convey.ShouldEqual, before+1)
			})
		})

		convey.Convey("When the reload failed or the level is bad", func() {
			before := rejected()
			reload(nil, config.ErrLoadConfig)
			cfg := config.New()
			cfg.LogLevel = "loud"
			reload(cfg, nil)

			convey.Convey("Then both are counted as rejected", func() {
				convey.So(rejected(), convey.ShouldEqual, before+2)
			})
		})
	})
}

func counterValue(name, result string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "result" && l.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it returns once the context is done", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics manager creation", func() {
			convey.Convey("Then a manager on its own registry is creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}
