package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			err := Init()

			Convey("Then Get returns it", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})

		Convey("When a named logger is requested", func() {
			So(Init(), ShouldBeNil)

			Convey("Then it is usable", func() {
				So(func() { Named("test").Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		l := New(WithFormat(FormatJSON), WithWriter(&buf))

		Convey("When logging with fields", func() {
			l.Named("provider").With(Int("match_id", 7)).Info(context.Background(), "fetched events",
				String("endpoint", "events"),
				Bool("cached", false),
				Duration("took", 12*time.Millisecond),
				Error(errors.New("boom")),
			)

			var rec map[string]any
			err := json.Unmarshal(buf.Bytes(), &rec)

			Convey("Then every field is present", func() {
				So(err, ShouldBeNil)
				So(rec["msg"], ShouldEqual, "fetched events")
				So(rec["logger"], ShouldEqual, "provider")
				So(rec["match_id"], ShouldEqual, 7)
				So(rec["endpoint"], ShouldEqual, "events")
				So(rec["cached"], ShouldEqual, false)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the level", func() {
			l.Debug(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a text logger", t, func() {
		var buf bytes.Buffer
		l := New(WithWriter(&buf))
		l.Warn(context.Background(), "careful", String("k", "v"))

		Convey("Then output is key=value text", func() {
			So(strings.Contains(buf.String(), "k=v"), ShouldBeTrue)
			So(strings.Contains(buf.String(), "level=WARN"), ShouldBeTrue)
		})
	})

	Convey("Given a logger started at warn", t, func() {
		var buf bytes.Buffer
		l := New(WithWriter(&buf), WithLevel(slog.LevelWarn))
		l.Info(context.Background(), "fetching")
		l.Warn(context.Background(), "skipped events")

		Convey("Then info records are dropped", func() {
			So(buf.String(), ShouldNotContainSubstring, "fetching")
			So(buf.String(), ShouldContainSubstring, "skipped events")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("And ParseLevel maps names to slog levels", func() {
			l, err := ParseLevel("Warning")
			So(err, ShouldBeNil)
			So(l, ShouldEqual, slog.LevelWarn)
		})

		Reset(func() { _ = SetLevelString("info") })
	})
}
