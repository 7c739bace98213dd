package aggregate_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWindow(t *testing.T) {
	Convey("Given time windows", t, func() {
		Convey("When the window is the full control range", func() {
			Convey("Then it validates", func() {
				So(aggregate.FullWindow().Validate(), ShouldBeNil)
			})
		})

		Convey("When start is after end", func() {
			err := aggregate.Window{Start: 60, End: 30}.Validate()

			Convey("Then ErrInvalidWindow is returned", func() {
				So(errors.Is(err, aggregate.ErrInvalidWindow), ShouldBeTrue)
			})
		})

		Convey("When the window leaves the 0..90 range", func() {
			Convey("Then both ends are checked", func() {
				So(errors.Is(aggregate.Window{Start: -1, End: 10}.Validate(), aggregate.ErrInvalidWindow), ShouldBeTrue)
				So(errors.Is(aggregate.Window{Start: 0, End: 91}.Validate(), aggregate.ErrInvalidWindow), ShouldBeTrue)
			})
		})

		Convey("When a single-minute window is used", func() {
			Convey("Then it is valid", func() {
				So(aggregate.Window{Start: 45, End: 45}.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestFilterWindow(t *testing.T) {
	Convey("Given events spread across a match", t, func() {
		events := []model.Event{
			{Type: model.TypePass, Player: "A", Minute: 0},
			{Type: model.TypePass, Player: "A", Minute: 15},
			{Type: model.TypeShot, Player: "A", Minute: 30},
			{Type: model.TypePass, Player: "B", Minute: 31},
			{Type: model.TypePass, Player: "B", Minute: 93},
		}

		Convey("When no window is engaged", func() {
			Convey("Then every event is kept", func() {
				So(aggregate.FilterWindow(events, nil), ShouldHaveLength, len(events))
			})
		})

		Convey("When a window is engaged", func() {
			kept := aggregate.FilterWindow(events, &aggregate.Window{Start: 15, End: 30})

			Convey("Then both bounds are inclusive", func() {
				So(kept, ShouldHaveLength, 2)
				So(kept[0].Minute, ShouldEqual, 15)
				So(kept[1].Minute, ShouldEqual, 30)
			})

			Convey("And downstream aggregations only see the windowed events", func() {
				top, err := aggregate.TopPasser(kept)
				So(err, ShouldBeNil)
				So(top.Player, ShouldEqual, "A")
				So(top.Passes, ShouldEqual, 1)
			})
		})

		Convey("When the control is left at its full range", func() {
			full := aggregate.FullWindow()
			kept := aggregate.FilterWindow(events, &full)

			Convey("Then stoppage-time events past minute 90 are kept", func() {
				So(full.IsFull(), ShouldBeTrue)
				So(kept, ShouldHaveLength, len(events))
				So(kept[4].Minute, ShouldEqual, 93)
			})
		})

		Convey("When only the start moves", func() {
			kept := aggregate.FilterWindow(events, &aggregate.Window{Start: 31, End: aggregate.MaxMinute})

			Convey("Then the end stays open past minute 90", func() {
				So(kept, ShouldHaveLength, 2)
				So(kept[1].Minute, ShouldEqual, 93)
			})
		})

		Convey("When the end is below the top of the control", func() {
			kept := aggregate.FilterWindow(events, &aggregate.Window{Start: 30, End: 89})

			Convey("Then later events are dropped", func() {
				So(kept, ShouldHaveLength, 2)
			})
		})
	})
}

func TestFilters(t *testing.T) {
	Convey("Given a two-match table", t, func() {
		events := []model.Event{
			{MatchID: 1, Type: model.TypePass, Player: "A"},
			{MatchID: 1, Type: model.TypeShot, Player: "A"},
			{MatchID: 2, Type: model.TypePass, Player: "B"},
		}

		Convey("Then FilterMatch keeps a single match", func() {
			So(aggregate.FilterMatch(events, 2), ShouldHaveLength, 1)
		})

		Convey("And FilterPlayer keeps a single player", func() {
			So(aggregate.FilterPlayer(events, "A"), ShouldHaveLength, 2)
		})

		Convey("And FilterType keeps a single type", func() {
			So(aggregate.FilterType(events, model.TypePass), ShouldHaveLength, 2)
		})
	})
}

func TestConcat(t *testing.T) {
	Convey("Given per-match tables", t, func() {
		shared := uuid.New()
		first := []model.Event{
			{ID: shared, MatchID: 1},
			{ID: uuid.New(), MatchID: 1},
		}
		second := []model.Event{
			{ID: uuid.New(), MatchID: 2},
		}

		Convey("When concatenating distinct tables", func() {
			all := aggregate.Concat(first, second)

			Convey("Then every row is kept in order", func() {
				So(all, ShouldHaveLength, 3)
				So(all[2].MatchID, ShouldEqual, 2)
			})
		})

		Convey("When the same table is fetched twice", func() {
			all := aggregate.Concat(first, second, first)

			Convey("Then repeated event ids are dropped", func() {
				So(all, ShouldHaveLength, 3)
			})
		})

		Convey("When events carry no id", func() {
			anon := []model.Event{{MatchID: 3}, {MatchID: 3}}

			Convey("Then they are never treated as duplicates", func() {
				So(aggregate.Concat(anon), ShouldHaveLength, 2)
			})
		})
	})
}

func TestPlottable(t *testing.T) {
	Convey("Given events with and without coordinates", t, func() {
		events := []model.Event{
			{Type: model.TypePass, Location: &model.Point{X: 60, Y: 40}, PassEndLocation: &model.Point{X: 80, Y: 30}},
			{Type: model.TypePass, Location: &model.Point{X: 60, Y: 40}},
			{Type: model.TypeShot, Location: &model.Point{X: 110, Y: 38}},
			{Type: model.TypeShot},
		}

		kept, skipped := aggregate.Plottable(events)

		Convey("Then incomplete rows are skipped rather than failing", func() {
			So(kept, ShouldHaveLength, 2)
			So(skipped, ShouldEqual, 2)
		})

		Convey("And CheckPlottable reports ErrMissingField", func() {
			So(errors.Is(aggregate.CheckPlottable(events[1]), aggregate.ErrMissingField), ShouldBeTrue)
			So(errors.Is(aggregate.CheckPlottable(events[3]), aggregate.ErrMissingField), ShouldBeTrue)
			So(aggregate.CheckPlottable(events[2]), ShouldBeNil)
		})
	})
}
