// Package charts draws per-player pass and shot maps over a pitch diagram.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/metrics"
)

// Chart names used as metric labels.
const (
	ChartPassMap = "pass_map"
	ChartShotMap = "shot_map"
)

const (
	grassColor = "#3a7d44"
	lineColor  = "#ffffff"
	passColor  = "#e03131"
	shotColor  = "#fcc419"
	goalColor  = "#1c7ed6"
	shotSize   = 14
	startSize  = 5
)

// Config sizes the rendered canvas in pixels.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns a 3:2 canvas close to the pitch aspect ratio.
func DefaultConfig() Config {
	return Config{Width: 900, Height: 600}
}

// Map is a rendered-on-demand pitch map plus the number of events it had to
// leave out for missing coordinates. Goals counts the plotted shots drawn in
// the goal series.
type Map struct {
	chart   *charts.Scatter
	Plotted int
	Skipped int
	Goals   int
}

// Render writes a standalone HTML page.
func (m *Map) Render(w io.Writer) error {
	return m.chart.Render(w)
}

// PassMap draws each pass by the player as an arrow from its location to its
// end location.
func PassMap(player string, events []model.Event, cfg Config) *Map {
	passes, skipped := aggregate.Plottable(aggregate.FilterType(aggregate.FilterPlayer(events, player), model.TypePass))
	metrics.RecordEventsSkipped(ChartPassMap, skipped)

	starts := make([]opts.ScatterData, 0, len(passes))
	arrows := make([]opts.MarkLineNameCoordItem, 0, len(passes))
	for _, e := range passes {
		starts = append(starts, opts.ScatterData{
			Name:  fmt.Sprintf("%d'", e.Minute),
			Value: []interface{}{e.Location.X, e.Location.Y},
		})
		arrows = append(arrows, opts.MarkLineNameCoordItem{
			Coordinate0: []interface{}{e.Location.X, e.Location.Y},
			Coordinate1: []interface{}{e.PassEndLocation.X, e.PassEndLocation.Y},
		})
	}

	c := newPitch(fmt.Sprintf("Passes: %s", player), "Arrows point where each pass went; length is pass distance", cfg)
	c.AddSeries("Passes", starts,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: passColor}),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: startSize}),
		charts.WithMarkLineNameCoordItemOpts(arrows...),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:     []string{"none", "arrow"},
			SymbolSize: 8,
			LineStyle:  &opts.LineStyle{Color: passColor, Width: 2, Type: "solid"},
			Label:      &opts.Label{Show: opts.Bool(false)},
		}),
	)
	return &Map{chart: c, Plotted: len(passes), Skipped: skipped}
}

// ShotMap draws each shot by the player as a point at its location. Goals go
// in their own series so they stand out from the other shots.
func ShotMap(player string, events []model.Event, cfg Config) *Map {
	shots, skipped := aggregate.Plottable(aggregate.FilterType(aggregate.FilterPlayer(events, player), model.TypeShot))
	metrics.RecordEventsSkipped(ChartShotMap, skipped)

	points := make([]opts.ScatterData, 0, len(shots))
	goals := make([]opts.ScatterData, 0)
	for _, e := range shots {
		name := fmt.Sprintf("%d'", e.Minute)
		if e.ShotOutcome != "" {
			name += " " + e.ShotOutcome
		}
		d := opts.ScatterData{
			Name:  name,
			Value: []interface{}{e.Location.X, e.Location.Y},
		}
		if e.IsGoal() {
			goals = append(goals, d)
			continue
		}
		points = append(points, d)
	}

	c := newPitch(fmt.Sprintf("Shots: %s", player), "Each point is a shot taken by the player; goals are blue", cfg)
	c.AddSeries("Shots", points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: shotColor, BorderColor: "#000000"}),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: shotSize}),
	)
	c.AddSeries("Goals", goals,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: goalColor, BorderColor: lineColor}),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: shotSize + 4}),
	)
	return &Map{chart: c, Plotted: len(shots), Skipped: skipped, Goals: len(goals)}
}

// newPitch builds a scatter chart whose axes match the pitch and whose first
// series carries the pitch markings.
func newPitch(title, subtitle string, cfg Config) *charts.Scatter {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg = DefaultConfig()
	}
	c := charts.NewScatter()
	c.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			Width:           fmt.Sprintf("%dpx", cfg.Width),
			Height:          fmt.Sprintf("%dpx", cfg.Height),
			BackgroundColor: grassColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			TitleStyle:    &opts.TextStyle{Color: lineColor},
			SubtitleStyle: &opts.TextStyle{Color: lineColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "value",
			Min:       -4,
			Max:       PitchLength + 4,
			Show:      opts.Bool(false),
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Min:       -4,
			Max:       PitchWidth + 4,
			Inverse:   opts.Bool(true),
			Show:      opts.Bool(false),
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
	)
	c.AddSeries("Pitch", []opts.ScatterData{},
		charts.WithMarkLineNameCoordItemOpts(pitchLines()...),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: lineColor, Width: 2, Type: "solid"},
			Label:     &opts.Label{Show: opts.Bool(false)},
		}),
	)
	return c
}
