package charts

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Pitch dimensions of the provider's coordinate system. y grows downwards.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0
)

type segment struct {
	x0, y0, x1, y1 float64
}

// pitchSegments draws the outline, halfway line, penalty areas, six-yard
// boxes and goal mouths.
var pitchSegments = []segment{ //nolint:gochecknoglobals
	{0, 0, 120, 0}, {120, 0, 120, 80}, {120, 80, 0, 80}, {0, 80, 0, 0},
	{60, 0, 60, 80},
	{0, 18, 18, 18}, {18, 18, 18, 62}, {18, 62, 0, 62},
	{120, 18, 102, 18}, {102, 18, 102, 62}, {102, 62, 120, 62},
	{0, 30, 6, 30}, {6, 30, 6, 50}, {6, 50, 0, 50},
	{120, 30, 114, 30}, {114, 30, 114, 50}, {114, 50, 120, 50},
	{-2, 36, -2, 44}, {122, 36, 122, 44},
}

func pitchLines() []opts.MarkLineNameCoordItem {
	items := make([]opts.MarkLineNameCoordItem, 0, len(pitchSegments))
	for _, s := range pitchSegments {
		items = append(items, opts.MarkLineNameCoordItem{
			Coordinate0: []interface{}{s.x0, s.y0},
			Coordinate1: []interface{}{s.x1, s.y1},
		})
	}
	return items
}
