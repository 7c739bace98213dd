package aggregate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/matchscope/internal/domain/dedupe"
	"github.com/okian/matchscope/internal/domain/model"
)

// Bounds of the dashboard's time-range control, in minutes.
const (
	MinMinute = 0
	MaxMinute = 90
)

// Window is an inclusive [Start, End] minute range. An End at MaxMinute is
// open, so stoppage time and extra time stay inside it.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullWindow covers the whole range of the time control.
func FullWindow() Window {
	return Window{Start: MinMinute, End: MaxMinute}
}

// IsFull reports whether w spans the whole control, which filters nothing.
func (w Window) IsFull() bool {
	return w.Start <= MinMinute && w.End >= MaxMinute
}

// Validate checks the window lies inside the control's range and is ordered.
func (w Window) Validate() error {
	if w.Start < MinMinute || w.End > MaxMinute || w.Start > w.End {
		return fmt.Errorf("%w: [%d, %d] must satisfy %d <= start <= end <= %d",
			ErrInvalidWindow, w.Start, w.End, MinMinute, MaxMinute)
	}
	return nil
}

// Contains reports whether the event's minute falls inside the window.
func (w Window) Contains(e model.Event) bool {
	if e.Minute < w.Start {
		return false
	}
	return w.End >= MaxMinute || e.Minute <= w.End
}

// FilterWindow keeps the events inside w. A nil or full window keeps everything.
func FilterWindow(events []model.Event, w *Window) []model.Event {
	if w == nil || w.IsFull() {
		return events
	}
	return filter(events, w.Contains)
}

// FilterPlayer keeps the events made by player.
func FilterPlayer(events []model.Event, player string) []model.Event {
	return filter(events, func(e model.Event) bool { return e.Player == player })
}

// FilterType keeps the events of the given type.
func FilterType(events []model.Event, eventType string) []model.Event {
	return filter(events, func(e model.Event) bool { return e.Type == eventType })
}

// FilterMatch keeps the events that belong to matchID.
func FilterMatch(events []model.Event, matchID int) []model.Event {
	return filter(events, func(e model.Event) bool { return e.MatchID == matchID })
}

// Concat flattens per-match event tables into one table. Events that share a
// provider id with an earlier row are dropped, so fetching the same match
// twice does not double count.
func Concat(tables ...[]model.Event) []model.Event {
	total := 0
	for _, t := range tables {
		total += len(t)
	}
	seen := dedupe.New[uuid.UUID](dedupe.WithCapacityHint(total))
	out := make([]model.Event, 0, total)
	for _, t := range tables {
		for _, e := range t {
			if e.ID != uuid.Nil && seen.SeenAndRecord(e.ID) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// CheckPlottable returns ErrMissingField when e lacks a coordinate the pitch
// maps need: a location for every event and an end location for passes.
func CheckPlottable(e model.Event) error {
	if e.Location == nil {
		return fmt.Errorf("%w: event %s has no location", ErrMissingField, e.ID)
	}
	if e.IsPass() && e.PassEndLocation == nil {
		return fmt.Errorf("%w: pass %s has no end location", ErrMissingField, e.ID)
	}
	return nil
}

// Plottable splits events into the ones that can be drawn and a count of the
// ones skipped for missing coordinates.
func Plottable(events []model.Event) ([]model.Event, int) {
	kept := filter(events, func(e model.Event) bool { return CheckPlottable(e) == nil })
	return kept, len(events) - len(kept)
}

func filter(events []model.Event, keep func(model.Event) bool) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
