// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Event type names used by the aggregations. Any other type is carried as an
// opaque string.
const (
	TypePass = "Pass"
	TypeShot = "Shot"
)

// OutcomeGoal is the shot outcome that counts as a goal.
const OutcomeGoal = "Goal"

// ErrDivisionByZero is returned by PlayerMatchStats.Ratio when the player has
// no successful passes.
var ErrDivisionByZero = errors.New("conversion ratio undefined: no successful passes")

// Point is an (x, y) location on the provider's 120x80 pitch.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String renders the point the way it is written in CSV exports.
func (p Point) String() string {
	return fmt.Sprintf("[%g, %g]", p.X, p.Y)
}

// Event is one action recorded during a match. Empty strings stand for
// fields the provider left out; nil points likewise.
type Event struct {
	ID              uuid.UUID `json:"id"`
	Index           int       `json:"index"`
	MatchID         int       `json:"match_id"`
	Period          int       `json:"period"`
	Minute          int       `json:"minute"`
	Second          int       `json:"second"`
	Team            string    `json:"team"`
	Player          string    `json:"player,omitempty"`
	Type            string    `json:"type"`
	Location        *Point    `json:"location,omitempty"`
	PassEndLocation *Point    `json:"pass_end_location,omitempty"`
	PassOutcome     string    `json:"pass_outcome,omitempty"`
	ShotOutcome     string    `json:"shot_outcome,omitempty"`
}

// IsPass reports whether e is a pass.
func (e Event) IsPass() bool { return e.Type == TypePass }

// IsShot reports whether e is a shot.
func (e Event) IsShot() bool { return e.Type == TypeShot }

// IsSuccessfulPass reports whether e is a pass with no recorded outcome.
func (e Event) IsSuccessfulPass() bool { return e.IsPass() && e.PassOutcome == "" }

// IsGoal reports whether e is a shot that ended in a goal.
func (e Event) IsGoal() bool { return e.IsShot() && e.ShotOutcome == OutcomeGoal }

// Detail tile thresholds: more shots than ShotTileThreshold is flagged, more
// successful passes than PassTileThreshold is praised.
const (
	ShotTileThreshold = 2
	PassTileThreshold = 8
)

// PlayerMatchStats holds the per-player numbers shown in the detail view.
// It is derived on every request and never stored.
type PlayerMatchStats struct {
	Player              string   `json:"player"`
	PassCount           int      `json:"pass_count"`
	SuccessfulPassCount int      `json:"successful_pass_count"`
	ShotCount           int      `json:"shot_count"`
	GoalCount           int      `json:"goal_count"`
	ConversionRatio     *float64 `json:"conversion_ratio"`
}

// Ratio returns shots per successful pass, or ErrDivisionByZero.
func (s PlayerMatchStats) Ratio() (float64, error) {
	if s.ConversionRatio == nil {
		return 0, ErrDivisionByZero
	}
	return *s.ConversionRatio, nil
}
