package service

import (
	"fmt"

	"github.com/okian/matchscope/internal/domain/aggregate"
)

// Selection is the user's current choice. It is passed explicitly to every
// recompute.
type Selection struct {
	CompetitionID int
	SeasonID      int
	MatchID       int
	Player        string
	// Window restricts events by minute. Nil means not engaged.
	Window *aggregate.Window
	// Scope overrides the service's aggregate scope when set.
	Scope string
}

// validate checks the fields an operation needs. needPlayer is set by the
// per-player operations.
func (sel Selection) validate(needMatch, needPlayer bool) error {
	if needMatch && sel.MatchID <= 0 {
		return fmt.Errorf("%w: match id must be positive", ErrInvalidSelection)
	}
	if needPlayer && sel.Player == "" {
		return fmt.Errorf("%w: player is required", ErrInvalidSelection)
	}
	switch sel.Scope {
	case "", ScopeMatch, ScopeSeason:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidSelection, sel.Scope)
	}
	if sel.Window != nil {
		if err := sel.Window.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
	}
	return nil
}
