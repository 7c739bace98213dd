package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/aggregate"
)

// pathInt reads a non-negative integer path value.
func pathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrBadRequest, name, raw)
	}
	return n, nil
}

// ParseWindow reads the from/to minute bounds. Neither present, or a window
// covering the whole control, means the window is not engaged; a missing side
// defaults to the range limit.
func ParseWindow(from, to string) (*aggregate.Window, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	w := aggregate.FullWindow()
	var err error
	if from != "" {
		if w.Start, err = strconv.Atoi(from); err != nil {
			return nil, fmt.Errorf("%w: from must be an integer minute, got %q", ErrBadRequest, from)
		}
	}
	if to != "" {
		if w.End, err = strconv.Atoi(to); err != nil {
			return nil, fmt.Errorf("%w: to must be an integer minute, got %q", ErrBadRequest, to)
		}
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if w.IsFull() {
		return nil, nil
	}
	return &w, nil
}

// playerSelection builds the selection of the player routes.
func playerSelection(r *http.Request) (service.Selection, error) {
	var (
		sel service.Selection
		err error
	)
	if sel.CompetitionID, err = pathInt(r, "competitionID"); err != nil {
		return service.Selection{}, err
	}
	if sel.SeasonID, err = pathInt(r, "seasonID"); err != nil {
		return service.Selection{}, err
	}
	if sel.MatchID, err = pathInt(r, "matchID"); err != nil {
		return service.Selection{}, err
	}
	if sel.Player = strings.TrimSpace(r.PathValue("player")); sel.Player == "" {
		return service.Selection{}, fmt.Errorf("%w: player is required", ErrBadRequest)
	}
	q := r.URL.Query()
	if sel.Window, err = ParseWindow(q.Get("from"), q.Get("to")); err != nil {
		return service.Selection{}, err
	}
	return sel, nil
}
