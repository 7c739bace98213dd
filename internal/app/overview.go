package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/internal/domain/types"
	"github.com/okian/matchscope/pkg/logger"
	"github.com/okian/matchscope/pkg/metrics"
)

// Overview is the match summary shown above the player form.
type Overview struct {
	Match model.Match `json:"match"`
	// Scope and MatchesInScope describe the collection behind TopPasser and
	// GoalsShots.
	Scope          string            `json:"scope"`
	MatchesInScope int               `json:"matches_in_scope"`
	Window         *aggregate.Window `json:"window"`
	EventCount     int               `json:"event_count"`
	// TopPasser is nil when there are no passes to rank.
	TopPasser  *types.PasserCount   `json:"top_passer"`
	GoalsShots []types.TeamShots    `json:"goals_shots"`
	Notable    []types.NotableEvent `json:"notable_events"`
	// Players of the selected match, in first-appearance order, ignoring the
	// window.
	Players []string `json:"players"`
}

// Overview fetches the selected match (or its whole season, depending on
// scope), applies the window and computes the summary statistics.
func (s *Service) Overview(ctx context.Context, sel Selection) (*Overview, error) {
	const op = "service.Overview"
	if err := sel.validate(true, false); err != nil {
		return nil, err
	}
	start := time.Now()

	matches, err := s.provider.Matches(ctx, sel.CompetitionID, sel.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.wrap(err))
	}
	match, ok := findMatch(matches, sel.MatchID)
	if !ok {
		return nil, fmt.Errorf("%s: match %d in competition %d season %d: %w",
			op, sel.MatchID, sel.CompetitionID, sel.SeasonID, ErrNotFound)
	}

	scope := s.scope
	if sel.Scope != "" {
		scope = sel.Scope
	}
	collection := s.collection(match, matches, scope)

	tables := make([][]model.Event, 0, len(collection))
	for _, m := range collection {
		events, err := s.provider.Events(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: events of match %d: %w", op, m.ID, s.wrap(err))
		}
		tables = append(tables, events)
	}
	all := aggregate.Concat(tables...)
	matchEvents := aggregate.FilterMatch(all, match.ID)
	windowed := aggregate.FilterWindow(all, sel.Window)
	windowedMatch := aggregate.FilterMatch(windowed, match.ID)

	out := &Overview{
		Match:          match,
		Scope:          scope,
		MatchesInScope: len(collection),
		Window:         sel.Window,
		EventCount:     len(windowed),
		GoalsShots:     aggregate.GoalsAndShotsByTeam(windowed),
		Notable:        aggregate.NotableEvents(windowedMatch, s.notableLimit),
		Players:        aggregate.PlayerRoster(matchEvents),
	}
	top, err := aggregate.TopPasser(windowed)
	switch {
	case err == nil:
		out.TopPasser = &top
	case errors.Is(err, aggregate.ErrEmptyResult):
		metrics.RecordEmptyResult("top_passer")
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	took := time.Since(start)
	metrics.RecordAggregationLatency("overview", float64(took.Microseconds())/1000)
	s.logger.Info(ctx, "overview computed",
		logger.Int("match_id", match.ID),
		logger.String("scope", scope),
		logger.Int("matches", len(collection)),
		logger.Int("events", len(windowed)),
		logger.Bool("windowed", sel.Window != nil),
		logger.Duration("took", took),
	)
	return out, nil
}

// collection is the set of matches whose events feed the cross-match
// aggregations. The selected match always comes first.
func (s *Service) collection(selected model.Match, season []model.Match, scope string) []model.Match {
	if scope != ScopeSeason {
		return []model.Match{selected}
	}
	out := make([]model.Match, 0, min(len(season), s.maxSeasonMatches))
	out = append(out, selected)
	for _, m := range season {
		if len(out) >= s.maxSeasonMatches {
			break
		}
		if m.ID != selected.ID {
			out = append(out, m)
		}
	}
	return out
}

func findMatch(matches []model.Match, id int) (model.Match, bool) {
	for _, m := range matches {
		if m.ID == id {
			return m, true
		}
	}
	return model.Match{}, false
}
