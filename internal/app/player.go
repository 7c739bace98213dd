package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
	"github.com/okian/matchscope/pkg/metrics"
)

// PlayerDetail is the filtered per-player view of one match.
type PlayerDetail struct {
	MatchID int                    `json:"match_id"`
	Window  *aggregate.Window      `json:"window"`
	Stats   model.PlayerMatchStats `json:"stats"`
	Passes  []model.Event          `json:"passes"`
	Shots   []model.Event          `json:"shots"`
}

// PlayerDetail computes the player's stats and pass/shot tables inside the
// window. A player absent from the match is ErrNotFound.
func (s *Service) PlayerDetail(ctx context.Context, sel Selection) (*PlayerDetail, error) {
	const op = "service.PlayerDetail"
	start := time.Now()
	events, err := s.playerEvents(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := &PlayerDetail{
		MatchID: sel.MatchID,
		Window:  sel.Window,
		Stats:   aggregate.PlayerStats(events, sel.Player),
		Passes:  aggregate.FilterType(events, model.TypePass),
		Shots:   aggregate.FilterType(events, model.TypeShot),
	}
	took := time.Since(start)
	metrics.RecordAggregationLatency("player_detail", float64(took.Microseconds())/1000)
	s.logger.Info(ctx, "player detail computed",
		logger.Int("match_id", sel.MatchID),
		logger.String("player", sel.Player),
		logger.Int("passes", out.Stats.PassCount),
		logger.Int("shots", out.Stats.ShotCount),
		logger.Duration("took", took),
	)
	return out, nil
}

// PassMap draws the player's passes.
func (s *Service) PassMap(ctx context.Context, sel Selection) (*charts.Map, error) {
	events, err := s.playerEvents(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("service.PassMap: %w", err)
	}
	m := charts.PassMap(sel.Player, events, s.chartConfig)
	s.logSkipped(ctx, charts.ChartPassMap, sel, m.Skipped)
	return m, nil
}

// ShotMap draws the player's shots.
func (s *Service) ShotMap(ctx context.Context, sel Selection) (*charts.Map, error) {
	events, err := s.playerEvents(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("service.ShotMap: %w", err)
	}
	m := charts.ShotMap(sel.Player, events, s.chartConfig)
	s.logSkipped(ctx, charts.ChartShotMap, sel, m.Skipped)
	return m, nil
}

// ExportCSV encodes the player's passes or shots.
func (s *Service) ExportCSV(ctx context.Context, sel Selection, kind export.Kind) (export.File, error) {
	const op = "service.ExportCSV"
	kind, err := export.ParseKind(string(kind))
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidSelection, err)
	}
	events, err := s.playerEvents(ctx, sel)
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}
	f, err := s.memo.File(kind, sel.Player, aggregate.FilterType(events, kind.EventType()))
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// playerEvents fetches the selected match, checks it belongs to the selected
// competition season and that the player took part, and returns the player's
// events inside the window.
func (s *Service) playerEvents(ctx context.Context, sel Selection) ([]model.Event, error) {
	if err := sel.validate(true, true); err != nil {
		return nil, err
	}
	if sel.CompetitionID > 0 && sel.SeasonID > 0 {
		matches, err := s.provider.Matches(ctx, sel.CompetitionID, sel.SeasonID)
		if err != nil {
			return nil, s.wrap(err)
		}
		if _, ok := findMatch(matches, sel.MatchID); !ok {
			return nil, fmt.Errorf("match %d in competition %d season %d: %w",
				sel.MatchID, sel.CompetitionID, sel.SeasonID, ErrNotFound)
		}
	}
	events, err := s.provider.Events(ctx, sel.MatchID)
	if err != nil {
		return nil, s.wrap(err)
	}
	if !slices.Contains(aggregate.PlayerRoster(events), sel.Player) {
		return nil, fmt.Errorf("player %q in match %d: %w", sel.Player, sel.MatchID, ErrNotFound)
	}
	return aggregate.FilterPlayer(aggregate.FilterWindow(events, sel.Window), sel.Player), nil
}

func (s *Service) logSkipped(ctx context.Context, chart string, sel Selection, skipped int) {
	if skipped == 0 {
		return
	}
	s.logger.Warn(ctx, "events skipped for missing coordinates",
		logger.String("chart", chart),
		logger.Int("match_id", sel.MatchID),
		logger.String("player", sel.Player),
		logger.Int("skipped", skipped),
	)
}
