// Package aggregate computes the dashboard statistics from a flat event table.
//
// Every function is pure: it reads the events it is given and never keeps
// state between calls, so callers recompute on each selection change.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/okian/matchscope/internal/domain/dedupe"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/internal/domain/types"
)

// DefaultNotableLimit is how many notable events are shown when no limit is given.
const DefaultNotableLimit = 5

// TopPasser returns the player with the most pass events. Ties go to the
// lexicographically smallest name. Passes without a player are ignored.
func TopPasser(events []model.Event) (types.PasserCount, error) {
	counts := make(map[string]int)
	for _, e := range events {
		if e.IsPass() && e.Player != "" {
			counts[e.Player]++
		}
	}
	if len(counts) == 0 {
		return types.PasserCount{}, ErrEmptyResult
	}

	var best types.PasserCount
	for player, n := range counts {
		if n > best.Passes || (n == best.Passes && player < best.Player) {
			best = types.PasserCount{Player: player, Passes: n}
		}
	}
	return best, nil
}

// GoalsAndShotsByTeam counts shots and goals per team, sorted by team name.
// A team that shot without scoring is reported with zero goals.
func GoalsAndShotsByTeam(events []model.Event) []types.TeamShots {
	byTeam := make(map[string]*types.TeamShots)
	for _, e := range events {
		if !e.IsShot() {
			continue
		}
		row, ok := byTeam[e.Team]
		if !ok {
			row = &types.TeamShots{Team: e.Team}
			byTeam[e.Team] = row
		}
		row.Shots++
		if e.IsGoal() {
			row.Goals++
		}
	}

	out := make([]types.TeamShots, 0, len(byTeam))
	for _, row := range byTeam {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b types.TeamShots) int {
		return cmp.Compare(a.Team, b.Team)
	})
	return out
}

// NotableEvents returns the first limit distinct (player, type, team) triples
// in provider order, skipping rows where any of the three is empty.
func NotableEvents(events []model.Event, limit int) []types.NotableEvent {
	if limit <= 0 {
		limit = DefaultNotableLimit
	}
	seen := dedupe.New[types.NotableEvent](dedupe.WithCapacityHint(limit))
	out := make([]types.NotableEvent, 0, limit)
	for _, e := range events {
		if len(out) == limit {
			break
		}
		if e.Player == "" || e.Type == "" || e.Team == "" {
			continue
		}
		row := types.NotableEvent{Player: e.Player, Type: e.Type, Team: e.Team}
		if seen.SeenAndRecord(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// PlayerRoster lists the distinct players of events in first-appearance order.
func PlayerRoster(events []model.Event) []string {
	seen := dedupe.New[string]()
	var roster []string
	for _, e := range events {
		if e.Player == "" || seen.SeenAndRecord(e.Player) {
			continue
		}
		roster = append(roster, e.Player)
	}
	return roster
}

// PlayerStats derives the detail-view numbers for one player. The conversion
// ratio (shots per successful pass) is nil when there are no successful passes.
func PlayerStats(events []model.Event, player string) model.PlayerMatchStats {
	stats := model.PlayerMatchStats{Player: player}
	for _, e := range events {
		if e.Player != player {
			continue
		}
		switch {
		case e.IsPass():
			stats.PassCount++
			if e.IsSuccessfulPass() {
				stats.SuccessfulPassCount++
			}
		case e.IsShot():
			stats.ShotCount++
			if e.IsGoal() {
				stats.GoalCount++
			}
		}
	}
	if stats.SuccessfulPassCount > 0 {
		ratio := float64(stats.ShotCount) / float64(stats.SuccessfulPassCount)
		stats.ConversionRatio = &ratio
	}
	return stats
}
