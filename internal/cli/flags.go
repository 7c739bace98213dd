package cli

import (
	"fmt"

	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/spf13/cobra"
)

// selectionFlags holds the flags shared by the report commands.
type selectionFlags struct {
	competition int
	season      int
	match       int
	player      string
	scope       string
	from        int
	to          int
}

func (f *selectionFlags) bindMatch(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.competition, "competition", 0, "competition id")
	cmd.Flags().IntVar(&f.season, "season", 0, "season id")
	cmd.Flags().IntVar(&f.match, "match", 0, "match id")
	_ = cmd.MarkFlagRequired("competition")
	_ = cmd.MarkFlagRequired("season")
	_ = cmd.MarkFlagRequired("match")
}

func (f *selectionFlags) bindWindow(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.from, "from", aggregate.MinMinute, "window start minute")
	cmd.Flags().IntVar(&f.to, "to", aggregate.MaxMinute, "window end minute")
}

func (f *selectionFlags) bindPlayer(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.player, "player", "", "player name as recorded in the events")
	_ = cmd.MarkFlagRequired("player")
}

// selection builds the service selection. The window is engaged only when
// --from or --to was given and narrows the full range.
func (f *selectionFlags) selection(cmd *cobra.Command) (service.Selection, error) {
	sel := service.Selection{
		CompetitionID: f.competition,
		SeasonID:      f.season,
		MatchID:       f.match,
		Player:        f.player,
		Scope:         f.scope,
	}
	if !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
		return sel, nil
	}
	w := aggregate.Window{Start: f.from, End: f.to}
	if err := w.Validate(); err != nil {
		return sel, fmt.Errorf("--from/--to: %w", err)
	}
	if w.IsFull() {
		return sel, nil
	}
	sel.Window = &w
	return sel, nil
}
